package routes

import (
	"github.com/labstack/echo/v5"

	v1onboarding "github.com/janisto/echo-onboarding/internal/http/v1/onboarding"
	onboardingsvc "github.com/janisto/echo-onboarding/internal/onboarding"
)

// Register wires all v1 routes into the provided group.
func Register(v1 *echo.Group, v *onboardingsvc.Validator, s v1onboarding.Submitter) {
	v1onboarding.Register(v1, v, s)
}
