package health

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-onboarding/internal/platform/respond"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status" cbor:"status" example:"healthy"`
}

// Handler godoc
//
//	@Summary		Health check
//	@Description	Reports that the service is up. It does not probe the submission endpoint.
//	@Tags			health
//	@Produce		json,application/cbor
//	@Success		200	{object}	Response
//	@Router			/health [get]
func Handler(c *echo.Context) error {
	return respond.Negotiate(c, http.StatusOK, Response{Status: "healthy"})
}
