package middleware

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

// CORS returns Echo middleware for browser clients of the onboarding form.
// With no origins every origin is allowed. Only the methods the form uses
// are permitted.
func CORS(origins ...string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			"Accept",
			"Content-Type",
			HeaderXRequestID,
			"traceparent",
		},
		ExposeHeaders: []string{HeaderXRequestID, "Location"},
		MaxAge:        600,
	})
}
