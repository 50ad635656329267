// Package docs serves the OpenAPI document generated by swag and a Swagger UI
// page that renders it.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v5"
)

var (
	//go:embed swagger-ui.html
	swaggerUI []byte

	//go:embed swagger.json
	openAPI []byte
)

// Register wires documentation routes.
//   - GET /api-docs/openapi.json serves the OpenAPI 3.1 document.
//   - GET /api-docs serves the Swagger UI page.
func Register(e *echo.Echo) {
	e.GET("/api-docs/openapi.json", func(c *echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPI)
	})
	e.GET("/api-docs", func(c *echo.Context) error {
		return c.HTMLBlob(http.StatusOK, swaggerUI)
	})
}
