package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v5"
)

func TestSecurity(t *testing.T) {
	e := echo.New()
	e.Use(Security("/api-docs"))
	ok := func(c *echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/v1/onboarding/form", ok)
	e.GET("/api-docs", ok)

	tests := []struct {
		path    string
		headers bool
	}{
		{"/v1/onboarding/form", true},
		{"/api-docs", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			for _, kv := range securityHeaders {
				got := rec.Header().Get(kv[0])
				if tt.headers && got != kv[1] {
					t.Fatalf("%s: expected %q, got %q", kv[0], kv[1], got)
				}
				if !tt.headers && got != "" {
					t.Fatalf("%s: expected no header on skipped path, got %q", kv[0], got)
				}
			}
		})
	}
}
