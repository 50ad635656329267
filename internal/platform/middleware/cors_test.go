package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func newCORSServer(origins ...string) *echo.Echo {
	e := echo.New()
	e.Use(CORS(origins...))
	e.POST("/v1/onboarding", func(c *echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	return e
}

func TestCORS_PreflightAllowsFormMethods(t *testing.T) {
	e := newCORSServer()

	req := httptest.NewRequest(http.MethodOptions, "/v1/onboarding", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	methods := rec.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(methods, http.MethodPost) {
		t.Fatalf("expected POST in allowed methods, got %q", methods)
	}
	if strings.Contains(methods, http.MethodDelete) {
		t.Fatalf("DELETE should not be allowed, got %q", methods)
	}
}

func TestCORS_ConfiguredOrigins(t *testing.T) {
	e := newCORSServer("https://forms.example.com")

	req := httptest.NewRequest(http.MethodPost, "/v1/onboarding", nil)
	req.Header.Set("Origin", "https://forms.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://forms.example.com" {
		t.Fatalf("expected configured origin echoed, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, HeaderXRequestID) {
		t.Fatalf("expected X-Request-ID exposed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/onboarding", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "https://evil.example.com" {
		t.Fatal("unlisted origin must not be allowed")
	}
}
