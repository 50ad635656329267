package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v5"
)

func TestRequestLogger_ScopesLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, slog.LevelInfo)
	t.Cleanup(func() { Init(&bytes.Buffer{}, slog.LevelInfo) })

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			c.Set("request_id", "req-42")
			return next(c)
		}
	})
	e.Use(RequestLogger())

	var traceID string
	e.GET("/", func(c *echo.Context) error {
		traceID = TraceIDFromContext(c.Request().Context())
		LogInfo(c.Request().Context(), "inside")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceparentHeader, validTraceparent)
	e.ServeHTTP(httptest.NewRecorder(), req)

	if projectID() == "" && traceID != "req-42" {
		t.Fatalf("expected request ID as trace ID, got %q", traceID)
	}
	if m := decodeLine(t, &buf); m["requestId"] != "req-42" {
		t.Fatalf("expected requestId on scoped logger, got %v", m)
	}
}

func TestAccessLogger(t *testing.T) {
	tests := []struct {
		status   int
		severity string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusUnprocessableEntity, "WARNING"},
		{http.StatusBadGateway, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			Init(&buf, slog.LevelInfo)
			t.Cleanup(func() { Init(&bytes.Buffer{}, slog.LevelInfo) })

			e := echo.New()
			e.Use(AccessLogger())
			e.POST("/v1/onboarding", func(c *echo.Context) error {
				return c.String(tt.status, "x")
			})
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/onboarding", nil))

			m := decodeLine(t, &buf)
			if m["severity"] != tt.severity || m["status"] != float64(tt.status) {
				t.Fatalf("unexpected access line %v", m)
			}
			if m["path"] != "/v1/onboarding" || m["method"] != http.MethodPost {
				t.Fatalf("unexpected request fields %v", m)
			}
		})
	}
}

func TestAccessLogger_PropagatesError(t *testing.T) {
	Init(&bytes.Buffer{}, slog.LevelInfo)
	sentinel := errors.New("handler failed")

	e := echo.New()
	var seen error
	e.HTTPErrorHandler = func(_ *echo.Context, err error) { seen = err }
	e.Use(AccessLogger())
	e.GET("/", func(*echo.Context) error { return sentinel })
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !errors.Is(seen, sentinel) {
		t.Fatalf("expected handler error to reach the error handler, got %v", seen)
	}
}
