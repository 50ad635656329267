package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-onboarding/internal/http/health"
	onboardingsvc "github.com/janisto/echo-onboarding/internal/onboarding"
	applog "github.com/janisto/echo-onboarding/internal/platform/logging"
	appmiddleware "github.com/janisto/echo-onboarding/internal/platform/middleware"
	"github.com/janisto/echo-onboarding/internal/platform/respond"
	"github.com/janisto/echo-onboarding/internal/platform/validate"
	"github.com/janisto/echo-onboarding/internal/submission"
)

const validBody = `{"fullName":"John Doe","email":"john@example.com","companyName":"Acme Corp",` +
	`"services":["UI/UX"],"projectStartDate":"2025-12-01","acceptTerms":true}`

type upstreamCall struct {
	requestID string
	body      map[string]any
}

func setupTestServer(t *testing.T, upstreamStatus int) (*echo.Echo, chan upstreamCall) {
	t.Helper()
	calls := make(chan upstreamCall, 4)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		calls <- upstreamCall{requestID: r.Header.Get("X-Request-ID"), body: body}
		w.WriteHeader(upstreamStatus)
	}))
	t.Cleanup(upstream.Close)

	client, err := submission.NewClient(upstream.URL, submission.WithHTTPClient(upstream.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	e.Use(
		appmiddleware.RequestID(),
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	e.GET("/health", health.Handler)

	v := onboardingsvc.NewValidator(onboardingsvc.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	}))
	Register(e.Group("/v1"), v, client)
	return e, calls
}

func TestSubmitForwardsRecordAndRequestID(t *testing.T) {
	e, calls := setupTestServer(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/v1/onboarding", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "trace-abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
	}
	call := <-calls
	if call.requestID != "trace-abc" {
		t.Fatalf("expected request ID to be forwarded, got %q", call.requestID)
	}
	if _, ok := call.body["budgetUsd"]; ok {
		t.Fatalf("absent budget must be omitted upstream, got %v", call.body)
	}
	if call.body["projectStartDate"] != "2025-12-01" {
		t.Fatalf("unexpected start date %v", call.body["projectStartDate"])
	}
}

func TestSubmitUpstreamErrorIs502(t *testing.T) {
	e, calls := setupTestServer(t, http.StatusInternalServerError)

	req := httptest.NewRequest(http.MethodPost, "/v1/onboarding", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	<-calls

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var problem respond.ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if problem.Detail != "Submission failed: 500 Internal Server Error" || problem.UpstreamStatus != 500 {
		t.Fatalf("unexpected problem %+v", problem)
	}
}

func TestRoutingProblems(t *testing.T) {
	e, _ := setupTestServer(t, http.StatusOK)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/v1/onboarding/form", http.StatusOK},
		{http.MethodGet, "/nonexistent", http.StatusNotFound},
		{http.MethodDelete, "/v1/onboarding", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.status, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s %s: expected X-Request-ID header", tt.method, tt.path)
		}
	}
}

func TestPanicRecovery(t *testing.T) {
	e, _ := setupTestServer(t, http.StatusOK)
	e.GET("/panic", func(_ *echo.Context) error {
		panic("test panic")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
