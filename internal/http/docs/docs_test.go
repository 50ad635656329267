package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func serve(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	Register(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
	}
	return rec
}

func TestSwaggerUI(t *testing.T) {
	rec := serve(t, "/api-docs")
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api-docs/openapi.json") {
		t.Fatal("expected swagger UI to reference /api-docs/openapi.json")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	rec := serve(t, "/api-docs/openapi.json")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected application/json content type, got %q", ct)
	}

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid OpenAPI JSON: %v", err)
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.1") {
		t.Fatalf("expected OpenAPI 3.1, got %q", doc.OpenAPI)
	}
	for path, method := range map[string]string{
		"/onboarding/form":     "get",
		"/onboarding/validate": "post",
		"/onboarding":          "post",
	} {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Fatalf("expected %s %s in document", method, path)
		}
	}
}
