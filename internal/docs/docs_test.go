package docs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newDocsRouter(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	r.Route("/api/docs", h.Routes)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSpecRoute(t *testing.T) {
	rec := get(newDocsRouter(t, Config{}), SpecPath)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/yaml")
	}
	if !strings.HasPrefix(rec.Body.String(), "openapi:") {
		t.Error("body should start with 'openapi:'")
	}
}

func TestPageRoute_Defaults(t *testing.T) {
	rec := get(newDocsRouter(t, Config{}), "/api/docs")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>" + DefaultTitle + "</title>",
		`data-url="` + SpecPath + `"`,
		`src="` + DefaultReferenceScript + `"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "script-src 'self' https://cdn.jsdelivr.net 'unsafe-inline'") {
		t.Errorf("CSP should allow the reference script origin, got %q", csp)
	}
}

func TestPageRoute_CustomScript(t *testing.T) {
	rec := get(newDocsRouter(t, Config{
		Title:           "Staging <API>",
		ReferenceScript: "https://assets.example.com/scalar.js",
	}), "/api/docs")

	body := rec.Body.String()
	if !strings.Contains(body, "Staging &lt;API&gt;") {
		t.Errorf("title should be escaped, got %s", body)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "https://assets.example.com") || strings.Contains(csp, "cdn.jsdelivr.net") {
		t.Errorf("CSP should follow the configured script, got %q", csp)
	}
}

func TestReferenceCSP_RelativeScript(t *testing.T) {
	csp := referenceCSP("/assets/scalar.js")
	if !strings.Contains(csp, "script-src 'self' 'unsafe-inline';") {
		t.Errorf("relative script should need only 'self', got %q", csp)
	}
}

func TestSpecContainsAllEndpoints(t *testing.T) {
	spec := string(specYAML)

	for _, ep := range []string{"/api/health", "/api/proxy", "/api/wallpapers", "options:"} {
		if !strings.Contains(spec, ep) {
			t.Errorf("spec missing endpoint: %s", ep)
		}
	}
}
