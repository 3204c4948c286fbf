package server

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/appsqueeze/wpslider/internal/httputil"
)

func serveWithSecurity(cfg SecurityConfig, inner http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	securityHeaders(cfg)(inner).ServeHTTP(rec, req)
	return rec
}

func noop() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func TestSecurityHeaders_CSPContainsNonce(t *testing.T) {
	var capturedNonce string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedNonce = string(httputil.NonceFrom(r.Context()))
	})

	rec := serveWithSecurity(SecurityConfig{BaseURL: "https://app.test"}, inner)

	csp := rec.Header().Get("Content-Security-Policy")
	if capturedNonce == "" {
		t.Fatal("expected non-empty nonce in context")
	}
	if !strings.Contains(csp, "script-src 'self' 'nonce-"+capturedNonce+"'") {
		t.Errorf("CSP script-src should contain nonce, got: %s", csp)
	}
	if !strings.Contains(csp, "style-src 'self' 'nonce-"+capturedNonce+"'") {
		t.Errorf("CSP style-src should contain nonce, got: %s", csp)
	}
}

func TestSecurityHeaders_CSPOmitsUnsafeInline(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{BaseURL: "https://app.test"}, noop())

	csp := rec.Header().Get("Content-Security-Policy")
	if strings.Contains(csp, "'unsafe-inline'") {
		t.Errorf("CSP should not contain 'unsafe-inline', got: %s", csp)
	}
}

func TestSecurityHeaders_CSPIncludesAssetOrigins(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{
		ScriptSources: []string{
			"https://cdn.jsdelivr.net/npm/hls.js@1/dist/hls.min.js",
			"https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.js",
			"/assets/local.js",
		},
		StyleSources: []string{"https://unpkg.com/swiper/swiper-bundle.min.css"},
	}, noop())

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "' https://cdn.jsdelivr.net; style-src") {
		t.Errorf("CSP script-src should list the CDN origin once, got: %s", csp)
	}
	if !strings.Contains(csp, "' https://unpkg.com; connect-src") {
		t.Errorf("CSP style-src should list the stylesheet origin, got: %s", csp)
	}
}

func TestSecurityHeaders_CSPIncludesMediaSources(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{MediaSources: []string{"https:"}}, noop())

	csp := rec.Header().Get("Content-Security-Policy")
	for _, want := range []string{
		"img-src 'self' data: https:;",
		"media-src 'self' data: blob: https:;",
		"connect-src 'self' https:;",
		"worker-src 'self' blob:;",
	} {
		if !strings.Contains(csp, want) {
			t.Errorf("CSP should contain %q, got: %s", want, csp)
		}
	}
}

func TestSecurityHeaders_CSPOmitsMediaWhenEmpty(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{}, noop())

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "connect-src 'self';") {
		t.Errorf("CSP connect-src should be just 'self' without media sources, got: %s", csp)
	}
}

func TestSecurityHeaders_UniqueNoncePerRequest(t *testing.T) {
	handler := securityHeaders(SecurityConfig{BaseURL: "https://app.test"})
	var nonces []string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonces = append(nonces, string(httputil.NonceFrom(r.Context())))
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler(inner).ServeHTTP(rec, req)
	}

	if nonces[0] == nonces[1] || nonces[1] == nonces[2] {
		t.Errorf("expected unique nonces per request, got %v", nonces)
	}
}

func TestSecurityHeaders_PermissionsPolicyAllowsAutoplay(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{}, noop())

	pp := rec.Header().Get("Permissions-Policy")
	if !strings.Contains(pp, "autoplay=(self)") {
		t.Errorf("Permissions-Policy should allow autoplay=(self), got: %s", pp)
	}
	if !strings.Contains(pp, "camera=()") {
		t.Errorf("Permissions-Policy should deny camera, got: %s", pp)
	}
}

func TestSecurityHeaders_HSTSOnHTTPS(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{BaseURL: "https://app.test"}, noop())

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS header for HTTPS base URL")
	}
}

func TestSecurityHeaders_NoHSTSOnHTTP(t *testing.T) {
	rec := serveWithSecurity(SecurityConfig{BaseURL: "http://localhost:8080"}, noop())

	if hsts := rec.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("expected no HSTS for HTTP base URL, got: %s", hsts)
	}
}

func TestOriginsOf(t *testing.T) {
	got := originsOf([]string{
		"https://cdn.jsdelivr.net/a.js",
		"https://cdn.jsdelivr.net/b.js",
		"/assets/c.js",
		"http://localhost:9000/d.js",
		"::bad",
	})
	want := []string{"https://cdn.jsdelivr.net", "http://localhost:9000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("originsOf() = %v, want %v", got, want)
	}
}
