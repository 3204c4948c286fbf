// Package docs serves the OpenAPI description of the public endpoints and a
// browsable reference page for it.
package docs

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var specYAML []byte

const (
	SpecPath               = "/api/docs/openapi.yaml"
	DefaultTitle           = "Wallpaper Slider API Reference"
	DefaultReferenceScript = "https://cdn.jsdelivr.net/npm/@scalar/api-reference"
)

type Config struct {
	Title string
	// ReferenceScript is the browser bundle that renders the document.
	ReferenceScript string
}

type Handler struct {
	page []byte
	csp  string
}

var pageTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html><head>
  <title>{{.Title}}</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head><body>
  <script id="api-reference" data-url="{{.SpecPath}}"></script>
  <script src="{{.Script}}"></script>
</body></html>`))

func New(cfg Config) (*Handler, error) {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.ReferenceScript == "" {
		cfg.ReferenceScript = DefaultReferenceScript
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title    string
		SpecPath string
		Script   string
	}{cfg.Title, SpecPath, cfg.ReferenceScript})
	if err != nil {
		return nil, err
	}
	return &Handler{page: buf.Bytes(), csp: referenceCSP(cfg.ReferenceScript)}, nil
}

// Routes serves the page at the mount root and the document beside it.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/openapi.yaml", h.Spec)
}

func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(specYAML)
}

// Page replaces the site-wide CSP: the reference UI injects inline styles and
// scripts.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Security-Policy", h.csp)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}

func referenceCSP(script string) string {
	origin := ""
	if u, err := url.Parse(script); err == nil && u.Scheme != "" && u.Host != "" {
		origin = " " + u.Scheme + "://" + u.Host
	}
	return "default-src 'self'; " +
		"script-src 'self'" + origin + " 'unsafe-inline'; " +
		"style-src 'self'" + origin + " 'unsafe-inline'; " +
		"font-src 'self'" + origin + " data:; " +
		"img-src 'self' data:; connect-src 'self'; frame-ancestors 'self';"
}
