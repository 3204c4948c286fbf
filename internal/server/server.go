package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/appsqueeze/wpslider/internal/carousel"
	"github.com/appsqueeze/wpslider/internal/docs"
	"github.com/appsqueeze/wpslider/internal/httputil"
	"github.com/appsqueeze/wpslider/internal/proxy"
	"github.com/appsqueeze/wpslider/internal/ratelimit"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	// Pinger is checked by the health endpoint when the playlist lives in
	// the database.
	Pinger   Pinger
	Proxy    *proxy.Handler
	Carousel *carousel.Handler
	// ProxyLimiter guards the proxy route. Its janitor is run by the caller.
	ProxyLimiter *ratelimit.Limiter
	GeoIP        CountryResolver
	AssetsFS     fs.FS
	BaseURL      string
	// Docs serves the API reference under /api/docs. Nil disables it.
	Docs         *docs.Handler
	Security     SecurityConfig
}

type Server struct {
	router   chi.Router
	pinger   Pinger
	proxy    *proxy.Handler
	carousel *carousel.Handler
	limiter  *ratelimit.Limiter
	assetsFS fs.FS
	docs     *docs.Handler
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(slogMiddleware(cfg.GeoIP))
	r.Use(middleware.Recoverer)

	security := cfg.Security
	if security.BaseURL == "" {
		security.BaseURL = cfg.BaseURL
	}
	r.Use(securityHeaders(security))

	s := &Server{
		router:   r,
		pinger:   cfg.Pinger,
		proxy:    cfg.Proxy,
		carousel: cfg.Carousel,
		limiter:  cfg.ProxyLimiter,
		assetsFS: cfg.AssetsFS,
		docs:     cfg.Docs,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	if s.docs != nil {
		s.router.Route("/api/docs", s.docs.Routes)
	}

	if s.proxy != nil {
		s.router.Group(func(r chi.Router) {
			r.Use(proxy.CORS)
			// Preflights are never rate limited.
			r.Options(proxy.Path, s.proxy.Options)
			r.Group(func(r chi.Router) {
				if s.limiter != nil {
					r.Use(s.limiter.Middleware)
				}
				r.Get(proxy.Path, s.proxy.Get)
			})
		})
	}

	if s.carousel != nil {
		s.router.Get("/", s.carousel.Page)
		s.router.Get("/api/wallpapers", s.carousel.List)
	}

	if s.assetsFS != nil {
		s.router.Handle("/assets/*", http.StripPrefix("/assets", newAssetServer(s.assetsFS)))
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, "not found")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"database unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
