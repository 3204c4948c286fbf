package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/appsqueeze/wpslider/internal/httputil"
)

// CountryResolver annotates access logs with the client's country.
type CountryResolver interface {
	Country(ip string) string
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func slogMiddleware(geo CountryResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/health" {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			if geo != nil {
				if country := geo.Country(httputil.ClientIP(r)); country != "" {
					attrs = append(attrs, "country", country)
				}
			}
			slog.Info("http request", attrs...)
		})
	}
}
