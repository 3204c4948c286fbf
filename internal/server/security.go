package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/appsqueeze/wpslider/internal/httputil"
)

type SecurityConfig struct {
	BaseURL string
	// ScriptSources and StyleSources are asset URLs; only their origins
	// enter the policy.
	ScriptSources []string
	StyleSources  []string
	// MediaSources are CSP source expressions for wallpaper media, such as
	// "https:" or a CDN origin.
	MediaSources []string
}

func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := cfg.BaseURL != "" && hasHTTPS(cfg.BaseURL)

	scriptSuffix := sourceSuffix(originsOf(cfg.ScriptSources))
	styleSuffix := sourceSuffix(originsOf(cfg.StyleSources))
	mediaSuffix := sourceSuffix(cfg.MediaSources)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce, err := httputil.NewNonce()
			if err != nil {
				slog.Error("security: inline assets disabled for request", "error", err)
			}
			ctx := httputil.WithNonce(r.Context(), nonce)
			var inline string
			if src := nonce.Source(); src != "" {
				inline = " " + src
			}

			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), autoplay=(self)")

			csp := fmt.Sprintf(
				"default-src 'self'; img-src 'self' data:%s; media-src 'self' data: blob:%s; script-src 'self'%s%s; style-src 'self'%s%s; connect-src 'self'%s; worker-src 'self' blob:; frame-ancestors 'self';",
				mediaSuffix, mediaSuffix, inline, scriptSuffix, inline, styleSuffix, mediaSuffix,
			)
			w.Header().Set("Content-Security-Policy", csp)

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hasHTTPS(baseURL string) bool {
	return len(baseURL) >= 8 && baseURL[:8] == "https://"
}

// originsOf reduces absolute URLs to unique scheme://host origins. Relative
// URLs are already covered by 'self'.
func originsOf(rawURLs []string) []string {
	seen := make(map[string]bool)
	var origins []string
	for _, raw := range rawURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		origin := u.Scheme + "://" + u.Host
		if !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}
	return origins
}

func sourceSuffix(sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	return " " + strings.Join(sources, " ")
}
