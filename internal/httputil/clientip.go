package httputil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the last X-Forwarded-For hop when present, otherwise the
// host part of RemoteAddr. The service is expected to sit behind exactly one
// reverse proxy that appends the peer address, so earlier hops are client
// supplied and ignored.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			if hop := strings.TrimSpace(hops[i]); hop != "" {
				return hop
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
