package httputil

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"RemoteAddrWithPort", "10.0.0.5:51234", "", "10.0.0.5"},
		{"RemoteAddrWithoutPort", "10.0.0.5", "", "10.0.0.5"},
		{"SingleForwardedHop", "10.0.0.5:51234", "203.0.113.7", "203.0.113.7"},
		{"SpoofedLeadingHopIgnored", "10.0.0.5:51234", "198.51.100.9, 203.0.113.7", "203.0.113.7"},
		{"TrailingEmptyHop", "10.0.0.5:51234", "203.0.113.7, ", "203.0.113.7"},
		{"BlankForwardedFallsBack", "10.0.0.5:51234", " , ", "10.0.0.5"},
		{"IPv6RemoteAddr", "[2001:db8::1]:443", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
