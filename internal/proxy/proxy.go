// Package proxy relays GET requests to a caller-supplied URL and returns the
// upstream body with permissive CORS headers.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/appsqueeze/wpslider/internal/httputil"
)

const (
	Path = "/api/proxy"

	DefaultTimeout     = 15 * time.Second
	defaultContentType = "application/octet-stream"
	cacheControl       = "public, max-age=86400"
	maxRedirects       = 10
)

const (
	msgMissingURL     = "Missing URL parameter"
	msgHostNotAllowed = "Target host not allowed"
	msgInvalidToken   = "Invalid proxy token"
)

type Config struct {
	// Timeout bounds connecting and waiting for response headers. The body
	// itself streams without a deadline.
	Timeout      time.Duration
	AllowedHosts []string
	Signer       *Signer
	// Transport overrides the outbound round tripper, mostly for tests.
	Transport http.RoundTripper
}

type Handler struct {
	client *http.Client
	allow  *allowList
	signer *Signer
}

func New(cfg Config) *Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
		t.TLSHandshakeTimeout = timeout
		t.ResponseHeaderTimeout = timeout
		transport = t
	}

	h := &Handler{
		allow:  newAllowList(cfg.AllowedHosts),
		signer: cfg.Signer,
	}
	h.client = &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if !h.allow.permits(req.URL.Hostname()) {
				return ErrHostNotAllowed
			}
			return nil
		},
	}
	return h
}

func setCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// CORS sets the proxy's CORS headers before next runs, so responses written
// by outer middleware such as a rate limiter stay readable cross-origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORS(w.Header())
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	httputil.WriteError(w, status, message)
}

// Options answers CORS preflight requests.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	setCORS(w.Header())
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	target, err := h.authorize(r.URL.Query())
	switch {
	case errors.Is(err, ErrMissingParameter):
		writeError(w, http.StatusBadRequest, msgMissingURL)
		return
	case err != nil:
		slog.Warn("proxy: rejected token", "target", target, "error", err)
		writeError(w, http.StatusForbidden, msgInvalidToken)
		return
	}

	resp, err := h.fetch(r.Context(), target)
	if errors.Is(err, ErrHostNotAllowed) {
		writeError(w, http.StatusForbidden, msgHostNotAllowed)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer func() { _ = resp.Body.Close() }()

	header := w.Header()
	setCORS(header)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	header.Set("Content-Type", contentType)
	header.Set("Cache-Control", cacheControl)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are already sent; the client sees a truncated body.
		slog.Debug("proxy: body copy interrupted", "target", target, "error", err)
	}
}

// authorize extracts the target URL and, when links are signed, checks its
// token.
func (h *Handler) authorize(query url.Values) (string, error) {
	target := query.Get("url")
	if target == "" {
		return "", ErrMissingParameter
	}
	if h.signer != nil {
		if err := h.signer.Verify(query.Get("token"), target); err != nil {
			return target, err
		}
	}
	return target, nil
}

func (h *Handler) fetch(ctx context.Context, target string) (*http.Response, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if !h.allow.permits(u.Hostname()) {
		return nil, ErrHostNotAllowed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create proxy request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrHostNotAllowed) {
			return nil, ErrHostNotAllowed
		}
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}
