package playlist

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultEndpoint = "https://wpqualityapi.appsqueeze.com/api/m3u8"
	DefaultTimeout  = 10 * time.Second
)

// RemoteSource reads the playlist API over HTTP.
type RemoteSource struct {
	endpoint string
	client   *http.Client
}

func NewRemoteSource(endpoint string, timeout time.Duration) *RemoteSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *RemoteSource) Fetch(ctx context.Context) ([]RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return decodeResponse(resp.Body)
}
