package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUpstream  = errors.New("failed to fetch wallpapers")
	ErrMalformed = errors.New("invalid API response format")
)

// maxResponseBytes caps playlist bodies from remote and bucket sources.
const maxResponseBytes = 4 << 20

type Source interface {
	Fetch(ctx context.Context) ([]RawEntry, error)
}

type apiResponse struct {
	Success   bool       `json:"success"`
	Playlists []RawEntry `json:"playlists"`
}

// decodeResponse accepts only bodies with success=true and a playlists array.
// An empty array is a valid, empty playlist.
func decodeResponse(r io.Reader) ([]RawEntry, error) {
	var resp apiResponse
	if err := json.NewDecoder(io.LimitReader(r, maxResponseBytes)).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !resp.Success || resp.Playlists == nil {
		return nil, ErrMalformed
	}
	return resp.Playlists, nil
}
