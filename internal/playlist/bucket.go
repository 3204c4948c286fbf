package playlist

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"
)

const presignExpiry = 1 * time.Hour

type ObjectStorage interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// BucketSource reads a playlist document stored as an object. Entry paths
// that are not absolute http(s) URLs are object keys in the same bucket and
// are replaced with presigned download URLs.
type BucketSource struct {
	storage ObjectStorage
	key     string
}

func NewBucketSource(storage ObjectStorage, key string) *BucketSource {
	return &BucketSource{storage: storage, key: key}
}

func (s *BucketSource) Fetch(ctx context.Context) ([]RawEntry, error) {
	body, err := s.storage.GetObject(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = body.Close() }()

	entries, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		if isAbsoluteURL(e.Path) {
			continue
		}
		signed, err := s.storage.GenerateDownloadURL(ctx, e.Path, presignExpiry)
		if err != nil {
			return nil, fmt.Errorf("%w: presign %s: %v", ErrUpstream, e.Path, err)
		}
		entries[i].Path = signed
	}
	return entries, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
