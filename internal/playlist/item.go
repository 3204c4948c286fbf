// Package playlist fetches wallpaper playlists from their configured source and
// normalizes them into ordered, classified items.
package playlist

import (
	"net/url"
	"strings"
)

// MediaKind is decided once per item, from the media URL's path suffix.
type MediaKind int

const (
	KindImage MediaKind = iota
	KindDirectVideo
	KindSegmented
)

func (k MediaKind) String() string {
	switch k {
	case KindSegmented:
		return "segmented"
	case KindDirectVideo:
		return "video"
	default:
		return "image"
	}
}

func (k MediaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k MediaKind) IsVideo() bool {
	return k == KindDirectVideo || k == KindSegmented
}

// Classify maps a media URL to its kind. Query strings and fragments are
// ignored and the suffix match is case-insensitive.
func Classify(mediaURL string) MediaKind {
	p := mediaURL
	if u, err := url.Parse(mediaURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.ToLower(p)

	switch {
	case strings.HasSuffix(p, ".m3u8"):
		return KindSegmented
	case strings.HasSuffix(p, ".mp4"):
		return KindDirectVideo
	default:
		return KindImage
	}
}

// RawEntry is one playlist record as the playlist API returns it.
type RawEntry struct {
	Wallpaper string `json:"wallpaper"`
	Path      string `json:"path"`
}

type Item struct {
	ID            int       `json:"id"`
	WallpaperName string    `json:"wallpaperName,omitempty"`
	MediaURL      string    `json:"mediaUrl"`
	Kind          MediaKind `json:"kind"`
}

// DisplayName falls back to a generic label when the source gave no name.
func (i Item) DisplayName() string {
	if i.WallpaperName != "" {
		return i.WallpaperName
	}
	if i.Kind == KindImage {
		return "Wallpaper"
	}
	return "Video Wallpaper"
}

// Normalize assigns 1-based IDs by position and classifies every entry.
func Normalize(entries []RawEntry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{
			ID:            i + 1,
			WallpaperName: strings.TrimSpace(e.Wallpaper),
			MediaURL:      strings.TrimSpace(e.Path),
			Kind:          Classify(strings.TrimSpace(e.Path)),
		}
	}
	return items
}
