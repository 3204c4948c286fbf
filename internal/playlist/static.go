package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/appsqueeze/wpslider/internal/validate"
)

// StaticSource serves a fixed list configured at startup.
type StaticSource struct {
	entries []RawEntry
}

func NewStaticSource(entries []RawEntry) *StaticSource {
	return &StaticSource{entries: append([]RawEntry(nil), entries...)}
}

func (s *StaticSource) Fetch(ctx context.Context) ([]RawEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]RawEntry(nil), s.entries...), nil
}

// ParseStatic reads a comma-separated list of "name|url" or bare "url" entries.
func ParseStatic(raw string) ([]RawEntry, error) {
	var entries []RawEntry
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, path, found := strings.Cut(part, "|")
		if !found {
			name, path = "", part
		}
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if msg := validate.MediaURL(path); msg != "" {
			return nil, fmt.Errorf("static playlist entry %q: %s", part, msg)
		}
		if msg := validate.WallpaperName(name); msg != "" {
			return nil, fmt.Errorf("static playlist entry %q: %s", part, msg)
		}
		entries = append(entries, RawEntry{Wallpaper: name, Path: path})
	}
	return entries, nil
}
