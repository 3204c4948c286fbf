package player

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/grafov/m3u8"
)

var ErrManifest = errors.New("manifest unavailable")

const maxManifestBytes = 2 << 20

// parseLevels lists the playable variants of a master playlist, ordered by
// bitrate like the browser player orders them. A media playlist has a single
// rendition and yields no selectable levels.
func parseLevels(r io.Reader) ([]Level, error) {
	playlist, listType, err := m3u8.DecodeFrom(io.LimitReader(r, maxManifestBytes), false)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrManifest, err)
	}
	if listType != m3u8.MASTER {
		return nil, nil
	}
	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected playlist type %T", ErrManifest, playlist)
	}

	levels := make([]Level, 0, len(master.Variants))
	for _, v := range master.Variants {
		if v == nil || v.Iframe {
			continue
		}
		var width, height int
		if v.Resolution != "" {
			if _, err := fmt.Sscanf(v.Resolution, "%dx%d", &width, &height); err != nil {
				width, height = 0, 0
			}
		}
		levels = append(levels, Level{
			Height:  height,
			Width:   width,
			Bitrate: int(v.Bandwidth),
			Label:   levelLabel(height, int(v.Bandwidth)),
		})
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Bitrate < levels[j].Bitrate
	})
	for i := range levels {
		levels[i].ID = LevelID(i)
	}
	return levels, nil
}
