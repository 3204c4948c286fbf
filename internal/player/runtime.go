package player

import (
	"errors"
	"strings"

	"github.com/mssola/useragent"

	"github.com/appsqueeze/wpslider/internal/playlist"
)

var ErrPlaybackUnsupported = errors.New("playback not supported")

// Runtime is the server's best guess at what the requesting browser can play.
// The page script re-checks both capabilities before attaching.
type Runtime struct {
	AdaptiveStreaming bool
	NativeHLS         bool
}

// DefaultRuntime assumes a desktop browser with Media Source Extensions.
var DefaultRuntime = Runtime{AdaptiveStreaming: true}

func RuntimeFromUserAgent(raw string) Runtime {
	if strings.TrimSpace(raw) == "" {
		return DefaultRuntime
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		return Runtime{}
	}

	platform := ua.Platform()
	if platform == "iPhone" || platform == "iPod" || platform == "iPod touch" {
		return Runtime{NativeHLS: true}
	}

	browser, _ := ua.Browser()
	if browser == "Safari" || platform == "iPad" {
		return Runtime{AdaptiveStreaming: true, NativeHLS: true}
	}
	return DefaultRuntime
}

// Path is how a slide's media element gets its source.
type Path int

const (
	PathImage Path = iota
	PathDirect
	PathAdaptive
	PathNative
	PathUnsupported
)

func (p Path) String() string {
	switch p {
	case PathDirect:
		return "direct"
	case PathAdaptive:
		return "adaptive"
	case PathNative:
		return "native"
	case PathUnsupported:
		return "unsupported"
	default:
		return "image"
	}
}

// Err is ErrPlaybackUnsupported for PathUnsupported and nil otherwise.
func (p Path) Err() error {
	if p == PathUnsupported {
		return ErrPlaybackUnsupported
	}
	return nil
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ChoosePath prefers an adaptive player for segmented streams, then native
// playback, and reports PathUnsupported when neither is available.
func ChoosePath(kind playlist.MediaKind, rt Runtime) Path {
	switch kind {
	case playlist.KindDirectVideo:
		return PathDirect
	case playlist.KindSegmented:
		switch {
		case rt.AdaptiveStreaming:
			return PathAdaptive
		case rt.NativeHLS:
			return PathNative
		default:
			return PathUnsupported
		}
	default:
		return PathImage
	}
}
