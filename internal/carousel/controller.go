// Package carousel mounts a wallpaper playlist into an ordered set of slides
// and renders them as a looping carousel page.
package carousel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/appsqueeze/wpslider/internal/player"
	"github.com/appsqueeze/wpslider/internal/playlist"
	"github.com/appsqueeze/wpslider/internal/proxy"
)

const DefaultProbeConcurrency = 4

var ErrAlreadyMounted = errors.New("carousel already mounted")

type Config struct {
	Source playlist.Source
	// Pool probes segmented manifests for their quality levels. Nil skips
	// probing and the browser fills the selector on its own.
	Pool *player.Pool
	// ProxyImages routes image slides through the CORS proxy, signed when
	// Signer is set.
	ProxyImages      bool
	Signer           *proxy.Signer
	ProbeConcurrency int
	// Probes reuses probe results across mounts. Nil probes on every mount.
	Probes *ProbeCache
}

type Slide struct {
	Item    playlist.Item
	Path    player.Path
	Quality *player.QualityState
	// DisplayURL is what the page loads: the media URL, or a proxy link for
	// proxied images.
	DisplayURL string
}

func (s Slide) IsImage() bool     { return s.Path == player.PathImage }
func (s Slide) Unsupported() bool { return s.Path == player.PathUnsupported }
func (s Slide) Segmented() bool   { return s.Item.Kind == playlist.KindSegmented }

// QualityLevels is the selector's initial option list. Without a probe result
// it holds only Auto.
func (s Slide) QualityLevels() []player.Level {
	if s.Quality != nil {
		return s.Quality.Levels
	}
	return player.NewQualityState(nil).Levels
}

// Controller owns one mount of the carousel: a single fetch and the slides
// built from it.
type Controller struct {
	cfg Config

	mu      sync.Mutex
	mounted bool
	state   playlist.FetchState
	slides  []Slide
}

func NewController(cfg Config) *Controller {
	if cfg.ProbeConcurrency <= 0 {
		cfg.ProbeConcurrency = DefaultProbeConcurrency
	}
	return &Controller{cfg: cfg, state: playlist.Loading()}
}

// Mount fetches the playlist once and builds slides for rt. Fetch failures
// land in State, not in the returned error.
func (c *Controller) Mount(ctx context.Context, rt player.Runtime) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.mu.Unlock()

	state := playlist.Load(ctx, c.cfg.Source)
	if state.Status == playlist.StatusError {
		slog.Warn("carousel: playlist fetch failed", "error", state.Err)
	}

	var slides []Slide
	if state.Status == playlist.StatusReady {
		slides = c.buildSlides(ctx, state.Items, rt)
	}

	c.mu.Lock()
	c.state = state
	c.slides = slides
	c.mu.Unlock()
	return nil
}

func (c *Controller) State() playlist.FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Slides is empty unless the fetch succeeded.
func (c *Controller) Slides() []Slide {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Status != playlist.StatusReady {
		return nil
	}
	return append([]Slide(nil), c.slides...)
}

func (c *Controller) buildSlides(ctx context.Context, items []playlist.Item, rt player.Runtime) []Slide {
	slides := make([]Slide, len(items))
	for i, item := range items {
		slides[i] = Slide{
			Item:       item,
			Path:       player.ChoosePath(item.Kind, rt),
			DisplayURL: c.displayURL(item),
		}
	}
	if c.cfg.Pool == nil {
		return slides
	}

	var g errgroup.Group
	g.SetLimit(c.cfg.ProbeConcurrency)
	for i := range slides {
		if slides[i].Path != player.PathAdaptive {
			continue
		}
		g.Go(func() error {
			slides[i].Quality = c.probe(ctx, slides[i].Item.MediaURL)
			return nil
		})
	}
	_ = g.Wait()
	return slides
}

func (c *Controller) probe(ctx context.Context, src string) *player.QualityState {
	var (
		q   player.QualityState
		err error
	)
	if c.cfg.Probes != nil {
		q, err = c.cfg.Probes.Get(ctx, src, func(ctx context.Context) (player.QualityState, error) {
			return c.attach(ctx, src)
		})
	} else {
		q, err = c.attach(ctx, src)
	}
	if err != nil {
		slog.Warn("carousel: manifest probe failed", "url", src, "error", err)
		return nil
	}
	return &q
}

func (c *Controller) attach(ctx context.Context, src string) (player.QualityState, error) {
	pl, err := c.cfg.Pool.Attach(ctx, src)
	if err != nil {
		return player.QualityState{}, err
	}
	defer pl.Close()
	return pl.Quality(), nil
}

func (c *Controller) displayURL(item playlist.Item) string {
	if item.Kind != playlist.KindImage || !c.cfg.ProxyImages {
		return item.MediaURL
	}
	link, err := proxy.Link(c.cfg.Signer, item.MediaURL)
	if err != nil {
		slog.Warn("carousel: failed to sign image link", "url", item.MediaURL, "error", err)
		return item.MediaURL
	}
	return link
}
