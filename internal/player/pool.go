// Package player models adaptive-streaming player sessions: manifest levels,
// quality selection, play state, and the pool that accounts for every live
// session so none outlives its slide.
package player

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultManifestTimeout = 5 * time.Second

type Pool struct {
	client *http.Client

	mu   sync.Mutex
	live map[uuid.UUID]*Player
}

func NewPool(timeout time.Duration) *Pool {
	if timeout <= 0 {
		timeout = DefaultManifestTimeout
	}
	return &Pool{
		client: &http.Client{Timeout: timeout},
		live:   make(map[uuid.UUID]*Player),
	}
}

// Active reports how many players are attached and not yet closed.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// Attach opens a player for src and loads its manifest. On error the player
// is already released. On success the caller must Close it.
func (p *Pool) Attach(ctx context.Context, src string) (*Player, error) {
	pl := &Player{ID: uuid.New(), Source: src, pool: p}

	p.mu.Lock()
	p.live[pl.ID] = pl
	p.mu.Unlock()

	levels, err := p.loadLevels(ctx, src)
	if err != nil {
		pl.Close()
		return nil, err
	}
	pl.quality = NewQualityState(levels)
	return pl, nil
}

func (p *Pool) release(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.live, id)
}

func (p *Pool) loadLevels(ctx context.Context, src string) ([]Level, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrManifest, resp.StatusCode)
	}
	return parseLevels(resp.Body)
}

// Player is one attached segmented-stream session.
type Player struct {
	ID     uuid.UUID
	Source string

	pool     *Pool
	mu       sync.Mutex
	quality  QualityState
	playback PlaybackState
	closed   bool
}

// Levels returns the manifest's variants without the synthetic Auto entry.
func (pl *Player) Levels() []Level {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if len(pl.quality.Levels) == 0 {
		return nil
	}
	return append([]Level(nil), pl.quality.Levels[1:]...)
}

func (pl *Player) Quality() QualityState {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.quality
}

func (pl *Player) SelectLevel(id LevelID) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	next, err := pl.quality.Select(id)
	if err != nil {
		return err
	}
	pl.quality = next
	return nil
}

func (pl *Player) Playback() PlaybackState {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.playback
}

func (pl *Player) HandleEvent(ev MediaEvent) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.playback = pl.playback.Apply(ev)
}

// Close releases the player from its pool. Safe to call more than once.
func (pl *Player) Close() {
	pl.mu.Lock()
	if pl.closed {
		pl.mu.Unlock()
		return
	}
	pl.closed = true
	pl.mu.Unlock()
	pl.pool.release(pl.ID)
}
