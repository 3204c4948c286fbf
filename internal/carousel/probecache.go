package carousel

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/appsqueeze/wpslider/internal/player"
)

const DefaultProbeTTL = 5 * time.Minute

type probeEntry struct {
	quality player.QualityState
	expires time.Time
}

// ProbeCache holds successful manifest probes by URL for a fixed TTL.
// Concurrent probes of the same URL share one request.
type ProbeCache struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]probeEntry
}

func NewProbeCache(ttl time.Duration) *ProbeCache {
	if ttl <= 0 {
		ttl = DefaultProbeTTL
	}
	return &ProbeCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]probeEntry),
	}
}

// Get returns the cached quality state for src or calls load. Errors are not
// cached.
func (c *ProbeCache) Get(ctx context.Context, src string, load func(context.Context) (player.QualityState, error)) (player.QualityState, error) {
	if q, ok := c.lookup(src); ok {
		return q, nil
	}

	v, err, _ := c.group.Do(src, func() (any, error) {
		if q, ok := c.lookup(src); ok {
			return q, nil
		}
		q, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[src] = probeEntry{quality: q, expires: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return player.QualityState{}, err
	}
	return cloneQuality(v.(player.QualityState)), nil
}

func (c *ProbeCache) lookup(src string) (player.QualityState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[src]
	if !ok {
		return player.QualityState{}, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, src)
		return player.QualityState{}, false
	}
	return cloneQuality(entry.quality), true
}

func cloneQuality(q player.QualityState) player.QualityState {
	q.Levels = append([]player.Level(nil), q.Levels...)
	return q
}
