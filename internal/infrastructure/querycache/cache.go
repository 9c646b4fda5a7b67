// Package querycache implements the keyed read cache behind the catalog
// service: each read is identified by an operation key, kept fresh for a
// staleness window, deduplicated across concurrent callers, and marked for
// refetch when a related write lands.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/teslo-shop/storefront-go/internal/metrics"
)

// DefaultStaleTime matches the storefront's staleness window: entries older
// than this are served immediately but revalidated in the background.
const DefaultStaleTime = 5 * time.Minute

// Loader fetches the value for a key. Loaders are never retried: a failure
// propagates to the caller unchanged.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	// invalid marks the entry for refetch; the next Get blocks on a fresh
	// load instead of serving the cached value.
	invalid bool
}

// Cache is a keyed query cache with stale-while-revalidate semantics.
// Concurrent reads of the same key collapse into one backend call; later
// responses overwrite earlier values (last write wins).
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	staleTime time.Duration
	group     singleflight.Group
	log       zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// New returns a cache with the given staleness window; staleTime <= 0 falls
// back to DefaultStaleTime.
func New(staleTime time.Duration, log zerolog.Logger) *Cache {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Cache{
		entries:   make(map[string]*entry),
		staleTime: staleTime,
		log:       log,
		now:       time.Now,
	}
}

// Key builds a cache key from an operation name and its canonical
// parameters. Invalidation matches on key prefixes, so the operation name
// alone addresses every parameterisation of that operation.
func Key(op string, params ...string) string {
	if len(params) == 0 {
		return op
	}
	return op + ":" + strings.Join(params, ":")
}

// Get returns the cached value for key, loading it when absent or
// invalidated. A value past the staleness window is returned as-is while a
// background refetch revalidates the entry.
func (c *Cache) Get(ctx context.Context, key string, load Loader) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.invalid {
		value := e.value
		fresh := c.now().Sub(e.fetchedAt) < c.staleTime
		c.mu.Unlock()

		if fresh {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return value, nil
		}

		metrics.CacheLookupsTotal.WithLabelValues("stale").Inc()
		go c.revalidate(key, load)
		return value, nil
	}
	c.mu.Unlock()

	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	value, err, _ := c.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Seed(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// revalidate refetches a stale entry in the background. The detached
// context keeps the refresh alive after the originating caller returns.
func (c *Cache) revalidate(key string, load Loader) {
	_, _, _ = c.group.Do("revalidate:"+key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		v, err := load(ctx)
		if err != nil {
			c.log.Debug().Err(err).Str("key", key).Msg("background revalidation failed")
			return nil, err
		}
		c.Seed(key, v)
		return v, nil
	})
}

// Seed stores a fresh value under key, clearing any invalidation mark. Used
// both by loads and by mutations pre-populating the detail entry so the
// next read skips the network.
func (c *Cache) Seed(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value, fetchedAt: c.now()}
}

// Invalidate marks the entry addressed by prefix, plus every entry nested
// under it, for refetch and returns how many were affected. Matching stops
// at segment boundaries: "product:42" covers "product:42:reviews" but never
// "product:421".
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, e := range c.entries {
		if matchesKey(key, prefix) && !e.invalid {
			e.invalid = true
			n++
		}
	}
	if n > 0 {
		metrics.CacheInvalidationsTotal.Add(float64(n))
		c.log.Debug().Str("prefix", prefix).Int("entries", n).Msg("cache invalidated")
	}
	return n
}

// matchesKey reports whether key equals prefix or sits under it, segment-wise.
func matchesKey(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+":")
}

// GetTyped is the typed wrapper around Cache.Get used by the services.
func GetTyped[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %q holds %T", key, v)
	}
	return typed, nil
}
