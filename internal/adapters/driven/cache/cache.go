// Package cache provides an in-memory TTL cache for segmentation results.
package cache

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rsvp-cli/internal/metrics"
)

// Ensure SegmentCache implements the interface.
var _ driven.SegmentCache = (*SegmentCache)(nil)

// entry is a cached segmentation result.
type entry struct {
	segments []domain.Segment
	cachedAt time.Time
}

// SegmentCache caches segment lists keyed by the xxhash of the request key.
// Concurrent misses for the same key are collapsed with singleflight.
type SegmentCache struct {
	mem    *ttlcache.Cache[uint64, entry]
	group  singleflight.Group
	shared atomic.Uint64
	logger *zap.Logger
}

// Option configures a SegmentCache.
type Option func(*SegmentCache)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *SegmentCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a cache whose entries expire after ttl and starts its
// expiration loop. Call Close to stop it.
func New(ttl time.Duration, opts ...Option) *SegmentCache {
	c := &SegmentCache{
		mem: ttlcache.New(
			ttlcache.WithTTL[uint64, entry](ttl),
			ttlcache.WithDisableTouchOnHit[uint64, entry](),
		),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.mem.Start()
	return c
}

// GetOrCompute returns the cached segments for key or computes and stores them.
func (c *SegmentCache) GetOrCompute(
	ctx context.Context,
	key string,
	compute func(context.Context) ([]domain.Segment, error),
) ([]domain.Segment, bool, error) {
	hashed := xxhash.Sum64String(key)

	if item := c.mem.Get(hashed); item != nil {
		c.logger.Debug("segment cache hit",
			zap.Uint64("cache_key", hashed),
			zap.Int("segments", len(item.Value().segments)))
		return cloneSegments(item.Value().segments), true, nil
	}

	v, err, shared := c.group.Do(strconv.FormatUint(hashed, 16), func() (any, error) {
		if item := c.mem.Get(hashed); item != nil {
			return item.Value(), nil
		}

		segments, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		e := entry{segments: cloneSegments(segments), cachedAt: time.Now()}
		c.mem.Set(hashed, e, ttlcache.DefaultTTL)
		c.logger.Debug("segment cache stored",
			zap.Uint64("cache_key", hashed),
			zap.Int("segments", len(segments)))
		return e, nil
	})

	if shared {
		c.shared.Add(1)
		metrics.RecordCacheShared()
	}
	if err != nil {
		return nil, false, err
	}
	return cloneSegments(v.(entry).segments), false, nil
}

// Len returns the number of cached entries.
func (c *SegmentCache) Len() int {
	return c.mem.Len()
}

// Clear removes every entry.
func (c *SegmentCache) Clear() {
	c.mem.DeleteAll()
}

// Stats reports cache hits, misses and singleflight-shared requests.
func (c *SegmentCache) Stats() (hits, misses, shared uint64) {
	m := c.mem.Metrics()
	return m.Hits, m.Misses, c.shared.Load()
}

// Close stops the expiration loop.
func (c *SegmentCache) Close() {
	c.mem.Stop()
}

// cloneSegments copies the slice so callers cannot mutate cached entries.
func cloneSegments(segments []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, len(segments))
	copy(out, segments)
	return out
}
