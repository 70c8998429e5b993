package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

// mockSegmenter splits text on "。" and records how it was called.
type mockSegmenter struct {
	mu        sync.Mutex
	calls     int
	overrides []domain.SettingsOverride
	err       error
}

func (m *mockSegmenter) Segment(_ context.Context, rawText string, override *domain.SettingsOverride) ([]domain.Segment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if override != nil {
		m.overrides = append(m.overrides, *override)
	}
	if m.err != nil {
		return nil, m.err
	}

	var texts []string
	for _, part := range strings.SplitAfter(rawText, "。") {
		if part = strings.TrimSpace(part); part != "" {
			texts = append(texts, part)
		}
	}
	return domain.NewSegments(texts), nil
}

func (m *mockSegmenter) TokenizerName() string { return "mock" }

func (m *mockSegmenter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mapCache is a minimal driven.SegmentCache.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]domain.Segment
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]domain.Segment)}
}

func (c *mapCache) GetOrCompute(
	ctx context.Context,
	key string,
	compute func(context.Context) ([]domain.Segment, error),
) ([]domain.Segment, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if segs, ok := c.entries[key]; ok {
		return segs, true, nil
	}
	segs, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	c.entries[key] = segs
	return segs, false, nil
}

func (c *mapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *mapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]domain.Segment)
}
