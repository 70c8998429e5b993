package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/config/values"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds settings in a flat map keyed by the dotted names.
// Nothing is persisted; it backs tests.
type ConfigStore struct {
	mu       sync.RWMutex
	settings map[string]any
}

// NewConfigStore returns a store seeded with the given settings maps,
// later maps overriding earlier ones.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{settings: make(map[string]any)}
	for _, m := range seed {
		maps.Copy(s.settings, m)
	}
	return s
}

// Get returns the value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.settings[key]
	return val, ok
}

// GetString returns a string setting, or "".
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := values.String(val)
	return str
}

// GetInt returns an integer setting, or 0.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	n, _ := values.Int(val)
	return n
}

// GetBool returns a boolean setting, or false.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := values.Bool(val)
	return b
}

// GetStringSlice returns a list setting, or nil.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	list, _ := values.StringSlice(val)
	return list
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// Delete removes key.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, key)
	return nil
}

// Save does nothing.
func (s *ConfigStore) Save() error { return nil }

// Load does nothing.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
