package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driven/config/values"
	"github.com/custodia-labs/rsvp-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// fileName is the name of the settings file inside the config directory.
const fileName = "config.toml"

// ConfigStore keeps settings in a TOML file. Dotted keys address nested
// tables, so "segmentation.max_segment_chars" is the max_segment_chars
// entry of the [segmentation] table.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree map[string]any
}

// NewConfigStore opens the settings file in configDir, which defaults to
// ~/.rsvp. A missing file is not an error.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		configDir = filepath.Join(home, ".rsvp")
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, fileName),
		tree: make(map[string]any),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value at a dotted key. Tables are not values.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.tree
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			return nil, false
		}
		node = child
	}

	val, ok := node[parts[len(parts)-1]]
	if _, isTable := val.(map[string]any); isTable {
		return nil, false
	}
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

// Set stores value at key, creating tables as needed, and writes the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.tree
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			if _, taken := node[part]; taken {
				return fmt.Errorf("set %s: %s is not a table", key, part)
			}
			child = make(map[string]any)
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value

	return s.write()
}

// Delete removes key and any tables it leaves empty, then writes the file.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !deletePath(s.tree, strings.Split(key, ".")) {
		return nil
	}
	return s.write()
}

// deletePath removes the value at parts and reports whether anything changed.
func deletePath(node map[string]any, parts []string) bool {
	if len(parts) == 1 {
		if _, ok := node[parts[0]]; !ok {
			return false
		}
		delete(node, parts[0])
		return true
	}

	child, ok := node[parts[0]].(map[string]any)
	if !ok || !deletePath(child, parts[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(node, parts[0])
	}
	return true
}

// Save writes the current settings to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write marshals the tree to the settings file. Callers hold the lock.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(s.tree)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load reads the settings file, replacing what is held in memory.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.tree = make(map[string]any)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	tree := make(map[string]any)
	if err := toml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.tree = tree
	return nil
}

// Path returns the settings file path.
func (s *ConfigStore) Path() string {
	return s.path
}
