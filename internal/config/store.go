package config

import (
	"fmt"
	"sync"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"lumen/internal/fileutil"
)

// Store owns the runtime copy of the configuration. The daemon event loop
// writes through SetTheme; watchers and read-only IPC handlers read through
// Snapshot. Persistence is skipped when no config file exists so lumen
// never creates one behind the user's back.
type Store struct {
	mu     sync.RWMutex
	cfg    Config
	path   string
	exists bool
}

// NewStore wraps a loaded configuration for shared access.
func NewStore(cfg *Config, path string, exists bool) *Store {
	return &Store{cfg: *cfg, path: path, exists: exists}
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Theme
}

// FileExists reports whether a config file backed this store at load time.
func (s *Store) FileExists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists
}

// SetTheme updates the active theme and persists the change if a config
// file exists. The caller is responsible for validating the theme name
// first; SetTheme does not check the catalogue.
func (s *Store) SetTheme(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Theme = name
	if !s.exists {
		return nil
	}
	return s.saveLocked()
}

// saveLocked writes the configuration back to its file under a flock so a
// concurrently running `lumen theme set` cannot interleave writes.
func (s *Store) saveLocked() error {
	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config file: %w", err)
	}
	defer lock.Unlock()

	data, err := toml.Marshal(&s.cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
