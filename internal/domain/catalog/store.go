package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/corey/roost/internal/ports"
)

// Store is the in-memory set of configured apps. Reads are concurrent;
// Load and Reload replace the whole set atomically.
type Store struct {
	src  ports.AppSource
	mu   sync.RWMutex
	apps []ports.App
}

// NewStore creates an empty store backed by src. Call Load before use.
func NewStore(src ports.AppSource) *Store {
	return &Store{src: src}
}

// Load reads all apps from the source. On error the previous set is kept.
func (s *Store) Load() error {
	apps, err := s.src.Load()
	if err != nil {
		return fmt.Errorf("load apps: %w", err)
	}
	sorted := make([]ports.App, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	s.mu.Lock()
	s.apps = sorted
	s.mu.Unlock()
	return nil
}

// Reload re-reads the source and returns the new app count.
func (s *Store) Reload() (int, error) {
	if err := s.Load(); err != nil {
		return s.Len(), err
	}
	return s.Len(), nil
}

// All returns a snapshot of every app, sorted by name.
func (s *Store) All() []ports.App {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.App, len(s.apps))
	copy(out, s.apps)
	return out
}

// Get finds an app by exact name or alias.
func (s *Store) Get(name string) (ports.App, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, app := range s.apps {
		if app.Name == name {
			return app, true
		}
	}
	for _, app := range s.apps {
		for _, alias := range app.Aliases {
			if alias == name {
				return app, true
			}
		}
	}
	return ports.App{}, false
}

// Len returns the number of loaded apps.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.apps)
}
