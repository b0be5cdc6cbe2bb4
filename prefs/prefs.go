// Package prefs persists the small, non-authoritative client preferences:
// the last-selected time range and the last value seen. Read at init,
// written on change; failures are warnings, never fatal.
package prefs

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Prefs is the stored preference set.
type Prefs struct {
	LastRangeKey string  `yaml:"last_range_key"`
	LastValue    float64 `yaml:"last_value"`
}

// Store reads and writes one preference file.
type Store struct {
	path string
}

// NewStore creates a store over the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads preferences. A missing file is normal (first run) and yields
// zero-value prefs; a corrupt file is logged and likewise ignored.
func (s *Store) Load() Prefs {
	var p Prefs

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("reading preferences failed", "path", s.path, "error", err)
		}
		return p
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		slog.Warn("preferences file corrupt, using defaults", "path", s.path, "error", err)
		return Prefs{}
	}
	return p
}

// Save writes preferences. Write failures are logged, not returned: the
// store is non-authoritative by design.
func (s *Store) Save(p Prefs) {
	data, err := yaml.Marshal(p)
	if err != nil {
		slog.Warn("marshaling preferences failed", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		slog.Warn("writing preferences failed", "path", s.path, "error", err)
	}
}
