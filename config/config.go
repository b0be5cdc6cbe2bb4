// Package config provides configuration loading and access for the dashboard.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all dashboard configuration parameters. A loaded Config is
// injected into constructors; there is no process-global instance.
type Config struct {
	Screen  ScreenConfig   `yaml:"screen"`
	Chart   ChartConfig    `yaml:"chart"`
	Fetch   FetchConfig    `yaml:"fetch"`
	Garden  GardenConfig   `yaml:"garden"`
	Players []PlayerConfig `yaml:"players"`
	Prefs   PrefsConfig    `yaml:"prefs"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ChartConfig holds the alignment grid and time-range preset table.
type ChartConfig struct {
	BucketMs     int64          `yaml:"bucket_ms"`     // alignment grid step
	DefaultRange string         `yaml:"default_range"` // preset key used at startup
	Presets      []PresetConfig `yaml:"presets"`
}

// PresetConfig is one selectable time-range preset. PointBudget should be
// consistent with LookbackMinutes / bucket interval.
type PresetConfig struct {
	Key             string `yaml:"key"`
	Label           string `yaml:"label"`
	LookbackMinutes int    `yaml:"lookback_minutes"`
	PointBudget     int    `yaml:"point_budget"`
}

// FetchConfig holds ingestion settings.
type FetchConfig struct {
	DataDir          string `yaml:"data_dir"`          // local reading cache directory
	IntervalSeconds  int    `yaml:"interval_seconds"`  // ingestion cadence (0 = one bucket interval)
	FreshnessMinutes int    `yaml:"freshness_minutes"` // max age before a cached current value is stale
	MaxCount         int    `yaml:"max_count"`         // per-player cap on bulk history readings
}

// GardenConfig holds the per-player garden scene limits.
type GardenConfig struct {
	MaxPlants int `yaml:"max_plants"` // cap per player
}

// PlayerConfig is one tracked player. IDs are externally assigned; the
// engines never generate them.
type PlayerConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
	Color  string `yaml:"color"` // hex, e.g. "#0077BB"
}

// PrefsConfig holds the client preference store location.
type PrefsConfig struct {
	Path string `yaml:"path"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bucket        time.Duration  // Chart.BucketMs as a duration
	FetchInterval time.Duration  // effective ingestion cadence
	PresetIndex   map[string]int // key -> index into Chart.Presets
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config and validates
// the preset table.
func (c *Config) computeDerived() error {
	if c.Chart.BucketMs <= 0 {
		return fmt.Errorf("config: chart.bucket_ms must be positive, got %d", c.Chart.BucketMs)
	}
	c.Derived.Bucket = time.Duration(c.Chart.BucketMs) * time.Millisecond

	if c.Fetch.IntervalSeconds > 0 {
		c.Derived.FetchInterval = time.Duration(c.Fetch.IntervalSeconds) * time.Second
	} else {
		// Sampling cadence defaults to one bucket interval
		c.Derived.FetchInterval = c.Derived.Bucket
	}

	if len(c.Chart.Presets) == 0 {
		return fmt.Errorf("config: chart.presets must not be empty")
	}
	c.Derived.PresetIndex = make(map[string]int, len(c.Chart.Presets))
	for i, p := range c.Chart.Presets {
		if p.Key == "" {
			return fmt.Errorf("config: chart.presets[%d] has no key", i)
		}
		if _, dup := c.Derived.PresetIndex[p.Key]; dup {
			return fmt.Errorf("config: duplicate preset key %q", p.Key)
		}
		if p.PointBudget <= 0 {
			return fmt.Errorf("config: preset %q point_budget must be positive", p.Key)
		}
		c.Derived.PresetIndex[p.Key] = i
	}
	if _, ok := c.Derived.PresetIndex[c.Chart.DefaultRange]; !ok {
		return fmt.Errorf("config: default_range %q not in preset table", c.Chart.DefaultRange)
	}

	// Synthesize a minimal default roster if none specified
	if len(c.Players) == 0 {
		c.Players = []PlayerConfig{
			{ID: "player1", Name: "Player 1", Avatar: "avatar1", Color: "#0077BB"},
			{ID: "player2", Name: "Player 2", Avatar: "avatar2", Color: "#EE7733"},
		}
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
