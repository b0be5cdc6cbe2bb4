// Package chart owns the bounded rolling series buffers behind the trend
// chart: ingestion, time-range presets, stale-fetch suppression, visual
// encoding, and the raylib rendering of the whole thing.
package chart

import (
	"time"

	"github.com/pthm-cable/glucodash/config"
)

// RangePreset is one selectable lookback window. PointBudget caps every
// player's buffer while the preset is active.
type RangePreset struct {
	Key         string
	Label       string
	Lookback    time.Duration
	PointBudget int
}

// presetsFromConfig builds the preset table from the validated config.
func presetsFromConfig(cfg *config.Config) []RangePreset {
	out := make([]RangePreset, len(cfg.Chart.Presets))
	for i, p := range cfg.Chart.Presets {
		out[i] = RangePreset{
			Key:         p.Key,
			Label:       p.Label,
			Lookback:    time.Duration(p.LookbackMinutes) * time.Minute,
			PointBudget: p.PointBudget,
		}
	}
	return out
}
