package chart

import (
	"log/slog"
	"sync/atomic"

	"github.com/pthm-cable/glucodash/config"
	"github.com/pthm-cable/glucodash/series"
)

// Buffers is the series buffer manager: one bounded FIFO value buffer per
// player plus the shared time-axis label sequence, sized to the active
// preset's point budget.
//
// All mutating methods are called from the frame loop; asynchronous bulk
// fetches hand their results back through ApplyHistory together with the
// request token they were issued, and only the latest token is accepted.
type Buffers struct {
	presets []RangePreset
	byKey   map[string]int
	active  int

	bucketMs int64
	axis     []int64
	order    []string
	rows     map[string][]series.Point
	styles   map[string]Style

	token atomic.Uint64
}

// New creates a buffer manager from the validated config, with the default
// preset active and the configured roster registered.
func New(cfg *config.Config) *Buffers {
	b := &Buffers{
		presets:  presetsFromConfig(cfg),
		byKey:    make(map[string]int),
		bucketMs: cfg.Chart.BucketMs,
	}
	for i, p := range b.presets {
		b.byKey[p.Key] = i
	}
	b.active = b.byKey[cfg.Chart.DefaultRange]

	ids := make([]string, len(cfg.Players))
	for i, p := range cfg.Players {
		ids[i] = p.ID
	}
	b.UpdatePlayers(ids)

	return b
}

// ActivePreset returns the currently selected time-range preset.
func (b *Buffers) ActivePreset() RangePreset {
	return b.presets[b.active]
}

// Presets returns the full preset table in order.
func (b *Buffers) Presets() []RangePreset {
	return b.presets
}

// SetTimeRange switches the active preset and issues a fresh request token
// for the reload the caller must now run. An unknown key is rejected with a
// warning and ok=false, never a crash. A repeated key still reissues a
// token so the data gets refreshed.
func (b *Buffers) SetTimeRange(key string) (token uint64, preset RangePreset, ok bool) {
	idx, known := b.byKey[key]
	if !known {
		slog.Warn("unknown time range preset, keeping current", "key", key)
		return 0, RangePreset{}, false
	}
	b.active = idx
	return b.NextToken(), b.presets[idx], true
}

// NextToken issues a monotonically increasing bulk-fetch token. Issuing a
// new token supersedes every earlier in-flight fetch.
func (b *Buffers) NextToken() uint64 {
	return b.token.Add(1)
}

// ApplyHistory replaces the buffers wholesale with an alignment result.
// A stale response (token no longer the latest) is discarded without
// touching current state; the return value reports whether it was applied.
func (b *Buffers) ApplyHistory(token uint64, al series.Aligned) bool {
	if token != b.token.Load() {
		slog.Debug("discarding stale history response", "token", token, "latest", b.token.Load())
		return false
	}

	b.axis = append(b.axis[:0], al.Axis...)
	for _, id := range b.order {
		row := al.Matrix[id]
		if row == nil {
			row = allMissing(len(al.Axis))
		}
		b.rows[id] = append(b.rows[id][:0], row...)
	}
	b.trim()
	return true
}

// AddPoint appends one bucket's worth of live data across all players.
// Players absent from values get an explicit missing point so rows stay in
// step with the axis. Eviction past the point budget behaves identically to
// bulk-loaded data.
func (b *Buffers) AddPoint(timestampMs int64, values map[string]series.Point) {
	b.axis = append(b.axis, series.BucketFloor(timestampMs, b.bucketMs))
	for _, id := range b.order {
		p, ok := values[id]
		if !ok {
			p = series.MissingPoint
		}
		b.rows[id] = append(b.rows[id], p)
	}
	b.trim()
}

// Clear empties all buffers and the axis. Safe to call mid-fetch: any
// in-flight response keeps its token and will still be checked on arrival.
func (b *Buffers) Clear() {
	b.axis = b.axis[:0]
	for id := range b.rows {
		b.rows[id] = b.rows[id][:0]
	}
}

// UpdatePlayers resets all buffers for a new roster and re-derives each
// player's visual encoding from its ordinal position.
func (b *Buffers) UpdatePlayers(ids []string) {
	b.order = append([]string(nil), ids...)
	b.axis = nil
	b.rows = make(map[string][]series.Point, len(ids))
	b.styles = make(map[string]Style, len(ids))
	for i, id := range ids {
		b.rows[id] = nil
		b.styles[id] = StyleFor(i)
	}
}

// Players returns the registered player ids in stable order.
func (b *Buffers) Players() []string {
	return b.order
}

// Axis returns the shared label timestamps, oldest first.
func (b *Buffers) Axis() []int64 {
	return b.axis
}

// Row returns one player's buffered points, in step with Axis.
func (b *Buffers) Row(id string) []series.Point {
	return b.rows[id]
}

// StyleOf returns a player's visual encoding.
func (b *Buffers) StyleOf(id string) Style {
	return b.styles[id]
}

// Len returns the current buffer length (shared across players).
func (b *Buffers) Len() int {
	return len(b.axis)
}

// trim evicts oldest entries until the buffers fit the active budget.
func (b *Buffers) trim() {
	budget := b.presets[b.active].PointBudget
	excess := len(b.axis) - budget
	if excess <= 0 {
		return
	}
	b.axis = append(b.axis[:0], b.axis[excess:]...)
	for id, row := range b.rows {
		if len(row) > budget {
			b.rows[id] = append(row[:0], row[len(row)-budget:]...)
		}
	}
}

func allMissing(n int) []series.Point {
	row := make([]series.Point, n)
	for i := range row {
		row[i] = series.MissingPoint
	}
	return row
}
