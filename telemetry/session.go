// Package telemetry records what happened during a dashboard session and
// exports it for offline analysis.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// TickRecord is one player's outcome for one ingestion tick.
type TickRecord struct {
	Tick          int     `csv:"tick"`
	PlayerID      string  `csv:"player"`
	Value         float64 `csv:"value"`
	Tier          string  `csv:"tier"`
	Health        float64 `csv:"health"`
	Level         int     `csv:"level"`
	BuildProgress float64 `csv:"build_progress"`
	Spawned       int     `csv:"particles_spawned"`
}

// Summary aggregates one player's values over the session.
type Summary struct {
	PlayerID string  `csv:"player"`
	Ticks    int     `csv:"ticks"`
	Mean     float64 `csv:"mean"`
	Min      float64 `csv:"min"`
	Max      float64 `csv:"max"`
	P10      float64 `csv:"p10"`
	P50      float64 `csv:"p50"`
	P90      float64 `csv:"p90"`
}

// Session accumulates tick records in memory and writes them out on request.
// A nil *Session is a disabled session; all methods are no-ops on it.
type Session struct {
	records []TickRecord
}

// NewSession creates an empty session log.
func NewSession() *Session {
	return &Session{}
}

// Record appends one tick record.
func (s *Session) Record(r TickRecord) {
	if s == nil {
		return
	}
	s.records = append(s.records, r)
}

// Len returns the number of recorded ticks.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Summarize computes per-player value statistics, one entry per player in
// first-seen order.
func (s *Session) Summarize() []Summary {
	if s == nil {
		return nil
	}

	var order []string
	values := make(map[string][]float64)
	for _, r := range s.records {
		if _, seen := values[r.PlayerID]; !seen {
			order = append(order, r.PlayerID)
		}
		values[r.PlayerID] = append(values[r.PlayerID], r.Value)
	}

	out := make([]Summary, 0, len(order))
	for _, id := range order {
		vs := values[id]
		sorted := make([]float64, len(vs))
		copy(sorted, vs)
		sort.Float64s(sorted)

		out = append(out, Summary{
			PlayerID: id,
			Ticks:    len(vs),
			Mean:     stat.Mean(vs, nil),
			Min:      sorted[0],
			Max:      sorted[len(sorted)-1],
			P10:      stat.Quantile(0.10, stat.Empirical, sorted, nil),
			P50:      stat.Quantile(0.50, stat.Empirical, sorted, nil),
			P90:      stat.Quantile(0.90, stat.Empirical, sorted, nil),
		})
	}
	return out
}

// WriteCSV writes session.csv and summary.csv into dir.
func (s *Session) WriteCSV(dir string) error {
	if s == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeCSVFile(filepath.Join(dir, "session.csv"), s.records); err != nil {
		return err
	}
	return writeCSVFile(filepath.Join(dir, "summary.csv"), s.Summarize())
}

func writeCSVFile[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
