package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := NewSession()
	for i, v := range []float64{4.0, 5.0, 6.0, 7.0, 8.0} {
		s.Record(TickRecord{Tick: i, PlayerID: "a", Value: v, Tier: "growth"})
	}
	s.Record(TickRecord{Tick: 0, PlayerID: "b", Value: 12.0, Tier: "severe"})

	sums := s.Summarize()
	if len(sums) != 2 {
		t.Fatalf("summaries = %d, want 2", len(sums))
	}
	if sums[0].PlayerID != "a" || sums[1].PlayerID != "b" {
		t.Errorf("summary order = %q, %q; want first-seen order a, b", sums[0].PlayerID, sums[1].PlayerID)
	}

	a := sums[0]
	if math.Abs(a.Mean-6.0) > 0.001 {
		t.Errorf("mean = %v, want 6.0", a.Mean)
	}
	if a.Min != 4.0 || a.Max != 8.0 {
		t.Errorf("min/max = %v/%v, want 4.0/8.0", a.Min, a.Max)
	}
	if a.P50 < 5.0 || a.P50 > 7.0 {
		t.Errorf("p50 = %v, want around 6.0", a.P50)
	}
	if a.Ticks != 5 {
		t.Errorf("ticks = %d, want 5", a.Ticks)
	}
}

func TestNilSessionIsDisabled(t *testing.T) {
	var s *Session
	s.Record(TickRecord{Value: 1})
	if s.Len() != 0 {
		t.Error("nil session recorded something")
	}
	if err := s.WriteCSV(t.TempDir()); err != nil {
		t.Errorf("nil session WriteCSV errored: %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	s := NewSession()
	s.Record(TickRecord{Tick: 1, PlayerID: "a", Value: 5.5, Tier: "growth", Health: 100, Level: 1})

	if err := s.WriteCSV(dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "session.csv"))
	if err != nil {
		t.Fatalf("session.csv missing: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "player") || !strings.Contains(text, "growth") {
		t.Errorf("session.csv content unexpected:\n%s", text)
	}

	if _, err := os.Stat(filepath.Join(dir, "summary.csv")); err != nil {
		t.Errorf("summary.csv missing: %v", err)
	}
}
