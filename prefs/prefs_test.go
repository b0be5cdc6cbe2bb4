package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	s := NewStore(path)

	s.Save(Prefs{LastRangeKey: "6h", LastValue: 5.8})
	got := s.Load()

	if got.LastRangeKey != "6h" {
		t.Errorf("lastRangeKey = %q, want 6h", got.LastRangeKey)
	}
	if got.LastValue != 5.8 {
		t.Errorf("lastValue = %v, want 5.8", got.LastValue)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.yaml"))
	got := s.Load()
	if got.LastRangeKey != "" || got.LastValue != 0 {
		t.Errorf("missing file should yield zero prefs, got %+v", got)
	}
}

func TestLoadCorruptFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("{{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	got := NewStore(path).Load()
	if got.LastRangeKey != "" || got.LastValue != 0 {
		t.Errorf("corrupt file should yield zero prefs, got %+v", got)
	}
}
