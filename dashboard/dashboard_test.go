package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/pthm-cable/glucodash/config"
	"github.com/pthm-cable/glucodash/fetch"
	"github.com/pthm-cable/glucodash/game"
	"github.com/pthm-cable/glucodash/telemetry"
)

// silentSource never returns data; good enough for wiring tests.
type silentSource struct{}

func (silentSource) History(_ context.Context, ids []string, _ time.Duration, _ int) map[string]fetch.HistoryResult {
	out := make(map[string]fetch.HistoryResult, len(ids))
	for _, id := range ids {
		out[id] = fetch.HistoryResult{}
	}
	return out
}

func (silentSource) Current(_ context.Context, ids []string) map[string]fetch.CurrentResult {
	out := make(map[string]fetch.CurrentResult, len(ids))
	for _, id := range ids {
		out[id] = fetch.CurrentResult{Err: context.Canceled}
	}
	return out
}

func newTestDashboard(t *testing.T) *Dashboard {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	cfg.Prefs.Path = t.TempDir() + "/prefs.yaml"
	return New(cfg, silentSource{}, Options{Seed: 1})
}

func TestUpdateWithGlucoseAdvancesState(t *testing.T) {
	d := newTestDashboard(t)
	id := d.players[0].ID

	st := d.UpdateWithGlucose(id, 6.0)
	if st.BuildProgress != 1 {
		t.Errorf("buildProgress = %v, want 1", st.BuildProgress)
	}
	if got := d.State(id); got != st {
		t.Errorf("stored state %+v differs from returned %+v", got, st)
	}
}

func TestUpdateWithGlucoseUnknownPlayerIsNoOp(t *testing.T) {
	d := newTestDashboard(t)
	st := d.UpdateWithGlucose("nobody", 6.0)
	if st != (game.PlayerState{}) {
		t.Errorf("unknown player returned non-zero state: %+v", st)
	}
}

func TestAddDataPointFlowsIntoBuffers(t *testing.T) {
	d := newTestDashboard(t)
	id := d.players[0].ID

	d.AddDataPoint(0, map[string]float64{id: 5.5})
	if d.buffers.Len() != 1 {
		t.Fatalf("buffer len = %d, want 1", d.buffers.Len())
	}
	if got := d.buffers.Row(id)[0]; got.Missing || got.Value != 5.5 {
		t.Errorf("buffered point = %+v, want 5.5", got)
	}
}

func TestAddDataPointRejectsImplausibleAsMissing(t *testing.T) {
	d := newTestDashboard(t)
	id := d.players[0].ID

	d.AddDataPoint(0, map[string]float64{id: 0.0})
	if got := d.buffers.Row(id)[0]; !got.Missing {
		t.Errorf("zero value must become an explicit missing point, got %+v", got)
	}
}

func TestStopMakesNextFrameNoOp(t *testing.T) {
	d := newTestDashboard(t)
	d.stopped = false

	d.Update()
	before := d.Tick()

	d.Stop()
	d.Update()
	if d.Tick() != before {
		t.Error("frame advanced after Stop")
	}
}

func TestResetReinitializesStates(t *testing.T) {
	d := newTestDashboard(t)
	id := d.players[0].ID
	d.UpdateWithGlucose(id, 12.0)

	d.Reset()

	st := d.State(id)
	if st.Health != 100 || st.Level != 1 || st.BuildProgress != 0 || st.AttackIntensity != 0 {
		t.Errorf("state after reset = %+v, want defaults", st)
	}
}

func TestDestroyIsSafeMidSession(t *testing.T) {
	d := newTestDashboard(t)
	d.Start()
	d.UpdateWithGlucose(d.players[0].ID, 6.0)

	d.Destroy()

	if d.buffers.Len() != 0 {
		t.Errorf("buffers not released on destroy, len = %d", d.buffers.Len())
	}
	d.Update() // must be a no-op, not a panic
}

func TestSessionRecordsTicks(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Prefs.Path = t.TempDir() + "/prefs.yaml"
	session := telemetry.NewSession()
	d := New(cfg, silentSource{}, Options{Seed: 1, Session: session})

	d.UpdateWithGlucose(d.players[0].ID, 6.0)
	d.UpdateWithGlucose(d.players[1].ID, 12.0)

	if session.Len() != 2 {
		t.Errorf("session records = %d, want 2", session.Len())
	}
}
