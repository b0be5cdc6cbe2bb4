package game

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestTierFor(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Tier
	}{
		{"deep low", 2.0, TierScarcity},
		{"just under low boundary", 3.8999, TierScarcity},
		{"low boundary is growth", 3.9, TierGrowth},
		{"mid growth", 6.0, TierGrowth},
		{"growth upper boundary", 7.8, TierGrowth},
		{"just above growth", 7.81, TierMild},
		{"mild upper boundary", 10.0, TierMild},
		{"moderate", 10.5, TierModerate},
		{"moderate upper boundary", 11.1, TierModerate},
		{"severe", 11.2, TierSevere},
		{"very high", 20.0, TierSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.value); got != tt.want {
				t.Errorf("TierFor(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestTickScarcityScenario(t *testing.T) {
	// 3.5 mmol/L on a fresh state.
	tr := Tick(NewPlayerState(), 3.5)

	if tr.Tier != TierScarcity {
		t.Errorf("tier = %v, want scarcity", tr.Tier)
	}
	if math.Abs(tr.State.Health-99.9) > eps {
		t.Errorf("health = %v, want 99.9", tr.State.Health)
	}
	if math.Abs(tr.State.BuildProgress-0.2) > eps {
		t.Errorf("buildProgress = %v, want 0.2", tr.State.BuildProgress)
	}
	if tr.State.Level != 1 {
		t.Errorf("level = %d, want 1", tr.State.Level)
	}
	if tr.State.AttackIntensity != 0 {
		t.Errorf("attackIntensity = %v, want 0", tr.State.AttackIntensity)
	}
}

func TestTickSevereScenario(t *testing.T) {
	prev := PlayerState{Health: 50, Level: 2, BuildProgress: 40}
	tr := Tick(prev, 12.0)

	if tr.Tier != TierSevere {
		t.Errorf("tier = %v, want severe", tr.Tier)
	}
	if math.Abs(tr.State.Health-49) > eps {
		t.Errorf("health = %v, want 49", tr.State.Health)
	}
	if tr.State.AttackIntensity != 1.0 {
		t.Errorf("attackIntensity = %v, want 1.0", tr.State.AttackIntensity)
	}
	if math.Abs(tr.State.BuildProgress-40) > eps {
		t.Errorf("buildProgress changed during attack: %v", tr.State.BuildProgress)
	}
}

func TestTickGrowthLevelUpAtHundredth(t *testing.T) {
	// 6.0 repeated from buildProgress 0: progress climbs by 1 per tick and
	// the single level-up lands exactly on tick 100.
	st := NewPlayerState()
	levelUps := 0
	for i := 1; i <= 100; i++ {
		tr := Tick(st, 6.0)
		st = tr.State
		if tr.LeveledUp {
			levelUps++
			if i != 100 {
				t.Errorf("level-up fired on tick %d, want 100", i)
			}
		} else if math.Abs(st.BuildProgress-float64(i)) > eps {
			t.Errorf("tick %d: buildProgress = %v, want %d", i, st.BuildProgress, i)
		}
	}

	if levelUps != 1 {
		t.Errorf("level-ups = %d, want exactly 1", levelUps)
	}
	if st.Level != 2 {
		t.Errorf("level = %d, want 2", st.Level)
	}
	if st.BuildProgress != 0 {
		t.Errorf("buildProgress = %v, want reset to 0", st.BuildProgress)
	}
}

func TestTickNoLevelOverflowAtFive(t *testing.T) {
	st := PlayerState{Health: 100, Level: 5, BuildProgress: 99.5}
	tr := Tick(st, 6.0)

	if !tr.LeveledUp {
		t.Error("threshold crossing should still report a level-up")
	}
	if tr.State.Level != 5 {
		t.Errorf("level = %d, want capped at 5", tr.State.Level)
	}
	if tr.State.BuildProgress != 0 {
		t.Errorf("buildProgress = %v, want reset to 0", tr.State.BuildProgress)
	}
}

func TestTickInvariantsHoldAtBoundaries(t *testing.T) {
	values := []float64{2.0, 3.5, 6.0, 9.0, 10.5, 15.0}
	starts := []PlayerState{
		{Health: 0, Level: 1, BuildProgress: 0},
		{Health: 0.05, Level: 1, BuildProgress: 99.9},
		{Health: 100, Level: 5, BuildProgress: 99.9},
		{Health: 99.95, Level: 3, BuildProgress: 50},
	}

	for _, v := range values {
		for _, st := range starts {
			tr := Tick(st, v)
			next := tr.State
			if next.Health < 0 || next.Health > MaxHealth {
				t.Errorf("Tick(%+v, %v): health %v out of [0,100]", st, v, next.Health)
			}
			if next.BuildProgress < 0 || next.BuildProgress >= LevelUpThreshold {
				t.Errorf("Tick(%+v, %v): buildProgress %v out of [0,100)", st, v, next.BuildProgress)
			}
			if next.Level < MinLevel || next.Level > MaxLevel {
				t.Errorf("Tick(%+v, %v): level %d out of [1,5]", st, v, next.Level)
			}
			if next.AttackIntensity < 0 || next.AttackIntensity > 1 {
				t.Errorf("Tick(%+v, %v): attackIntensity %v out of [0,1]", st, v, next.AttackIntensity)
			}
		}
	}
}

func TestTickHealthFloorsAtZero(t *testing.T) {
	st := PlayerState{Health: 0.2, Level: 1}
	tr := Tick(st, 15.0)
	if tr.State.Health != 0 {
		t.Errorf("health = %v, want floored at 0", tr.State.Health)
	}
}

func TestTickHealthCapsAtHundred(t *testing.T) {
	st := PlayerState{Health: 99.9, Level: 1}
	tr := Tick(st, 6.0)
	if tr.State.Health != 100 {
		t.Errorf("health = %v, want capped at 100", tr.State.Health)
	}
}

func TestTickRecordsLastValue(t *testing.T) {
	tr := Tick(NewPlayerState(), 8.4)
	if tr.State.LastValue != 8.4 {
		t.Errorf("lastValue = %v, want 8.4", tr.State.LastValue)
	}
}
