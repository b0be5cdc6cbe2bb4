// Package game implements the value-driven state machine that turns a single
// glucose measurement into bounded game attributes. The transition is a pure
// function; stochastic particle-spawn decisions live in Spawner so the
// deterministic fields never touch a random source.
package game

// Attribute bounds.
const (
	MaxHealth        = 100.0
	MaxLevel         = 5
	MinLevel         = 1
	LevelUpThreshold = 100.0
)

// Tier thresholds in mmol/L.
const (
	TierLowMax      = 3.9  // below: scarcity
	TierGrowthMax   = 7.8  // [3.9, 7.8]: growth
	TierMildMax     = 10.0 // (7.8, 10.0]: mild attack
	TierModerateMax = 11.1 // (10.0, 11.1]: moderate attack; above: severe
)

// Per-tier deltas applied on each ingestion tick.
const (
	scarcityBuildDelta  = 0.2
	scarcityHealthDelta = -0.1
	growthBuildDelta    = 1.0
	growthHealthDelta   = 0.3
	mildHealthDelta     = -0.3
	moderateHealthDelta = -0.6
	severeHealthDelta   = -1.0

	mildIntensity     = 0.3
	moderateIntensity = 0.6
	severeIntensity   = 1.0
)

// Tier is one of the five closed threshold ranges a value falls into.
type Tier uint8

const (
	TierScarcity Tier = iota
	TierGrowth
	TierMild
	TierModerate
	TierSevere
)

// String returns the tier name used in logs and session records.
func (t Tier) String() string {
	switch t {
	case TierScarcity:
		return "scarcity"
	case TierGrowth:
		return "growth"
	case TierMild:
		return "mild"
	case TierModerate:
		return "moderate"
	case TierSevere:
		return "severe"
	}
	return "unknown"
}

// TierFor classifies a value in mmol/L.
func TierFor(value float64) Tier {
	switch {
	case value < TierLowMax:
		return TierScarcity
	case value <= TierGrowthMax:
		return TierGrowth
	case value <= TierMildMax:
		return TierMild
	case value <= TierModerateMax:
		return TierModerate
	default:
		return TierSevere
	}
}

// PlayerState holds one player's game attributes. It is created at player
// registration, mutated only through Tick, and reset rather than destroyed.
type PlayerState struct {
	Health          float64 // [0, 100]
	Level           int     // [1, 5]
	BuildProgress   float64 // [0, 100)
	AttackIntensity float64 // [0, 1]
	LastValue       float64 // mmol/L
}

// NewPlayerState returns the registration defaults.
func NewPlayerState() PlayerState {
	return PlayerState{Health: MaxHealth, Level: MinLevel}
}

// Transition is the outcome of one tick: the next state plus the
// deterministic facts the spawner needs to decide on visual events.
type Transition struct {
	State     PlayerState
	Tier      Tier
	LeveledUp bool
}

// Tick applies one measurement to prev and returns the next state. It is a
// pure function of its arguments: no random source, no shared state.
func Tick(prev PlayerState, value float64) Transition {
	next := prev
	tier := TierFor(value)

	switch tier {
	case TierScarcity:
		next.BuildProgress += scarcityBuildDelta
		next.Health += scarcityHealthDelta
		next.AttackIntensity = 0
	case TierGrowth:
		next.BuildProgress += growthBuildDelta
		next.Health += growthHealthDelta
		next.AttackIntensity = 0
	case TierMild:
		next.Health += mildHealthDelta
		next.AttackIntensity = mildIntensity
	case TierModerate:
		next.Health += moderateHealthDelta
		next.AttackIntensity = moderateIntensity
	case TierSevere:
		next.Health += severeHealthDelta
		next.AttackIntensity = severeIntensity
	}

	next.Health = clamp(next.Health, 0, MaxHealth)

	leveledUp := false
	if next.BuildProgress >= LevelUpThreshold {
		next.BuildProgress = 0
		if next.Level < MaxLevel {
			next.Level++
		}
		leveledUp = true
	}

	next.LastValue = value

	return Transition{State: next, Tier: tier, LeveledUp: leveledUp}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
