package game

import "math/rand"

// EventKind identifies a visual spawn event produced alongside a transition.
type EventKind uint8

const (
	EventBuild EventKind = iota
	EventAttack
	EventFire
	EventLevelUp
	EventTired
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventBuild:
		return "build"
	case EventAttack:
		return "attack"
	case EventFire:
		return "fire"
	case EventLevelUp:
		return "levelup"
	case EventTired:
		return "tired"
	}
	return "unknown"
}

// Event asks the particle layer to spawn Count particles of one kind.
// Intensity carries the attack strength for attack events.
type Event struct {
	Kind      EventKind
	Count     int
	Intensity float64
}

// Spawn probabilities per ingestion tick.
const (
	buildSpawnChance = 0.35 // growth tier
	fireSpawnChance  = 0.25 // scarcity tier
	tiredSpawnChance = 0.20 // scarcity tier
)

// Attack burst sizes per tier.
const (
	mildAttackBurst     = 2
	moderateAttackBurst = 4
	severeAttackBurst   = 8
)

// Spawner turns transitions into stochastic spawn events. It owns the only
// random source in the state machine path; the source is injected so spawn
// behavior is reproducible under a fixed seed.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner backed by the given seeded source.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Events produces the spawn list for one transition. Level-ups always emit;
// the rest roll against their per-tier probability.
func (s *Spawner) Events(t Transition) []Event {
	var events []Event

	switch t.Tier {
	case TierScarcity:
		if s.rng.Float64() < fireSpawnChance {
			events = append(events, Event{Kind: EventFire, Count: 1})
		}
		if s.rng.Float64() < tiredSpawnChance {
			events = append(events, Event{Kind: EventTired, Count: 1})
		}
	case TierGrowth:
		if s.rng.Float64() < buildSpawnChance {
			events = append(events, Event{Kind: EventBuild, Count: 1 + s.rng.Intn(3)})
		}
	case TierMild:
		events = append(events, Event{Kind: EventAttack, Count: mildAttackBurst, Intensity: t.State.AttackIntensity})
	case TierModerate:
		events = append(events, Event{Kind: EventAttack, Count: moderateAttackBurst, Intensity: t.State.AttackIntensity})
	case TierSevere:
		events = append(events, Event{Kind: EventAttack, Count: severeAttackBurst, Intensity: t.State.AttackIntensity})
	}

	if t.LeveledUp {
		events = append(events, Event{Kind: EventLevelUp, Count: 1})
	}

	return events
}
