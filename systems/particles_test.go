package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/glucodash/game"
)

func newTestSystem() *ParticleSystem {
	return NewParticleSystem(800, 600, rand.New(rand.NewSource(1)))
}

func TestParticleRemovedWhenLifeExpires(t *testing.T) {
	s := newTestSystem()
	s.Particles = append(s.Particles, EffectParticle{
		X: 100, Y: 100, Life: 2, MaxLife: 2, Kind: ParticleBuild,
	})

	s.Update()
	if s.Count() != 1 {
		t.Fatalf("particle removed one frame early, count = %d", s.Count())
	}
	s.Update()
	if s.Count() != 0 {
		t.Errorf("particle not removed at life 0, count = %d", s.Count())
	}
}

func TestAttackParticlesFall(t *testing.T) {
	s := newTestSystem()
	s.Spawn(game.Event{Kind: game.EventAttack, Count: 1, Intensity: 1.0}, 0, 0)

	if s.Count() != 1 {
		t.Fatalf("count = %d, want 1", s.Count())
	}
	p := s.Particles[0]
	if p.Y > 0 {
		t.Errorf("attack particle should originate at the top, y = %v", p.Y)
	}
	if p.VelY <= 0 {
		t.Errorf("attack particle should start falling, velY = %v", p.VelY)
	}

	before := s.Particles[0].VelY
	s.Update()
	if s.Particles[0].VelY <= before {
		t.Errorf("gravity not applied: velY %v -> %v", before, s.Particles[0].VelY)
	}
}

func TestBuildParticlesDriftUp(t *testing.T) {
	s := newTestSystem()
	s.Spawn(game.Event{Kind: game.EventBuild, Count: 1}, 400, 300)

	if s.Count() != 1 {
		t.Fatalf("count = %d, want 1", s.Count())
	}
	if s.Particles[0].VelY >= 0 {
		t.Errorf("build particle should drift upward, velY = %v", s.Particles[0].VelY)
	}
}

func TestLevelUpSpawnsBurst(t *testing.T) {
	s := newTestSystem()
	s.Spawn(game.Event{Kind: game.EventLevelUp, Count: 1}, 400, 300)

	if s.Count() < 10 {
		t.Errorf("levelup burst spawned %d particles, want at least 10", s.Count())
	}
}

func TestCorruptParticleIsolated(t *testing.T) {
	s := newTestSystem()
	s.Particles = append(s.Particles,
		EffectParticle{X: float32(math.NaN()), Y: 10, Life: 100, MaxLife: 100, Kind: ParticleBuild},
		EffectParticle{X: 50, Y: 50, Life: 100, MaxLife: 100, Kind: ParticleBuild},
	)

	s.Update()

	if s.Count() != 1 {
		t.Fatalf("count = %d, want corrupt particle dropped and healthy one kept", s.Count())
	}
	if badFloat(s.Particles[0].X) {
		t.Error("surviving particle has a corrupt position")
	}
}

func TestParticleCapHolds(t *testing.T) {
	s := newTestSystem()
	for i := 0; i < 2000; i++ {
		s.Spawn(game.Event{Kind: game.EventAttack, Count: 1, Intensity: 1.0}, 0, 0)
	}
	if s.Count() > 500 {
		t.Errorf("count = %d exceeds particle cap", s.Count())
	}
}

func TestLifeFraction(t *testing.T) {
	p := EffectParticle{Life: 25, MaxLife: 100}
	if got := p.LifeFraction(); got != 0.25 {
		t.Errorf("LifeFraction = %v, want 0.25", got)
	}
}
