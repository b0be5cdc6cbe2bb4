// Package systems holds the ephemeral per-frame simulations behind the
// dashboard's game view.
package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/glucodash/game"
)

// ParticleKind identifies the visual class of an effect particle.
type ParticleKind uint8

const (
	ParticleBuild ParticleKind = iota
	ParticleAttack
	ParticleFire
	ParticleLevelUp
	ParticleTired
)

// Gravity applied to attack particles each frame, in px/frame^2.
const attackGravity = 0.08

// EffectParticle is one short-lived visual event. Life counts frames down
// from MaxLife; the particle is removed the frame Life reaches 0.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Kind       ParticleKind
	Size       float32
}

// LifeFraction is the remaining life in (0, 1].
func (p *EffectParticle) LifeFraction() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float32(p.Life) / float32(p.MaxLife)
}

// ParticleSystem manages effect particles. It holds no state beyond the
// active particle list; spawns come from state-machine events and the frame
// loop drives Update once per frame.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int

	width, height float32
	rng           *rand.Rand
}

// NewParticleSystem creates a particle system for a viewport of the given
// size. The random source is injected so spawn geometry is reproducible.
func NewParticleSystem(width, height float32, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 500),
		maxParticles: 500,
		width:        width,
		height:       height,
		rng:          rng,
	}
}

// Update advances all particles by one frame and compacts the live ones
// in place. A particle with a corrupted position is dropped without
// disturbing the rest of the frame.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		// Kind-specific physics
		switch p.Kind {
		case ParticleAttack:
			p.VelY += attackGravity
		case ParticleBuild, ParticleTired:
			p.VelY -= 0.01
		case ParticleFire:
			p.VelY -= 0.03
			p.VelX += (s.rng.Float32() - 0.5) * 0.1 // flicker
		case ParticleLevelUp:
			p.VelX *= 0.96
			p.VelY *= 0.96
		}

		p.X += p.VelX
		p.Y += p.VelY

		if badFloat(p.X) || badFloat(p.Y) {
			continue
		}

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// Spawn consumes one state-machine event for the player anchored at (x, y).
func (s *ParticleSystem) Spawn(ev game.Event, x, y float32) {
	for i := 0; i < ev.Count; i++ {
		switch ev.Kind {
		case game.EventBuild:
			s.emitRising(x, y, ParticleBuild, 60, 40, 1.5)
		case game.EventTired:
			s.emitRising(x, y, ParticleTired, 80, 40, 2)
		case game.EventFire:
			s.emitRising(x, y, ParticleFire, 40, 30, 1.5)
		case game.EventAttack:
			s.emitFalling(float32(ev.Intensity))
		case game.EventLevelUp:
			s.emitBurst(x, y)
		}
	}
}

// emitRising spawns a particle near (x, y) drifting upward.
func (s *ParticleSystem) emitRising(x, y float32, kind ParticleKind, baseLife, lifeJitter int32, size float32) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	life := baseLife + s.rng.Int31n(lifeJitter)
	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float32()-0.5)*8,
		Y:       y + (s.rng.Float32()-0.5)*4,
		VelX:    (s.rng.Float32() - 0.5) * 0.3,
		VelY:    -0.2 - s.rng.Float32()*0.3,
		Life:    life,
		MaxLife: life,
		Kind:    kind,
		Size:    size + s.rng.Float32(),
	})
}

// emitFalling spawns an attack particle at the top of the viewport, falling
// under gravity. Intensity scales speed and size.
func (s *ParticleSystem) emitFalling(intensity float32) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	life := int32(90) + s.rng.Int31n(60)
	s.Particles = append(s.Particles, EffectParticle{
		X:       s.rng.Float32() * s.width,
		Y:       -4,
		VelX:    (s.rng.Float32() - 0.5) * 0.4,
		VelY:    0.5 + s.rng.Float32()*1.5*intensity,
		Life:    life,
		MaxLife: life,
		Kind:    ParticleAttack,
		Size:    1.5 + s.rng.Float32()*2*intensity,
	})
}

// emitBurst spawns a radial celebration particle around (x, y).
func (s *ParticleSystem) emitBurst(x, y float32) {
	count := 10 + s.rng.Intn(8)
	for i := 0; i < count; i++ {
		if len(s.Particles) >= s.maxParticles {
			return
		}

		angle := s.rng.Float32() * 2 * math.Pi
		speed := 0.8 + s.rng.Float32()*1.2
		life := int32(40) + s.rng.Int31n(30)

		s.Particles = append(s.Particles, EffectParticle{
			X:       x,
			Y:       y,
			VelX:    float32(math.Cos(float64(angle))) * speed,
			VelY:    float32(math.Sin(float64(angle))) * speed,
			Life:    life,
			MaxLife: life,
			Kind:    ParticleLevelUp,
			Size:    2 + s.rng.Float32()*1.5,
		})
	}
}

// Count returns the number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

// Clear drops all active particles.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}

func badFloat(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
