// Package renderer draws the game view: effect particles and the gardens.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glucodash/systems"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles. Each particle is drawn independently; a bad
// one is skipped so it cannot take the rest of the frame down with it.
func (r *ParticleRenderer) Draw(particles []systems.EffectParticle) {
	for i := range particles {
		p := &particles[i]

		lifeRatio := p.LifeFraction()
		if lifeRatio <= 0 || lifeRatio > 1 {
			continue
		}

		var color rl.Color
		switch p.Kind {
		case systems.ParticleBuild:
			// Fresh green
			color = rl.Color{R: 90, G: 200, B: 90, A: uint8(lifeRatio * 200)}
		case systems.ParticleAttack:
			// Hostile red
			color = rl.Color{R: 220, G: 60, B: 50, A: uint8(lifeRatio * 220)}
		case systems.ParticleFire:
			// Ember orange
			color = rl.Color{R: 255, G: 140, B: 40, A: uint8(lifeRatio * 210)}
		case systems.ParticleLevelUp:
			// Gold
			color = rl.Color{R: 255, G: 215, B: 70, A: uint8(lifeRatio * 230)}
		case systems.ParticleTired:
			// Dim grey
			color = rl.Color{R: 140, G: 140, B: 150, A: uint8(lifeRatio * 150)}
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
