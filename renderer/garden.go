package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glucodash/components"
	"github.com/pthm-cable/glucodash/scene"
)

// GardenRenderer draws every player's plot and plants.
type GardenRenderer struct{}

// NewGardenRenderer creates a new garden renderer.
func NewGardenRenderer() *GardenRenderer {
	return &GardenRenderer{}
}

// Draw renders the gardens. scorch carries each player's current attack
// intensity; plants of a player under attack get a burnt tint.
func (r *GardenRenderer) Draw(g *scene.Garden, plots []scene.Plot, colors []rl.Color, scorch []float64) {
	ground := rl.Color{R: 40, G: 60, B: 35, A: 255}
	for _, plot := range plots {
		rl.DrawRectangle(int32(plot.X), int32(plot.Y), int32(plot.W), 6, ground)
	}

	g.Each(func(pos components.Position, plant components.Plant, sway components.Sway) {
		idx := int(plant.PlayerIdx)

		color := rl.Green
		if idx < len(colors) {
			color = colors[idx]
		}
		if idx < len(scorch) && scorch[idx] > 0 {
			color = scorchTint(color, float32(scorch[idx]))
		}

		height := float32(8 + int32(plant.Stage)*6)
		lean := float32(math.Sin(float64(sway.Phase))) * 2

		top := rl.Vector2{X: pos.X + lean, Y: pos.Y - height}
		base := rl.Vector2{X: pos.X, Y: pos.Y}
		rl.DrawLineEx(base, top, 2, color)
		rl.DrawCircleV(top, 2+float32(plant.Stage), color)
	})
}

// scorchTint shifts a plant color toward burnt brown by intensity.
func scorchTint(c rl.Color, intensity float32) rl.Color {
	burnt := rl.Color{R: 120, G: 70, B: 40, A: c.A}
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*intensity)
	}
	return rl.Color{R: lerp(c.R, burnt.R), G: lerp(c.G, burnt.G), B: lerp(c.B, burnt.B), A: c.A}
}
