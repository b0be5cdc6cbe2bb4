// Package ui renders the HUD and the control panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerHUD is one player's row of stats.
type PlayerHUD struct {
	Name            string
	Color           rl.Color
	Value           float64 // mmol/L, <=0 when missing
	Tier            string
	Health          float64
	Level           int
	BuildProgress   float64
	AttackIntensity float64
}

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	RangeLabel   string
	Tick         int
	FPS          int32
	Paused       bool
	FetchPending bool
	Players      []PlayerHUD
}

// HUD renders the heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Glucose PK", 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Range: %s | Tick: %d | FPS: %d", data.RangeLabel, data.Tick, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	} else if data.FetchPending {
		status = "Fetching..."
	}
	rl.DrawText(status, 10, 55, 16, rl.Yellow)

	y := int32(80)
	for _, p := range data.Players {
		value := "--"
		if p.Value > 0 {
			value = fmt.Sprintf("%.1f", p.Value)
		}
		rl.DrawText(
			fmt.Sprintf("%s  %s mmol/L  [%s]  Lv%d", p.Name, value, p.Tier, p.Level),
			10, y, 16, p.Color,
		)
		drawBar(180, y+18, 120, 6, float32(p.Health/100), rl.Color{R: 90, G: 200, B: 90, A: 255})
		drawBar(310, y+18, 120, 6, float32(p.BuildProgress/100), rl.Color{R: 100, G: 150, B: 240, A: 255})
		y += 34
	}
}

// drawBar renders a filled progress bar with a thin outline.
func drawBar(x, y, w, h int32, frac float32, color rl.Color) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	rl.DrawRectangleLines(x, y, w, h, rl.Gray)
	rl.DrawRectangle(x+1, y+1, int32(float32(w-2)*frac), h-2, color)
}
