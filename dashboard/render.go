package dashboard

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glucodash/chart"
	"github.com/pthm-cable/glucodash/ui"
)

// Draw renders one frame and handles the control panel input. A stopped
// instance draws nothing.
func (d *Dashboard) Draw() {
	if d.stopped {
		return
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 12, B: 16, A: 255})

	d.drawChart()
	d.gardenRender.Draw(d.garden, d.plots, d.colors, d.scorch)
	d.particleRender.Draw(d.particles.Particles)
	d.hud.Draw(d.hudData())
	d.handleControls()

	rl.EndDrawing()
}

func (d *Dashboard) drawChart() {
	w := float32(d.cfg.Screen.Width)
	h := float32(d.cfg.Screen.Height)
	bounds := rl.Rectangle{X: 20, Y: 50, Width: w - 40, Height: h*0.5 - 60}

	views := make([]chart.SeriesView, 0, len(d.players))
	for i, p := range d.players {
		views = append(views, chart.SeriesView{
			Name:   p.Name,
			Color:  d.colors[i],
			Style:  d.buffers.StyleOf(p.ID),
			Points: d.buffers.Row(p.ID),
		})
	}
	chart.Draw(bounds, d.buffers.Axis(), views)
}

func (d *Dashboard) hudData() ui.HUDData {
	players := make([]ui.PlayerHUD, 0, len(d.players))
	for i, p := range d.players {
		st := d.states[p.ID]
		players = append(players, ui.PlayerHUD{
			Name:            p.Name,
			Color:           d.colors[i],
			Value:           st.LastValue,
			Tier:            d.tiers[i],
			Health:          st.Health,
			Level:           st.Level,
			BuildProgress:   st.BuildProgress,
			AttackIntensity: st.AttackIntensity,
		})
	}
	return ui.HUDData{
		RangeLabel:   d.buffers.ActivePreset().Label,
		Tick:         d.tick,
		FPS:          rl.GetFPS(),
		Paused:       d.paused,
		FetchPending: d.fetchPending,
		Players:      players,
	}
}

func (d *Dashboard) handleControls() {
	presets := d.buffers.Presets()
	buttons := make([]ui.RangeButton, len(presets))
	for i, p := range presets {
		buttons[i] = ui.RangeButton{Key: p.Key, Label: p.Label}
	}

	selected, togglePause := d.controls.Draw(buttons, d.buffers.ActivePreset().Key, d.paused)
	if selected != "" {
		d.SetTimeRange(selected)
	}
	if togglePause || rl.IsKeyPressed(rl.KeySpace) {
		d.paused = !d.paused
	}
}
