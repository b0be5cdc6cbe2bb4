package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RangeButton is one selectable time-range preset.
type RangeButton struct {
	Key   string
	Label string
}

// Controls renders the interactive panel along the top-right edge.
type Controls struct {
	x, y float32
}

// NewControls creates a control panel anchored at (x, y).
func NewControls(x, y float32) *Controls {
	return &Controls{x: x, y: y}
}

// Draw renders the range buttons and the pause toggle. It returns the key
// of a freshly clicked preset (empty when none) and whether pause was
// toggled this frame.
func (c *Controls) Draw(buttons []RangeButton, activeKey string, paused bool) (selected string, togglePause bool) {
	x := c.x
	for _, b := range buttons {
		label := b.Label
		if b.Key == activeKey {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: x, Y: c.y, Width: 84, Height: 26}, label) {
			selected = b.Key
		}
		x += 90
	}

	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: c.y, Width: 84, Height: 26}, pauseLabel) {
		togglePause = true
	}

	return selected, togglePause
}
