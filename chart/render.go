package chart

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glucodash/game"
	"github.com/pthm-cable/glucodash/series"
)

// Vertical chart scale in mmol/L.
const (
	chartMinValue = 2.0
	chartMaxValue = 16.0
)

// Threshold band fills, dimmed so data series always read on top.
var (
	bandScarcity = rl.Color{R: 120, G: 40, B: 40, A: 60}
	bandGrowth   = rl.Color{R: 40, G: 110, B: 50, A: 60}
	bandMild     = rl.Color{R: 130, G: 110, B: 30, A: 60}
	bandModerate = rl.Color{R: 140, G: 80, B: 30, A: 60}
	bandSevere   = rl.Color{R: 140, G: 40, B: 30, A: 60}
)

// SeriesView is what the renderer needs to draw one player's line.
type SeriesView struct {
	Name   string
	Color  rl.Color
	Style  Style
	Points []series.Point
}

// Draw renders the whole chart into bounds: threshold bands first, then the
// grid, then every series polyline with its dash pattern and markers.
func Draw(bounds rl.Rectangle, axis []int64, views []SeriesView) {
	RoundRect(bounds.X, bounds.Y, bounds.Width, bounds.Height, 8, rl.Color{R: 18, G: 18, B: 24, A: 255})

	drawBands(bounds)
	drawGrid(bounds, axis)

	for _, v := range views {
		drawSeries(bounds, axis, v)
	}
}

// drawBands paints the static physiological threshold background. It is
// always beneath the data series, never on top.
func drawBands(b rl.Rectangle) {
	type band struct {
		lo, hi float64
		color  rl.Color
	}
	bands := []band{
		{chartMinValue, game.TierLowMax, bandScarcity},
		{game.TierLowMax, game.TierGrowthMax, bandGrowth},
		{game.TierGrowthMax, game.TierMildMax, bandMild},
		{game.TierMildMax, game.TierModerateMax, bandModerate},
		{game.TierModerateMax, chartMaxValue, bandSevere},
	}
	for _, bd := range bands {
		top := valueToY(b, bd.hi)
		bottom := valueToY(b, bd.lo)
		rl.DrawRectangle(int32(b.X), int32(top), int32(b.Width), int32(bottom-top), bd.color)
	}
}

// drawGrid draws horizontal value lines and time labels along the axis.
func drawGrid(b rl.Rectangle, axis []int64) {
	for v := 4.0; v < chartMaxValue; v += 4.0 {
		y := valueToY(b, v)
		rl.DrawLineEx(rl.Vector2{X: b.X, Y: y}, rl.Vector2{X: b.X + b.Width, Y: y}, 1, rl.Color{R: 70, G: 70, B: 80, A: 120})
		rl.DrawText(fmt.Sprintf("%.0f", v), int32(b.X)+4, int32(y)-14, 12, rl.Gray)
	}

	if len(axis) < 2 {
		return
	}
	// A handful of time labels, evenly spaced along the buffer.
	const labels = 4
	for i := 0; i <= labels; i++ {
		idx := i * (len(axis) - 1) / labels
		x := indexToX(b, idx, len(axis))
		ts := time.UnixMilli(axis[idx])
		rl.DrawText(ts.Format("15:04"), int32(x)-16, int32(b.Y+b.Height)-16, 12, rl.Gray)
	}
}

// drawSeries draws one player's polyline, skipping missing points so gaps in
// the data stay visible gaps, plus a marker at every present sample.
func drawSeries(b rl.Rectangle, axis []int64, v SeriesView) {
	n := len(v.Points)
	if n > len(axis) {
		n = len(axis)
	}

	havePrev := false
	var prev rl.Vector2
	for i := 0; i < n; i++ {
		p := v.Points[i]
		if p.Missing {
			havePrev = false
			continue
		}
		cur := rl.Vector2{X: indexToX(b, i, len(axis)), Y: valueToY(b, p.Value)}
		if havePrev {
			drawDashedLine(prev, cur, v.Style.Dash, v.Color)
		}
		drawMarker(cur, v.Style.Marker, v.Color)
		prev = cur
		havePrev = true
	}
}

// drawDashedLine draws a line segment honoring the on/off dash pattern.
// An empty pattern draws solid.
func drawDashedLine(from, to rl.Vector2, dash []float32, color rl.Color) {
	if len(dash) == 0 {
		rl.DrawLineEx(from, to, 2, color)
		return
	}

	dx := to.X - from.X
	dy := to.Y - from.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length

	var walked float32
	seg := 0
	on := true
	for walked < length {
		run := dash[seg%len(dash)]
		if walked+run > length {
			run = length - walked
		}
		if on {
			a := rl.Vector2{X: from.X + ux*walked, Y: from.Y + uy*walked}
			b := rl.Vector2{X: from.X + ux*(walked+run), Y: from.Y + uy*(walked+run)}
			rl.DrawLineEx(a, b, 2, color)
		}
		walked += run
		seg++
		on = !on
	}
}

// drawMarker draws the series marker shape centered on pos.
func drawMarker(pos rl.Vector2, m Marker, color rl.Color) {
	const r = 3.5
	switch m {
	case MarkerCircle:
		rl.DrawCircleV(pos, r, color)
	case MarkerSquare:
		rl.DrawRectangle(int32(pos.X-r), int32(pos.Y-r), int32(2*r), int32(2*r), color)
	case MarkerTriangle:
		rl.DrawTriangle(
			rl.Vector2{X: pos.X, Y: pos.Y - r - 1},
			rl.Vector2{X: pos.X - r, Y: pos.Y + r},
			rl.Vector2{X: pos.X + r, Y: pos.Y + r},
			color,
		)
	case MarkerDiamond:
		rl.DrawPoly(pos, 4, r+1, 45, color)
	}
}

// RoundRect draws a filled rounded rectangle. Owned here rather than patched
// onto any shared drawing primitive; the radius is clamped to half the
// shorter side.
func RoundRect(x, y, w, h, radius float32, color rl.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	max := w
	if h < w {
		max = h
	}
	if radius > max/2 {
		radius = max / 2
	}
	roundness := float32(0)
	if max > 0 {
		roundness = 2 * radius / max
	}
	rl.DrawRectangleRounded(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, roundness, 8, color)
}

// ParseHexColor converts "#RRGGBB" to a raylib color. Malformed values fall
// back to light gray rather than failing the frame.
func ParseHexColor(s string) rl.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rl.LightGray
	}
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// valueToY maps a mmol/L value to a pixel row inside bounds, clamped to the
// chart scale.
func valueToY(b rl.Rectangle, v float64) float32 {
	if v < chartMinValue {
		v = chartMinValue
	}
	if v > chartMaxValue {
		v = chartMaxValue
	}
	frac := (v - chartMinValue) / (chartMaxValue - chartMinValue)
	return b.Y + b.Height - float32(frac)*b.Height
}

// indexToX maps a buffer index to a pixel column inside bounds.
func indexToX(b rl.Rectangle, i, n int) float32 {
	if n <= 1 {
		return b.X + b.Width/2
	}
	return b.X + float32(i)/float32(n-1)*b.Width
}
