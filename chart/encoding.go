package chart

// Marker is the point shape drawn at each series sample.
type Marker uint8

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerTriangle
	MarkerDiamond
)

// Style is the visual encoding of one series: a dash pattern (on/off pixel
// run lengths, empty = solid) and a marker shape. Color alone is not relied
// on, so series stay distinguishable for colorblind viewers.
type Style struct {
	Dash   []float32
	Marker Marker
}

// stylePalette is the fixed encoding table. A player's style is its ordinal
// position modulo this palette, which keeps encodings deterministic and
// stable as long as player ordering is stable.
var stylePalette = []Style{
	{Dash: nil, Marker: MarkerCircle},
	{Dash: []float32{8, 4}, Marker: MarkerSquare},
	{Dash: []float32{2, 3}, Marker: MarkerTriangle},
	{Dash: []float32{8, 3, 2, 3}, Marker: MarkerDiamond},
}

// StyleFor returns the encoding for the player at the given ordinal.
func StyleFor(ordinal int) Style {
	if ordinal < 0 {
		ordinal = 0
	}
	return stylePalette[ordinal%len(stylePalette)]
}
