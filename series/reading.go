// Package series provides the time-series alignment engine: it reconciles
// independently-timestamped glucose readings from several players onto one
// canonical bucketed time axis.
package series

// Physiological plausibility bounds in mmol/L. Values outside this range are
// treated as missing rather than charted.
const (
	MinPlausible = 0.5
	MaxPlausible = 50.0
)

// DefaultBucketMs is the alignment grid step shared by all players.
// Matches the 5-minute CGM sampling cadence.
const DefaultBucketMs int64 = 5 * 60 * 1000

// Reading is a single immutable glucose measurement for one player.
type Reading struct {
	PlayerID    string
	TimestampMs int64
	Value       float64 // mmol/L
}

// Plausible reports whether the reading value is inside the physiological
// range worth charting.
func (r Reading) Plausible() bool {
	return r.Value >= MinPlausible && r.Value <= MaxPlausible
}

// Point is one cell of the aligned matrix: a value or an explicit gap.
// Missing is a distinct state; it is never coerced to zero or interpolated,
// since zero would read as a valid (and alarming) value on the chart.
type Point struct {
	Value   float64
	Missing bool
}

// MissingPoint is the canonical gap cell.
var MissingPoint = Point{Missing: true}

// BucketFloor maps a raw timestamp onto its canonical bucket boundary.
// A timestamp exactly on a boundary maps to itself; one bucket minus 1ms
// after a boundary maps back to that boundary.
func BucketFloor(timestampMs, bucketMs int64) int64 {
	return timestampMs / bucketMs * bucketMs
}
