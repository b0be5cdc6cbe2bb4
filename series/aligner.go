package series

import (
	"fmt"
	"sort"
)

// Aligned is the result of one alignment call: a strictly increasing axis of
// canonical bucket timestamps and a complete player-by-timestamp matrix.
// Rows follow the player order given to Align; every row has len(Axis) cells.
type Aligned struct {
	Axis   []int64
	Matrix map[string][]Point
}

// Align normalizes per-player reading lists onto one canonical time axis.
//
// The axis is the sorted union of bucket-floored timestamps across all
// players and is rebuilt from scratch on every call, so the operation is
// idempotent and side-effect free. When two readings from the same player
// collapse into one bucket, the later one by input position wins
// (last-write-wins, not an average). A player with no readings gets an
// all-missing row. Implausible values become missing cells.
//
// players must not contain duplicate ids; readings for ids absent from
// players are ignored.
func Align(players []string, readings map[string][]Reading, bucketMs int64) (Aligned, error) {
	if bucketMs <= 0 {
		return Aligned{}, fmt.Errorf("align: bucket interval must be positive, got %d", bucketMs)
	}
	seen := make(map[string]struct{}, len(players))
	for _, id := range players {
		if _, dup := seen[id]; dup {
			return Aligned{}, fmt.Errorf("align: duplicate player id %q", id)
		}
		seen[id] = struct{}{}
	}

	// Bucket each player's readings, later input positions overwriting
	// earlier ones, and union the bucket timestamps.
	buckets := make(map[string]map[int64]Point, len(players))
	axisSet := make(map[int64]struct{})
	for _, id := range players {
		row := make(map[int64]Point)
		for _, r := range readings[id] {
			ts := BucketFloor(r.TimestampMs, bucketMs)
			if r.Plausible() {
				row[ts] = Point{Value: r.Value}
			} else {
				row[ts] = MissingPoint
			}
			axisSet[ts] = struct{}{}
		}
		buckets[id] = row
	}

	axis := make([]int64, 0, len(axisSet))
	for ts := range axisSet {
		axis = append(axis, ts)
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i] < axis[j] })

	matrix := make(map[string][]Point, len(players))
	for _, id := range players {
		row := make([]Point, len(axis))
		for i, ts := range axis {
			if p, ok := buckets[id][ts]; ok {
				row[i] = p
			} else {
				row[i] = MissingPoint
			}
		}
		matrix[id] = row
	}

	return Aligned{Axis: axis, Matrix: matrix}, nil
}
