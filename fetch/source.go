// Package fetch supplies readings to the engines: the collaborator
// interfaces, a local JSON cache store, and the ingestion poller that drives
// bulk reloads and live ticks.
package fetch

import (
	"context"
	"time"

	"github.com/pthm-cable/glucodash/series"
)

// HistoryResult is one player's share of a bulk query. Failures are carried
// per player so one broken account never discards the others.
type HistoryResult struct {
	Readings []series.Reading
	Err      error
}

// CurrentResult is one player's latest reading, or the error fetching it.
type CurrentResult struct {
	Value       float64
	TimestampMs int64
	Err         error
}

// Source is the reading query collaborator. Implementations must return an
// entry for every requested id and tolerate partial per-player failure.
type Source interface {
	History(ctx context.Context, ids []string, lookback time.Duration, maxCount int) map[string]HistoryResult
	Current(ctx context.Context, ids []string) map[string]CurrentResult
}
