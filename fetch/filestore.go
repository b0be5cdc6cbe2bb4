package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/glucodash/series"
)

// FileStore reads the per-player JSON cache files the sync service keeps on
// disk (one <playerID>.json per player with a current reading plus recent
// history). It is the default Source when no live provider is wired in.
type FileStore struct {
	dir       string
	freshness time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewFileStore creates a store over dir. freshness bounds how old a cached
// current reading may be before it is reported stale.
func NewFileStore(dir string, freshness time.Duration) *FileStore {
	return &FileStore{dir: dir, freshness: freshness, now: time.Now}
}

// cacheFile mirrors the sync service's on-disk layout.
type cacheFile struct {
	LastUpdated string       `json:"last_updated"`
	Current     *cacheEntry  `json:"current"`
	History     []cacheEntry `json:"history"`
}

type cacheEntry struct {
	Value    float64 `json:"value"`
	Datetime string  `json:"datetime"`
}

// History implements Source. Each player is loaded independently; a missing
// or corrupt file fails only that player.
func (s *FileStore) History(ctx context.Context, ids []string, lookback time.Duration, maxCount int) map[string]HistoryResult {
	out := make(map[string]HistoryResult, len(ids))
	cutoff := s.now().Add(-lookback)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			out[id] = HistoryResult{Err: err}
			continue
		}

		cache, err := s.load(id)
		if err != nil {
			out[id] = HistoryResult{Err: err}
			continue
		}

		var readings []series.Reading
		for _, e := range cache.History {
			ts, err := time.Parse(time.RFC3339, e.Datetime)
			if err != nil || ts.Before(cutoff) {
				continue
			}
			readings = append(readings, series.Reading{
				PlayerID:    id,
				TimestampMs: ts.UnixMilli(),
				Value:       e.Value,
			})
			if maxCount > 0 && len(readings) >= maxCount {
				break
			}
		}
		out[id] = HistoryResult{Readings: readings}
	}

	return out
}

// Current implements Source. A cached value older than the freshness window
// is an error, not a silently stale number.
func (s *FileStore) Current(ctx context.Context, ids []string) map[string]CurrentResult {
	out := make(map[string]CurrentResult, len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			out[id] = CurrentResult{Err: err}
			continue
		}

		cache, err := s.load(id)
		if err != nil {
			out[id] = CurrentResult{Err: err}
			continue
		}
		if cache.Current == nil {
			out[id] = CurrentResult{Err: fmt.Errorf("no current reading cached for %q", id)}
			continue
		}

		updated, err := time.Parse(time.RFC3339, cache.LastUpdated)
		if err != nil {
			out[id] = CurrentResult{Err: fmt.Errorf("parsing last_updated for %q: %w", id, err)}
			continue
		}
		if s.now().Sub(updated) > s.freshness {
			out[id] = CurrentResult{Err: fmt.Errorf("cached reading for %q is stale (last updated %s)", id, cache.LastUpdated)}
			continue
		}

		ts, err := time.Parse(time.RFC3339, cache.Current.Datetime)
		if err != nil {
			out[id] = CurrentResult{Err: fmt.Errorf("parsing current datetime for %q: %w", id, err)}
			continue
		}

		out[id] = CurrentResult{Value: cache.Current.Value, TimestampMs: ts.UnixMilli()}
	}

	return out
}

func (s *FileStore) load(id string) (*cacheFile, error) {
	path := filepath.Join(s.dir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache for %q: %w", id, err)
	}
	var cache cacheFile
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing cache for %q: %w", id, err)
	}
	return &cache, nil
}
