package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/glucodash/series"
)

// HistoryUpdate is the resolved result of one token'd bulk fetch. The frame
// loop applies it only if Token is still the latest issued.
type HistoryUpdate struct {
	Token   uint64
	Aligned series.Aligned
	Errs    map[string]error
}

// TickUpdate is one live ingestion tick across all players. Failed or
// implausible readings arrive as explicit missing points; Raw carries the
// values that did resolve, for the state machines.
type TickUpdate struct {
	TimestampMs int64
	Points      map[string]series.Point
	Raw         map[string]float64
}

// Poller owns the ingestion timing domain: a low-frequency ticker for live
// values plus asynchronous token'd history fetches. Results are delivered
// over buffered channels drained by the frame loop, which therefore never
// blocks on a fetch.
type Poller struct {
	src      Source
	ids      []string
	interval time.Duration
	bucketMs int64
	maxCount int

	histories chan HistoryUpdate
	ticks     chan TickUpdate

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPoller wires a poller over the given source and roster.
func NewPoller(src Source, ids []string, interval time.Duration, bucketMs int64, maxCount int) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		src:       src,
		ids:       append([]string(nil), ids...),
		interval:  interval,
		bucketMs:  bucketMs,
		maxCount:  maxCount,
		histories: make(chan HistoryUpdate, 4),
		ticks:     make(chan TickUpdate, 4),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Histories is the channel of resolved bulk fetches.
func (p *Poller) Histories() <-chan HistoryUpdate {
	return p.histories
}

// Ticks is the channel of live ingestion ticks.
func (p *Poller) Ticks() <-chan TickUpdate {
	return p.ticks
}

// Start launches the ingestion ticker. One immediate tick fires so the view
// has data before the first full interval elapses.
func (p *Poller) Start() {
	go func() {
		p.tickOnce()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.ctx.Done():
				return
			case <-ticker.C:
				p.tickOnce()
			}
		}
	}()
}

// Stop cancels the ticker and any in-flight fetches. Results that race the
// cancellation are dropped by the channel senders.
func (p *Poller) Stop() {
	p.cancel()
}

// RequestHistory launches an asynchronous bulk fetch for the given lookback,
// tagged with the caller's request token. Alignment runs here, off the frame
// loop; per-player failures surface in the update without discarding the
// players that succeeded.
func (p *Poller) RequestHistory(token uint64, lookback time.Duration) {
	go func() {
		results := p.src.History(p.ctx, p.ids, lookback, p.maxCount)

		readings := make(map[string][]series.Reading, len(p.ids))
		errs := make(map[string]error)
		for id, res := range results {
			if res.Err != nil {
				errs[id] = res.Err
				continue
			}
			readings[id] = res.Readings
		}

		aligned, err := series.Align(p.ids, readings, p.bucketMs)
		if err != nil {
			slog.Warn("history alignment failed, keeping cached buffers", "error", err)
			return
		}

		p.send(HistoryUpdate{Token: token, Aligned: aligned, Errs: errs})
	}()
}

// tickOnce fetches the current value for every player and posts one tick.
func (p *Poller) tickOnce() {
	results := p.src.Current(p.ctx, p.ids)

	points := make(map[string]series.Point, len(p.ids))
	raw := make(map[string]float64)
	var latest int64
	for _, id := range p.ids {
		res := results[id]
		if res.Err != nil {
			slog.Warn("current reading unavailable", "player", id, "error", res.Err)
			points[id] = series.MissingPoint
			continue
		}
		r := series.Reading{PlayerID: id, TimestampMs: res.TimestampMs, Value: res.Value}
		if !r.Plausible() {
			slog.Warn("implausible reading treated as missing", "player", id, "value", res.Value)
			points[id] = series.MissingPoint
			continue
		}
		points[id] = series.Point{Value: res.Value}
		raw[id] = res.Value
		if res.TimestampMs > latest {
			latest = res.TimestampMs
		}
	}

	if latest == 0 {
		latest = time.Now().UnixMilli()
	}

	select {
	case p.ticks <- TickUpdate{TimestampMs: latest, Points: points, Raw: raw}:
	case <-p.ctx.Done():
	default:
		slog.Warn("tick channel full, dropping ingestion tick")
	}
}

func (p *Poller) send(u HistoryUpdate) {
	select {
	case p.histories <- u:
	case <-p.ctx.Done():
	default:
		slog.Warn("history channel full, dropping response", "token", u.Token)
	}
}
