// Package dashboard composes the engines into the running view: the trend
// chart on top, every player's garden below, particles over everything.
package dashboard

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glucodash/chart"
	"github.com/pthm-cable/glucodash/config"
	"github.com/pthm-cable/glucodash/fetch"
	"github.com/pthm-cable/glucodash/game"
	"github.com/pthm-cable/glucodash/prefs"
	"github.com/pthm-cable/glucodash/renderer"
	"github.com/pthm-cable/glucodash/scene"
	"github.com/pthm-cable/glucodash/series"
	"github.com/pthm-cable/glucodash/systems"
	"github.com/pthm-cable/glucodash/telemetry"
	"github.com/pthm-cable/glucodash/ui"
)

// Frame time at the target cadence, seconds per frame.
const frameDT = 1.0 / 60.0

// Options configures a dashboard instance.
type Options struct {
	Seed    int64
	Session *telemetry.Session // nil disables session recording
}

// Dashboard owns every engine and timer of one dashboard instance. There is
// no package-level state: two instances coexist without sharing anything.
type Dashboard struct {
	cfg *config.Config
	rng *rand.Rand

	buffers   *chart.Buffers
	states    map[string]game.PlayerState
	spawner   *game.Spawner
	particles *systems.ParticleSystem
	garden    *scene.Garden
	poller    *fetch.Poller
	prefStore *prefs.Store
	session   *telemetry.Session

	hud            *ui.HUD
	controls       *ui.Controls
	particleRender *renderer.ParticleRenderer
	gardenRender   *renderer.GardenRenderer

	players []config.PlayerConfig
	colors  []rl.Color
	plots   []scene.Plot
	scorch  []float64
	tiers   []string

	tick           int
	ingestionTicks int
	paused         bool
	stopped        bool
	polling        bool
	fetchPending   bool
}

// historyRefreshEvery is how many ingestion ticks pass between periodic
// bulk reloads (roughly hourly at the 5-minute cadence).
const historyRefreshEvery = 12

// New builds a dashboard over the given source. The last-used time range is
// restored from the preference store when it still names a valid preset.
func New(cfg *config.Config, src fetch.Source, opts Options) *Dashboard {
	rng := rand.New(rand.NewSource(opts.Seed))
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)

	d := &Dashboard{
		cfg:            cfg,
		rng:            rng,
		buffers:        chart.New(cfg),
		states:         make(map[string]game.PlayerState, len(cfg.Players)),
		spawner:        game.NewSpawner(rng),
		particles:      systems.NewParticleSystem(w, h, rng),
		prefStore:      prefs.NewStore(cfg.Prefs.Path),
		session:        opts.Session,
		hud:            ui.NewHUD(),
		controls:       ui.NewControls(w-5*90-10, 10),
		particleRender: renderer.NewParticleRenderer(),
		gardenRender:   renderer.NewGardenRenderer(),
		players:        cfg.Players,
		stopped:        true,
	}

	d.garden = scene.NewGarden(len(cfg.Players), cfg.Garden.MaxPlants, rng)

	ids := make([]string, len(cfg.Players))
	d.colors = make([]rl.Color, len(cfg.Players))
	d.scorch = make([]float64, len(cfg.Players))
	d.tiers = make([]string, len(cfg.Players))
	for i, p := range cfg.Players {
		ids[i] = p.ID
		d.colors[i] = chart.ParseHexColor(p.Color)
		d.states[p.ID] = game.NewPlayerState()
	}
	d.plots = layoutPlots(w, h, len(cfg.Players))

	d.poller = fetch.NewPoller(src, ids, cfg.Derived.FetchInterval, cfg.Chart.BucketMs, cfg.Fetch.MaxCount)

	if saved := d.prefStore.Load(); saved.LastRangeKey != "" {
		if _, _, ok := d.buffers.SetTimeRange(saved.LastRangeKey); ok {
			slog.Info("restored time range from preferences", "key", saved.LastRangeKey)
		}
	}

	return d
}

// Start launches the ingestion domain and schedules the initial bulk load.
func (d *Dashboard) Start() {
	d.stopped = false
	if !d.polling {
		d.poller.Start()
		d.polling = true
	}
	d.reload(d.buffers.NextToken())
}

// Stop makes the next scheduled frame a no-op. Ingestion keeps caching in
// the background; a fresh Start resumes drawing from best-available data.
func (d *Dashboard) Stop() {
	d.stopped = true
}

// Destroy cancels the owned timers and fetches before releasing buffers, so
// a late callback can never mutate disposed state.
func (d *Dashboard) Destroy() {
	d.Stop()
	if d.polling {
		d.poller.Stop()
		d.polling = false
	}
	d.buffers.Clear()
	d.particles.Clear()
}

// SetTimeRange switches the active preset and issues a superseding reload.
// Unknown keys warn and change nothing.
func (d *Dashboard) SetTimeRange(key string) {
	token, _, ok := d.buffers.SetTimeRange(key)
	if !ok {
		return
	}
	d.prefStore.Save(prefs.Prefs{LastRangeKey: key, LastValue: d.lastAnyValue()})
	d.reload(token)
}

// AddDataPoint appends one bucket's worth of live values across players.
func (d *Dashboard) AddDataPoint(timestampMs int64, values map[string]float64) {
	points := make(map[string]series.Point, len(values))
	for id, v := range values {
		r := series.Reading{PlayerID: id, TimestampMs: timestampMs, Value: v}
		if r.Plausible() {
			points[id] = series.Point{Value: v}
		} else {
			points[id] = series.MissingPoint
		}
	}
	d.buffers.AddPoint(timestampMs, points)
}

// Clear empties the chart buffers and active particles. Safe mid-fetch: any
// in-flight response still goes through token validation on arrival.
func (d *Dashboard) Clear() {
	d.buffers.Clear()
	d.particles.Clear()
}

// Reset reinitializes every player's game state and the gardens.
func (d *Dashboard) Reset() {
	for id := range d.states {
		d.states[id] = game.NewPlayerState()
	}
	d.garden.Reset(len(d.players))
	d.particles.Clear()
	for i := range d.scorch {
		d.scorch[i] = 0
		d.tiers[i] = ""
	}
}

// UpdateWithGlucose advances one player's state machine with a fresh value
// and feeds the resulting spawn events into the visual layers.
func (d *Dashboard) UpdateWithGlucose(playerID string, value float64) game.PlayerState {
	prev, ok := d.states[playerID]
	if !ok {
		slog.Warn("value for unregistered player ignored", "player", playerID)
		return game.PlayerState{}
	}

	tr := game.Tick(prev, value)
	d.states[playerID] = tr.State

	idx := d.playerIndex(playerID)
	events := d.spawner.Events(tr)
	if idx >= 0 {
		d.scorch[idx] = tr.State.AttackIntensity
		d.tiers[idx] = tr.Tier.String()
		plot := d.plots[idx]
		anchorX := plot.X + plot.W/2
		anchorY := plot.Y - 20
		for _, ev := range events {
			d.particles.Spawn(ev, anchorX, anchorY)
		}
		d.garden.Apply(idx, plot, events)
	}

	spawned := 0
	for _, ev := range events {
		spawned += ev.Count
	}
	d.session.Record(telemetry.TickRecord{
		Tick:          d.tick,
		PlayerID:      playerID,
		Value:         value,
		Tier:          tr.Tier.String(),
		Health:        tr.State.Health,
		Level:         tr.State.Level,
		BuildProgress: tr.State.BuildProgress,
		Spawned:       spawned,
	})

	return tr.State
}

// Update runs one frame of the cooperative loop: apply any resolved fetches,
// then advance the ephemeral simulations. It never blocks on ingestion; the
// chart keeps rendering best-available cached data while fetches are pending
// or failing.
func (d *Dashboard) Update() {
	if d.stopped {
		return
	}

	d.drainIngestion()

	if d.paused {
		return
	}

	d.particles.Update()
	d.garden.Update(frameDT)
	d.tick++
}

// State returns a copy of one player's current game state.
func (d *Dashboard) State(playerID string) game.PlayerState {
	return d.states[playerID]
}

// Tick returns the frame counter.
func (d *Dashboard) Tick() int {
	return d.tick
}

// drainIngestion applies everything the ingestion domain delivered since the
// last frame.
func (d *Dashboard) drainIngestion() {
	for {
		select {
		case u := <-d.poller.Histories():
			if d.buffers.ApplyHistory(u.Token, u.Aligned) {
				d.fetchPending = false
			}
			for id, err := range u.Errs {
				slog.Warn("history fetch failed for player, cached data retained", "player", id, "error", err)
			}
		case u := <-d.poller.Ticks():
			d.buffers.AddPoint(u.TimestampMs, u.Points)
			for id, v := range u.Raw {
				d.UpdateWithGlucose(id, v)
			}
			if len(u.Raw) > 0 {
				d.prefStore.Save(prefs.Prefs{LastRangeKey: d.buffers.ActivePreset().Key, LastValue: d.lastAnyValue()})
			}
			d.ingestionTicks++
			if d.ingestionTicks%historyRefreshEvery == 0 {
				d.reload(d.buffers.NextToken())
			}
		default:
			return
		}
	}
}

func (d *Dashboard) reload(token uint64) {
	d.fetchPending = true
	d.poller.RequestHistory(token, d.buffers.ActivePreset().Lookback)
}

func (d *Dashboard) playerIndex(id string) int {
	for i, p := range d.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (d *Dashboard) lastAnyValue() float64 {
	for _, p := range d.players {
		if st, ok := d.states[p.ID]; ok && st.LastValue > 0 {
			return st.LastValue
		}
	}
	return 0
}

// layoutPlots divides the garden strip at the bottom of the screen among
// the players.
func layoutPlots(w, h float32, players int) []scene.Plot {
	if players == 0 {
		return nil
	}
	const margin = 20
	usable := w - 2*margin
	each := usable / float32(players)
	plots := make([]scene.Plot, players)
	for i := range plots {
		plots[i] = scene.Plot{
			X: margin + float32(i)*each + 10,
			Y: h - 40,
			W: each - 20,
		}
	}
	return plots
}
