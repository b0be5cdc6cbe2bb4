// Package scene holds the persistent garden view: each player owns a plot
// whose plants grow with build events and advance with level-ups.
package scene

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glucodash/components"
	"github.com/pthm-cable/glucodash/game"
)

// Plot is one player's ground rectangle in viewport coordinates.
type Plot struct {
	X, Y, W float32
}

// Garden owns the plant entities. Unlike particles, plants persist across
// frames and are only removed by Reset.
type Garden struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Plant, components.Sway]
	filter *ecs.Filter3[components.Position, components.Plant, components.Sway]

	rng       *rand.Rand
	maxPlants int
	counts    []int
}

// NewGarden creates a garden for the given roster size.
func NewGarden(players, maxPlants int, rng *rand.Rand) *Garden {
	g := &Garden{rng: rng, maxPlants: maxPlants}
	g.Reset(players)
	return g
}

// Reset drops every plant and starts over for a roster of the given size.
func (g *Garden) Reset(players int) {
	g.world = ecs.NewWorld()
	g.mapper = ecs.NewMap3[components.Position, components.Plant, components.Sway](g.world)
	g.filter = ecs.NewFilter3[components.Position, components.Plant, components.Sway](g.world)
	g.counts = make([]int, players)
}

// Apply consumes one player's spawn events against their plot: build events
// seed new plants, level-ups advance every plant a stage.
func (g *Garden) Apply(playerIdx int, plot Plot, events []game.Event) {
	if playerIdx < 0 || playerIdx >= len(g.counts) {
		return
	}

	for _, ev := range events {
		switch ev.Kind {
		case game.EventBuild:
			for i := 0; i < ev.Count && g.counts[playerIdx] < g.maxPlants; i++ {
				g.plant(playerIdx, plot)
			}
		case game.EventLevelUp:
			g.advanceStage(playerIdx)
		}
	}
}

// Update advances sway animation by one frame.
func (g *Garden) Update(dt float32) {
	query := g.filter.Query()
	for query.Next() {
		_, _, sway := query.Get()
		sway.Phase += sway.Speed * dt
		if sway.Phase > 2*math.Pi {
			sway.Phase -= 2 * math.Pi
		}
	}
}

// Each walks every plant. The callback must not create or remove entities.
func (g *Garden) Each(fn func(pos components.Position, plant components.Plant, sway components.Sway)) {
	query := g.filter.Query()
	for query.Next() {
		pos, plant, sway := query.Get()
		fn(*pos, *plant, *sway)
	}
}

// PlantCount returns the number of plants one player has grown.
func (g *Garden) PlantCount(playerIdx int) int {
	if playerIdx < 0 || playerIdx >= len(g.counts) {
		return 0
	}
	return g.counts[playerIdx]
}

func (g *Garden) plant(playerIdx int, plot Plot) {
	pos := components.Position{
		X: plot.X + g.rng.Float32()*plot.W,
		Y: plot.Y,
	}
	plant := components.Plant{PlayerIdx: uint8(playerIdx), Stage: 0}
	sway := components.Sway{
		Phase: g.rng.Float32() * 2 * math.Pi,
		Speed: 0.8 + g.rng.Float32()*0.6,
	}
	g.mapper.NewEntity(&pos, &plant, &sway)
	g.counts[playerIdx]++
}

func (g *Garden) advanceStage(playerIdx int) {
	query := g.filter.Query()
	for query.Next() {
		_, plant, _ := query.Get()
		if int(plant.PlayerIdx) == playerIdx && plant.Stage < 3 {
			plant.Stage++
		}
	}
}
