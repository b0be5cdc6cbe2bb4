package scene

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/glucodash/components"
	"github.com/pthm-cable/glucodash/game"
)

func newTestGarden() *Garden {
	return NewGarden(2, 5, rand.New(rand.NewSource(1)))
}

var testPlot = Plot{X: 0, Y: 500, W: 300}

func stagesByPlayer(g *Garden) map[int][]uint8 {
	out := make(map[int][]uint8)
	g.Each(func(_ components.Position, plant components.Plant, _ components.Sway) {
		idx := int(plant.PlayerIdx)
		out[idx] = append(out[idx], plant.Stage)
	})
	return out
}

func TestBuildEventsGrowPlantsUpToCap(t *testing.T) {
	g := newTestGarden()

	for i := 0; i < 20; i++ {
		g.Apply(0, testPlot, []game.Event{{Kind: game.EventBuild, Count: 1}})
	}

	if got := g.PlantCount(0); got != 5 {
		t.Errorf("player 0 plants = %d, want capped at 5", got)
	}
	if got := g.PlantCount(1); got != 0 {
		t.Errorf("player 1 plants = %d, want 0", got)
	}
}

func TestLevelUpAdvancesOnlyOwnPlants(t *testing.T) {
	g := newTestGarden()
	g.Apply(0, testPlot, []game.Event{{Kind: game.EventBuild, Count: 2}})
	g.Apply(1, testPlot, []game.Event{{Kind: game.EventBuild, Count: 1}})

	g.Apply(0, testPlot, []game.Event{{Kind: game.EventLevelUp, Count: 1}})

	stages := stagesByPlayer(g)
	for _, st := range stages[0] {
		if st != 1 {
			t.Errorf("player 0 plant stage = %d, want 1", st)
		}
	}
	for _, st := range stages[1] {
		if st != 0 {
			t.Errorf("player 1 plant stage = %d, want untouched 0", st)
		}
	}
}

func TestStageCapsAtThree(t *testing.T) {
	g := newTestGarden()
	g.Apply(0, testPlot, []game.Event{{Kind: game.EventBuild, Count: 1}})

	for i := 0; i < 10; i++ {
		g.Apply(0, testPlot, []game.Event{{Kind: game.EventLevelUp, Count: 1}})
	}

	for _, st := range stagesByPlayer(g)[0] {
		if st > 3 {
			t.Errorf("plant stage = %d, want capped at 3", st)
		}
	}
}

func TestResetDropsAllPlants(t *testing.T) {
	g := newTestGarden()
	g.Apply(0, testPlot, []game.Event{{Kind: game.EventBuild, Count: 3}})

	g.Reset(2)

	if got := g.PlantCount(0); got != 0 {
		t.Errorf("plants after reset = %d, want 0", got)
	}
	count := 0
	g.Each(func(_ components.Position, _ components.Plant, _ components.Sway) { count++ })
	if count != 0 {
		t.Errorf("entities after reset = %d, want 0", count)
	}
}

func TestOutOfRangePlayerIgnored(t *testing.T) {
	g := newTestGarden()
	g.Apply(7, testPlot, []game.Event{{Kind: game.EventBuild, Count: 1}})
	if got := g.PlantCount(7); got != 0 {
		t.Errorf("out-of-range player grew plants: %d", got)
	}
}
