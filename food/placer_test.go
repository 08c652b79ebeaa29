package food

import (
	"errors"
	"testing"

	"github.com/lixenwraith/snake/grid"
	"github.com/lixenwraith/snake/status"
)

func TestSpawnNeverOnOccupied(t *testing.T) {
	bounds := grid.Bounds{X: 3, Y: 2}
	reg := status.NewRegistry()
	p := NewPlacer(bounds, 42, DefaultRetryBudget, reg)

	occupied := make(map[grid.Point]struct{})
	// Occupy every cell in the bottom two rows
	bounds.Each(func(c grid.Point) bool {
		if c.Y < 0 {
			occupied[c] = struct{}{}
		}
		return true
	})

	for i := 0; i < 2000; i++ {
		c, err := p.Spawn(occupied)
		if err != nil {
			t.Fatalf("Trial %d: unexpected error %v", i, err)
		}
		if _, taken := occupied[c]; taken {
			t.Fatalf("Trial %d: spawned on occupied cell %v", i, c)
		}
		if !bounds.Contains(c) {
			t.Fatalf("Trial %d: spawned out of bounds %v", i, c)
		}
	}
	if got := reg.Counter(status.FoodSpawned).Load(); got != 2000 {
		t.Errorf("Expected 2000 spawns counted, got %d", got)
	}
}

func TestSpawnCoversWholeRange(t *testing.T) {
	bounds := grid.Bounds{X: 2, Y: 1}
	p := NewPlacer(bounds, 7, DefaultRetryBudget, status.NewRegistry())

	seen := make(map[grid.Point]bool)
	for i := 0; i < 5000; i++ {
		c, err := p.Spawn(nil)
		if err != nil {
			t.Fatalf("Unexpected error %v", err)
		}
		seen[c] = true
	}
	if len(seen) != bounds.Cells() {
		t.Errorf("Expected all %d cells reachable, saw %d", bounds.Cells(), len(seen))
	}
	for _, edge := range []grid.Point{grid.P(-2, -1), grid.P(2, 1), grid.P(-2, 1), grid.P(2, -1)} {
		if !seen[edge] {
			t.Errorf("Edge cell %v never drawn", edge)
		}
	}
}

func TestSpawnFallbackFindsLastFreeCell(t *testing.T) {
	bounds := grid.Bounds{X: 4, Y: 4}
	reg := status.NewRegistry()
	p := NewPlacer(bounds, 1, 1, reg)

	target := grid.P(3, -2)
	occupied := make(map[grid.Point]struct{})
	bounds.Each(func(c grid.Point) bool {
		if c != target {
			occupied[c] = struct{}{}
		}
		return true
	})

	for i := 0; i < 20; i++ {
		c, err := p.Spawn(occupied)
		if err != nil {
			t.Fatalf("Unexpected error %v", err)
		}
		if c != target {
			t.Fatalf("Expected %v, got %v", target, c)
		}
	}
	if reg.Counter(status.FoodFallbacks).Load() == 0 {
		t.Error("Expected fallback scan to be used")
	}
}

func TestSpawnFullGrid(t *testing.T) {
	bounds := grid.Bounds{X: 1, Y: 1}
	reg := status.NewRegistry()
	p := NewPlacer(bounds, 3, 8, reg)

	occupied := make(map[grid.Point]struct{})
	bounds.Each(func(c grid.Point) bool {
		occupied[c] = struct{}{}
		return true
	})

	_, err := p.Spawn(occupied)
	if !errors.Is(err, ErrNoSpace) {
		t.Fatalf("Expected ErrNoSpace, got %v", err)
	}
	if got := reg.Counter(status.FoodRetries).Load(); got != 8 {
		t.Errorf("Expected 8 retries, got %d", got)
	}
	if got := reg.Counter(status.FoodExhausted).Load(); got != 1 {
		t.Errorf("Expected 1 exhaustion, got %d", got)
	}
}

func TestSeedDeterminism(t *testing.T) {
	bounds := grid.Bounds{X: 15, Y: 10}
	a := NewPlacer(bounds, 99, 0, status.NewRegistry())
	b := NewPlacer(bounds, 99, 0, status.NewRegistry())
	for i := 0; i < 100; i++ {
		ca, _ := a.Spawn(nil)
		cb, _ := b.Spawn(nil)
		if ca != cb {
			t.Fatalf("Draw %d diverged: %v vs %v", i, ca, cb)
		}
	}
	if a.Seed() != 99 {
		t.Errorf("Expected seed 99, got %d", a.Seed())
	}
	if NewPlacer(bounds, 0, 0, status.NewRegistry()).Seed() == 0 {
		t.Error("Expected time based seed for 0")
	}
}
