// Package food places and tracks the items the snake eats
package food

import (
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	"github.com/lixenwraith/snake/grid"
	"github.com/lixenwraith/snake/status"
)

// ErrNoSpace is returned when every legal cell is occupied
var ErrNoSpace = errors.New("food: no free cell")

// DefaultRetryBudget bounds random attempts before falling back to a scan
const DefaultRetryBudget = 256

// Placer picks uniformly random free cells inside the playfield bounds
type Placer struct {
	bounds      grid.Bounds
	rng         *rand.Rand
	seed        uint64
	retryBudget int

	spawned   *atomic.Int64
	retries   *atomic.Int64
	fallbacks *atomic.Int64
	exhausted *atomic.Int64
}

// NewPlacer creates a placer; seed 0 selects a time based seed
func NewPlacer(bounds grid.Bounds, seed uint64, retryBudget int, reg *status.Registry) *Placer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if retryBudget <= 0 {
		retryBudget = DefaultRetryBudget
	}
	return &Placer{
		bounds:      bounds,
		rng:         rand.New(rand.NewSource(seed)),
		seed:        seed,
		retryBudget: retryBudget,
		spawned:     reg.Counter(status.FoodSpawned),
		retries:     reg.Counter(status.FoodRetries),
		fallbacks:   reg.Counter(status.FoodFallbacks),
		exhausted:   reg.Counter(status.FoodExhausted),
	}
}

// Seed returns the effective RNG seed
func (p *Placer) Seed() uint64 {
	return p.seed
}

// Bounds returns the placement area
func (p *Placer) Bounds() grid.Bounds {
	return p.bounds
}

// Spawn returns a free cell drawn uniformly from the bounds
// Random draws that land on occupied cells are retried up to the budget, after
// which a uniform pick among all free cells is made by exhaustive scan
func (p *Placer) Spawn(occupied map[grid.Point]struct{}) (grid.Point, error) {
	for i := 0; i < p.retryBudget; i++ {
		c := p.random()
		if _, taken := occupied[c]; !taken {
			p.spawned.Add(1)
			return c, nil
		}
		p.retries.Add(1)
	}

	p.fallbacks.Add(1)
	free := make([]grid.Point, 0, max(p.bounds.Cells()-len(occupied), 0))
	p.bounds.Each(func(c grid.Point) bool {
		if _, taken := occupied[c]; !taken {
			free = append(free, c)
		}
		return true
	})
	if len(free) == 0 {
		p.exhausted.Add(1)
		return grid.Point{}, ErrNoSpace
	}

	p.spawned.Add(1)
	return free[p.rng.Intn(len(free))], nil
}

func (p *Placer) random() grid.Point {
	x := int32(p.rng.Int63n(int64(p.bounds.Columns()))) - p.bounds.X
	y := int32(p.rng.Int63n(int64(p.bounds.Rows()))) - p.bounds.Y
	return grid.Point{X: x, Y: y}
}
