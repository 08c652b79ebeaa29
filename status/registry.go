// Package status collects named runtime counters and labels for the game
package status

import (
	"log"
	"sync/atomic"
)

// Counter names written by the core packages
const (
	EngineTicks        = "engine.ticks"
	EngineFrames       = "engine.frames"
	SnakeFoodEaten     = "snake.food_eaten"
	SnakeDeaths        = "snake.deaths"
	FoodSpawned        = "food.spawned"
	FoodRetries        = "food.retries"
	FoodFallbacks      = "food.fallbacks"
	FoodExhausted      = "food.exhausted"
	InvalidTransitions = "fsm.invalid_transitions"
)

// Label names
const (
	SessionID = "session.id"
	FSMState  = "fsm.state"
)

// Registry is the metrics facade shared by one game session
// Components cache pointers at construction and write the atomics directly
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Counter is shorthand for Ints.Get
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Ints.Get(name)
}

// Label is shorthand for Strings.Get
func (r *Registry) Label(name string) *AtomicString {
	return r.Strings.Get(name)
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Strings.Count()
}

// Dump writes every metric to logger, one per line
func (r *Registry) Dump(logger *log.Logger) {
	r.Strings.Range(func(key string, ptr *AtomicString) {
		logger.Printf("%s=%s", key, ptr.Load())
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		logger.Printf("%s=%d", key, ptr.Load())
	})
}
