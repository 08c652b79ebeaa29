package food

import (
	"fmt"
	"time"

	"github.com/lixenwraith/snake/clock"
	"github.com/lixenwraith/snake/grid"
)

// Policy decides when the countdown re-arms
type Policy uint8

const (
	// Single keeps at most one item; the countdown restarts on consumption
	Single Policy = iota
	// Periodic spawns on every countdown period up to a cap
	Periodic
)

func (p Policy) String() string {
	switch p {
	case Single:
		return "single"
	case Periodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config name to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "single":
		return Single, nil
	case "periodic":
		return Periodic, nil
	}
	return Single, fmt.Errorf("unknown food policy %q", s)
}

// Item is one piece of food; ID is its sprite identity
type Item struct {
	ID  int
	Pos grid.Point
}

// Occupier reports the cells that food must avoid
type Occupier interface {
	Occupied(set map[grid.Point]struct{})
}

// Field holds the active items and the spawn countdown
type Field struct {
	placer   *Placer
	timer    *clock.Timer
	policy   Policy
	maxItems int

	items  []Item
	nextID int
	// stalled is set after ErrNoSpace; cleared by Consume or Reset
	stalled bool
}

// NewField creates a field whose countdown is already armed
func NewField(placer *Placer, delay time.Duration, policy Policy, maxItems int) *Field {
	mode := clock.Once
	if policy == Periodic {
		mode = clock.Repeating
	}
	if policy == Single || maxItems < 1 {
		maxItems = 1
	}
	return &Field{
		placer:   placer,
		timer:    clock.NewTimer(delay, mode),
		policy:   policy,
		maxItems: maxItems,
	}
}

// Policy returns the configured spawn policy
func (f *Field) Policy() Policy {
	return f.policy
}

// Countdown exposes the spawn timer for pause control
func (f *Field) Countdown() *clock.Timer {
	return f.timer
}

// Tick advances the countdown and spawns when it fires
// ok is false when nothing was spawned; err is ErrNoSpace when the grid is full
func (f *Field) Tick(dt time.Duration, body Occupier) (item Item, ok bool, err error) {
	if f.stalled || !f.timer.Tick(dt) {
		return Item{}, false, nil
	}
	if len(f.items) >= f.maxItems {
		return Item{}, false, nil
	}

	occupied := make(map[grid.Point]struct{})
	body.Occupied(occupied)
	for _, it := range f.items {
		occupied[it.Pos] = struct{}{}
	}

	pos, err := f.placer.Spawn(occupied)
	if err != nil {
		f.stalled = true
		return Item{}, false, err
	}

	return f.Put(pos), true, nil
}

// Put adds an item at p directly, bypassing the placer and the countdown
// Used for scripted layouts; the caller keeps p off the body
func (f *Field) Put(p grid.Point) Item {
	item := Item{ID: f.nextID, Pos: p}
	f.nextID++
	f.items = append(f.items, item)
	return item
}

// At returns the item at p, if any
func (f *Field) At(p grid.Point) (Item, bool) {
	for _, it := range f.items {
		if it.Pos == p {
			return it, true
		}
	}
	return Item{}, false
}

// Consume removes the item with id and re-arms the countdown under Single
func (f *Field) Consume(id int) (Item, bool) {
	for i, it := range f.items {
		if it.ID != id {
			continue
		}
		f.items = append(f.items[:i], f.items[i+1:]...)
		f.stalled = false
		if f.policy == Single {
			f.timer.Reset()
		}
		return it, true
	}
	return Item{}, false
}

// Items returns a copy of the active items
func (f *Field) Items() []Item {
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of active items
func (f *Field) Len() int {
	return len(f.items)
}

// Clear drops all items without touching the countdown
func (f *Field) Clear() {
	f.items = f.items[:0]
}

// Reset clears items and re-arms the countdown for a new round
func (f *Field) Reset() {
	f.Clear()
	f.stalled = false
	f.timer.Reset()
}

// Stalled reports whether spawning stopped after ErrNoSpace
func (f *Field) Stalled() bool {
	return f.stalled
}
