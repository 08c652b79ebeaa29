package render

import (
	"sort"
	"sync"

	"github.com/lixenwraith/snake/grid"
)

// Entry is a sprite with its current position
type Entry struct {
	Sprite Sprite
	Pos    grid.Vec3
}

// Scene is a Sink that keeps the latest position of every sprite
// It also counts Place calls so tests can verify incremental updates
type Scene struct {
	mu      sync.RWMutex
	sprites map[Sprite]grid.Vec3
	places  int
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{sprites: make(map[Sprite]grid.Vec3)}
}

func (sc *Scene) Place(s Sprite, pos grid.Vec3) {
	sc.mu.Lock()
	sc.sprites[s] = pos
	sc.places++
	sc.mu.Unlock()
}

func (sc *Scene) Remove(s Sprite) {
	sc.mu.Lock()
	delete(sc.sprites, s)
	sc.mu.Unlock()
}

func (sc *Scene) Clear() {
	sc.mu.Lock()
	clear(sc.sprites)
	sc.mu.Unlock()
}

// Get returns the position of s
func (sc *Scene) Get(s Sprite) (grid.Vec3, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	pos, ok := sc.sprites[s]
	return pos, ok
}

// Len returns the number of sprites
func (sc *Scene) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.sprites)
}

// Count returns the number of sprites of kind k
func (sc *Scene) Count(k Kind) int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	n := 0
	for s := range sc.sprites {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// TakePlaces returns the number of Place calls since the previous call and resets it
func (sc *Scene) TakePlaces() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	n := sc.places
	sc.places = 0
	return n
}

// Snapshot returns all sprites ordered by kind then ID
func (sc *Scene) Snapshot() []Entry {
	sc.mu.RLock()
	out := make([]Entry, 0, len(sc.sprites))
	for s, pos := range sc.sprites {
		out = append(out, Entry{Sprite: s, Pos: pos})
	}
	sc.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Sprite.Kind != out[j].Sprite.Kind {
			return out[i].Sprite.Kind < out[j].Sprite.Kind
		}
		return out[i].Sprite.ID < out[j].Sprite.ID
	})
	return out
}
