// Package render defines the draw-position sink the session pushes sprite
// updates to, and an in-memory scene frontends draw from
package render

import (
	"fmt"

	"github.com/lixenwraith/snake/grid"
)

// Kind separates sprite ID spaces
type Kind uint8

const (
	KindSegment Kind = iota
	KindFood
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindFood:
		return "food"
	}
	return "unknown"
}

// Sprite identifies one drawable entity
type Sprite struct {
	Kind Kind
	ID   int
}

func (s Sprite) String() string {
	return fmt.Sprintf("%s#%d", s.Kind, s.ID)
}

// Sink receives position changes; only mutated sprites are pushed
type Sink interface {
	Place(s Sprite, pos grid.Vec3)
	Remove(s Sprite)
	Clear()
}
