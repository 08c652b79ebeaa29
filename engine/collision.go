package engine

import "github.com/lixenwraith/snake/grid"

// Hit classifies a failed move
type Hit uint8

const (
	HitNone Hit = iota
	HitWall
	HitSelf
)

func (h Hit) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitWall:
		return "wall"
	case HitSelf:
		return "self"
	}
	return "unknown"
}

// Body is anything that can report occupied cells
type Body interface {
	Contains(p grid.Point) bool
}

// CheckCollision tests the cell the head is about to enter
// The wall check precedes the self check; every current segment counts,
// the tail included
func CheckCollision(candidate grid.Point, body Body, bounds grid.Bounds) Hit {
	if !bounds.Contains(candidate) {
		return HitWall
	}
	if body.Contains(candidate) {
		return HitSelf
	}
	return HitNone
}
