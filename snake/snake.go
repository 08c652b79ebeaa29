// Package snake holds the snake body: an ordered sequence of segments, head
// first, stored in an index-linked arena so that advancing is O(1) and keeps
// each segment's identity stable
package snake

import (
	"fmt"

	"github.com/lixenwraith/snake/grid"
)

const none = -1

// DefaultLayout is the body laid out on every (re)start, head first
var DefaultLayout = []grid.Point{{X: -5, Y: 0}, {X: -6, Y: 0}, {X: -7, Y: 0}}

// DefaultFacing is the heading on every (re)start
const DefaultFacing = grid.Right

// CheckLayout fails when a layout cell or the first move from it leaves b
func CheckLayout(layout []grid.Point, facing grid.Direction, b grid.Bounds) error {
	for _, p := range layout {
		if !b.Contains(p) {
			return fmt.Errorf("start cell %v outside bounds ±%d,±%d", p, b.X, b.Y)
		}
	}
	if len(layout) > 0 {
		if next := grid.Next(layout[0], facing); !b.Contains(next) {
			return fmt.Errorf("first move to %v leaves bounds ±%d,±%d", next, b.X, b.Y)
		}
	}
	return nil
}

// Segment is one body cell
// ID is the arena slot and stays with the segment when it is recycled by Advance
type Segment struct {
	ID  int
	Pos grid.Point
}

type node struct {
	pos  grid.Point
	prev int
	next int
}

// Snake owns its facing and body; it has no reference to food or to the session
type Snake struct {
	facing grid.Direction
	nodes  []node
	head   int
	tail   int
}

// New builds a snake from a head-first layout
// An empty layout is a programmer error
func New(layout []grid.Point, facing grid.Direction) *Snake {
	if len(layout) == 0 {
		panic("snake: empty layout")
	}

	s := &Snake{
		facing: facing,
		nodes:  make([]node, 0, len(layout)*4),
		head:   none,
		tail:   none,
	}
	for i := len(layout) - 1; i >= 0; i-- {
		s.Grow(layout[i])
	}
	return s
}

// Facing returns the current heading
func (s *Snake) Facing() grid.Direction {
	return s.facing
}

// Steer changes the heading unless d reverses it into the neck
// Re-selecting the current heading is accepted and changes nothing
func (s *Snake) Steer(d grid.Direction) bool {
	if d == s.facing.Opposite() {
		return false
	}
	s.facing = d
	return true
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return len(s.nodes)
}

// Head returns the first segment
func (s *Snake) Head() Segment {
	return Segment{ID: s.head, Pos: s.nodes[s.head].pos}
}

// Tail returns the last segment
func (s *Snake) Tail() Segment {
	return Segment{ID: s.tail, Pos: s.nodes[s.tail].pos}
}

// Candidate returns the cell the head would move into on the next tick
func (s *Snake) Candidate() grid.Point {
	return grid.Next(s.nodes[s.head].pos, s.facing)
}

// Grow prepends a new head; no segment is removed
func (s *Snake) Grow(newHead grid.Point) Segment {
	id := len(s.nodes)
	s.nodes = append(s.nodes, node{pos: newHead, prev: none, next: s.head})
	if s.head != none {
		s.nodes[s.head].prev = id
	} else {
		s.tail = id
	}
	s.head = id
	return Segment{ID: id, Pos: newHead}
}

// Advance relabels the tail slot with newHead and moves it to the front
// Net effect equals dropping the tail and inserting a new head
func (s *Snake) Advance(newHead grid.Point) Segment {
	id := s.tail
	if id == s.head {
		s.nodes[id].pos = newHead
		return Segment{ID: id, Pos: newHead}
	}

	n := &s.nodes[id]
	s.tail = n.prev
	s.nodes[s.tail].next = none

	n.pos = newHead
	n.prev = none
	n.next = s.head
	s.nodes[s.head].prev = id
	s.head = id
	return Segment{ID: id, Pos: newHead}
}

// Contains reports whether any segment occupies p
func (s *Snake) Contains(p grid.Point) bool {
	for i := s.head; i != none; i = s.nodes[i].next {
		if s.nodes[i].pos == p {
			return true
		}
	}
	return false
}

// Each visits segments head to tail, stopping when fn returns false
func (s *Snake) Each(fn func(Segment) bool) {
	for i := s.head; i != none; i = s.nodes[i].next {
		if !fn(Segment{ID: i, Pos: s.nodes[i].pos}) {
			return
		}
	}
}

// Segments returns the body head first
func (s *Snake) Segments() []Segment {
	out := make([]Segment, 0, len(s.nodes))
	s.Each(func(seg Segment) bool {
		out = append(out, seg)
		return true
	})
	return out
}

// Points returns the body coordinates head first
func (s *Snake) Points() []grid.Point {
	out := make([]grid.Point, 0, len(s.nodes))
	s.Each(func(seg Segment) bool {
		out = append(out, seg.Pos)
		return true
	})
	return out
}

// Occupied adds every body cell to set
func (s *Snake) Occupied(set map[grid.Point]struct{}) {
	s.Each(func(seg Segment) bool {
		set[seg.Pos] = struct{}{}
		return true
	})
}
