package input

import (
	"github.com/lixenwraith/snake/event"
	"github.com/lixenwraith/snake/grid"
)

// State is the input snapshot handed to the session each frame
// Directions are level-triggered; pause is a latch the session clears once
// handled so a held key toggles only once; buttons queue as events
type State struct {
	held   [len(grid.Directions)]bool
	pause  bool
	Events *event.EventQueue
}

// NewState creates an empty state with its own event queue
func NewState() *State {
	return &State{Events: event.NewEventQueue()}
}

// Hold marks d as pressed
func (s *State) Hold(d grid.Direction) {
	s.held[d] = true
}

// Release marks d as released
func (s *State) Release(d grid.Direction) {
	s.held[d] = false
}

// ReleaseAll clears every direction
func (s *State) ReleaseAll() {
	s.held = [len(grid.Directions)]bool{}
}

// Held reports whether d is pressed
func (s *State) Held(d grid.Direction) bool {
	return s.held[d]
}

// LatchPause records a pause press; repeated presses before ResetPause collapse
func (s *State) LatchPause() {
	s.pause = true
}

// PauseRequested reports the latch
func (s *State) PauseRequested() bool {
	return s.pause
}

// ResetPause clears the latch
func (s *State) ResetPause() {
	s.pause = false
}

// Push queues a button event
func (s *State) Push(et event.EventType) {
	s.Events.Push(event.GameEvent{Type: et})
}

// Apply routes an intent: moves hold a direction, pause sets the latch,
// everything else is queued
func (s *State) Apply(in Intent) {
	switch in.Type {
	case IntentNone:
	case IntentMove:
		s.Hold(in.Direction)
	case IntentPause:
		s.LatchPause()
	default:
		if et, ok := in.Event(); ok {
			s.Push(et)
		}
	}
}
