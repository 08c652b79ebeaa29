// Package event names the triggers that drive the game state machine
package event

// EventType identifies a trigger
type EventType int

const (
	// EventTick is the implicit per-frame trigger for automatic transitions
	EventTick EventType = iota

	// EventStartGame leaves the main menu
	// Trigger: menu button, Enter
	EventStartGame

	// EventRestartGame discards the round and starts over from any state
	// Trigger: restart button, r
	EventRestartGame

	// EventBackToMainMenu returns to the menu from game over or pause
	// Trigger: menu button, m
	EventBackToMainMenu

	// EventPauseKey toggles pause while in game
	// Trigger: Space, p
	EventPauseKey

	// EventCollision reports a wall or self hit
	// Trigger: session step only
	EventCollision

	// EventQuit asks the frontend to terminate; never reaches the state machine
	// Trigger: quit button, q, Esc
	EventQuit
)

// GameEvent is one queued trigger
type GameEvent struct {
	Type EventType
}

// Internal reports whether et is generated by the session rather than a player
// An internal event that matches no transition is a programmer error
func (et EventType) Internal() bool {
	return et == EventTick || et == EventCollision
}

func (et EventType) String() string {
	return GetEventName(et)
}
