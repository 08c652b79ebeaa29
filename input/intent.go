// Package input turns device keys into game intents and holds the per-frame
// input state the session reads
package input

import (
	"github.com/lixenwraith/snake/event"
	"github.com/lixenwraith/snake/grid"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentMove            // arrows, WASD, hjkl
	IntentPause           // Space, p
	IntentStart           // Enter, n
	IntentRestart         // r
	IntentMenu            // m
	IntentQuit            // q, Esc, Ctrl+C
)

// Intent is a resolved key press
type Intent struct {
	Type      IntentType
	Direction grid.Direction // IntentMove only
}

// Event returns the button event carried by a non-move intent
func (i Intent) Event() (event.EventType, bool) {
	switch i.Type {
	case IntentPause:
		return event.EventPauseKey, true
	case IntentStart:
		return event.EventStartGame, true
	case IntentRestart:
		return event.EventRestartGame, true
	case IntentMenu:
		return event.EventBackToMainMenu, true
	case IntentQuit:
		return event.EventQuit, true
	}
	return event.EventTick, false
}
