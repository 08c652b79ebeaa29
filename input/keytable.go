package input

import "github.com/lixenwraith/snake/grid"

// Named non-printable keys; frontends translate their key codes to these
const (
	KeyUp     = "Up"
	KeyDown   = "Down"
	KeyLeft   = "Left"
	KeyRight  = "Right"
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
	KeyCtrlC  = "CtrlC"
	KeySpace  = "Space"
)

// KeyTable maps keys to intents
type KeyTable struct {
	SpecialKeys map[string]Intent
	Runes       map[rune]Intent
}

func move(d grid.Direction) Intent {
	return Intent{Type: IntentMove, Direction: d}
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[string]Intent{
			KeyUp:     move(grid.Up),
			KeyDown:   move(grid.Down),
			KeyLeft:   move(grid.Left),
			KeyRight:  move(grid.Right),
			KeyEnter:  {Type: IntentStart},
			KeySpace:  {Type: IntentPause},
			KeyEscape: {Type: IntentQuit},
			KeyCtrlC:  {Type: IntentQuit},
		},
		Runes: map[rune]Intent{
			'w': move(grid.Up), 'a': move(grid.Left), 's': move(grid.Down), 'd': move(grid.Right),
			'k': move(grid.Up), 'h': move(grid.Left), 'j': move(grid.Down), 'l': move(grid.Right),
			' ': {Type: IntentPause},
			'p': {Type: IntentPause},
			'n': {Type: IntentStart},
			'r': {Type: IntentRestart},
			'm': {Type: IntentMenu},
			'q': {Type: IntentQuit},
		},
	}
}

// Lookup resolves a named key first, then a rune
func (kt *KeyTable) Lookup(name string, r rune) (Intent, bool) {
	if name != "" {
		if in, ok := kt.SpecialKeys[name]; ok {
			return in, true
		}
	}
	if r != 0 {
		in, ok := kt.Runes[r]
		return in, ok
	}
	return Intent{}, false
}
