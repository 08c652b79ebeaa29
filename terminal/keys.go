package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/input"
)

var specialKeys = map[tcell.Key]string{
	tcell.KeyUp:     input.KeyUp,
	tcell.KeyDown:   input.KeyDown,
	tcell.KeyLeft:   input.KeyLeft,
	tcell.KeyRight:  input.KeyRight,
	tcell.KeyEnter:  input.KeyEnter,
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyCtrlC:  input.KeyCtrlC,
}

// KeyName translates a tcell key into the names input.KeyTable understands
// Runes are lowercased so caps lock does not disable the letter bindings
func KeyName(key tcell.Key, r rune) (string, rune) {
	if key == tcell.KeyRune {
		if r == ' ' {
			return input.KeySpace, r
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return "", r
	}
	if name, ok := specialKeys[key]; ok {
		return name, 0
	}
	return "", 0
}

// Translate resolves a key event against the table
func Translate(kt *input.KeyTable, ev *tcell.EventKey) (input.Intent, bool) {
	name, r := KeyName(ev.Key(), ev.Rune())
	return kt.Lookup(name, r)
}
