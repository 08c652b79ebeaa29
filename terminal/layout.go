package terminal

import "github.com/lixenwraith/snake/grid"

// CellWidth is the number of screen columns per playfield cell
// Terminal glyphs are roughly twice as tall as wide
const CellWidth = 2

// hudRows is the space reserved under the playfield for the status line
const hudRows = 1

// Layout maps playfield cells to screen coordinates
// Screen rows grow downward, playfield Y grows upward
type Layout struct {
	Bounds grid.Bounds
	Left   int // column of the left border
	Top    int // row of the top border
}

// NewLayout centres the bordered playfield on a screen of the given size
func NewLayout(b grid.Bounds, screenW, screenH int) Layout {
	l := Layout{Bounds: b}
	l.Left = max((screenW-l.Width())/2, 0)
	l.Top = max((screenH-l.Height()-hudRows)/2, 0)
	return l
}

// Width is the playfield width including both borders
func (l Layout) Width() int {
	return l.Bounds.Columns()*CellWidth + 2
}

// Height is the playfield height including both borders
func (l Layout) Height() int {
	return l.Bounds.Rows() + 2
}

// Fits reports whether the playfield and HUD fit on the screen
func (l Layout) Fits(screenW, screenH int) bool {
	return l.Width() <= screenW && l.Height()+hudRows <= screenH
}

// Cell returns the screen position of the left column of p
func (l Layout) Cell(p grid.Point) (x, y int) {
	x = l.Left + 1 + int(p.X+l.Bounds.X)*CellWidth
	y = l.Top + 1 + int(l.Bounds.Y-p.Y)
	return x, y
}

// HUDRow is the screen row of the status line
func (l Layout) HUDRow() int {
	return l.Top + l.Height()
}

// Centre returns the middle of the playfield
func (l Layout) Centre() (x, y int) {
	return l.Left + l.Width()/2, l.Top + l.Height()/2
}
