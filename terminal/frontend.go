// Package terminal is the tcell frontend: it polls keys into input.State,
// drives the session from a fixed ticker and draws the scene as text
package terminal

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/clock"
	"github.com/lixenwraith/snake/core"
	"github.com/lixenwraith/snake/engine"
	"github.com/lixenwraith/snake/grid"
	"github.com/lixenwraith/snake/input"
	"github.com/lixenwraith/snake/render"
)

// FrameInterval is the ticker period, about 60 FPS
const FrameInterval = 16 * time.Millisecond

// Glyphs
const (
	segmentGlyph = '█'
	foodGlyph    = '●'
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Frontend owns the screen for one session
type Frontend struct {
	screen  tcell.Screen
	session *engine.Session
	scene   *render.Scene
	keys    *input.KeyTable
	input   *input.State
	clock   *clock.FrameClock
	layout  Layout
}

// NewScreen creates and initializes the terminal screen and registers its
// teardown with the crash handler
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	core.RegisterCleanup(screen.Fini)
	return screen, nil
}

// New binds an initialized screen to a session whose render sink is scene
func New(screen tcell.Screen, session *engine.Session, scene *render.Scene, provider clock.TimeProvider) *Frontend {
	if provider == nil {
		provider = clock.MonotonicTimeProvider{}
	}
	f := &Frontend{
		screen:  screen,
		session: session,
		scene:   scene,
		keys:    input.DefaultKeyTable(),
		input:   input.NewState(),
		clock:   clock.NewFrameClock(provider),
	}
	f.relayout()
	return f
}

// Run polls events and renders frames until the session asks to quit
// The caller still owns the screen and must Fini it
func (f *Frontend) Run() {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() {
		pumpEvents(f.screen.PollEvent, events, done)
	})

	f.Draw()
	for {
		select {
		case ev := <-events:
			f.HandleEvent(ev)
		case <-ticker.C:
			f.Frame(f.clock.Delta())
			if f.session.Quitting() {
				log.Printf("terminal: quit after %s", f.session.State())
				return
			}
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent feeds one tcell event into the input state
func (f *Frontend) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if in, ok := Translate(f.keys, ev); ok {
			f.input.Apply(in)
		}
	case *tcell.EventResize:
		f.screen.Sync()
		f.relayout()
	}
}

// Frame advances the session by dt and redraws
// Directions are released afterwards: tcell reports presses only, so a key
// event holds its direction for exactly one frame
func (f *Frontend) Frame(dt time.Duration) {
	f.session.Update(dt, f.input)
	f.input.ReleaseAll()
	f.Draw()
}

// Input exposes the pending input state
func (f *Frontend) Input() *input.State {
	return f.input
}

// Layout returns the current screen mapping
func (f *Frontend) Layout() Layout {
	return f.layout
}

func (f *Frontend) relayout() {
	w, h := f.screen.Size()
	f.layout = NewLayout(f.session.Bounds(), w, h)
}

// Draw renders the playfield, sprites, HUD and the overlay for the current screen
func (f *Frontend) Draw() {
	f.screen.Clear()

	w, h := f.screen.Size()
	if !f.layout.Fits(w, h) {
		f.drawText(0, 0, styleAlert, fmt.Sprintf("terminal too small: need %dx%d", f.layout.Width(), f.layout.Height()+hudRows))
		f.screen.Show()
		return
	}

	view := f.session.View()
	f.drawBorder()
	f.drawSprites()
	f.drawHUD(view)

	switch view.App {
	case engine.AppMainMenu:
		f.drawPanel(styleTitle, "SNAKE", "n / Enter  start", "q  quit")
	case engine.AppInGame:
		if view.Game == engine.GamePaused {
			f.drawPanel(styleTitle, "PAUSED", "space  resume", "m  menu   r  restart")
		}
	case engine.AppGameOver:
		title := "GAME OVER"
		if view.Game == engine.GameFail {
			title = "YOU FAILED"
		}
		record := fmt.Sprintf("score %d   record %d", view.Score, view.Record)
		f.drawPanel(styleAlert, title, record, "r  restart   m  menu   q  quit")
	}

	f.screen.Show()
}

func (f *Frontend) drawBorder() {
	l := f.layout
	right := l.Left + l.Width() - 1
	bottom := l.Top + l.Height() - 1
	for x := l.Left + 1; x < right; x++ {
		f.screen.SetContent(x, l.Top, '─', nil, styleBorder)
		f.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := l.Top + 1; y < bottom; y++ {
		f.screen.SetContent(l.Left, y, '│', nil, styleBorder)
		f.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	f.screen.SetContent(l.Left, l.Top, '┌', nil, styleBorder)
	f.screen.SetContent(right, l.Top, '┐', nil, styleBorder)
	f.screen.SetContent(l.Left, bottom, '└', nil, styleBorder)
	f.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (f *Frontend) drawSprites() {
	cell := f.session.CellSize()
	head := f.session.Snake().Head().ID
	for _, e := range f.scene.Snapshot() {
		p := grid.PointAt(e.Pos, cell)
		if !f.layout.Bounds.Contains(p) {
			continue
		}
		x, y := f.layout.Cell(p)
		switch e.Sprite.Kind {
		case render.KindSegment:
			style := styleBody
			if e.Sprite.ID == head {
				style = styleHead
			}
			for i := 0; i < CellWidth; i++ {
				f.screen.SetContent(x+i, y, segmentGlyph, nil, style)
			}
		case render.KindFood:
			f.screen.SetContent(x, y, foodGlyph, nil, styleFood)
			f.screen.SetContent(x+1, y, ' ', nil, styleFood)
		}
	}
}

func (f *Frontend) drawHUD(v engine.View) {
	line := fmt.Sprintf(" score %d  record %d  length %d  %s", v.Score, v.Record, v.Length, v.Path)
	f.drawText(f.layout.Left, f.layout.HUDRow(), styleHUD, line)
}

// drawPanel writes centred lines over the playfield, title first
func (f *Frontend) drawPanel(titleStyle tcell.Style, title string, lines ...string) {
	cx, cy := f.layout.Centre()
	y := cy - (len(lines)+1)/2
	f.drawText(cx-len([]rune(title))/2, y, titleStyle, title)
	for i, line := range lines {
		f.drawText(cx-len([]rune(line))/2, y+1+i, styleDefault, line)
	}
}

func (f *Frontend) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		f.screen.SetContent(x+i, y, r, nil, style)
	}
}
