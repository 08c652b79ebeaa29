package terminal

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/snake/clock"
	"github.com/lixenwraith/snake/engine"
	"github.com/lixenwraith/snake/grid"
	"github.com/lixenwraith/snake/input"
	"github.com/lixenwraith/snake/render"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		wantName string
		wantRune rune
	}{
		{"Arrow up", tcell.KeyUp, 0, input.KeyUp, 0},
		{"Arrow right", tcell.KeyRight, 0, input.KeyRight, 0},
		{"Enter", tcell.KeyEnter, 0, input.KeyEnter, 0},
		{"Escape", tcell.KeyEscape, 0, input.KeyEscape, 0},
		{"Ctrl-C", tcell.KeyCtrlC, 0, input.KeyCtrlC, 0},
		{"Space", tcell.KeyRune, ' ', input.KeySpace, ' '},
		{"Lower rune", tcell.KeyRune, 'w', "", 'w'},
		{"Upper rune folds", tcell.KeyRune, 'W', "", 'w'},
		{"Unbound special", tcell.KeyF1, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, r := KeyName(tt.key, tt.r)
			if name != tt.wantName || r != tt.wantRune {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tt.wantName, tt.wantRune, name, r)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	kt := input.DefaultKeyTable()

	in, ok := Translate(kt, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if !ok || in.Type != input.IntentMove || in.Direction != grid.Left {
		t.Errorf("Expected move left, got %+v ok=%v", in, ok)
	}

	in, ok = Translate(kt, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !ok || in.Type != input.IntentPause {
		t.Errorf("Expected pause from space, got %+v ok=%v", in, ok)
	}

	in, ok = Translate(kt, tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone))
	if !ok || in.Type != input.IntentMove || in.Direction != grid.Down {
		t.Errorf("Expected move down from 'S', got %+v ok=%v", in, ok)
	}

	if _, ok := Translate(kt, tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); ok {
		t.Error("Expected 'z' to be unbound")
	}
}

func TestLayout(t *testing.T) {
	b := grid.Bounds{X: 15, Y: 10}
	l := NewLayout(b, 80, 30)

	if l.Width() != 64 || l.Height() != 23 {
		t.Fatalf("Expected 64x23, got %dx%d", l.Width(), l.Height())
	}
	if l.Left != 8 || l.Top != 3 {
		t.Errorf("Expected origin (8,3), got (%d,%d)", l.Left, l.Top)
	}

	// Top-left cell sits just inside the border
	x, y := l.Cell(grid.P(-15, 10))
	if x != l.Left+1 || y != l.Top+1 {
		t.Errorf("Expected (%d,%d), got (%d,%d)", l.Left+1, l.Top+1, x, y)
	}

	// Up is up on screen
	_, y0 := l.Cell(grid.P(0, 0))
	_, y1 := l.Cell(grid.P(0, 1))
	if y1 != y0-1 {
		t.Errorf("Expected row %d for y+1, got %d", y0-1, y1)
	}

	// Cells are CellWidth columns apart
	x0, _ := l.Cell(grid.P(0, 0))
	x1, _ := l.Cell(grid.P(1, 0))
	if x1-x0 != CellWidth {
		t.Errorf("Expected column step %d, got %d", CellWidth, x1-x0)
	}

	if !l.Fits(80, 30) {
		t.Error("Expected layout to fit 80x30")
	}
	if l.Fits(40, 30) {
		t.Error("Expected layout not to fit 40x30")
	}

	small := NewLayout(b, 10, 5)
	if small.Left != 0 || small.Top != 0 {
		t.Errorf("Expected clamped origin, got (%d,%d)", small.Left, small.Top)
	}
}

func newTestFrontend(t *testing.T, w, h int) (*Frontend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	scene := render.NewScene()
	session, err := engine.NewSession(engine.Options{
		Seed:      1,
		FoodDelay: time.Hour,
		Render:    scene,
		Logger:    log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	provider := clock.NewMockTimeProvider(time.Unix(0, 0))
	return New(screen, session, scene, provider), screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func TestFrontendDrawsMenu(t *testing.T) {
	f, screen := newTestFrontend(t, 80, 30)
	f.Draw()

	cx, cy := f.Layout().Centre()
	title := "SNAKE"
	x := cx - len(title)/2
	for i, want := range title {
		if got := runeAt(screen, x+i, cy-1); got != want {
			t.Fatalf("Expected %q at column %d, got %q", want, x+i, got)
		}
	}

	if got := runeAt(screen, f.Layout().Left, f.Layout().Top); got != '┌' {
		t.Errorf("Expected border corner, got %q", got)
	}
	t.Logf("✓ Menu panel and border drawn")
}

func TestFrontendPlaysFromKeys(t *testing.T) {
	f, screen := newTestFrontend(t, 80, 30)

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	f.Frame(0)
	if f.session.AppState() != engine.AppInGame || f.session.GameState() != engine.GamePlaying {
		t.Fatalf("Expected InGame/Playing, got %s/%s", f.session.AppState(), f.session.GameState())
	}

	head := f.session.Snake().Head().Pos
	x, y := f.Layout().Cell(head)
	if got := runeAt(screen, x, y); got != segmentGlyph {
		t.Errorf("Expected head glyph at %v, got %q", head, got)
	}
	if got := runeAt(screen, x+1, y); got != segmentGlyph {
		t.Errorf("Expected double-width head, got %q", got)
	}

	f.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	f.Frame(engine.DefaultMoveInterval)

	want := grid.P(head.X, head.Y+1)
	if got := f.session.Snake().Head().Pos; got != want {
		t.Fatalf("Expected head at %v, got %v", want, got)
	}
	if f.Input().Held(grid.Up) {
		t.Error("Expected direction released after the frame")
	}

	x, y = f.Layout().Cell(want)
	if got := runeAt(screen, x, y); got != segmentGlyph {
		t.Errorf("Expected head glyph at %v, got %q", want, got)
	}
	t.Logf("✓ Key press steered the snake and the move was drawn")
}

func TestFrontendPauseAndQuit(t *testing.T) {
	f, _ := newTestFrontend(t, 80, 30)

	f.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	f.Frame(0)
	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	f.Frame(0)
	if f.session.GameState() != engine.GamePaused {
		t.Fatalf("Expected Paused, got %s", f.session.GameState())
	}

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	f.Frame(0)
	if !f.session.Quitting() {
		t.Error("Expected session to be quitting")
	}
}

func TestFrontendTooSmall(t *testing.T) {
	f, screen := newTestFrontend(t, 80, 30)

	screen.SetSize(20, 10)
	f.HandleEvent(tcell.NewEventResize(20, 10))
	f.Draw()

	if got := runeAt(screen, 0, 0); got != 't' {
		t.Errorf("Expected size warning, got %q", got)
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	}
	events := make(chan tcell.Event, 2)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		pumpEvents(poll, events, done)
		close(finished)
	}()

	// Nobody reads past the buffer; the pump must be blocked on send
	<-events
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Expected pump to exit after done closed")
	}
}

func TestPumpEventsStopsOnNil(t *testing.T) {
	n := 0
	poll := func() tcell.Event {
		n++
		if n > 3 {
			return nil
		}
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	}
	events := make(chan tcell.Event, 10)
	pumpEvents(poll, events, make(chan struct{}))
	if len(events) != 3 {
		t.Errorf("Expected 3 forwarded events, got %d", len(events))
	}
}
