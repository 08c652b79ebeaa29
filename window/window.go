// Package window is the ebiten frontend: sprites are drawn at their continuous
// positions with the origin at the window centre, and menus are clickable
package window

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/snake/clock"
	"github.com/lixenwraith/snake/engine"
	"github.com/lixenwraith/snake/event"
	"github.com/lixenwraith/snake/input"
	"github.com/lixenwraith/snake/render"
)

var (
	bgColor     = color.RGBA{24, 24, 28, 255}
	borderColor = color.RGBA{40, 40, 48, 255}
	headColor   = color.RGBA{80, 220, 120, 255}
	bodyColor   = color.RGBA{60, 180, 100, 255}
	foodColor   = color.RGBA{230, 70, 70, 255}
	buttonColor = color.RGBA{60, 60, 80, 255}
	hoverColor  = color.RGBA{90, 90, 120, 255}
)

// Debug font metrics used to centre text
const (
	glyphWidth = 6
	lineHeight = 16
)

// keyBinding names an ebiten key the way input.KeyTable expects
type keyBinding struct {
	key  ebiten.Key
	name string
	r    rune
}

var watchedKeys = []keyBinding{
	{ebiten.KeyArrowUp, input.KeyUp, 0},
	{ebiten.KeyArrowDown, input.KeyDown, 0},
	{ebiten.KeyArrowLeft, input.KeyLeft, 0},
	{ebiten.KeyArrowRight, input.KeyRight, 0},
	{ebiten.KeyEnter, input.KeyEnter, 0},
	{ebiten.KeyEscape, input.KeyEscape, 0},
	{ebiten.KeySpace, input.KeySpace, ' '},
	{ebiten.KeyW, "", 'w'},
	{ebiten.KeyA, "", 'a'},
	{ebiten.KeyS, "", 's'},
	{ebiten.KeyD, "", 'd'},
	{ebiten.KeyH, "", 'h'},
	{ebiten.KeyJ, "", 'j'},
	{ebiten.KeyK, "", 'k'},
	{ebiten.KeyL, "", 'l'},
	{ebiten.KeyP, "", 'p'},
	{ebiten.KeyN, "", 'n'},
	{ebiten.KeyR, "", 'r'},
	{ebiten.KeyM, "", 'm'},
	{ebiten.KeyQ, "", 'q'},
}

// button is a clickable rectangle in screen pixels
type button struct {
	label      string
	x, y, w, h float32
	event      event.EventType
}

func (b button) contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= b.x && fx < b.x+b.w && fy >= b.y && fy < b.y+b.h
}

// Game implements ebiten.Game for one session
type Game struct {
	session *engine.Session
	scene   *render.Scene
	keys    *input.KeyTable
	input   *input.State
	clock   *clock.FrameClock

	width, height float32
	buttons       map[engine.AppState][]button
}

// New creates the window game; the window is one cell larger than the
// playfield in each axis so border cells keep a half-cell margin
func New(session *engine.Session, scene *render.Scene) *Game {
	cell := session.CellSize()
	b := session.Bounds()
	g := &Game{
		session: session,
		scene:   scene,
		keys:    input.DefaultKeyTable(),
		input:   input.NewState(),
		clock:   clock.NewFrameClock(clock.MonotonicTimeProvider{}),
		width:   float32(b.Columns()) * cell,
		height:  float32(b.Rows()) * cell,
	}
	g.buttons = map[engine.AppState][]button{
		engine.AppMainMenu: g.column("Start", event.EventStartGame, "Quit", event.EventQuit),
		engine.AppGameOver: g.column("Restart", event.EventRestartGame, "Main menu", event.EventBackToMainMenu, "Quit", event.EventQuit),
	}
	return g
}

// column lays out label/event pairs as a centred stack of buttons
func (g *Game) column(pairs ...any) []button {
	const w, h, gap = 160, 32, 12
	n := len(pairs) / 2
	top := g.height/2 - float32(n*(h+gap)-gap)/2 + h
	out := make([]button, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, button{
			label: pairs[2*i].(string),
			event: pairs[2*i+1].(event.EventType),
			x:     g.width/2 - w/2,
			y:     top + float32(i*(h+gap)),
			w:     w,
			h:     h,
		})
	}
	return out
}

// Run opens the window and blocks until the session quits or the window closes
func (g *Game) Run() error {
	ebiten.SetWindowSize(int(g.width), int(g.height))
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	log.Printf("window: closed in %s", g.session.State())
	return nil
}

func (g *Game) Update() error {
	g.pollKeys()
	g.pollMouse()

	g.session.Update(g.clock.Delta(), g.input)

	if g.session.Quitting() {
		return ebiten.Termination
	}
	return nil
}

// pollKeys holds directions while their keys are down; every other binding
// acts on the press edge
func (g *Game) pollKeys() {
	g.input.ReleaseAll()
	for _, kb := range watchedKeys {
		in, ok := g.keys.Lookup(kb.name, kb.r)
		if !ok {
			continue
		}
		if in.Type == input.IntentMove {
			if ebiten.IsKeyPressed(kb.key) {
				g.input.Hold(in.Direction)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(kb.key) {
			g.input.Apply(in)
		}
	}
}

func (g *Game) pollMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	for _, b := range g.buttons[g.session.AppState()] {
		if g.session.CanFire(b.event) && b.contains(x, y) {
			g.input.Push(b.event)
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	vector.StrokeRect(screen, 0.5, 0.5, g.width-1, g.height-1, 1, borderColor, false)

	cell := g.session.CellSize()
	head := g.session.Snake().Head().ID
	for _, e := range g.scene.Snapshot() {
		// Origin at the window centre, Y up
		x := g.width/2 + e.Pos.X - cell/2
		y := g.height/2 - e.Pos.Y - cell/2
		switch e.Sprite.Kind {
		case render.KindSegment:
			c := bodyColor
			if e.Sprite.ID == head {
				c = headColor
			}
			vector.DrawFilledRect(screen, x+1, y+1, cell-2, cell-2, c, false)
		case render.KindFood:
			vector.DrawFilledCircle(screen, x+cell/2, y+cell/2, cell/3, foodColor, true)
		}
	}

	view := g.session.View()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d | Record: %d | %s", view.Score, view.Record, view.Path), 8, 4)

	switch view.App {
	case engine.AppMainMenu:
		g.printCentred(screen, "SNAKE", g.height/2-3*lineHeight)
		g.printCentred(screen, "Arrows/WASD/hjkl move, Space pause", g.height/2-2*lineHeight)
	case engine.AppInGame:
		if view.Game == engine.GamePaused {
			g.printCentred(screen, "PAUSED - Space to resume, M for menu", g.height/2)
		}
	case engine.AppGameOver:
		title := "GAME OVER"
		if view.Game == engine.GameFail {
			title = "YOU FAILED"
		}
		g.printCentred(screen, title, g.height/2-4*lineHeight)
		g.printCentred(screen, fmt.Sprintf("Score %d  Record %d", view.Score, view.Record), g.height/2-3*lineHeight)
	}
	g.drawButtons(screen, view.App)
}

func (g *Game) drawButtons(screen *ebiten.Image, app engine.AppState) {
	mx, my := ebiten.CursorPosition()
	for _, b := range g.buttons[app] {
		if !g.session.CanFire(b.event) {
			continue
		}
		c := buttonColor
		if b.contains(mx, my) {
			c = hoverColor
		}
		vector.DrawFilledRect(screen, b.x, b.y, b.w, b.h, c, false)
		tx := int(b.x+b.w/2) - len(b.label)*glyphWidth/2
		ty := int(b.y+b.h/2) - lineHeight/2
		ebitenutil.DebugPrintAt(screen, b.label, tx, ty)
	}
}

func (g *Game) printCentred(screen *ebiten.Image, text string, y float32) {
	x := int(g.width/2) - len(text)*glyphWidth/2
	ebitenutil.DebugPrintAt(screen, text, x, int(y))
}

// Layout keeps the logical size fixed; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.width), int(g.height)
}
