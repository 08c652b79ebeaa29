// Package engine runs one snake game: it owns the snake, the food field, the
// score and the state machine, and advances them from frame deltas
package engine

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/snake/audio"
	"github.com/lixenwraith/snake/clock"
	"github.com/lixenwraith/snake/engine/fsm"
	"github.com/lixenwraith/snake/event"
	"github.com/lixenwraith/snake/food"
	"github.com/lixenwraith/snake/grid"
	"github.com/lixenwraith/snake/input"
	"github.com/lixenwraith/snake/render"
	"github.com/lixenwraith/snake/snake"
	"github.com/lixenwraith/snake/status"
)

const (
	DefaultMoveInterval = 150 * time.Millisecond
	DefaultFoodDelay    = time.Second
	DefaultCellSize     = 30
	DefaultMaxFood      = 5
)

// DefaultBounds matches a 900x600 playfield of 30 unit cells
var DefaultBounds = grid.Bounds{X: 15, Y: 10}

// Options configures a session; zero fields take defaults
type Options struct {
	Bounds       grid.Bounds
	CellSize     float32
	MoveInterval time.Duration
	FoodDelay    time.Duration
	FoodPolicy   food.Policy
	MaxFood      int
	RetryBudget  int
	Seed         uint64
	FailState    bool

	// FSMPath overrides the embedded state graph
	FSMPath string

	Render  render.Sink
	Audio   audio.Sink
	Metrics *status.Registry
	// Logger receives session logs; nil derives one from the standard logger
	Logger *log.Logger
}

func (o *Options) applyDefaults() {
	if o.Bounds == (grid.Bounds{}) {
		o.Bounds = DefaultBounds
	}
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.MoveInterval <= 0 {
		o.MoveInterval = DefaultMoveInterval
	}
	if o.FoodDelay <= 0 {
		o.FoodDelay = DefaultFoodDelay
	}
	if o.MaxFood <= 0 {
		o.MaxFood = DefaultMaxFood
	}
	if o.Render == nil {
		o.Render = render.NewScene()
	}
	if o.Audio == nil {
		o.Audio = audio.Nop{}
	}
	if o.Metrics == nil {
		o.Metrics = status.NewRegistry()
	}
}

// Session is one running game
// Not safe for concurrent use; frontends call Update from their frame loop
type Session struct {
	id     string
	opts   Options
	logger *log.Logger

	snake     *snake.Snake
	field     *food.Field
	placer    *food.Placer
	score     Scoreboard
	moveTimer *clock.Timer
	lastHit   Hit

	machine *fsm.Machine[*Session]
	labels  map[fsm.StateID]stateLabels

	render render.Sink
	audio  audio.Sink

	quit atomic.Bool

	ticks     *atomic.Int64
	frames    *atomic.Int64
	eaten     *atomic.Int64
	deaths    *atomic.Int64
	invalid   *atomic.Int64
	stateName *status.AtomicString
}

// NewSession builds a session and enters the initial state
func NewSession(opts Options) (*Session, error) {
	opts.applyDefaults()
	if err := snake.CheckLayout(snake.DefaultLayout, snake.DefaultFacing, opts.Bounds); err != nil {
		return nil, fmt.Errorf("bounds %+v: %w", opts.Bounds, err)
	}

	id := uuid.NewString()[:8]
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), fmt.Sprintf("[session:%s] ", id), log.LstdFlags|log.Lmsgprefix)
	}

	reg := opts.Metrics
	placer := food.NewPlacer(opts.Bounds, opts.Seed, opts.RetryBudget, reg)

	s := &Session{
		id:        id,
		opts:      opts,
		logger:    logger,
		snake:     snake.New(snake.DefaultLayout, snake.DefaultFacing),
		placer:    placer,
		field:     food.NewField(placer, opts.FoodDelay, opts.FoodPolicy, opts.MaxFood),
		moveTimer: clock.NewTimer(opts.MoveInterval, clock.Repeating),
		machine:   fsm.NewMachine[*Session](),
		render:    opts.Render,
		audio:     opts.Audio,
		ticks:     reg.Counter(status.EngineTicks),
		frames:    reg.Counter(status.EngineFrames),
		eaten:     reg.Counter(status.SnakeFoodEaten),
		deaths:    reg.Counter(status.SnakeDeaths),
		invalid:   reg.Counter(status.InvalidTransitions),
		stateName: reg.Label(status.FSMState),
	}
	reg.Label(status.SessionID).Store(id)

	registerComponents(s.machine)
	if err := fsm.LoadConfigAuto(s.machine, opts.FSMPath, DefaultGraph); err != nil {
		return nil, fmt.Errorf("load state graph: %w", err)
	}
	labels, err := compileLabels(s.machine)
	if err != nil {
		return nil, fmt.Errorf("load state graph: %w", err)
	}
	s.labels = labels
	if err := s.machine.Init(s); err != nil {
		return nil, fmt.Errorf("init state machine: %w", err)
	}
	s.stateName.Store(s.machine.State())

	logger.Printf("session started bounds=%dx%d seed=%d policy=%s", opts.Bounds.Columns(), opts.Bounds.Rows(), placer.Seed(), opts.FoodPolicy)
	return s, nil
}

// Update advances the session by one frame
// Button events are applied first, then the pause latch, then automatic
// transitions; in Playing the snake steers, food counts down and the snake moves
func (s *Session) Update(dt time.Duration, in *input.State) {
	s.frames.Add(1)

	if in != nil {
		for _, ev := range in.Events.Consume() {
			s.handleButton(ev.Type)
		}
		if in.PauseRequested() {
			in.ResetPause()
			if s.machine.InState("InGame") {
				s.fireUser(event.EventPauseKey)
			}
		}
	}

	s.machine.Update(s, dt)

	if s.GameState() == GamePlaying && s.AppState() == AppInGame {
		if in != nil {
			s.steer(in)
		}
		s.tickFood(dt)
		if s.moveTimer.Tick(dt) {
			s.ticks.Add(1)
			s.step()
		}
	}

	s.stateName.Store(s.machine.State())
}

// ErrInternalEvent rejects session generated events delivered from outside
var ErrInternalEvent = errors.New("internal event")

// Fire delivers a player event to the state machine
// Quit is handled here and never reaches the machine
func (s *Session) Fire(et event.EventType) error {
	if et == event.EventQuit {
		s.Quit()
		return nil
	}
	if et.Internal() {
		return fmt.Errorf("%w: %s", ErrInternalEvent, et)
	}
	err := s.machine.Fire(s, et)
	s.stateName.Store(s.machine.State())
	return err
}

func (s *Session) handleButton(et event.EventType) {
	if et == event.EventQuit {
		s.Quit()
		return
	}
	if et.Internal() {
		s.logger.Printf("dropped %s from input", et)
		return
	}
	s.fireUser(et)
}

// fireUser logs and counts player events that match no transition
func (s *Session) fireUser(et event.EventType) {
	if err := s.machine.Fire(s, et); err != nil {
		if errors.Is(err, fsm.ErrInvalidTransition) {
			s.invalid.Add(1)
			s.logger.Printf("ignored: %v", err)
			return
		}
		s.logger.Printf("event %s: %v", et, err)
	}
}

// fireInternal panics when a session generated event is rejected
func (s *Session) fireInternal(et event.EventType) {
	if err := s.machine.Fire(s, et); err != nil {
		panic(fmt.Sprintf("engine: internal event rejected: %v", err))
	}
}

// steer takes the first held direction, in Up Down Left Right order, that is
// not a reversal; a cue plays only when the heading actually changes
func (s *Session) steer(in *input.State) {
	for _, d := range grid.Directions {
		if !in.Held(d) {
			continue
		}
		prev := s.snake.Facing()
		if !s.snake.Steer(d) {
			continue
		}
		if d != prev {
			s.audio.Play(audio.DirectionSound(d))
		}
		return
	}
}

func (s *Session) tickFood(dt time.Duration) {
	item, ok, err := s.field.Tick(dt, s.snake)
	if err != nil {
		if errors.Is(err, food.ErrNoSpace) {
			s.logger.Printf("food spawn stalled: %v", err)
		}
		return
	}
	if ok {
		s.render.Place(foodSprite(item.ID), item.Pos.Position(s.opts.CellSize))
	}
}

// step runs one movement tick: collide, else eat, else advance
func (s *Session) step() {
	candidate := s.snake.Candidate()

	if hit := CheckCollision(candidate, s.snake, s.opts.Bounds); hit != HitNone {
		s.lastHit = hit
		s.deaths.Add(1)
		s.logger.Printf("collision %s at %v score=%d", hit, candidate, s.score.Score)
		s.fireInternal(event.EventCollision)
		return
	}

	if item, ok := s.field.At(candidate); ok {
		seg := s.snake.Grow(candidate)
		s.score.Feed()
		s.eaten.Add(1)
		s.field.Consume(item.ID)
		s.render.Remove(foodSprite(item.ID))
		s.render.Place(segmentSprite(seg.ID), seg.Pos.Position(s.opts.CellSize))
		s.audio.Play(audio.SoundEat)
		return
	}

	seg := s.snake.Advance(candidate)
	s.render.Place(segmentSprite(seg.ID), seg.Pos.Position(s.opts.CellSize))
}

// reset discards the round: new snake, empty food field, zero score
func (s *Session) reset() {
	s.snake = snake.New(snake.DefaultLayout, snake.DefaultFacing)
	s.field.Reset()
	s.score.Reset()
	s.moveTimer.Reset()
	s.lastHit = HitNone

	s.render.Clear()
	s.snake.Each(func(seg snake.Segment) bool {
		s.render.Place(segmentSprite(seg.ID), seg.Pos.Position(s.opts.CellSize))
		return true
	})
}

func segmentSprite(id int) render.Sprite {
	return render.Sprite{Kind: render.KindSegment, ID: id}
}

func foodSprite(id int) render.Sprite {
	return render.Sprite{Kind: render.KindFood, ID: id}
}

// CanFire reports whether a player event would be accepted now
func (s *Session) CanFire(et event.EventType) bool {
	if et == event.EventQuit {
		return true
	}
	if et.Internal() {
		return false
	}
	return s.machine.CanFire(s, et)
}

// Quit asks the frontend to terminate
func (s *Session) Quit() {
	if s.quit.CompareAndSwap(false, true) {
		s.logger.Printf("quit requested, record=%d", s.score.Record)
	}
}

// Quitting reports whether Quit was called
func (s *Session) Quitting() bool {
	return s.quit.Load()
}

// AppState returns the screen of the active leaf
func (s *Session) AppState() AppState {
	return s.labels[s.machine.StateID()].App
}

// GameState returns the play status of the active leaf
func (s *Session) GameState() GameState {
	return s.labels[s.machine.StateID()].Game
}

// State returns the active leaf name
func (s *Session) State() string {
	return s.machine.State()
}

func (s *Session) ID() string                { return s.id }
func (s *Session) Logger() *log.Logger       { return s.logger }
func (s *Session) Snake() *snake.Snake       { return s.snake }
func (s *Session) Food() *food.Field         { return s.field }
func (s *Session) Score() uint32             { return s.score.Score }
func (s *Session) Record() uint32            { return s.score.Record }
func (s *Session) LastHit() Hit              { return s.lastHit }
func (s *Session) MoveTimer() *clock.Timer   { return s.moveTimer }
func (s *Session) Bounds() grid.Bounds       { return s.opts.Bounds }
func (s *Session) CellSize() float32         { return s.opts.CellSize }
func (s *Session) Metrics() *status.Registry { return s.opts.Metrics }

// View is a read-only summary for HUDs
type View struct {
	App    AppState
	Game   GameState
	State  string
	Path   string // Root/.../leaf
	Score  uint32
	Record uint32
	Length int
	Facing grid.Direction
	Hit    Hit
}

// View returns the current summary
func (s *Session) View() View {
	return View{
		App:    s.AppState(),
		Game:   s.GameState(),
		State:  s.machine.State(),
		Path:   strings.Join(s.machine.ActivePath(), "/"),
		Score:  s.score.Score,
		Record: s.score.Record,
		Length: s.snake.Len(),
		Facing: s.snake.Facing(),
		Hit:    s.lastHit,
	}
}
