// Package fsm is a hierarchical finite state machine driven by named events
// and configured from TOML
package fsm

import (
	"errors"
	"time"

	"github.com/lixenwraith/snake/event"
)

// ErrInvalidTransition is returned by Fire when no transition on the active
// path matches the event
var ErrInvalidTransition = errors.New("fsm: invalid transition")

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the HFSM runtime
// T is the context passed to actions and guards
type Machine[T any] struct {
	nodes map[StateID]*Node[T]

	InitialStateID StateID

	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID

	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]
	argCompilerReg  map[string]ArgCompilerFunc
}

// Node is one state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path from Root to this node, inclusive, used for LCA lookup
	Path []StateID

	// Meta holds free-form labels from config
	Meta map[string]string

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Evaluated in declaration order
	Transitions []Transition[T]
}

// Transition links a node to a target
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventTick = automatic
	Guard    GuardFunc[T]    // nil = always
}

// Action is a side effect with pre-compiled arguments
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
	Args any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// GuardFactoryFunc builds a parameterized guard from config args
type GuardFactoryFunc[T any] func(m *Machine[T], args map[string]any) (GuardFunc[T], error)

// ArgCompilerFunc turns raw config args into the value handed to an action
type ArgCompilerFunc func(args map[string]any) (any, error)
