package fsm

import (
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/snake/event"
)

// NewMachine creates an empty machine with the built-in guard factories
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:           make(map[StateID]*Node[T]),
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]ActionFunc[T]),
		argCompilerReg:  make(map[string]ArgCompilerFunc),
		activePath:      make([]StateID, 0, 4),
	}
	m.RegisterGuardFactory("StateTimeExceeds", stateTimeExceeds[T])
	return m
}

// RegisterGuard adds a named predicate
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterGuardFactory adds a parameterized guard
func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

// RegisterAction adds a named side effect
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// RegisterActionArgs adds a compiler for the config args of action name
// Without one, the action receives the raw map (nil when absent)
func (m *Machine[T]) RegisterActionArgs(name string, compile ArgCompilerFunc) {
	m.argCompilerReg[name] = compile
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update advances time in state, runs OnUpdate of the leaf and takes the first
// passing automatic transition found bubbling from leaf to Root
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeStateID].OnUpdate)
	m.dispatch(ctx, event.EventTick)
}

// Fire routes an event from the active leaf up to Root
// Returns an error wrapping ErrInvalidTransition when nothing matched
func (m *Machine[T]) Fire(ctx T, et event.EventType) error {
	if m.activeStateID == StateNone {
		return fmt.Errorf("%w: %s before init", ErrInvalidTransition, event.GetEventName(et))
	}
	if !m.dispatch(ctx, et) {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, event.GetEventName(et), m.State())
	}
	return nil
}

// CanFire reports whether et would trigger a transition now
func (m *Machine[T]) CanFire(ctx T, et event.EventType) bool {
	_, ok := m.match(ctx, et)
	return ok
}

func (m *Machine[T]) dispatch(ctx T, et event.EventType) bool {
	target, ok := m.match(ctx, et)
	if ok {
		m.transition(ctx, target)
	}
	return ok
}

func (m *Machine[T]) match(ctx T, et event.EventType) (StateID, bool) {
	for currID := m.activeStateID; currID != StateNone; {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != et {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				return trans.TargetID, true
			}
		}
		currID = node.ParentID
	}
	return StateNone, false
}

// transition exits up to the lowest common ancestor and enters down to target
// Targeting the active leaf is a no-op
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state ID %d", targetID))
	}

	lca := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	for i := 0; i < min(len(currentPath), len(targetPath)); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lca = i
	}

	for i := len(currentPath) - 1; i > lca; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	// Commit before entering so entry actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lca + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}
}

// Reset exits every active state and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}

// StateID returns the active leaf
func (m *Machine[T]) StateID() StateID {
	return m.activeStateID
}

// State returns the active leaf name
func (m *Machine[T]) State() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// Node returns the node for id
func (m *Machine[T]) Node(id StateID) (*Node[T], bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// InState reports whether name is the active leaf or one of its ancestors
func (m *Machine[T]) InState(name string) bool {
	target, ok := m.GetStateID(name)
	if !ok {
		return false
	}
	for _, id := range m.activePath {
		if id == target {
			return true
		}
	}
	return false
}

// ActivePath returns the names from Root to the active leaf
func (m *Machine[T]) ActivePath() []string {
	names := make([]string, len(m.activePath))
	for i, id := range m.activePath {
		names[i] = m.nodes[id].Name
	}
	return names
}

// TimeInState returns time accumulated by Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// GetStateID resolves a state name
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

// stateTimeExceeds passes once the machine has spent args.ms in the active state
func stateTimeExceeds[T any](m *Machine[T], args map[string]any) (GuardFunc[T], error) {
	raw, ok := args["ms"]
	if !ok {
		return nil, fmt.Errorf("StateTimeExceeds requires 'ms'")
	}
	var ms int64
	switch v := raw.(type) {
	case int64:
		ms = v
	case float64:
		ms = int64(v)
	case int:
		ms = int64(v)
	default:
		return nil, fmt.Errorf("StateTimeExceeds 'ms' has type %T", raw)
	}
	limit := time.Duration(ms) * time.Millisecond
	return func(T) bool {
		return m.timeInState >= limit
	}, nil
}

// Nodes returns every node ordered by ID
func (m *Machine[T]) Nodes() []*Node[T] {
	out := make([]*Node[T], 0, len(m.nodes))
	for _, n := range m.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
