package fsm

// RootConfig is the top-level graph definition
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig defines a single state
type StateConfig struct {
	Parent      string             `toml:"parent"`
	Meta        map[string]string  `toml:"meta"`
	OnEnter     []ActionConfig     `toml:"on_enter"`
	OnUpdate    []ActionConfig     `toml:"on_update"`
	OnExit      []ActionConfig     `toml:"on_exit"`
	Transitions []TransitionConfig `toml:"transitions"`
}

// TransitionConfig defines a transition
type TransitionConfig struct {
	Trigger   string         `toml:"trigger"` // event name or "Tick"
	Target    string         `toml:"target"`
	Guard     string         `toml:"guard"`
	GuardArgs map[string]any `toml:"guard_args"`
}

// ActionConfig defines an action invocation
type ActionConfig struct {
	Action string         `toml:"action"`
	Args   map[string]any `toml:"args"`
}
