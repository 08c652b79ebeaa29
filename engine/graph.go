package engine

import (
	_ "embed"
	"fmt"

	"github.com/lixenwraith/snake/audio"
	"github.com/lixenwraith/snake/engine/fsm"
)

// DefaultGraph is the built-in state graph
//
//go:embed game.toml
var DefaultGraph []byte

// registerComponents binds the action and guard names used by the graph
func registerComponents(m *fsm.Machine[*Session]) {
	m.RegisterAction("ResetSession", func(s *Session, _ any) {
		s.reset()
	})
	m.RegisterAction("PauseTimers", func(s *Session, _ any) {
		s.moveTimer.Pause()
		s.field.Countdown().Pause()
	})
	m.RegisterAction("ResumeTimers", func(s *Session, _ any) {
		s.moveTimer.Resume()
		s.field.Countdown().Resume()
	})
	m.RegisterAction("FinalizeRecord", func(s *Session, _ any) {
		if s.score.Finalize() {
			s.logger.Printf("new record %d", s.score.Record)
		}
	})
	m.RegisterAction("PlaySound", func(s *Session, args any) {
		s.audio.Play(args.(audio.Sound))
	})
	m.RegisterActionArgs("PlaySound", func(args map[string]any) (any, error) {
		name, _ := args["sound"].(string)
		snd, ok := audio.ParseSound(name)
		if !ok {
			return nil, fmt.Errorf("unknown sound %q", name)
		}
		return snd, nil
	})

	m.RegisterGuard("FailVariant", func(s *Session) bool {
		return s.opts.FailState
	})
}

// compileLabels maps every leaf to its app/game pair
func compileLabels(m *fsm.Machine[*Session]) (map[fsm.StateID]stateLabels, error) {
	nodes := m.Nodes()
	parents := make(map[fsm.StateID]bool, len(nodes))
	for _, n := range nodes {
		parents[n.ParentID] = true
	}

	labels := make(map[fsm.StateID]stateLabels)
	for _, n := range nodes {
		if parents[n.ID] {
			continue
		}
		l, err := parseLabels(n.Name, n.Meta)
		if err != nil {
			return nil, err
		}
		labels[n.ID] = l
	}
	return labels, nil
}
