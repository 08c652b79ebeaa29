package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/snake/audio"
	"github.com/lixenwraith/snake/config"
	"github.com/lixenwraith/snake/core"
	"github.com/lixenwraith/snake/engine"
	"github.com/lixenwraith/snake/render"
	"github.com/lixenwraith/snake/status"
	"github.com/lixenwraith/snake/terminal"
	"github.com/lixenwraith/snake/window"
)

// Frontend names accepted by -frontend
const (
	frontendAuto     = "auto"
	frontendTerminal = "terminal"
	frontendWindow   = "window"
)

// cliFlags holds parsed command-line values; set records which were given
// explicitly so they override config only when present
type cliFlags struct {
	configPath string
	frontend   string
	debug      bool
	seed       uint64
	fail       bool
	mute       bool
	set        map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "Path to a TOML config file")
	fs.StringVar(&f.frontend, "frontend", frontendAuto, "Frontend: auto, terminal, window")
	fs.BoolVar(&f.debug, "debug", false, "Write logs to logs/snake.log")
	fs.Uint64Var(&f.seed, "seed", 0, "Food placement seed (0 = time based)")
	fs.BoolVar(&f.fail, "fail", false, "Enable the fail game-over variant")
	fs.BoolVar(&f.mute, "mute", false, "Disable audio")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	switch f.frontend {
	case frontendAuto, frontendTerminal, frontendWindow:
	default:
		return nil, fmt.Errorf("unknown frontend %q", f.frontend)
	}
	return f, nil
}

// resolveConfig applies defaults, file, environment and flags in that order
func resolveConfig(f *cliFlags, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)

	if f.set["seed"] {
		cfg.Food.Seed = f.seed
	}
	if f.set["fail"] {
		cfg.Rules.FailState = f.fail
	}
	if f.mute {
		cfg.Audio.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// sessionOptions maps settings to engine options; collaborators are left for the caller
func sessionOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		Bounds:       cfg.Bounds(),
		CellSize:     float32(cfg.Playfield.CellSize),
		MoveInterval: cfg.Timing.MoveInterval.Duration,
		FoodDelay:    cfg.Timing.FoodDelay.Duration,
		FoodPolicy:   cfg.FoodPolicy(),
		MaxFood:      cfg.Food.MaxItems,
		RetryBudget:  cfg.Food.RetryBudget,
		Seed:         cfg.Food.Seed,
		FailState:    cfg.Rules.FailState,
		FSMPath:      cfg.FSM.Path,
	}
}

// pickFrontend resolves auto to the terminal when attached to one
func pickFrontend(name string, isTerminal func() bool) string {
	if name != frontendAuto {
		return name
	}
	if isTerminal() {
		return frontendTerminal
	}
	return frontendWindow
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	// Panic recovery: restore the screen before printing the crash
	defer func() {
		core.HandleCrash(recover())
	}()

	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logFile := setupLogging(flags.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(flags *cliFlags) error {
	cfg, err := resolveConfig(flags, os.Getenv)
	if err != nil {
		return err
	}

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.AudioSettings())
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			sink = sm
			defer sm.Cleanup()
		}
	}

	reg := status.NewRegistry()
	defer reg.Dump(log.Default())

	scene := render.NewScene()
	opts := sessionOptions(cfg)
	opts.Render = scene
	opts.Audio = sink
	opts.Metrics = reg

	session, err := engine.NewSession(opts)
	if err != nil {
		return err
	}
	log.Printf("session %s started, bounds %+v", session.ID(), session.Bounds())

	switch pickFrontend(flags.frontend, stdioIsTerminal) {
	case frontendTerminal:
		screen, err := terminal.NewScreen()
		if err != nil {
			return err
		}
		defer screen.Fini()
		terminal.New(screen, session, scene, nil).Run()
		return nil
	default:
		return window.New(session, scene).Run()
	}
}
