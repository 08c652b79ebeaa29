package engine

import "fmt"

// AppState is the coarse screen the game is on
type AppState uint8

const (
	AppMainMenu AppState = iota
	AppInGame
	AppGameOver
)

var appStateNames = map[string]AppState{
	"MainMenu": AppMainMenu,
	"InGame":   AppInGame,
	"GameOver": AppGameOver,
}

func (a AppState) String() string {
	for name, v := range appStateNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}

// GameState is the play status within an AppState
type GameState uint8

const (
	GamePlaying GameState = iota
	GamePaused
	GameRestarted
	GameQuitted
	GameFail
)

var gameStateNames = map[string]GameState{
	"Playing":   GamePlaying,
	"Paused":    GamePaused,
	"Restarted": GameRestarted,
	"Quitted":   GameQuitted,
	"Fail":      GameFail,
}

func (g GameState) String() string {
	for name, v := range gameStateNames {
		if v == g {
			return name
		}
	}
	return "unknown"
}

// stateLabels is the pair a leaf state exposes to frontends
type stateLabels struct {
	App  AppState
	Game GameState
}

func parseLabels(state string, meta map[string]string) (stateLabels, error) {
	app, ok := appStateNames[meta["app"]]
	if !ok {
		return stateLabels{}, fmt.Errorf("state '%s': unknown app state %q", state, meta["app"])
	}
	game, ok := gameStateNames[meta["game"]]
	if !ok {
		return stateLabels{}, fmt.Errorf("state '%s': unknown game state %q", state, meta["game"])
	}
	return stateLabels{App: app, Game: game}, nil
}
