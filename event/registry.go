package event

import (
	"strconv"
	"strings"
)

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	RegisterType("Tick", EventTick)
	RegisterType("StartGame", EventStartGame)
	RegisterType("RestartGame", EventRestartGame)
	RegisterType("BackToMainMenu", EventBackToMainMenu)
	RegisterType("PauseKey", EventPauseKey)
	RegisterType("Collision", EventCollision)
	RegisterType("Quit", EventQuit)
}

// RegisterType maps a config name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType resolves a config name; "Tick" matches case-insensitively
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the config name of et
func GetEventName(et EventType) string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Event(" + strconv.Itoa(int(et)) + ")"
}
