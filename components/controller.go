package components

import (
	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// InputMethod represents the type of input device last used
type InputMethod int

const (
	InputNone InputMethod = iota
	InputKeyboard
	InputXbox
	InputPlayStation
)

func (m InputMethod) String() string {
	switch m {
	case InputKeyboard:
		return "keyboard"
	case InputXbox:
		return "xbox pad"
	case InputPlayStation:
		return "playstation pad"
	default:
		return "none"
	}
}

// ControllerData stores the current and previous frame's sampled logical
// input snapshot. The bridge does its own edge detection; Previous exists
// for the diagnostics overlay's press flashes.
type ControllerData struct {
	Current  bridge.Snapshot
	Previous bridge.Snapshot

	// BoundPads holds the gamepad bound to each player, nil = keyboard zone
	BoundPads [2]*ebiten.GamepadID

	LastInputMethod InputMethod
}

var Controller = donburi.NewComponentType[ControllerData]()
