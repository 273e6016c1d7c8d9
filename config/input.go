package config

import (
	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/hajimehoshi/ebiten/v2"
)

// Control identifies one physical control on a player's panel
type Control int

const (
	CtlUp Control = iota
	CtlDown
	CtlLeft
	CtlRight
	CtlA
	CtlB
	CtlStart
	ControlCount // Must be last - used for array sizing
)

var controlNames = [ControlCount]string{
	CtlUp:    "Up",
	CtlDown:  "Down",
	CtlLeft:  "Left",
	CtlRight: "Right",
	CtlA:     "Button A",
	CtlB:     "Button B",
	CtlStart: "Start",
}

func (c Control) String() string {
	if c < 0 || c >= ControlCount {
		return "Unknown"
	}
	return controlNames[c]
}

// InputBinding represents the key and button bindings for one control
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// ControlsConfig holds the physical bindings for both player panels
type ControlsConfig struct {
	Players [2]map[Control]InputBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Controls is the global physical binding configuration
var Controls ControlsConfig

// Keymap is the logical input -> key identity table delivered to the
// shell. Operator overrides replace entries at startup.
var Keymap map[bridge.Input]bridge.Key

// DefaultControls returns a fresh copy of the stock binding tables, used
// at startup and by the editor's reset.
func DefaultControls() ControlsConfig {
	return ControlsConfig{
		AnalogDeadzone: 0.25,
		Players: [2]map[Control]InputBinding{
			// Player 1: WASD zone + pad 0
			{
				CtlUp: {
					Keys: []ebiten.Key{ebiten.KeyW},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftTop,
					},
				},
				CtlDown: {
					Keys: []ebiten.Key{ebiten.KeyS},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftBottom,
					},
				},
				CtlLeft: {
					Keys: []ebiten.Key{ebiten.KeyA},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftLeft,
					},
				},
				CtlRight: {
					Keys: []ebiten.Key{ebiten.KeyD},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftRight,
					},
				},
				CtlA: {
					Keys: []ebiten.Key{ebiten.KeyF},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonRightBottom,
					},
				},
				CtlB: {
					Keys: []ebiten.Key{ebiten.KeyG},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonRightRight,
					},
				},
				CtlStart: {
					Keys: []ebiten.Key{ebiten.KeyDigit1},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonCenterRight,
					},
				},
			},
			// Player 2: arrow zone + pad 1
			{
				CtlUp: {
					Keys: []ebiten.Key{ebiten.KeyArrowUp},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftTop,
					},
				},
				CtlDown: {
					Keys: []ebiten.Key{ebiten.KeyArrowDown},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftBottom,
					},
				},
				CtlLeft: {
					Keys: []ebiten.Key{ebiten.KeyArrowLeft},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftLeft,
					},
				},
				CtlRight: {
					Keys: []ebiten.Key{ebiten.KeyArrowRight},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonLeftRight,
					},
				},
				CtlA: {
					Keys: []ebiten.Key{ebiten.KeyK},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonRightBottom,
					},
				},
				CtlB: {
					Keys: []ebiten.Key{ebiten.KeyL},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonRightRight,
					},
				},
				CtlStart: {
					Keys: []ebiten.Key{ebiten.KeyDigit2},
					StandardGamepadButtons: []ebiten.StandardGamepadButton{
						ebiten.StandardGamepadButtonCenterRight,
					},
				},
			},
		},
	}
}

func init() {
	Controls = DefaultControls()

	Keymap = map[bridge.Input]bridge.Key{
		bridge.Up:    {Key: "ArrowUp", Code: "ArrowUp"},
		bridge.Down:  {Key: "ArrowDown", Code: "ArrowDown"},
		bridge.Left:  {Key: "ArrowLeft", Code: "ArrowLeft"},
		bridge.Right: {Key: "ArrowRight", Code: "ArrowRight"},
		bridge.P1A:   {Key: "1", Code: "Digit1"},
		bridge.P1B:   {Key: "2", Code: "Digit2"},
		bridge.P2A:   {Key: "3", Code: "Digit3"},
		bridge.P2B:   {Key: "4", Code: "Digit4"},
		bridge.Start: {Key: "Enter", Code: "Enter"},
	}
}
