package systems

import (
	"strings"

	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/arcadeloop/cabbridge/components"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var controllerTypeCache = make(map[ebiten.GamepadID]components.InputMethod)

// UpdateController samples the physical controls into the frame's logical
// snapshot. Directional and start inputs are the OR of both players'
// controls; the per-player buttons stay separate. Must run BEFORE
// UpdateBridge in the system order.
func UpdateController(e *ecs.ECS) {
	ctl := getOrCreateController(e)

	// Swap buffers: current becomes previous, then zero out current
	ctl.Previous = ctl.Current
	ctl.Current = bridge.Snapshot{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	bindPads(ctl)

	var keyboardUsed, gamepadUsed bool
	var activeGamepadID ebiten.GamepadID

	for player := 0; player < 2; player++ {
		pad := ctl.BoundPads[player]
		for control, binding := range cfg.Controls.Players[player] {
			in := logicalFor(player, control)

			for _, key := range binding.Keys {
				if ebiten.IsKeyPressed(key) {
					ctl.Current[in] = true
					keyboardUsed = true
				}
			}

			if pad == nil {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(*pad, btn) {
					ctl.Current[in] = true
					gamepadUsed = true
					activeGamepadID = *pad
				}
			}
		}

		// Merge the left stick into the shared directions
		if pad != nil {
			left, right, up, down := analogStickState(*pad)
			if left {
				ctl.Current[bridge.Left] = true
			}
			if right {
				ctl.Current[bridge.Right] = true
			}
			if up {
				ctl.Current[bridge.Up] = true
			}
			if down {
				ctl.Current[bridge.Down] = true
			}
			if left || right || up || down {
				gamepadUsed = true
				activeGamepadID = *pad
			}
		}
	}

	// Update last input method - gamepad takes priority if both used
	if gamepadUsed {
		ctl.LastInputMethod = getControllerType(activeGamepadID)
	} else if keyboardUsed {
		ctl.LastInputMethod = components.InputKeyboard
	}
}

// logicalFor maps a player's physical control to its logical input.
// Directions and start are shared between players.
func logicalFor(player int, control cfg.Control) bridge.Input {
	switch control {
	case cfg.CtlUp:
		return bridge.Up
	case cfg.CtlDown:
		return bridge.Down
	case cfg.CtlLeft:
		return bridge.Left
	case cfg.CtlRight:
		return bridge.Right
	case cfg.CtlStart:
		return bridge.Start
	case cfg.CtlA:
		if player == 0 {
			return bridge.P1A
		}
		return bridge.P2A
	default: // CtlB
		if player == 0 {
			return bridge.P1B
		}
		return bridge.P2B
	}
}

// bindPads assigns the first two standard-layout gamepads to the players
// in ID order, dropping bindings for pads that went away.
func bindPads(ctl *components.ControllerData) {
	present := func(id ebiten.GamepadID) bool {
		for _, gp := range gamepadIDs {
			if gp == id {
				return true
			}
		}
		return false
	}
	for player := 0; player < 2; player++ {
		if ctl.BoundPads[player] != nil && !present(*ctl.BoundPads[player]) {
			ctl.BoundPads[player] = nil
		}
	}

	for _, gp := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gp) {
			continue
		}
		taken := false
		for player := 0; player < 2; player++ {
			if ctl.BoundPads[player] != nil && *ctl.BoundPads[player] == gp {
				taken = true
			}
		}
		if taken {
			continue
		}
		for player := 0; player < 2; player++ {
			if ctl.BoundPads[player] == nil {
				id := gp
				ctl.BoundPads[player] = &id
				break
			}
		}
	}
}

// analogStickState reads the left analog stick with the configured deadzone
func analogStickState(gpID ebiten.GamepadID) (left, right, up, down bool) {
	if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
		return
	}
	deadzone := cfg.Controls.AnalogDeadzone

	horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
	vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

	if horizontal < -deadzone {
		left = true
	}
	if horizontal > deadzone {
		right = true
	}
	if vertical < -deadzone {
		up = true
	}
	if vertical > deadzone {
		down = true
	}
	return
}

// getControllerType returns cached controller type, detecting on first access
func getControllerType(gpID ebiten.GamepadID) components.InputMethod {
	if method, ok := controllerTypeCache[gpID]; ok {
		return method
	}

	name := strings.ToLower(ebiten.GamepadName(gpID))
	var method components.InputMethod
	if strings.Contains(name, "ps4") || strings.Contains(name, "ps5") ||
		strings.Contains(name, "playstation") || strings.Contains(name, "dualshock") ||
		strings.Contains(name, "dualsense") {
		method = components.InputPlayStation
	} else {
		// Default gamepad to Xbox-style
		method = components.InputXbox
	}

	controllerTypeCache[gpID] = method
	return method
}

// getOrCreateController returns the singleton Controller component, creating if needed
func getOrCreateController(e *ecs.ECS) *components.ControllerData {
	entry, ok := components.Controller.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Controller))
		// Zero-value ControllerData is correct (all bools false)
	}
	return components.Controller.Get(entry)
}
