package systems

import (
	"fmt"

	"github.com/arcadeloop/cabbridge/components"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// padButtonNames covers the standard-layout buttons an operator will
// realistically bind; anything else falls back to a numeric label.
var padButtonNames = map[ebiten.StandardGamepadButton]string{
	ebiten.StandardGamepadButtonLeftTop:          "DpadUp",
	ebiten.StandardGamepadButtonLeftBottom:       "DpadDown",
	ebiten.StandardGamepadButtonLeftLeft:         "DpadLeft",
	ebiten.StandardGamepadButtonLeftRight:        "DpadRight",
	ebiten.StandardGamepadButtonRightBottom:      "A",
	ebiten.StandardGamepadButtonRightRight:       "B",
	ebiten.StandardGamepadButtonRightLeft:        "X",
	ebiten.StandardGamepadButtonRightTop:         "Y",
	ebiten.StandardGamepadButtonCenterLeft:       "Select",
	ebiten.StandardGamepadButtonCenterRight:      "Start",
	ebiten.StandardGamepadButtonFrontTopLeft:     "LB",
	ebiten.StandardGamepadButtonFrontTopRight:    "RB",
	ebiten.StandardGamepadButtonFrontBottomLeft:  "LT",
	ebiten.StandardGamepadButtonFrontBottomRight: "RT",
}

// NewUpdateBindingCapture creates the system that finishes a pending
// capture: the next pressed key or pad button becomes the binding for
// the capture target. Escape cancels. Applied bindings replace the
// binding list for that control and are persisted immediately.
func NewUpdateBindingCapture() ecs.System {
	return func(e *ecs.ECS) {
		menu := getOrCreateBindingsMenu(e)
		if !menu.Capturing {
			return
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			menu.Capturing = false
			return
		}

		switch menu.CaptureDevice {
		case "keyboard":
			keys := inpututil.AppendJustPressedKeys(nil)
			for _, k := range keys {
				if reservedKey(k) {
					continue
				}
				binding := cfg.Controls.Players[menu.CapturePlayer][menu.CaptureControl]
				binding.Keys = []ebiten.Key{k}
				cfg.Controls.Players[menu.CapturePlayer][menu.CaptureControl] = binding
				menu.Capturing = false
				SaveCurrentBindings()
				return
			}

		case "controller":
			gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
			for _, gp := range gamepadIDs {
				if !ebiten.IsStandardGamepadLayoutAvailable(gp) {
					continue
				}
				for btn := ebiten.StandardGamepadButton(0); btn <= ebiten.StandardGamepadButtonMax; btn++ {
					if !inpututil.IsStandardGamepadButtonJustPressed(gp, btn) {
						continue
					}
					binding := cfg.Controls.Players[menu.CapturePlayer][menu.CaptureControl]
					binding.StandardGamepadButtons = []ebiten.StandardGamepadButton{btn}
					cfg.Controls.Players[menu.CapturePlayer][menu.CaptureControl] = binding
					menu.Capturing = false
					SaveCurrentBindings()
					return
				}
			}
		}
	}
}

// reservedKey lists keys the editor itself uses
func reservedKey(k ebiten.Key) bool {
	return k == ebiten.KeyEscape || k == ebiten.KeyTab
}

// KeyBindingName returns the display label for a player's key binding
func KeyBindingName(player int, control cfg.Control) string {
	binding := cfg.Controls.Players[player][control]
	if len(binding.Keys) == 0 {
		return "-"
	}
	return binding.Keys[0].String()
}

// PadBindingName returns the display label for a player's pad binding
func PadBindingName(player int, control cfg.Control) string {
	binding := cfg.Controls.Players[player][control]
	if len(binding.StandardGamepadButtons) == 0 {
		return "-"
	}
	btn := binding.StandardGamepadButtons[0]
	if name, ok := padButtonNames[btn]; ok {
		return name
	}
	return fmt.Sprintf("Btn%d", int(btn))
}

// getOrCreateBindingsMenu returns the singleton BindingsMenu component, creating if needed
func getOrCreateBindingsMenu(e *ecs.ECS) *components.BindingsMenuData {
	entry, ok := components.BindingsMenu.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.BindingsMenu))
	}
	return components.BindingsMenu.Get(entry)
}

// BindingsMenuFor exposes the singleton for scene wiring
func BindingsMenuFor(e *ecs.ECS) *components.BindingsMenuData {
	return getOrCreateBindingsMenu(e)
}
