package systems

import (
	"fmt"
	"image/color"

	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/arcadeloop/cabbridge/components"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/arcadeloop/cabbridge/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDiagnostics starts a press flash on every press edge and advances
// the running fades. Runs after UpdateController so the snapshot buffers
// hold this frame's edges.
func UpdateDiagnostics(e *ecs.ECS) {
	ctl := getOrCreateController(e)
	diag := getOrCreateDiagnostics(e)

	for in := bridge.Input(0); in < bridge.InputCount; in++ {
		if ctl.Current[in] && !ctl.Previous[in] {
			diag.Flash[in] = gween.New(1, 0, cfg.Diagnostics.FlashDuration, ease.OutQuad)
			pushRecent(diag, "press "+in.ID())
		}
		if !ctl.Current[in] && ctl.Previous[in] {
			pushRecent(diag, "release "+in.ID())
		}

		if diag.Flash[in] != nil {
			value, finished := diag.Flash[in].Update(1.0 / 60.0)
			diag.FlashAlpha[in] = value
			if finished {
				diag.Flash[in] = nil
				diag.FlashAlpha[in] = 0
			}
		}
	}
}

func pushRecent(diag *components.DiagnosticsData, line string) {
	diag.Recent = append(diag.Recent, line)
	if over := len(diag.Recent) - cfg.Diagnostics.RecentMax; over > 0 {
		diag.Recent = diag.Recent[over:]
	}
}

// NewDrawDiagnostics creates the overlay renderer. The bridge reference
// is read-only here: pressed state and repeat state for the grid.
func NewDrawDiagnostics(b *bridge.Bridge) func(e *ecs.ECS, screen *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		ctl := getOrCreateController(e)
		diag := getOrCreateDiagnostics(e)
		status := getOrCreateLinkStatus(e)
		d := cfg.Diagnostics

		titleFont := fonts.Title.Get()
		boldFont := fonts.Bold.Get()
		textFont := fonts.Regular.Get()
		smallFont := fonts.Small.Get()

		text.Draw(screen, "CABINET INPUT BRIDGE", titleFont, int(d.GridLeft), 36, cfg.White)

		// Link status line
		statusText := "shell: disconnected"
		statusColor := d.StatusBadColor
		if status.Connected {
			statusText = fmt.Sprintf("shell: connected (%s, %s)", status.Delivery, status.Agent)
			statusColor = d.StatusOkColor
		}
		text.Draw(screen, statusText, boldFont, int(d.GridLeft), 58, statusColor)
		text.Draw(screen, "device: "+ctl.LastInputMethod.String(), textFont, int(d.GridLeft), 74, d.LabelColor)

		// Input grid
		x := d.GridLeft
		for in := bridge.Input(0); in < bridge.InputCount; in++ {
			cell := d.ReleasedColor
			if b.Pressed(in) {
				cell = d.PressedColor
				if b.Repeating(in) {
					cell = d.RepeatColor
				}
			}
			vector.DrawFilledRect(screen, float32(x), float32(d.GridTop),
				float32(d.CellSize), float32(d.CellSize), cell, false)

			// Fading edge highlight on top of the steady state
			if alpha := diag.FlashAlpha[in]; alpha > 0 {
				overlay := color.RGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 160)}
				vector.DrawFilledRect(screen, float32(x), float32(d.GridTop),
					float32(d.CellSize), float32(d.CellSize), overlay, false)
			}

			text.Draw(screen, in.ID(), smallFont, int(x),
				int(d.GridTop+d.CellSize)+14, d.LabelColor)
			x += d.CellSize + d.CellGap
		}

		// Recent emissions
		y := int(d.GridTop+d.CellSize) + 44
		text.Draw(screen, "recent:", textFont, int(d.GridLeft), y, d.LabelColor)
		for i, line := range diag.Recent {
			text.Draw(screen, line, smallFont, int(d.GridLeft)+8, y+16+i*14, cfg.White)
		}

		text.Draw(screen, "TAB bindings editor", smallFont,
			int(d.GridLeft), cfg.C.Height-12, d.LabelColor)
	}
}

// getOrCreateDiagnostics returns the singleton Diagnostics component, creating if needed
func getOrCreateDiagnostics(e *ecs.ECS) *components.DiagnosticsData {
	entry, ok := components.Diagnostics.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Diagnostics))
	}
	return components.Diagnostics.Get(entry)
}
