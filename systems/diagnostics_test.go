package systems

import (
	"testing"
	"time"

	"github.com/arcadeloop/cabbridge/bridge"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func TestUpdateDiagnosticsTracksEdges(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	ctl := getOrCreateController(e)

	ctl.Current[bridge.Up] = true
	UpdateDiagnostics(e)

	diag := getOrCreateDiagnostics(e)
	if diag.Flash[bridge.Up] == nil || diag.FlashAlpha[bridge.Up] <= 0 {
		t.Error("press edge did not start a flash")
	}
	if len(diag.Recent) != 1 || diag.Recent[0] != "press up" {
		t.Fatalf("recent = %v, want [press up]", diag.Recent)
	}

	ctl.Previous = ctl.Current
	ctl.Current[bridge.Up] = false
	UpdateDiagnostics(e)
	if got := diag.Recent[len(diag.Recent)-1]; got != "release up" {
		t.Errorf("recent tail = %q, want %q", got, "release up")
	}

	// The recent list stays capped no matter how many edges arrive.
	for i := 0; i < 12; i++ {
		ctl.Previous = ctl.Current
		ctl.Current[bridge.Up] = !ctl.Current[bridge.Up]
		UpdateDiagnostics(e)
	}
	if len(diag.Recent) != cfg.Diagnostics.RecentMax {
		t.Errorf("recent length = %d, want %d", len(diag.Recent), cfg.Diagnostics.RecentMax)
	}
}

func TestDrawDiagnosticsRegistersAsRenderer(t *testing.T) {
	b := bridge.New(nil, nil, time.Unix(0, 0), bridge.Config{})
	e := ecs.NewECS(donburi.NewWorld())

	// AddRenderer reflects on the function shape and panics on a mismatch.
	e.AddRenderer(cfg.Default, NewDrawDiagnostics(b))
}
