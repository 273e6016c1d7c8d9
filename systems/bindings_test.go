package systems

import (
	"testing"

	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func TestBindingCaptureWaitsForInput(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	capture := NewUpdateBindingCapture()

	capture(e)
	menu := BindingsMenuFor(e)
	if menu.Capturing {
		t.Fatal("capture armed without a request")
	}

	menu.Capturing = true
	menu.CaptureDevice = "keyboard"
	menu.CaptureControl = cfg.CtlA
	capture(e)
	if !menu.Capturing {
		t.Error("capture completed with no key pressed")
	}
}
