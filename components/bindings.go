package components

import (
	"github.com/arcadeloop/cabbridge/config"
	"github.com/yohamta/donburi"
)

// BindingsMenuData holds the binding editor's capture state
type BindingsMenuData struct {
	Capturing      bool
	CapturePlayer  int            // 0 or 1
	CaptureControl config.Control // control being rebound
	CaptureDevice  string         // "keyboard" or "controller"
}

var BindingsMenu = donburi.NewComponentType[BindingsMenuData]()
