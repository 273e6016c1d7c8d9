package components

import (
	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// DiagnosticsData holds the overlay's press-flash tweens and the rolling
// list of recent emissions.
type DiagnosticsData struct {
	// Flash fades a cell highlight after a press edge; nil when idle.
	Flash [bridge.InputCount]*gween.Tween

	// FlashAlpha is the last sampled value of each running tween.
	FlashAlpha [bridge.InputCount]float32

	// Recent lines, newest last, capped at config.Diagnostics.RecentMax.
	Recent []string
}

var Diagnostics = donburi.NewComponentType[DiagnosticsData]()
