package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// Default is the single render layer used by all scenes
const Default ecs.LayerID = 0

// LinkConfig contains shell link defaults
type LinkConfig struct {
	Port uint
}

// DiagnosticsConfig contains diagnostics overlay configuration
type DiagnosticsConfig struct {
	FlashDuration float32 // Seconds for a press flash to fade out
	RecentMax     int     // How many recent emissions to keep on screen
	CellSize      float64
	CellGap       float64
	GridTop       float64
	GridLeft      float64

	LabelColor     color.RGBA
	PressedColor   color.RGBA
	ReleasedColor  color.RGBA
	RepeatColor    color.RGBA
	StatusOkColor  color.RGBA
	StatusBadColor color.RGBA
}

// Global configuration instances
var C *Config
var Link LinkConfig
var Diagnostics DiagnosticsConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255} // Selected items
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}  // Unselected items
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "cabbridge",
	}

	Link = LinkConfig{
		Port: 7373,
	}

	Diagnostics = DiagnosticsConfig{
		FlashDuration:  0.35,
		RecentMax:      8,
		CellSize:       40,
		CellGap:        8,
		GridTop:        96,
		GridLeft:       24,
		LabelColor:     color.RGBA{R: 160, G: 160, B: 170, A: 255},
		PressedColor:   color.RGBA{R: 100, G: 255, B: 100, A: 255},
		ReleasedColor:  color.RGBA{R: 50, G: 55, B: 65, A: 255},
		RepeatColor:    Yellow,
		StatusOkColor:  Green,
		StatusBadColor: Red,
	}
}
