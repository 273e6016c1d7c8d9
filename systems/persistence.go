package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents operator overrides stored on disk. Bindings
// store one key/button per control; the config defaults keep their
// multi-binding lists until the operator rebinds.
type SavedSettings struct {
	RepeatDelayMS    int  `json:"repeatDelayMs"`
	RepeatIntervalMS int  `json:"repeatIntervalMs"`
	LinkPort         uint `json:"linkPort"`

	// Per-player control name -> key / standard button code
	Keyboard [2]map[string]int `json:"keyboard"`
	Gamepad  [2]map[string]int `json:"gamepad"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "cabbridge",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplySavedSettings copies saved overrides into the global config
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}

	if saved.RepeatDelayMS > 0 {
		cfg.Bridge.RepeatDelayMS = saved.RepeatDelayMS
	}
	if saved.RepeatIntervalMS > 0 {
		cfg.Bridge.RepeatIntervalMS = saved.RepeatIntervalMS
	}
	if saved.LinkPort > 0 {
		cfg.Link.Port = saved.LinkPort
	}

	for player := 0; player < 2; player++ {
		for name, key := range saved.Keyboard[player] {
			if ctl, ok := controlByName(name); ok {
				binding := cfg.Controls.Players[player][ctl]
				binding.Keys = []ebiten.Key{ebiten.Key(key)}
				cfg.Controls.Players[player][ctl] = binding
			}
		}
		for name, btn := range saved.Gamepad[player] {
			if ctl, ok := controlByName(name); ok {
				binding := cfg.Controls.Players[player][ctl]
				binding.StandardGamepadButtons = []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButton(btn),
				}
				cfg.Controls.Players[player][ctl] = binding
			}
		}
	}
}

// SaveCurrentBindings snapshots the active bindings of both players.
// Timing and port settings already in the saved record are preserved.
func SaveCurrentBindings() {
	saved, _ := LoadSettings()
	if saved == nil {
		saved = &SavedSettings{}
	}

	for player := 0; player < 2; player++ {
		saved.Keyboard[player] = make(map[string]int)
		saved.Gamepad[player] = make(map[string]int)
		for ctl, binding := range cfg.Controls.Players[player] {
			if len(binding.Keys) > 0 {
				saved.Keyboard[player][ctl.String()] = int(binding.Keys[0])
			}
			if len(binding.StandardGamepadButtons) > 0 {
				saved.Gamepad[player][ctl.String()] = int(binding.StandardGamepadButtons[0])
			}
		}
	}

	_ = SaveSettings(saved)
}

func controlByName(name string) (cfg.Control, bool) {
	for c := cfg.Control(0); c < cfg.ControlCount; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}
