package main

import (
	"image"
	"log"
	"time"

	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/arcadeloop/cabbridge/config"
	"github.com/arcadeloop/cabbridge/fonts"
	"github.com/arcadeloop/cabbridge/scenes"
	"github.com/arcadeloop/cabbridge/shell"
	"github.com/arcadeloop/cabbridge/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(b *bridge.Bridge, link *shell.Link) *Game {
	fonts.LoadAll()

	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewDiagnosticsScene(g, b, link)

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(saved)
	}

	link := shell.NewLink()
	go func() {
		log.Printf("[shell] listening on ws://localhost:%d", config.Link.Port)
		if err := link.Start(config.Link.Port); err != nil {
			log.Fatalf("Failed to start shell link: %v", err)
		}
	}()

	b := bridge.New(link, link, time.Now(), bridge.Config{
		Keymap:         config.Keymap,
		RepeatDelay:    time.Duration(config.Bridge.RepeatDelayMS) * time.Millisecond,
		RepeatInterval: time.Duration(config.Bridge.RepeatIntervalMS) * time.Millisecond,
	})

	if err := ebiten.RunGame(NewGame(b, link)); err != nil {
		log.Fatal(err)
	}
}
