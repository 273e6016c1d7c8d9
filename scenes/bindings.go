package scenes

import (
	"image/color"
	"sync"
	"time"

	"github.com/arcadeloop/cabbridge/bridge"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/arcadeloop/cabbridge/shell"
	"github.com/arcadeloop/cabbridge/systems"
	"github.com/arcadeloop/cabbridge/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// BindingsScene is the operator's control binding editor. Delivery is
// paused while it is open: the bridge keeps ticking on an all-released
// snapshot so anything held when the editor opened releases cleanly.
type BindingsScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	bridge       *bridge.Bridge
	link         *shell.Link
	bindingsUI   *ui.BindingsUI
	once         sync.Once
	shouldGoBack bool
}

// NewBindingsScene creates the binding editor scene
func NewBindingsScene(sc SceneChanger, b *bridge.Bridge, link *shell.Link) *BindingsScene {
	return &BindingsScene{sceneChanger: sc, bridge: b, link: link}
}

func (bs *BindingsScene) Update() {
	bs.once.Do(bs.configure)

	bs.ecs.Update()
	bs.bindingsUI.Refresh(systems.KeyBindingName, systems.PadBindingName)
	bs.bindingsUI.Update()

	menu := systems.BindingsMenuFor(bs.ecs)
	if !menu.Capturing && inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		bs.shouldGoBack = true
	}
	if bs.shouldGoBack {
		bs.sceneChanger.ChangeScene(NewDiagnosticsScene(bs.sceneChanger, bs.bridge, bs.link))
	}
}

func (bs *BindingsScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if bs.ecs == nil {
		return
	}
	bs.bindingsUI.UI.Draw(screen)
}

func (bs *BindingsScene) configure() {
	bs.ecs = ecs.NewECS(donburi.NewWorld())

	bs.ecs.AddSystem(func(*ecs.ECS) {
		bs.bridge.Tick(time.Now(), bridge.Snapshot{})
	})
	bs.ecs.AddSystem(systems.NewUpdateBindingCapture())

	bs.bindingsUI = ui.NewBindingsUI(
		systems.BindingsMenuFor(bs.ecs),
		func() { bs.shouldGoBack = true },
		func() {
			cfg.Controls = cfg.DefaultControls()
			systems.SaveCurrentBindings()
		},
	)
}
