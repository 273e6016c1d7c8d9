package scenes

import (
	"image/color"
	"sync"

	"github.com/arcadeloop/cabbridge/bridge"
	cfg "github.com/arcadeloop/cabbridge/config"
	"github.com/arcadeloop/cabbridge/shell"
	"github.com/arcadeloop/cabbridge/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// DiagnosticsScene is the default scene: it drives the bridge and draws
// the operator overlay.
type DiagnosticsScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	bridge       *bridge.Bridge
	link         *shell.Link
	once         sync.Once
}

// NewDiagnosticsScene creates the diagnostics scene
func NewDiagnosticsScene(sc SceneChanger, b *bridge.Bridge, link *shell.Link) *DiagnosticsScene {
	return &DiagnosticsScene{sceneChanger: sc, bridge: b, link: link}
}

func (ds *DiagnosticsScene) Update() {
	ds.once.Do(ds.configure)
	ds.ecs.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ds.sceneChanger.ChangeScene(NewBindingsScene(ds.sceneChanger, ds.bridge, ds.link))
	}
}

func (ds *DiagnosticsScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ds.ecs == nil {
		return
	}
	ds.ecs.Draw(screen)
}

func (ds *DiagnosticsScene) configure() {
	ds.ecs = ecs.NewECS(donburi.NewWorld())

	// Sampling must precede the bridge tick; the overlay reads the
	// same frame's buffers afterwards.
	ds.ecs.AddSystem(systems.UpdateController)
	ds.ecs.AddSystem(systems.NewUpdateBridge(ds.bridge))
	ds.ecs.AddSystem(systems.NewUpdateLinkStatus(ds.link))
	ds.ecs.AddSystem(systems.UpdateDiagnostics)

	ds.ecs.AddRenderer(cfg.Default, systems.NewDrawDiagnostics(ds.bridge))
}
