package systems

import (
	"time"

	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateBridge creates the system feeding each frame's snapshot into
// the bridge. Edge detection, hold-repeat timers and delivery all happen
// inside Tick, on this goroutine.
func NewUpdateBridge(b *bridge.Bridge) ecs.System {
	return func(e *ecs.ECS) {
		ctl := getOrCreateController(e)
		b.Tick(time.Now(), ctl.Current)
	}
}
