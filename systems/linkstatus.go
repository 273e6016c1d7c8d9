package systems

import (
	"github.com/arcadeloop/cabbridge/components"
	"github.com/arcadeloop/cabbridge/shell"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateLinkStatus mirrors the shell link state into a component once
// per frame so draw systems never touch the link's locks.
func NewUpdateLinkStatus(link *shell.Link) ecs.System {
	return func(e *ecs.ECS) {
		status := getOrCreateLinkStatus(e)
		status.Connected = link.Connected()
		status.Delivery = link.Delivery()
		status.Agent = link.Agent()
	}
}

// getOrCreateLinkStatus returns the singleton LinkStatus component, creating if needed
func getOrCreateLinkStatus(e *ecs.ECS) *components.LinkStatusData {
	entry, ok := components.LinkStatus.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.LinkStatus))
	}
	return components.LinkStatus.Get(entry)
}
