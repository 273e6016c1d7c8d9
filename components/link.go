package components

import "github.com/yohamta/donburi"

// LinkStatusData mirrors the shell link state for the overlay. Written
// once per frame by the link status system so draw code never touches
// the link's locks.
type LinkStatusData struct {
	Connected bool
	Delivery  string // "engine", "synthetic" or "none"
	Agent     string
}

var LinkStatus = donburi.NewComponentType[LinkStatusData]()
