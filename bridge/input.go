package bridge

// Input identifies a logical cabinet control, independent of the physical
// key or gamepad button it is mapped to.
type Input int

const (
	Up Input = iota
	Down
	Left
	Right
	P1A
	P1B
	P2A
	P2B
	Start
	InputCount // Must be last - used for array sizing
)

// ids holds the wire/UI identifier for each input. Iteration order of
// Inputs defines emission order within a tick.
var ids = [InputCount]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
	P1A:   "p1-a",
	P1B:   "p1-b",
	P2A:   "p2-a",
	P2B:   "p2-b",
	Start: "start",
}

// ID returns the lowercase identifier used in UI notices ("up", "p1-a").
func (in Input) ID() string {
	if in < 0 || in >= InputCount {
		return "unknown"
	}
	return ids[in]
}

func (in Input) String() string { return in.ID() }

// Snapshot is one frame's sampled pressed state for every logical input.
// Directional and start inputs are expected to already be the OR of both
// players' physical controls.
type Snapshot [InputCount]bool
