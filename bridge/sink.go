package bridge

// Key is the keyboard identity an input maps to, matching the key/code
// fields of a browser KeyboardEvent.
type Key struct {
	Key  string
	Code string
}

// Sink receives key transitions. Implementations deliver either directly
// to the hosted game engine or as synthetic keyboard events on the
// document; the bridge does not care which.
type Sink interface {
	KeyDown(k Key)
	KeyUp(k Key)
}

// Notifier receives press-edge UI notices for menu listeners.
type Notifier interface {
	Notify(in Input)
}

// NopSink drops every transition. Used while no shell is connected.
type NopSink struct{}

func (NopSink) KeyDown(Key) {}
func (NopSink) KeyUp(Key)   {}

// NopNotifier drops every notice.
type NopNotifier struct{}

func (NopNotifier) Notify(Input) {}
