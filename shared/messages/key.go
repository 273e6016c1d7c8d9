package messages

// EngineKeyDown tells the shim to call the game-engine handle's key-down
// method directly.
type EngineKeyDown struct {
	Key string
}

// EngineKeyUp tells the shim to call the game-engine handle's key-up
// method directly.
type EngineKeyUp struct {
	Key string
}

// SyntheticKeyDown tells the shim to dispatch a keydown KeyboardEvent on
// the document. Fallback path when no engine handle is present.
type SyntheticKeyDown struct {
	Key        string
	Code       string
	Bubbles    bool
	Cancelable bool
}

// SyntheticKeyUp is the keyup counterpart of SyntheticKeyDown.
type SyntheticKeyUp struct {
	Key        string
	Code       string
	Bubbles    bool
	Cancelable bool
}

// UINotice tells the shim to dispatch a custom event on the window for
// menu listeners. Name is NoticePrefix + the lowercase input id and the
// id rides along as the event detail.
type UINotice struct {
	Name    string
	Input   string
	Bubbles bool
}
