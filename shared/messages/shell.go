package messages

// ShellHello is sent by the shell page's shim right after connecting.
// EngineAvailable reports whether the page found the hosted game-engine
// handle, which decides the delivery path for the session.
type ShellHello struct {
	Agent           string
	EngineAvailable bool
}

// HelloAck is the bridge's reply confirming the selected delivery path.
type HelloAck struct {
	Delivery     string // "engine" or "synthetic"
	NoticePrefix string // event name prefix for UI notices
}
