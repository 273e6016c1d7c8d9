package shell

import (
	"log"
	"sync"

	"github.com/arcadeloop/cabbridge/bridge"
	"github.com/arcadeloop/cabbridge/shared/messages"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

// NoticePrefix is prepended to the lowercase input id to form the UI
// notice event name the shim dispatches on the window.
const NoticePrefix = "cab-input-"

// Link hosts the local websocket endpoint the shell page's shim connects
// to, and delivers bridge output to it. It implements bridge.Sink and
// bridge.Notifier. At most one shim session is active; a newer hello
// replaces the older one. With no session every delivery is dropped,
// never an error.
type Link struct {
	mu sync.RWMutex

	client       *router.NetworkClient
	engineDirect bool
	agent        string

	transport *transports.WsServerTransport
}

func NewLink() *Link {
	l := &Link{}
	l.setupRouterCallbacks()
	return l
}

// Start serves the websocket endpoint on the given port. Blocks; run it
// on its own goroutine.
func (l *Link) Start(port uint) error {
	l.transport = transports.NewWsServerTransport(port, "", nil)
	return l.transport.Start()
}

func (l *Link) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		// Session starts at the hello, not the socket connect.
		log.Printf("[shell] shim connected: %s", client.Id())
	})

	router.On(func(client *router.NetworkClient, hello messages.ShellHello) {
		l.adopt(client, hello)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		l.mu.Lock()
		current := l.client == client
		if current {
			l.client = nil
		}
		l.mu.Unlock()

		if current {
			log.Printf("[shell] shim disconnected: %v", err)
		}
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[shell] shim error: %v", err)
	})
}

func (l *Link) adopt(client *router.NetworkClient, hello messages.ShellHello) {
	l.mu.Lock()
	replaced := l.client != nil && l.client != client
	l.client = client
	l.engineDirect = hello.EngineAvailable
	l.agent = hello.Agent
	l.mu.Unlock()

	if replaced {
		log.Printf("[shell] newer shim session replaces the old one")
	}

	delivery := "synthetic"
	if hello.EngineAvailable {
		delivery = "engine"
	}
	log.Printf("[shell] hello from %q, delivery path: %s", hello.Agent, delivery)

	if err := client.SendMessage(messages.HelloAck{
		Delivery:     delivery,
		NoticePrefix: NoticePrefix,
	}); err != nil {
		log.Printf("[shell] hello ack failed: %v", err)
	}
}

// Connected reports whether a shim session is active.
func (l *Link) Connected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.client != nil
}

// Delivery names the active path: "engine", "synthetic" or "none".
func (l *Link) Delivery() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	switch {
	case l.client == nil:
		return "none"
	case l.engineDirect:
		return "engine"
	default:
		return "synthetic"
	}
}

// Agent returns the shim's reported user agent, empty when disconnected.
func (l *Link) Agent() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.client == nil {
		return ""
	}
	return l.agent
}

// KeyDown implements bridge.Sink.
func (l *Link) KeyDown(k bridge.Key) {
	l.mu.RLock()
	client, engine := l.client, l.engineDirect
	l.mu.RUnlock()
	if client == nil {
		return
	}

	var msg any
	if engine {
		msg = messages.EngineKeyDown{Key: k.Key}
	} else {
		msg = messages.SyntheticKeyDown{Key: k.Key, Code: k.Code, Bubbles: true, Cancelable: true}
	}
	l.send(client, msg)
}

// KeyUp implements bridge.Sink.
func (l *Link) KeyUp(k bridge.Key) {
	l.mu.RLock()
	client, engine := l.client, l.engineDirect
	l.mu.RUnlock()
	if client == nil {
		return
	}

	var msg any
	if engine {
		msg = messages.EngineKeyUp{Key: k.Key}
	} else {
		msg = messages.SyntheticKeyUp{Key: k.Key, Code: k.Code, Bubbles: true, Cancelable: true}
	}
	l.send(client, msg)
}

// Notify implements bridge.Notifier.
func (l *Link) Notify(in bridge.Input) {
	l.mu.RLock()
	client := l.client
	l.mu.RUnlock()
	if client == nil {
		return
	}

	l.send(client, messages.UINotice{
		Name:    NoticePrefix + in.ID(),
		Input:   in.ID(),
		Bubbles: true,
	})
}

func (l *Link) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[shell] send failed: %v", err)
	}
}
