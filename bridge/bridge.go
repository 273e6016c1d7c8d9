package bridge

import "time"

// Default hold-repeat timings.
const (
	DefaultRepeatDelay    = 400 * time.Millisecond
	DefaultRepeatInterval = 150 * time.Millisecond
)

// Config configures a Bridge.
type Config struct {
	// Keymap maps logical inputs to key identities. Inputs missing from
	// the map never emit key transitions (UI notices still fire).
	Keymap map[Input]Key

	// Repeatable lists the inputs that auto-repeat while held. Defaults
	// to Up and Down when nil.
	Repeatable []Input

	// RepeatDelay is the hold time before the first repeat fires.
	RepeatDelay time.Duration

	// RepeatInterval is the spacing of repeats after the delay.
	RepeatInterval time.Duration
}

// hold tracks one repeat-eligible input while it is pressed.
type hold struct {
	startedAt     time.Time
	repeatStarted bool
	delayTimer    *Timer
	intervalTimer *Timer
}

func (h *hold) stop() {
	if h.delayTimer != nil {
		h.delayTimer.Stop()
	}
	if h.intervalTimer != nil {
		h.intervalTimer.Stop()
	}
}

// Bridge turns per-frame input snapshots into edge-triggered key events
// and UI notices. All state is owned by the caller's frame loop; Tick and
// the timers it fires run on a single logical thread.
type Bridge struct {
	sink     Sink
	notifier Notifier
	sched    *Scheduler

	keymap     [InputCount]Key
	hasKey     [InputCount]bool
	repeatable [InputCount]bool
	delay      time.Duration
	interval   time.Duration

	active [InputCount]bool
	holds  [InputCount]*hold
}

// New creates a bridge delivering to sink and notifier. start anchors the
// internal scheduler; pass the first frame's timestamp.
func New(sink Sink, notifier Notifier, start time.Time, cfg Config) *Bridge {
	if sink == nil {
		sink = NopSink{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cfg.RepeatDelay <= 0 {
		cfg.RepeatDelay = DefaultRepeatDelay
	}
	if cfg.RepeatInterval <= 0 {
		cfg.RepeatInterval = DefaultRepeatInterval
	}
	if cfg.Repeatable == nil {
		cfg.Repeatable = []Input{Up, Down}
	}

	b := &Bridge{
		sink:     sink,
		notifier: notifier,
		sched:    NewScheduler(start),
		delay:    cfg.RepeatDelay,
		interval: cfg.RepeatInterval,
	}
	for in, k := range cfg.Keymap {
		if in >= 0 && in < InputCount {
			b.keymap[in] = k
			b.hasKey[in] = true
		}
	}
	for _, in := range cfg.Repeatable {
		if in >= 0 && in < InputCount {
			b.repeatable[in] = true
		}
	}
	return b
}

// Tick runs one frame: edge detection against the previous active set,
// then due timers. Edges are processed first so a release cancels any
// repeat that would fire at the exact same instant.
func (b *Bridge) Tick(now time.Time, snap Snapshot) {
	for in := Input(0); in < InputCount; in++ {
		switch {
		case snap[in] && !b.active[in]:
			b.press(in, now)
		case !snap[in] && b.active[in]:
			b.release(in)
		}
	}
	b.sched.Advance(now)
}

// Pressed reports whether the input is in the active set.
func (b *Bridge) Pressed(in Input) bool {
	return b.active[in]
}

// Repeating reports whether the input's hold has passed its initial delay.
func (b *Bridge) Repeating(in Input) bool {
	return b.holds[in] != nil && b.holds[in].repeatStarted
}

func (b *Bridge) press(in Input, now time.Time) {
	b.active[in] = true
	b.fire(in)
	if b.repeatable[in] {
		b.startHold(in, now)
	}
}

func (b *Bridge) release(in Input) {
	b.active[in] = false
	if h := b.holds[in]; h != nil {
		h.stop()
		b.holds[in] = nil
	}
	if b.hasKey[in] {
		b.sink.KeyUp(b.keymap[in])
	}
}

// fire emits one press notification: the mapped key-down plus the UI
// notice. Used for the press edge and for every repeat.
func (b *Bridge) fire(in Input) {
	if b.hasKey[in] {
		b.sink.KeyDown(b.keymap[in])
	}
	b.notifier.Notify(in)
}

// startHold arms the repeat timers for a press detected at now. The
// delay runs from the press tick's timestamp, not the scheduler clock,
// which still sits at the previous frame while edges are processed.
func (b *Bridge) startHold(in Input, now time.Time) {
	if b.holds[in] != nil {
		// Invariant: one hold per input. A press edge while a hold
		// exists cannot happen, but never stack timers regardless.
		b.holds[in].stop()
	}
	h := &hold{startedAt: now}
	h.delayTimer = b.sched.At(now.Add(b.delay), func() {
		h.repeatStarted = true
		b.fire(in)
		h.intervalTimer = b.sched.Every(b.interval, func() {
			b.fire(in)
		})
	})
	b.holds[in] = h
}
