package bridge

import (
	"testing"
	"time"
)

// emission records a single delivery with the scheduler time it fired at.
type emission struct {
	kind string // "down", "up", "notice"
	key  Key
	in   Input
	at   time.Duration
}

// recorder captures sink and notifier output for assertions.
type recorder struct {
	b     *Bridge
	start time.Time
	log   []emission
}

func (r *recorder) at() time.Duration { return r.b.sched.Now().Sub(r.start) }

func (r *recorder) KeyDown(k Key) {
	r.log = append(r.log, emission{kind: "down", key: k, at: r.at()})
}

func (r *recorder) KeyUp(k Key) {
	r.log = append(r.log, emission{kind: "up", key: k, at: r.at()})
}

func (r *recorder) Notify(in Input) {
	r.log = append(r.log, emission{kind: "notice", in: in, at: r.at()})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.log {
		if e.kind == kind {
			n++
		}
	}
	return n
}

var testKeymap = map[Input]Key{
	Up:    {Key: "ArrowUp", Code: "ArrowUp"},
	Down:  {Key: "ArrowDown", Code: "ArrowDown"},
	P1A:   {Key: "1", Code: "Digit1"},
	Start: {Key: "Enter", Code: "Enter"},
}

// newTestBridge wires a bridge to a recorder with the default timings.
func newTestBridge(t *testing.T) (*Bridge, *recorder) {
	t.Helper()
	start := time.Unix(0, 0)
	rec := &recorder{start: start}
	b := New(rec, rec, start, Config{
		Keymap:         testKeymap,
		RepeatDelay:    400 * time.Millisecond,
		RepeatInterval: 150 * time.Millisecond,
	})
	rec.b = b
	return b, rec
}

func tickAt(b *Bridge, ms int, snap Snapshot) {
	b.Tick(time.Unix(0, 0).Add(time.Duration(ms)*time.Millisecond), snap)
}

func TestPressEdgeEmitsOnceEach(t *testing.T) {
	b, rec := newTestBridge(t)

	var snap Snapshot
	snap[P1A] = true
	tickAt(b, 0, snap)

	if got := rec.count("down"); got != 1 {
		t.Fatalf("key downs after press = %d, want 1", got)
	}
	if got := rec.count("notice"); got != 1 {
		t.Fatalf("notices after press = %d, want 1", got)
	}
	if rec.log[0].key != testKeymap[P1A] {
		t.Errorf("key down = %+v, want %+v", rec.log[0].key, testKeymap[P1A])
	}

	tickAt(b, 16, Snapshot{})

	if got := rec.count("up"); got != 1 {
		t.Fatalf("key ups after release = %d, want 1", got)
	}
	if got := rec.count("notice"); got != 1 {
		t.Errorf("release must not notify, notices = %d", got)
	}
}

func TestIdempotentTicks(t *testing.T) {
	b, rec := newTestBridge(t)

	var snap Snapshot
	snap[P1A] = true
	snap[Start] = true
	tickAt(b, 0, snap)
	before := len(rec.log)

	// Unchanged non-repeating state must produce nothing new.
	for ms := 16; ms < 200; ms += 16 {
		tickAt(b, ms, snap)
	}
	if len(rec.log) != before {
		t.Errorf("unchanged ticks emitted %d extra events", len(rec.log)-before)
	}
	if !b.Pressed(P1A) || !b.Pressed(Start) {
		t.Error("active set lost held inputs")
	}
}

// TestStartIsEdgeTriggered pins the decision that start does not refire
// while held (the continuous-fire behavior seen in the field was a bug).
func TestStartIsEdgeTriggered(t *testing.T) {
	b, rec := newTestBridge(t)

	var snap Snapshot
	snap[Start] = true
	for ms := 0; ms <= 1000; ms += 16 {
		tickAt(b, ms, snap)
	}

	if got := rec.count("down"); got != 1 {
		t.Errorf("start held 1s emitted %d key downs, want 1", got)
	}
	if got := rec.count("notice"); got != 1 {
		t.Errorf("start held 1s emitted %d notices, want 1", got)
	}
}

// TestHoldRepeatTimeline is the worked example: up pressed at t=0, held
// through t=1000ms, released at t=1000ms, delay 400ms, interval 150ms.
func TestHoldRepeatTimeline(t *testing.T) {
	b, rec := newTestBridge(t)

	var held Snapshot
	held[Up] = true
	for ms := 0; ms < 1000; ms += 50 {
		tickAt(b, ms, held)
	}
	tickAt(b, 1000, Snapshot{})

	wantNotices := []time.Duration{
		0,
		400 * time.Millisecond,
		550 * time.Millisecond,
		700 * time.Millisecond,
		850 * time.Millisecond,
	}
	var got []time.Duration
	for _, e := range rec.log {
		if e.kind == "notice" {
			got = append(got, e.at)
		}
	}
	if len(got) != len(wantNotices) {
		t.Fatalf("notice times = %v, want %v", got, wantNotices)
	}
	for i := range got {
		if got[i] != wantNotices[i] {
			t.Errorf("notice[%d] at %v, want %v", i, got[i], wantNotices[i])
		}
	}

	// No repeat at the exact release instant, and exactly one key up.
	if got := rec.count("up"); got != 1 {
		t.Errorf("key ups = %d, want 1", got)
	}
	last := rec.log[len(rec.log)-1]
	if last.kind != "up" {
		t.Errorf("final emission = %q, want release key up", last.kind)
	}
}

func TestRepeatCount(t *testing.T) {
	// Held for duration d, the repeats after the press are
	// floor((d-delay)/interval) + 1 once d passes the delay.
	cases := []struct {
		holdMS int
		want   int
	}{
		{399, 0},
		{400, 1},
		{549, 1},
		{550, 2},
		{1000, 5},
		{1449, 7},
	}
	for _, tc := range cases {
		b, rec := newTestBridge(t)
		var held Snapshot
		held[Down] = true
		for ms := 0; ms <= tc.holdMS; ms += 7 {
			tickAt(b, ms, held)
		}
		tickAt(b, tc.holdMS, held)
		if got := rec.count("notice") - 1; got != tc.want {
			t.Errorf("hold %dms: repeats = %d, want %d", tc.holdMS, got, tc.want)
		}
	}
}

// TestHoldDelayAnchoredAtPressTick covers a press landing on a tick whose
// timestamp is ahead of the previous frame: the delay runs from the press
// tick itself, so a hold shorter than the delay never repeats even when
// the scheduler last advanced a frame earlier.
func TestHoldDelayAnchoredAtPressTick(t *testing.T) {
	b, rec := newTestBridge(t)

	tickAt(b, 0, Snapshot{})

	var held Snapshot
	held[Up] = true
	tickAt(b, 16, held)
	for ms := 55; ms <= 405; ms += 50 {
		tickAt(b, ms, held)
	}
	tickAt(b, 410, Snapshot{})

	// 394ms hold, under the 400ms delay: press pair only.
	if got := rec.count("notice"); got != 1 {
		t.Errorf("notices = %d, want 1 (press only)", got)
	}
	if got := rec.count("down"); got != 1 {
		t.Errorf("key downs = %d, want 1", got)
	}
	if got := rec.count("up"); got != 1 {
		t.Errorf("key ups = %d, want 1", got)
	}
}

func TestFirstRepeatAtPressTickPlusDelay(t *testing.T) {
	b, rec := newTestBridge(t)

	tickAt(b, 0, Snapshot{})

	var held Snapshot
	held[Up] = true
	tickAt(b, 16, held)
	for ms := 66; ms <= 500; ms += 50 {
		tickAt(b, ms, held)
	}

	var repeats []time.Duration
	for _, e := range rec.log {
		if e.kind == "notice" && e.at > 16*time.Millisecond {
			repeats = append(repeats, e.at)
		}
	}
	if len(repeats) != 1 || repeats[0] != 416*time.Millisecond {
		t.Errorf("repeat times = %v, want [416ms]", repeats)
	}
}

func TestReleaseBeforeDelaySuppressesRepeat(t *testing.T) {
	b, rec := newTestBridge(t)

	var held Snapshot
	held[Up] = true
	tickAt(b, 0, held)
	tickAt(b, 300, Snapshot{})

	// Advance far past the delay; nothing more may fire.
	tickAt(b, 5000, Snapshot{})

	if got := rec.count("down"); got != 1 {
		t.Errorf("key downs = %d, want 1", got)
	}
	if got := rec.count("up"); got != 1 {
		t.Errorf("key ups = %d, want 1", got)
	}
	if got := rec.count("notice"); got != 1 {
		t.Errorf("notices = %d, want 1", got)
	}
}

func TestNoEmissionAfterRelease(t *testing.T) {
	b, rec := newTestBridge(t)

	var held Snapshot
	held[Up] = true
	for ms := 0; ms <= 700; ms += 50 {
		tickAt(b, ms, held)
	}
	tickAt(b, 750, Snapshot{})
	n := len(rec.log)

	for ms := 800; ms <= 3000; ms += 50 {
		tickAt(b, ms, Snapshot{})
	}
	if len(rec.log) != n {
		t.Errorf("emissions continued after release: %v", rec.log[n:])
	}
	if b.Repeating(Up) {
		t.Error("hold state survived release")
	}
}

func TestSimultaneousInputsIndependent(t *testing.T) {
	b, rec := newTestBridge(t)

	var snap Snapshot
	snap[Up] = true
	snap[P1A] = true
	tickAt(b, 0, snap)

	// Declaration order within the tick: up before p1-a.
	var notices []Input
	for _, e := range rec.log {
		if e.kind == "notice" {
			notices = append(notices, e.in)
		}
	}
	if len(notices) != 2 || notices[0] != Up || notices[1] != P1A {
		t.Fatalf("notice order = %v, want [up p1-a]", notices)
	}

	// Releasing one must not disturb the other's hold.
	snap[P1A] = false
	tickAt(b, 100, snap)
	held := snap
	for ms := 150; ms <= 400; ms += 50 {
		tickAt(b, ms, held)
	}
	if !b.Repeating(Up) {
		t.Error("up repeat suppressed by p1-a release")
	}
}

func TestUnmappedInputOnlyNotifies(t *testing.T) {
	b, rec := newTestBridge(t)

	var snap Snapshot
	snap[P2B] = true // not in testKeymap
	tickAt(b, 0, snap)
	tickAt(b, 16, Snapshot{})

	if got := rec.count("down") + rec.count("up"); got != 0 {
		t.Errorf("unmapped input emitted %d key events", got)
	}
	if got := rec.count("notice"); got != 1 {
		t.Errorf("notices = %d, want 1", got)
	}
}

func TestAllReleasedSnapshotReleasesEverything(t *testing.T) {
	b, _ := newTestBridge(t)

	var snap Snapshot
	for in := Input(0); in < InputCount; in++ {
		snap[in] = true
	}
	tickAt(b, 0, snap)

	// Source gone: all-false snapshot, everything releases, no error path.
	tickAt(b, 16, Snapshot{})
	for in := Input(0); in < InputCount; in++ {
		if b.Pressed(in) {
			t.Errorf("%s still active after all-released snapshot", in)
		}
	}
}
