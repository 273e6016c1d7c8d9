package bridge

import (
	"testing"
	"time"
)

func TestSchedulerAfterFiresAtDeadline(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	fired := 0
	s.After(100*time.Millisecond, func() { fired++ })

	s.Advance(start.Add(99 * time.Millisecond))
	if fired != 0 {
		t.Fatal("fired before deadline")
	}
	s.Advance(start.Add(100 * time.Millisecond))
	if fired != 1 {
		t.Fatalf("fired = %d at deadline, want 1", fired)
	}
	s.Advance(start.Add(500 * time.Millisecond))
	if fired != 1 {
		t.Fatalf("one-shot fired again, fired = %d", fired)
	}
}

func TestSchedulerAtUsesAbsoluteDeadline(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	// The anchor is ahead of the scheduler clock, as with a press edge
	// processed before the tick's Advance.
	fired := 0
	s.At(start.Add(416*time.Millisecond), func() { fired++ })

	s.Advance(start.Add(415 * time.Millisecond))
	if fired != 0 {
		t.Fatal("fired before deadline")
	}
	s.Advance(start.Add(416 * time.Millisecond))
	if fired != 1 {
		t.Fatalf("fired = %d at deadline, want 1", fired)
	}
}

func TestSchedulerEveryCatchesUp(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	var at []time.Duration
	s.Every(100*time.Millisecond, func() {
		at = append(at, s.Now().Sub(start))
	})

	// One late advance covers several periods; cadence must hold.
	s.Advance(start.Add(350 * time.Millisecond))

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}
	if len(at) != len(want) {
		t.Fatalf("fire times = %v, want %v", at, want)
	}
	for i := range at {
		if at[i] != want[i] {
			t.Errorf("fire[%d] = %v, want %v", i, at[i], want[i])
		}
	}
}

func TestSchedulerStopPreventsPendingFire(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	fired := false
	timer := s.After(100*time.Millisecond, func() { fired = true })
	timer.Stop()

	s.Advance(start.Add(time.Second))
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestSchedulerStopInsideCallback(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	// The first callback stops the second even though both are already
	// due. This is the stray-late-callback guarantee the bridge relies
	// on when a release cancels a repeat.
	fired := false
	var victim *Timer
	s.After(50*time.Millisecond, func() { victim.Stop() })
	victim = s.After(100*time.Millisecond, func() { fired = true })

	s.Advance(start.Add(time.Second))
	if fired {
		t.Error("timer stopped mid-advance still fired")
	}
}

func TestSchedulerCallbackSchedulesFromDeadline(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	var chained time.Duration
	s.After(100*time.Millisecond, func() {
		s.After(50*time.Millisecond, func() {
			chained = s.Now().Sub(start)
		})
	})

	s.Advance(start.Add(time.Second))
	if want := 150 * time.Millisecond; chained != want {
		t.Errorf("chained timer fired at %v, want %v", chained, want)
	}
}

func TestSchedulerOrderingAtEqualDeadlines(t *testing.T) {
	start := time.Unix(0, 0)
	s := NewScheduler(start)

	var order []string
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(100*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(start.Add(100 * time.Millisecond))
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}
}
