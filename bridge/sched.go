package bridge

import "time"

// Scheduler is a frame-stepped timer queue. Timers only fire inside
// Advance, which the bridge calls once per tick with the frame timestamp,
// so callbacks interleave with ticks but never run concurrently with them.
type Scheduler struct {
	now    time.Time
	timers []*Timer
	seq    uint64
}

// Timer is a pending callback. Stop prevents any future firing, including
// firings that would otherwise happen during the current Advance.
type Timer struct {
	deadline time.Time
	interval time.Duration // 0 for one-shot
	fn       func()
	seq      uint64
	stopped  bool
}

func (t *Timer) Stop() {
	t.stopped = true
}

// NewScheduler creates a scheduler anchored at the given start time.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the timestamp of the most recent Advance.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once d after the current scheduler time.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.add(s.now.Add(d), 0, fn)
}

// At schedules fn to run once at an absolute deadline. Used when the
// anchor is a frame timestamp the scheduler has not advanced to yet.
func (s *Scheduler) At(deadline time.Time, fn func()) *Timer {
	return s.add(deadline, 0, fn)
}

// Every schedules fn to run every d, first firing d after the current
// scheduler time.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	return s.add(s.now.Add(d), d, fn)
}

func (s *Scheduler) add(deadline time.Time, interval time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{deadline: deadline, interval: interval, fn: fn, seq: s.seq}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the scheduler to now, firing every due timer in deadline
// order. A timer due exactly at now does fire. While a callback runs the
// scheduler time is its deadline, so timers the callback schedules keep
// their cadence even when one late frame catches up on several firings.
// Periodic timers reschedule from their deadline, not from now.
// Callbacks may add or stop timers.
func (s *Scheduler) Advance(now time.Time) {
	for {
		t := s.popDue(now)
		if t == nil {
			break
		}
		if t.deadline.After(s.now) {
			s.now = t.deadline
		}
		if t.interval > 0 {
			t.deadline = t.deadline.Add(t.interval)
			s.seq++
			t.seq = s.seq
			s.timers = append(s.timers, t)
		}
		t.fn()
	}
	if now.After(s.now) {
		s.now = now
	}
}

// popDue removes and returns the earliest non-stopped timer with
// deadline <= now, or nil. Stopped timers are dropped as encountered.
func (s *Scheduler) popDue(now time.Time) *Timer {
	best := -1
	for i := 0; i < len(s.timers); i++ {
		t := s.timers[i]
		if t.stopped {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			i--
			continue
		}
		if t.deadline.After(now) {
			continue
		}
		if best == -1 || t.deadline.Before(s.timers[best].deadline) ||
			(t.deadline.Equal(s.timers[best].deadline) && t.seq < s.timers[best].seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	t := s.timers[best]
	s.timers = append(s.timers[:best], s.timers[best+1:]...)
	return t
}
