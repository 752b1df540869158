package book

import (
	"sort"
	"time"
)

// Scheduler runs fn once, d from now, on the caller's event loop.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// Timer is a handle on a scheduled callback. Stop reports whether it
// prevented the callback from running.
type Timer interface {
	Stop() bool
}

// ManualScheduler is a Scheduler driven by a virtual clock. Callbacks run
// inside Advance, in due order; callbacks due at the same instant run in
// the order they were scheduled.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Timer {
	s.seq++
	t := &manualTimer{due: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Now is the virtual time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending is the number of callbacks that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that comes
// due. Callbacks may schedule more work; it runs too if it falls within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		t := s.nextDue(end)
		if t == nil {
			break
		}
		s.now = t.due
		t.fired = true
		t.fn()
	}
	s.now = end
	s.compact()
}

func (s *ManualScheduler) nextDue(end time.Duration) *manualTimer {
	var ready []*manualTimer
	for _, t := range s.pending {
		if !t.stopped && !t.fired && t.due <= end {
			ready = append(ready, t)
		}
	}
	if len(ready) == 0 {
		return nil
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].due != ready[j].due {
			return ready[i].due < ready[j].due
		}
		return ready[i].seq < ready[j].seq
	})
	return ready[0]
}

func (s *ManualScheduler) compact() {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.pending = live
}
