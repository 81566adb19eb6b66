package tactile

import (
	"sort"
	"time"
)

// TimerHandle identifies a scheduled callback. The zero handle is never
// issued, so an unset field can be cancelled safely.
type TimerHandle uint64

type timerEntry struct {
	handle   TimerHandle
	deadline time.Duration
	fn       func()
}

// Scheduler is a cancelable delay primitive driven by the host clock.
// Callbacks never run on their own goroutine: they fire inside Advance, in
// deadline order, on the caller's goroutine. A cancelled callback never
// runs, even when it is cancelled by another callback firing in the same
// Advance call.
type Scheduler struct {
	now     time.Duration
	nextID  TimerHandle
	pending []timerEntry
	// firing holds the entries already removed from pending by the
	// current Advance that have not run yet.
	firing []timerEntry
}

// NewScheduler creates a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the most recent Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Schedule runs fn once the clock reaches Now()+delay. Negative delays are
// treated as zero; the callback still waits for the next Advance.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) TimerHandle {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.pending = append(s.pending, timerEntry{
		handle:   s.nextID,
		deadline: s.now + delay,
		fn:       fn,
	})
	return s.nextID
}

// Cancel prevents h from firing. It is idempotent and safe to call after
// the timer has already fired or with the zero handle.
func (s *Scheduler) Cancel(h TimerHandle) {
	if h == 0 {
		return
	}
	s.pending = removeTimer(s.pending, h)
	s.firing = removeTimer(s.firing, h)
}

func removeTimer(entries []timerEntry, h TimerHandle) []timerEntry {
	for i := range entries {
		if entries[i].handle == h {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = timerEntry{}
			return entries[:len(entries)-1]
		}
	}
	return entries
}

// CancelAll drops every outstanding callback.
func (s *Scheduler) CancelAll() {
	for i := range s.pending {
		s.pending[i] = timerEntry{}
	}
	s.pending = s.pending[:0]
	for i := range s.firing {
		s.firing[i] = timerEntry{}
	}
	s.firing = s.firing[:0]
}

// Pending returns the number of callbacks that have not fired or been cancelled.
func (s *Scheduler) Pending() int {
	return len(s.pending) + len(s.firing)
}

// Advance moves the clock to now and fires every callback whose deadline is
// at or before it. Callbacks scheduled while firing with a deadline inside
// the window also fire in this call. Moving the clock backwards is a no-op.
func (s *Scheduler) Advance(now time.Duration) {
	if now < s.now {
		return
	}
	for {
		due := s.collectDue(now)
		if !due {
			break
		}
		for len(s.firing) > 0 {
			e := s.firing[0]
			copy(s.firing, s.firing[1:])
			s.firing[len(s.firing)-1] = timerEntry{}
			s.firing = s.firing[:len(s.firing)-1]
			if e.deadline > s.now {
				s.now = e.deadline
			}
			e.fn()
		}
	}
	s.now = now
}

// collectDue moves due entries from pending to firing, sorted by deadline
// with ties kept in scheduling order.
func (s *Scheduler) collectDue(now time.Duration) bool {
	kept := s.pending[:0]
	for _, e := range s.pending {
		if e.deadline <= now {
			s.firing = append(s.firing, e)
		} else {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.pending); i++ {
		s.pending[i] = timerEntry{}
	}
	s.pending = kept
	if len(s.firing) == 0 {
		return false
	}
	sort.SliceStable(s.firing, func(i, j int) bool {
		return s.firing[i].deadline < s.firing[j].deadline
	})
	return true
}
