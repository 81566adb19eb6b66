package tactile

import (
	"math"

	"github.com/google/uuid"
)

// SessionState is the recognizer phase for the live TouchSession.
type SessionState uint8

const (
	StateIdle           SessionState = iota // no session
	StateSingleActive                       // one contact down, long press disabled
	StateLongPressArmed                     // one contact down, long-press timer pending
	StatePanCandidate                       // moved past the cancel threshold; emitting Pan
	StateLongPressed                        // LongPress fired; session consumed
	StateMultiActive                        // two contacts down; emitting Pinch
)

// String returns the state name used in logs.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSingleActive:
		return "single-active"
	case StateLongPressArmed:
		return "long-press-armed"
	case StatePanCandidate:
		return "pan-candidate"
	case StateLongPressed:
		return "long-pressed"
	case StateMultiActive:
		return "multi-active"
	default:
		return "unknown"
	}
}

// TouchSession is the state of one interaction, from the first contact
// down to the last contact up or a cancel. It is owned by exactly one
// Recognizer and replaced, never reused, for the next interaction.
type TouchSession struct {
	id     string
	start  PointerSample
	last   PointerSample
	active map[int]PointerSample
	state  SessionState

	longPress TimerHandle

	// Pinch baseline: the two tracked contacts and their initial distance.
	pinchA, pinchB int
	pinchBase      float64
	pinchScale     float64
}

func newTouchSession(first PointerSample) *TouchSession {
	return &TouchSession{
		id:     uuid.NewString(),
		start:  first,
		last:   first,
		active: map[int]PointerSample{first.ID: first},
		state:  StateSingleActive,
	}
}

// ID returns the session's unique identifier.
func (s *TouchSession) ID() string { return s.id }

// Start returns the sample that opened the session.
func (s *TouchSession) Start() PointerSample { return s.start }

// Last returns the most recent sample of the primary contact.
func (s *TouchSession) Last() PointerSample { return s.last }

// State returns the session phase.
func (s *TouchSession) State() SessionState { return s.state }

// ActivePointers returns the number of contacts the session is tracking.
func (s *TouchSession) ActivePointers() int { return len(s.active) }

// primary reports whether id is the contact that opened the session.
func (s *TouchSession) primary(id int) bool { return id == s.start.ID }

// pinchDistance returns the current distance between the two pinch contacts.
func (s *TouchSession) pinchDistance() float64 {
	a, b := s.active[s.pinchA], s.active[s.pinchB]
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// pinchCenter returns the midpoint between the two pinch contacts.
func (s *TouchSession) pinchCenter() (float64, float64) {
	a, b := s.active[s.pinchA], s.active[s.pinchB]
	return (a.X + b.X) / 2, (a.Y + b.Y) / 2
}
