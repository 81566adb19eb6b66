package tactile

import (
	"math"
	"time"
)

// PointerSample is one instantaneous reading of one contact point.
// T is a host monotonic timestamp measured from an arbitrary epoch.
// Samples are values and are never mutated after creation.
type PointerSample struct {
	ID   int
	X, Y float64
	T    time.Duration
}

// Sub returns the displacement from o to s.
func (s PointerSample) Sub(o PointerSample) (dx, dy float64) {
	return s.X - o.X, s.Y - o.Y
}

// DistanceTo returns the euclidean distance between two samples.
func (s PointerSample) DistanceTo(o PointerSample) float64 {
	dx, dy := s.Sub(o)
	return math.Hypot(dx, dy)
}

// GestureKind identifies a recognized gesture.
type GestureKind uint8

const (
	GestureTap       GestureKind = iota // single tap, reported after the double-tap window
	GestureDoubleTap                    // two taps inside the double-tap window
	GestureLongPress                    // press held still for the long-press delay
	GestureSwipe                        // fast directional flick resolved at release
	GesturePan                          // continuous single-pointer drag
	GesturePinch                        // continuous two-pointer scale
)

// String returns the gesture name used in logs.
func (k GestureKind) String() string {
	switch k {
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "double-tap"
	case GestureLongPress:
		return "long-press"
	case GestureSwipe:
		return "swipe"
	case GesturePan:
		return "pan"
	case GesturePinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// Discrete reports whether at most one gesture of this kind can fire per session.
func (k GestureKind) Discrete() bool {
	return k <= GestureSwipe
}

// Direction is the dominant axis and sign of a swipe or row reveal.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Horizontal reports whether d is left or right.
func (d Direction) Horizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

// directionOf classifies a displacement by its larger component.
// Ties resolve to the horizontal axis.
func directionOf(dx, dy float64) Direction {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if dy < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// Phase is the lifecycle stage of a continuous gesture event.
type Phase uint8

const (
	PhaseNone      Phase = iota // discrete gestures carry no phase
	PhaseBegan                  // first event of a pan or pinch
	PhaseChanged                // subsequent movement
	PhaseEnded                  // contact released normally
	PhaseCancelled              // interrupted by cancel or a competing gesture
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// GestureEvent is the tagged union delivered to subscribers.
// DX and DY are relative to the session's first sample for Pan and Swipe.
// Scale is only meaningful for Pinch.
type GestureEvent struct {
	Kind      GestureKind
	Phase     Phase
	Direction Direction
	DX, DY    float64
	Scale     float64
	X, Y      float64 // position of the sample that produced the event
	T         time.Duration
	SessionID string
}

// HapticKind selects a feedback pulse.
type HapticKind uint8

const (
	HapticLight   HapticKind = iota // subtle tick
	HapticSuccess                   // confirmation pulse
)

// String returns the pulse name.
func (h HapticKind) String() string {
	if h == HapticSuccess {
		return "success"
	}
	return "light"
}

// Haptics receives feedback pulses from the controllers.
type Haptics interface {
	Pulse(kind HapticKind)
}

// HapticsFunc adapts a function to the Haptics interface.
type HapticsFunc func(kind HapticKind)

// Pulse calls f(kind).
func (f HapticsFunc) Pulse(kind HapticKind) { f(kind) }

type noHaptics struct{}

func (noHaptics) Pulse(HapticKind) {}

// EventStore is the interface for optional ECS integration.
// When set on a Recognizer, every gesture event is forwarded to it.
type EventStore interface {
	EmitGesture(event GestureEvent)
}
