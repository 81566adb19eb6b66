package tactile

import "github.com/rs/zerolog"

// logger receives state-machine diagnostics. Silent unless SetLogger is called.
var logger = zerolog.Nop()

// SetLogger routes recognizer and controller diagnostics to l. Transitions
// and emitted gestures are logged at debug level, recovered refresh
// failures at warn level.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// logSession returns a debug event tagged with the session id, or nil when
// debug logging is disabled.
func logSession(id string) *zerolog.Event {
	return logger.Debug().Str("session", id)
}

// logGesture records an emitted gesture.
func logGesture(e GestureEvent) {
	ev := logSession(e.SessionID)
	if ev == nil {
		return
	}
	ev = ev.Stringer("gesture", e.Kind).Dur("t", e.T)
	switch e.Kind {
	case GestureSwipe:
		ev = ev.Stringer("direction", e.Direction)
	case GesturePan:
		ev = ev.Stringer("phase", e.Phase).Float64("dx", e.DX).Float64("dy", e.DY)
	case GesturePinch:
		ev = ev.Stringer("phase", e.Phase).Float64("scale", e.Scale)
	}
	ev.Msg("gesture")
}
