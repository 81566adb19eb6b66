package tactile

import (
	"math"
	"time"
)

// Recognizer turns normalized pointer batches into gestures. It owns one
// TouchSession at a time and a Scheduler for its long-press and deferred
// tap timers.
//
// A Recognizer is not safe for concurrent use; call it from the host's
// event loop. Timers only fire inside HandleBatch and Update, so hosts must
// call Update regularly (typically once per frame) for LongPress and Tap to
// be delivered without further input.
type Recognizer struct {
	cfg      GestureConfig
	sched    *Scheduler
	handlers handlerRegistry
	store    EventStore
	session  *TouchSession
	closed   bool

	// Deferred tap. It outlives the session that produced it. A session
	// that begins while the timer is pending holds the tap: it becomes a
	// DoubleTap if that session is a tap, otherwise it is delivered ahead of
	// the session's first event.
	deferredTap GestureEvent
	pendingTap  TimerHandle
	heldTap     bool
}

// NewRecognizer creates a recognizer. A zero GestureConfig selects
// DefaultGestureConfig; otherwise cfg is used as given.
func NewRecognizer(cfg GestureConfig) *Recognizer {
	if cfg == (GestureConfig{}) {
		cfg = DefaultGestureConfig()
	}
	return &Recognizer{
		cfg:   cfg,
		sched: NewScheduler(),
	}
}

// Config returns the recognizer's thresholds.
func (r *Recognizer) Config() GestureConfig {
	return r.cfg
}

// SetEventStore sets the optional ECS bridge.
func (r *Recognizer) SetEventStore(store EventStore) {
	r.store = store
}

// State returns the phase of the live session, or StateIdle.
func (r *Recognizer) State() SessionState {
	if r.session == nil {
		return StateIdle
	}
	return r.session.state
}

// Session returns the live session, or nil when idle.
func (r *Recognizer) Session() *TouchSession {
	return r.session
}

// PendingTimers returns the number of outstanding timers.
func (r *Recognizer) PendingTimers() int {
	return r.sched.Pending()
}

// Now returns the recognizer's clock.
func (r *Recognizer) Now() time.Duration {
	return r.sched.Now()
}

// Update advances the recognizer clock, firing due LongPress and Tap timers.
func (r *Recognizer) Update(now time.Duration) {
	if r.closed {
		return
	}
	r.sched.Advance(now)
}

// Close cancels every timer, ends the live session without emitting, and
// removes all subscribers. The recognizer ignores input afterwards.
func (r *Recognizer) Close() {
	if r.closed {
		return
	}
	r.cancelAll(r.sched.Now(), false)
	r.handlers = handlerRegistry{}
	r.closed = true
}

// HandleBatch applies one normalized batch. Timers due at or before the
// batch timestamp fire first, so the result matches what a real-time host
// would have observed.
func (r *Recognizer) HandleBatch(b PointerBatch) {
	if r.closed {
		return
	}
	r.sched.Advance(b.T)

	switch b.Kind {
	case BatchDown:
		if len(b.Samples) > 0 {
			r.pointerDown(b.Samples[0], b.Pointers)
		}
	case BatchMove:
		r.pointerMove(b.Samples)
	case BatchUp:
		if len(b.Samples) > 0 {
			r.pointerUp(b.Samples[0])
		}
	case BatchCancel:
		r.cancelAll(b.T, true)
	}
}

// --- State machine ---

func (r *Recognizer) pointerDown(p PointerSample, pointers int) {
	s := r.session
	if s == nil {
		// A session only starts from zero contacts. Leftover contacts from
		// an ended pinch are ignored until they lift.
		if pointers > 1 {
			return
		}
		r.beginSession(p)
		return
	}

	if _, ok := s.active[p.ID]; ok {
		return
	}
	s.active[p.ID] = p

	switch s.state {
	case StateSingleActive, StateLongPressArmed, StatePanCandidate:
		r.beginPinch(s, p)
	}
}

func (r *Recognizer) beginSession(p PointerSample) {
	s := newTouchSession(p)
	r.session = s
	logSession(s.id).Dur("t", p.T).Float64("x", p.X).Float64("y", p.Y).Msg("session begin")

	if r.pendingTap != 0 {
		r.sched.Cancel(r.pendingTap)
		r.pendingTap = 0
		r.heldTap = true
	}
	r.handlers.dispatchBegin(s)

	if r.cfg.LongPressDelay > 0 {
		s.state = StateLongPressArmed
		s.longPress = r.sched.Schedule(r.cfg.LongPressDelay, func() {
			s.longPress = 0
			r.setState(s, StateLongPressed)
			r.emit(GestureEvent{
				Kind:      GestureLongPress,
				X:         s.last.X,
				Y:         s.last.Y,
				T:         r.sched.Now(),
				SessionID: s.id,
			})
		})
	}
}

func (r *Recognizer) beginPinch(s *TouchSession, second PointerSample) {
	r.sched.Cancel(s.longPress)
	s.longPress = 0

	if s.state == StatePanCandidate {
		dx, dy := s.last.Sub(s.start)
		r.emit(GestureEvent{
			Kind: GesturePan, Phase: PhaseCancelled,
			DX: dx, DY: dy, X: s.last.X, Y: s.last.Y,
			T: second.T, SessionID: s.id,
		})
	}

	s.pinchA = s.start.ID
	s.pinchB = second.ID
	s.pinchBase = s.pinchDistance()
	s.pinchScale = 1
	r.setState(s, StateMultiActive)

	cx, cy := s.pinchCenter()
	r.emit(GestureEvent{
		Kind: GesturePinch, Phase: PhaseBegan, Scale: 1,
		X: cx, Y: cy, T: second.T, SessionID: s.id,
	})
}

func (r *Recognizer) pointerMove(samples []PointerSample) {
	s := r.session
	if s == nil {
		return
	}

	var primary *PointerSample
	pinchMoved := false
	for i := range samples {
		p := samples[i]
		if _, ok := s.active[p.ID]; !ok {
			continue
		}
		s.active[p.ID] = p
		if s.primary(p.ID) {
			s.last = p
			primary = &samples[i]
		}
		if p.ID == s.pinchA || p.ID == s.pinchB {
			pinchMoved = true
		}
	}

	switch s.state {
	case StateSingleActive, StateLongPressArmed:
		if primary == nil {
			return
		}
		if primary.DistanceTo(s.start) <= r.cfg.PanCancelThreshold {
			return
		}
		r.sched.Cancel(s.longPress)
		s.longPress = 0
		r.setState(s, StatePanCandidate)
		r.emitPan(s, *primary, PhaseBegan)

	case StatePanCandidate:
		if primary != nil {
			r.emitPan(s, *primary, PhaseChanged)
		}

	case StateMultiActive:
		if !pinchMoved {
			return
		}
		if s.pinchBase > 0 {
			s.pinchScale = s.pinchDistance() / s.pinchBase
		}
		cx, cy := s.pinchCenter()
		r.emit(GestureEvent{
			Kind: GesturePinch, Phase: PhaseChanged, Scale: s.pinchScale,
			X: cx, Y: cy, T: samples[len(samples)-1].T, SessionID: s.id,
		})
	}
}

func (r *Recognizer) pointerUp(p PointerSample) {
	s := r.session
	if s == nil {
		return
	}
	if _, ok := s.active[p.ID]; !ok {
		return
	}
	delete(s.active, p.ID)
	if s.primary(p.ID) {
		s.last = p
	}

	switch s.state {
	case StateMultiActive:
		if p.ID != s.pinchA && p.ID != s.pinchB {
			return
		}
		other := s.active[otherPinch(s, p.ID)]
		r.emit(GestureEvent{
			Kind: GesturePinch, Phase: PhaseEnded, Scale: s.pinchScale,
			X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2, T: p.T, SessionID: s.id,
		})
		r.endSession()

	case StateLongPressed:
		if len(s.active) == 0 {
			r.endSession()
		}

	default:
		if s.primary(p.ID) {
			r.release(s, p)
		}
	}
}

func otherPinch(s *TouchSession, id int) int {
	if id == s.pinchA {
		return s.pinchB
	}
	return s.pinchA
}

// release classifies a single-contact session at pointer up.
func (r *Recognizer) release(s *TouchSession, p PointerSample) {
	r.sched.Cancel(s.longPress)
	s.longPress = 0

	panning := s.state == StatePanCandidate
	if panning {
		r.emitPan(s, p, PhaseEnded)
	}

	duration := p.T - s.start.T
	dx, dy := p.Sub(s.start)
	distance := math.Hypot(dx, dy)

	switch {
	case distance > r.cfg.SwipeThreshold && duration < r.cfg.SwipeMaxDuration:
		r.emit(GestureEvent{
			Kind: GestureSwipe, Direction: directionOf(dx, dy),
			DX: dx, DY: dy, X: p.X, Y: p.Y, T: p.T, SessionID: s.id,
		})
	case !panning && distance < r.cfg.TapMaxDistance && duration < r.cfg.TapMaxDuration:
		r.completeTap(s, p)
	default:
		r.flushHeldTap(p.T)
		if !panning {
			logSession(s.id).Dur("duration", duration).Float64("distance", distance).Msg("release unclassified")
		}
	}
	r.endSession()
}

// completeTap either folds p into a DoubleTap with the held tap or defers
// p's own Tap until the double-tap window has elapsed.
func (r *Recognizer) completeTap(s *TouchSession, p PointerSample) {
	if r.heldTap {
		r.heldTap = false
		r.emit(GestureEvent{
			Kind: GestureDoubleTap, X: p.X, Y: p.Y, T: p.T, SessionID: s.id,
		})
		return
	}

	tap := GestureEvent{Kind: GestureTap, X: p.X, Y: p.Y, SessionID: s.id}
	if r.cfg.DoubleTapWindow <= 0 {
		tap.T = p.T
		r.emit(tap)
		return
	}

	r.deferredTap = tap
	r.pendingTap = r.sched.Schedule(r.cfg.DoubleTapWindow, func() {
		r.pendingTap = 0
		tap := r.deferredTap
		tap.T = r.sched.Now()
		r.emit(tap)
	})
}

// flushHeldTap delivers a held tap whose follower turned out not to be a tap.
func (r *Recognizer) flushHeldTap(t time.Duration) {
	if !r.heldTap {
		return
	}
	r.heldTap = false
	tap := r.deferredTap
	tap.T = t
	r.deliver(tap)
}

func (r *Recognizer) emitPan(s *TouchSession, p PointerSample, phase Phase) {
	dx, dy := p.Sub(s.start)
	r.emit(GestureEvent{
		Kind: GesturePan, Phase: phase,
		DX: dx, DY: dy, X: p.X, Y: p.Y, T: p.T, SessionID: s.id,
	})
}

// endSession cancels the session's timers and discards it.
func (r *Recognizer) endSession() {
	s := r.session
	if s == nil {
		return
	}
	r.sched.Cancel(s.longPress)
	s.longPress = 0
	logSession(s.id).Stringer("state", s.state).Msg("session end")
	r.session = nil
}

// cancelAll aborts the live session and the deferred tap. When notify is
// set, an in-progress pan or pinch receives a Cancelled event; no discrete
// gesture is ever emitted.
func (r *Recognizer) cancelAll(t time.Duration, notify bool) {
	r.heldTap = false
	if s := r.session; s != nil && notify {
		switch s.state {
		case StatePanCandidate:
			dx, dy := s.last.Sub(s.start)
			r.emit(GestureEvent{
				Kind: GesturePan, Phase: PhaseCancelled,
				DX: dx, DY: dy, X: s.last.X, Y: s.last.Y, T: t, SessionID: s.id,
			})
		case StateMultiActive:
			cx, cy := s.pinchCenter()
			r.emit(GestureEvent{
				Kind: GesturePinch, Phase: PhaseCancelled, Scale: s.pinchScale,
				X: cx, Y: cy, T: t, SessionID: s.id,
			})
		}
	}
	r.endSession()
	r.pendingTap = 0
	r.sched.CancelAll()
}

func (r *Recognizer) setState(s *TouchSession, state SessionState) {
	logSession(s.id).Stringer("from", s.state).Stringer("to", state).Msg("transition")
	s.state = state
}

// emit delivers e, preceded by any held tap: an event from the session that
// held it means that session is not the second half of a double tap.
func (r *Recognizer) emit(e GestureEvent) {
	r.flushHeldTap(e.T)
	r.deliver(e)
}

func (r *Recognizer) deliver(e GestureEvent) {
	logGesture(e)
	r.handlers.dispatch(e)
	if r.store != nil {
		r.store.EmitGesture(e)
	}
}
