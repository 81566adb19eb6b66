package tactile

// --- Handler registry ---

type gestureHandler struct {
	id    uint32
	fn    func(GestureEvent)
	begin func(*TouchSession)
}

const (
	kindAny      = int(GesturePinch) + 1 // catch-all slot registered by OnGesture
	slotBegin    = kindAny + 1           // session-begin observers
	handlerSlots = slotBegin + 1
)

type handlerRegistry struct {
	byKind [handlerSlots][]gestureHandler
	nextID uint32
}

// CallbackHandle allows removing a registered gesture callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	slot int
}

// Remove unregisters this callback so it no longer fires. Removing twice,
// or removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.byKind[h.slot] = removeGestureHandler(h.reg.byKind[h.slot], h.id)
}

func removeGestureHandler(s []gestureHandler, id uint32) []gestureHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (reg *handlerRegistry) add(slot int, fn func(GestureEvent)) CallbackHandle {
	return reg.addHandler(slot, gestureHandler{fn: fn})
}

func (reg *handlerRegistry) addHandler(slot int, h gestureHandler) CallbackHandle {
	reg.nextID++
	h.id = reg.nextID
	reg.byKind[slot] = append(reg.byKind[slot], h)
	return CallbackHandle{id: h.id, reg: reg, slot: slot}
}

// dispatch calls kind-specific handlers first, then catch-all handlers.
func (reg *handlerRegistry) dispatch(e GestureEvent) {
	for _, h := range reg.byKind[e.Kind] {
		h.fn(e)
	}
	for _, h := range reg.byKind[kindAny] {
		h.fn(e)
	}
}

func (reg *handlerRegistry) dispatchBegin(s *TouchSession) {
	for _, h := range reg.byKind[slotBegin] {
		h.begin(s)
	}
}

func (reg *handlerRegistry) count() int {
	n := 0
	for _, s := range reg.byKind {
		n += len(s)
	}
	return n
}

// --- Recognizer-level event registration ---

// OnTap registers a callback for single taps.
func (r *Recognizer) OnTap(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(int(GestureTap), fn)
}

// OnDoubleTap registers a callback for double taps.
func (r *Recognizer) OnDoubleTap(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(int(GestureDoubleTap), fn)
}

// OnLongPress registers a callback for long presses.
func (r *Recognizer) OnLongPress(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(int(GestureLongPress), fn)
}

// OnSwipe registers a callback for swipes. The event's Direction is set.
func (r *Recognizer) OnSwipe(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(int(GestureSwipe), fn)
}

// OnPan registers a callback for every pan phase.
func (r *Recognizer) OnPan(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(int(GesturePan), fn)
}

// OnPinch registers a callback for every pinch phase.
func (r *Recognizer) OnPinch(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(int(GesturePinch), fn)
}

// OnGesture registers a callback that receives every event, after the
// kind-specific callbacks.
func (r *Recognizer) OnGesture(fn func(GestureEvent)) CallbackHandle {
	return r.handlers.add(kindAny, fn)
}

// OnSessionBegin registers a callback that runs when a new session starts,
// before any gesture of that session is emitted. Controllers use it to
// sample host state at the first touch.
func (r *Recognizer) OnSessionBegin(fn func(s *TouchSession)) CallbackHandle {
	return r.handlers.addHandler(slotBegin, gestureHandler{begin: fn})
}
