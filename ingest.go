package tactile

import "time"

// BatchKind identifies the lifecycle step a PointerBatch reports.
type BatchKind uint8

const (
	BatchDown   BatchKind = iota // a contact touched down
	BatchMove                    // one or more known contacts moved
	BatchUp                      // a contact lifted
	BatchCancel                  // the host aborted every contact
)

// String returns the batch kind name.
func (k BatchKind) String() string {
	switch k {
	case BatchDown:
		return "down"
	case BatchMove:
		return "move"
	case BatchUp:
		return "up"
	case BatchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerBatch is one normalized notification. Pointers is the number of
// contacts active after the batch is applied.
type PointerBatch struct {
	Kind     BatchKind
	Samples  []PointerSample
	T        time.Duration
	Pointers int
}

// BatchSink consumes normalized pointer batches. *Recognizer implements it.
type BatchSink interface {
	HandleBatch(b PointerBatch)
}

// Ingestor normalizes raw down/move/up/cancel notifications into ordered
// PointerBatches. It performs no interpretation: timestamps are passed
// through untouched. Notifications that reference an unknown contact, or
// re-press an active one, are dropped silently.
type Ingestor struct {
	sink   BatchSink
	active map[int]PointerSample
}

// NewIngestor creates an ingestor forwarding to sink.
func NewIngestor(sink BatchSink) *Ingestor {
	return &Ingestor{
		sink:   sink,
		active: make(map[int]PointerSample),
	}
}

// Active returns the number of contacts currently down.
func (in *Ingestor) Active() int {
	return len(in.active)
}

// IsDown reports whether the contact id is currently down.
func (in *Ingestor) IsDown(id int) bool {
	_, ok := in.active[id]
	return ok
}

// Down reports new contacts. Each contact is forwarded as its own batch so
// the pointer count steps one at a time.
func (in *Ingestor) Down(samples ...PointerSample) {
	for _, s := range samples {
		if _, ok := in.active[s.ID]; ok {
			continue
		}
		in.active[s.ID] = s
		in.sink.HandleBatch(PointerBatch{
			Kind:     BatchDown,
			Samples:  []PointerSample{s},
			T:        s.T,
			Pointers: len(in.active),
		})
	}
}

// Move reports movement of existing contacts as a single batch. Unknown
// contacts are filtered out; if none remain nothing is forwarded.
func (in *Ingestor) Move(samples ...PointerSample) {
	var known []PointerSample
	for _, s := range samples {
		if _, ok := in.active[s.ID]; !ok {
			continue
		}
		in.active[s.ID] = s
		known = append(known, s)
	}
	if len(known) == 0 {
		return
	}
	in.sink.HandleBatch(PointerBatch{
		Kind:     BatchMove,
		Samples:  known,
		T:        known[len(known)-1].T,
		Pointers: len(in.active),
	})
}

// Up reports lifted contacts, one batch per contact.
func (in *Ingestor) Up(samples ...PointerSample) {
	for _, s := range samples {
		if _, ok := in.active[s.ID]; !ok {
			continue
		}
		delete(in.active, s.ID)
		in.sink.HandleBatch(PointerBatch{
			Kind:     BatchUp,
			Samples:  []PointerSample{s},
			T:        s.T,
			Pointers: len(in.active),
		})
	}
}

// Cancel aborts every active contact. It is forwarded even when nothing is
// down so downstream timers are always released.
func (in *Ingestor) Cancel(t time.Duration) {
	for id := range in.active {
		delete(in.active, id)
	}
	in.sink.HandleBatch(PointerBatch{Kind: BatchCancel, T: t})
}
