package tactile

// HitShape is the interface for custom hit-test regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

type route struct {
	shape HitShape
	sink  BatchSink
}

// Router captures each contact to the sink whose region it touched down in,
// so every later move and up of that contact goes to the same sink. This is
// how list rows get exclusive ownership of their pointers. Contacts that
// land outside every region go to the fallback sink, if any.
type Router struct {
	routes   []route
	fallback BatchSink
	captured map[int]BatchSink
	counts   map[BatchSink]int
}

// NewRouter creates a router. fallback may be nil.
func NewRouter(fallback BatchSink) *Router {
	return &Router{
		fallback: fallback,
		captured: make(map[int]BatchSink),
		counts:   make(map[BatchSink]int),
	}
}

// Add registers a region. Later regions are hit-tested first, matching
// painter order where the last drawn element is on top.
func (rt *Router) Add(shape HitShape, sink BatchSink) {
	rt.routes = append(rt.routes, route{shape: shape, sink: sink})
}

// Captured returns the sink that owns pointer id, or nil.
func (rt *Router) Captured(id int) BatchSink {
	return rt.captured[id]
}

func (rt *Router) hitTest(x, y float64) BatchSink {
	for i := len(rt.routes) - 1; i >= 0; i-- {
		if rt.routes[i].shape.Contains(x, y) {
			return rt.routes[i].sink
		}
	}
	return rt.fallback
}

// HandleBatch implements BatchSink. Pointer counts are rewritten per sink
// so each recognizer only sees its own contacts.
func (rt *Router) HandleBatch(b PointerBatch) {
	switch b.Kind {
	case BatchDown:
		for _, s := range b.Samples {
			sink := rt.hitTest(s.X, s.Y)
			if sink == nil {
				continue
			}
			rt.captured[s.ID] = sink
			rt.counts[sink]++
			sink.HandleBatch(PointerBatch{Kind: BatchDown, Samples: []PointerSample{s}, T: s.T, Pointers: rt.counts[sink]})
		}

	case BatchMove:
		var order []BatchSink
		groups := make(map[BatchSink][]PointerSample)
		for _, s := range b.Samples {
			sink := rt.captured[s.ID]
			if sink == nil {
				continue
			}
			if _, ok := groups[sink]; !ok {
				order = append(order, sink)
			}
			groups[sink] = append(groups[sink], s)
		}
		for _, sink := range order {
			sink.HandleBatch(PointerBatch{Kind: BatchMove, Samples: groups[sink], T: b.T, Pointers: rt.counts[sink]})
		}

	case BatchUp:
		for _, s := range b.Samples {
			sink := rt.captured[s.ID]
			if sink == nil {
				continue
			}
			delete(rt.captured, s.ID)
			rt.counts[sink]--
			if rt.counts[sink] <= 0 {
				delete(rt.counts, sink)
			}
			sink.HandleBatch(PointerBatch{Kind: BatchUp, Samples: []PointerSample{s}, T: s.T, Pointers: rt.counts[sink]})
		}

	case BatchCancel:
		for id := range rt.captured {
			delete(rt.captured, id)
		}
		for sink := range rt.counts {
			delete(rt.counts, sink)
		}
		for _, r := range rt.routes {
			r.sink.HandleBatch(PointerBatch{Kind: BatchCancel, T: b.T})
		}
		if rt.fallback != nil {
			rt.fallback.HandleBatch(PointerBatch{Kind: BatchCancel, T: b.T})
		}
	}
}
