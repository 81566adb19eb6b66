package tactile

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// touchReading is one touch contact as reported for the current frame.
type touchReading struct {
	id   ebiten.TouchID
	x, y float64
}

// EbitenSource polls Ebitengine's mouse and touch state once per frame and
// feeds the resulting down/move/up transitions into an Ingestor. The left
// mouse button is pointer 0; touches are mapped to stable pointers 1-9.
type EbitenSource struct {
	in *Ingestor

	// ToLocal converts screen coordinates before they are ingested, for
	// example into a row's local space. Nil leaves them untouched.
	ToLocal func(sx, sy float64) (float64, float64)
	// DisableMouse stops pointer 0 from being polled.
	DisableMouse bool

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	readings     []touchReading
	down         [maxPointers]bool
	last         [maxPointers]PointerSample
}

// NewEbitenSource creates a source feeding in.
func NewEbitenSource(in *Ingestor) *EbitenSource {
	return &EbitenSource{in: in}
}

// Poll reads the current frame's input. Call it from ebiten.Game.Update,
// passing the host clock used for the recognizer.
func (s *EbitenSource) Poll(now time.Duration) {
	var mx, my float64
	var pressed bool
	if !s.DisableMouse {
		cx, cy := ebiten.CursorPosition()
		mx, my = float64(cx), float64(cy)
		pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs
	s.readings = s.readings[:0]
	for _, tid := range touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		s.readings = append(s.readings, touchReading{id: tid, x: float64(tx), y: float64(ty)})
	}

	s.applyFrame(now, mx, my, pressed, s.readings)
}

// applyFrame diffs one frame of readings against the previous frame.
func (s *EbitenSource) applyFrame(now time.Duration, mx, my float64, mousePressed bool, touches []touchReading) {
	if !s.DisableMouse {
		s.applyPointer(0, now, mx, my, mousePressed)
	}

	var seen [maxPointers]bool
	for _, r := range touches {
		slot := s.touchSlot(r.id)
		if slot < 0 {
			continue
		}
		seen[slot] = true
		s.applyPointer(slot, now, r.x, r.y, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !seen[i] {
			last := s.last[i]
			s.applyPointer(i, now, last.X, last.Y, false)
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

func (s *EbitenSource) applyPointer(slot int, now time.Duration, sx, sy float64, pressed bool) {
	x, y := sx, sy
	if s.ToLocal != nil {
		x, y = s.ToLocal(sx, sy)
	}
	sample := PointerSample{ID: slot, X: x, Y: y, T: now}

	switch {
	case pressed && !s.down[slot]:
		s.down[slot] = true
		s.last[slot] = sample
		s.in.Down(sample)
	case pressed && s.down[slot]:
		if x != s.last[slot].X || y != s.last[slot].Y {
			s.last[slot] = sample
			s.in.Move(sample)
		}
	case !pressed && s.down[slot]:
		s.down[slot] = false
		s.last[slot] = sample
		s.in.Up(sample)
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *EbitenSource) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}
