package tactile

import (
	"math"
	"time"
)

// Updater is anything driven by the host clock: Recognizer,
// PullToRefreshController and SwipeRevealController all qualify.
type Updater interface {
	Update(now time.Duration)
}

// defaultInjectStep is the interval between synthesized moves, one 60Hz frame.
const defaultInjectStep = 16 * time.Millisecond

// Injector synthesizes timed pointer sequences into an Ingestor on a virtual
// clock. Waiting advances the clock and updates every attached Updater, so
// scripted input observes the same timer behavior as a real host loop.
type Injector struct {
	in       *Ingestor
	updaters []Updater
	now      time.Duration
	nextID   int

	// Step is the interval between synthesized moves. Zero selects 16ms.
	Step time.Duration
}

// NewInjector creates an injector feeding in and driving updaters.
func NewInjector(in *Ingestor, updaters ...Updater) *Injector {
	return &Injector{in: in, updaters: updaters, nextID: 1}
}

// Now returns the virtual clock.
func (j *Injector) Now() time.Duration {
	return j.now
}

func (j *Injector) step() time.Duration {
	if j.Step <= 0 {
		return defaultInjectStep
	}
	return j.Step
}

// Wait advances the virtual clock by d and updates every Updater.
func (j *Injector) Wait(d time.Duration) {
	if d < 0 {
		d = 0
	}
	j.now += d
	for _, u := range j.updaters {
		u.Update(j.now)
	}
}

// Press touches down a new contact at (x, y) and returns its pointer ID.
func (j *Injector) Press(x, y float64) int {
	id := j.nextID
	j.nextID++
	j.in.Down(PointerSample{ID: id, X: x, Y: y, T: j.now})
	return id
}

// MoveTo moves contact id to (x, y) at the current time.
func (j *Injector) MoveTo(id int, x, y float64) {
	j.in.Move(PointerSample{ID: id, X: x, Y: y, T: j.now})
}

// Release lifts contact id at (x, y).
func (j *Injector) Release(id int, x, y float64) {
	j.in.Up(PointerSample{ID: id, X: x, Y: y, T: j.now})
}

// Cancel aborts every contact.
func (j *Injector) Cancel() {
	j.in.Cancel(j.now)
}

// InjectTap presses and releases at (x, y) one step apart.
func (j *Injector) InjectTap(x, y float64) {
	id := j.Press(x, y)
	j.Wait(j.step())
	j.Release(id, x, y)
}

// InjectHold presses at (x, y), stays still for d, then releases.
func (j *Injector) InjectHold(x, y float64, d time.Duration) {
	id := j.Press(x, y)
	j.Wait(d)
	j.Release(id, x, y)
}

// InjectDrag presses at (fromX, fromY), moves linearly to (toX, toY) over
// d in Step increments and releases there.
func (j *Injector) InjectDrag(fromX, fromY, toX, toY float64, d time.Duration) {
	id := j.Press(fromX, fromY)
	steps := j.steps(d)
	for i := 1; i <= steps; i++ {
		j.Wait(d / time.Duration(steps))
		t := float64(i) / float64(steps)
		j.MoveTo(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	j.Release(id, toX, toY)
}

// InjectFlick presses and releases at two points d apart with no moves in
// between, the way hosts that coalesce movement report a fast swipe.
func (j *Injector) InjectFlick(fromX, fromY, toX, toY float64, d time.Duration) {
	id := j.Press(fromX, fromY)
	j.Wait(d)
	j.Release(id, toX, toY)
}

// InjectPinch places two contacts on a horizontal line through (cx, cy),
// fromDist apart, spreads them to toDist over d, and releases both.
func (j *Injector) InjectPinch(cx, cy, fromDist, toDist float64, d time.Duration) {
	a := j.Press(cx-fromDist/2, cy)
	b := j.Press(cx+fromDist/2, cy)
	steps := j.steps(d)
	half := fromDist / 2
	for i := 1; i <= steps; i++ {
		j.Wait(d / time.Duration(steps))
		t := float64(i) / float64(steps)
		half = (fromDist + (toDist-fromDist)*t) / 2
		j.in.Move(
			PointerSample{ID: a, X: cx - half, Y: cy, T: j.now},
			PointerSample{ID: b, X: cx + half, Y: cy, T: j.now},
		)
	}
	j.Release(a, cx-half, cy)
	j.Release(b, cx+half, cy)
}

func (j *Injector) steps(d time.Duration) int {
	n := int(math.Ceil(float64(d) / float64(j.step())))
	if n < 1 {
		n = 1
	}
	return n
}
