package tactile

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// offsetTween animates a controller's visual offset back to zero. Controllers
// drive it from their Update with the elapsed host time.
type offsetTween struct {
	tween *gween.Tween
	value float64
	Done  bool
}

// newOffsetTween starts a tween from `from` to 0. A non-positive duration
// yields a tween that is already done.
func newOffsetTween(from float64, duration time.Duration, fn ease.TweenFunc) *offsetTween {
	if duration <= 0 {
		return &offsetTween{Done: true}
	}
	if fn == nil {
		fn = ease.OutCubic
	}
	return &offsetTween{
		tween: gween.New(float32(from), 0, float32(duration.Seconds()), fn),
		value: from,
	}
}

// Update advances the tween by dt and returns the current offset.
func (t *offsetTween) Update(dt time.Duration) float64 {
	if t.Done {
		return 0
	}
	if dt <= 0 {
		return t.value
	}
	val, finished := t.tween.Update(float32(dt.Seconds()))
	t.value = float64(val)
	if finished {
		t.value = 0
		t.Done = true
	}
	return t.value
}

// Value returns the current offset without advancing.
func (t *offsetTween) Value() float64 {
	if t.Done {
		return 0
	}
	return t.value
}
