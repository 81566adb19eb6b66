package tactile

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestOffsetTweenReachesZero(t *testing.T) {
	tw := newOffsetTween(100, 200*time.Millisecond, nil)
	if tw.Done || tw.Value() != 100 {
		t.Fatalf("start: done=%v value=%v", tw.Done, tw.Value())
	}

	prev := tw.Value()
	for i := 0; i < 9; i++ {
		v := tw.Update(20 * time.Millisecond)
		if v > prev {
			t.Fatalf("step %d: offset grew from %v to %v", i, prev, v)
		}
		prev = v
	}
	if tw.Done {
		t.Fatal("done before the duration elapsed")
	}

	tw.Update(50 * time.Millisecond)
	if !tw.Done || tw.Value() != 0 {
		t.Errorf("end: done=%v value=%v", tw.Done, tw.Value())
	}
}

func TestOffsetTweenZeroDuration(t *testing.T) {
	tw := newOffsetTween(-40, 0, nil)
	if !tw.Done || tw.Value() != 0 || tw.Update(time.Second) != 0 {
		t.Error("zero duration tween should start done at zero")
	}
}

func TestOffsetTweenZeroStepHolds(t *testing.T) {
	tw := newOffsetTween(-60, 100*time.Millisecond, nil)
	tw.Update(30 * time.Millisecond)
	v := tw.Value()
	if tw.Update(0) != v {
		t.Error("zero dt moved the tween")
	}
	if v >= 0 || v <= -60 {
		t.Errorf("value = %v, want within (-60, 0)", v)
	}
}

func TestOffsetTweenEasingShapesCurve(t *testing.T) {
	linear := newOffsetTween(100, 100*time.Millisecond, ease.Linear)
	cubic := newOffsetTween(100, 100*time.Millisecond, ease.OutCubic)
	l := linear.Update(25 * time.Millisecond)
	c := cubic.Update(25 * time.Millisecond)
	if l < 74 || l > 76 {
		t.Errorf("linear at 25%% = %v, want ~75", l)
	}
	if c >= l {
		t.Errorf("OutCubic (%v) should lead linear (%v)", c, l)
	}
}
