package tactile

import (
	"testing"
	"time"
)

type revealHarness struct {
	rec     *Recognizer
	reveal  *SwipeRevealController
	j       *Injector
	left    int // LeftActions[0] triggers
	right   int // RightActions[0] triggers
	extra   int // any other action triggers
	pulses  []HapticKind
	states  []RevealState
	gesture recorder
}

func newRevealHarness(cfg RevealConfig) *revealHarness {
	h := &revealHarness{}
	h.rec = NewRecognizer(DefaultGestureConfig())
	h.rec.OnGesture(h.gesture.add)
	cfg.LeftActions = []Action{
		ActionFunc(func() { h.left++ }),
		ActionFunc(func() { h.extra++ }),
	}
	cfg.RightActions = []Action{
		ActionFunc(func() { h.right++ }),
		ActionFunc(func() { h.extra++ }),
	}
	h.reveal = NewSwipeReveal(h.rec, cfg, HapticsFunc(func(k HapticKind) {
		h.pulses = append(h.pulses, k)
	}))
	h.states = []RevealState{RevealIdle}
	h.reveal.OnStateChange(func(_, to RevealState) { h.states = append(h.states, to) })
	h.j = NewInjector(NewIngestor(h.rec), h.rec, h.reveal)
	return h
}

func TestRevealFullSwipeTriggersFirstRightAction(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	h.j.InjectDrag(200, 20, 110, 20, 160*time.Millisecond)

	if h.right != 1 || h.left != 0 || h.extra != 0 {
		t.Errorf("triggers right=%d left=%d extra=%d, want only right once", h.right, h.left, h.extra)
	}
	if len(h.pulses) != 1 || h.pulses[0] != HapticSuccess {
		t.Errorf("pulses = %v, want [success]", h.pulses)
	}
	if h.reveal.State() != RevealResetting {
		t.Fatalf("state = %s, want resetting", h.reveal.State())
	}

	h.j.Wait(250 * time.Millisecond)
	if h.reveal.State() != RevealIdle || h.reveal.Offset() != 0 {
		t.Errorf("after reset state=%s offset=%v", h.reveal.State(), h.reveal.Offset())
	}
	if h.right != 1 {
		t.Errorf("right triggers = %d after reset, want 1", h.right)
	}
}

func TestRevealFullSwipeRightTriggersFirstLeftAction(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	h.j.InjectDrag(100, 20, 200, 20, 160*time.Millisecond)

	if h.left != 1 || h.right != 0 || h.extra != 0 {
		t.Errorf("triggers left=%d right=%d extra=%d, want only left once", h.left, h.right, h.extra)
	}
}

func TestRevealShortSwipeTriggersNothing(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	h.j.InjectDrag(200, 20, 170, 20, 160*time.Millisecond)

	if h.left+h.right+h.extra != 0 {
		t.Errorf("short swipe triggered an action")
	}
	if len(h.pulses) != 1 || h.pulses[0] != HapticLight {
		t.Errorf("pulses = %v, want [light]", h.pulses)
	}
	want := []RevealState{RevealIdle, RevealSwiping, RevealResetting}
	if len(h.states) != len(want) {
		t.Fatalf("states = %v, want %v", h.states, want)
	}
	for i := range want {
		if h.states[i] != want[i] {
			t.Fatalf("states = %v, want %v", h.states, want)
		}
	}
}

func TestRevealBarelyMovedIsSilent(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	h.j.InjectDrag(200, 20, 185, 20, 160*time.Millisecond)

	if h.left+h.right+h.extra != 0 || len(h.pulses) != 0 {
		t.Errorf("triggers=%d pulses=%v, want nothing", h.left+h.right+h.extra, h.pulses)
	}
}

func TestRevealOffsetFollowsPan(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	id := h.j.Press(200, 20)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 160, 22)

	if h.reveal.State() != RevealSwiping {
		t.Fatalf("state = %s, want swiping", h.reveal.State())
	}
	if h.reveal.Direction() != DirectionLeft {
		t.Errorf("Direction = %s, want left", h.reveal.Direction())
	}
	if h.reveal.Offset() != -40 {
		t.Errorf("Offset = %v, want -40", h.reveal.Offset())
	}
}

func TestRevealDirectionLock(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	id := h.j.Press(200, 20)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 170, 20)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 320, 20)

	if h.reveal.Direction() != DirectionLeft {
		t.Errorf("Direction = %s, want left to stay locked", h.reveal.Direction())
	}
	if h.reveal.Offset() != 0 {
		t.Errorf("Offset = %v, want 0 when dragged past the locked side", h.reveal.Offset())
	}

	h.j.Wait(16 * time.Millisecond)
	h.j.Release(id, 320, 20)
	if h.left+h.right+h.extra != 0 {
		t.Error("reversed drag triggered an action")
	}
}

func TestRevealLocksAfterDiagonalStart(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	id := h.j.Press(200, 20)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 194, 29) // pan begins, still inside the lock threshold
	if h.reveal.State() != RevealIdle {
		t.Fatalf("state = %s, want idle before locking", h.reveal.State())
	}
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 150, 30)
	if h.reveal.State() != RevealSwiping || h.reveal.Direction() != DirectionLeft {
		t.Fatalf("state=%s direction=%s, want swiping left", h.reveal.State(), h.reveal.Direction())
	}
	h.j.Wait(16 * time.Millisecond)
	h.j.Release(id, 100, 30)
	if h.right != 1 {
		t.Errorf("right triggers = %d, want 1", h.right)
	}
}

func TestRevealPannedSwipeTriggersOnce(t *testing.T) {
	cfg := DefaultRevealConfig()
	cfg.ResetDuration = 0
	h := newRevealHarness(cfg)

	h.j.InjectDrag(200, 20, 100, 20, 100*time.Millisecond)

	if h.gesture.count(GestureSwipe) != 1 {
		t.Fatalf("swipes = %d, want the drag to also classify as a swipe", h.gesture.count(GestureSwipe))
	}
	if h.right != 1 || len(h.pulses) != 1 {
		t.Errorf("right=%d pulses=%v, want one trigger and one pulse", h.right, h.pulses)
	}
}

func TestRevealIgnoresVerticalPan(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	id := h.j.Press(200, 20)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 202, 60)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 60, 60)
	h.j.Wait(16 * time.Millisecond)
	h.j.Release(id, 60, 60)

	if h.reveal.State() != RevealIdle || len(h.states) != 1 {
		t.Errorf("vertical pan moved the row: states=%v", h.states)
	}
	if h.left+h.right+h.extra != 0 {
		t.Error("vertical pan triggered an action")
	}

	// The next session is judged afresh.
	h.j.Wait(time.Second)
	h.j.InjectDrag(200, 20, 100, 20, 160*time.Millisecond)
	if h.right != 1 {
		t.Errorf("right triggers = %d, want 1", h.right)
	}
}

func TestRevealDiscreteSwipe(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	h.j.InjectFlick(200, 20, 100, 20, 100*time.Millisecond)

	if h.gesture.count(GestureSwipe) != 1 {
		t.Fatalf("swipes = %d, want 1", h.gesture.count(GestureSwipe))
	}
	if h.right != 1 || h.left != 0 {
		t.Errorf("triggers right=%d left=%d, want right once", h.right, h.left)
	}

	h.j.Wait(time.Second)
	h.j.InjectFlick(100, 20, 100, 120, 100*time.Millisecond)
	if h.right+h.left != 1 {
		t.Error("vertical swipe triggered an action")
	}
}

func TestRevealCancelledPanResets(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())

	id := h.j.Press(200, 20)
	h.j.Wait(16 * time.Millisecond)
	h.j.MoveTo(id, 100, 20)
	h.j.Cancel()

	if h.reveal.State() != RevealResetting {
		t.Errorf("state = %s, want resetting", h.reveal.State())
	}
	if h.left+h.right+h.extra != 0 || len(h.pulses) != 0 {
		t.Error("cancelled pan triggered feedback")
	}
}

func TestRevealZeroResetSnapsBack(t *testing.T) {
	cfg := DefaultRevealConfig()
	cfg.ResetDuration = 0
	h := newRevealHarness(cfg)

	h.j.InjectDrag(200, 20, 100, 20, 160*time.Millisecond)

	if h.reveal.State() != RevealIdle {
		t.Errorf("state = %s, want idle", h.reveal.State())
	}
	if h.right != 1 {
		t.Errorf("right triggers = %d, want 1", h.right)
	}
}

func TestRevealWithoutActions(t *testing.T) {
	rec := NewRecognizer(DefaultGestureConfig())
	var pulses []HapticKind
	c := NewSwipeReveal(rec, RevealConfig{}, HapticsFunc(func(k HapticKind) { pulses = append(pulses, k) }))
	j := NewInjector(NewIngestor(rec), rec, c)

	j.InjectDrag(200, 20, 100, 20, 160*time.Millisecond)

	if len(pulses) != 0 {
		t.Errorf("pulses = %v, want none without actions", pulses)
	}
	if c.cfg.ActionThreshold != 80 || c.cfg.LockThreshold != rec.Config().PanCancelThreshold {
		t.Errorf("zero config not defaulted: %+v", c.cfg)
	}
}

func TestRevealNilHaptics(t *testing.T) {
	rec := NewRecognizer(DefaultGestureConfig())
	triggered := 0
	cfg := DefaultRevealConfig()
	cfg.RightActions = []Action{ActionFunc(func() { triggered++ })}
	c := NewSwipeReveal(rec, cfg, nil)
	j := NewInjector(NewIngestor(rec), rec, c)

	j.InjectDrag(200, 20, 100, 20, 160*time.Millisecond)
	if triggered != 1 {
		t.Errorf("triggered = %d, want 1", triggered)
	}
}

func TestRevealClose(t *testing.T) {
	h := newRevealHarness(DefaultRevealConfig())
	h.reveal.Close()
	h.reveal.Close()

	h.j.InjectDrag(200, 20, 100, 20, 160*time.Millisecond)
	h.j.InjectFlick(200, 20, 100, 20, 100*time.Millisecond)

	if h.left+h.right+h.extra != 0 || len(h.states) != 1 {
		t.Errorf("closed controller reacted: triggers=%d states=%v", h.left+h.right+h.extra, h.states)
	}
}

func TestRowsDoNotShareContacts(t *testing.T) {
	recA := NewRecognizer(DefaultGestureConfig())
	recB := NewRecognizer(DefaultGestureConfig())
	var a, b int
	cfgA := DefaultRevealConfig()
	cfgA.RightActions = []Action{ActionFunc(func() { a++ })}
	cfgB := DefaultRevealConfig()
	cfgB.RightActions = []Action{ActionFunc(func() { b++ })}
	rowA := NewSwipeReveal(recA, cfgA, nil)
	rowB := NewSwipeReveal(recB, cfgB, nil)

	router := NewRouter(nil)
	router.Add(HitRect{X: 0, Y: 0, Width: 300, Height: 50}, recA)
	router.Add(HitRect{X: 0, Y: 60, Width: 300, Height: 50}, recB)
	j := NewInjector(NewIngestor(router), recA, recB, rowA, rowB)

	// The drag leaves row A's bounds but stays captured by it.
	j.InjectDrag(250, 25, 150, 80, 160*time.Millisecond)

	if a != 1 || b != 0 {
		t.Errorf("row triggers a=%d b=%d, want a=1 b=0", a, b)
	}
}
