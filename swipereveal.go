package tactile

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Action is one row action revealed by a swipe.
type Action interface {
	Trigger()
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func()

// Trigger calls f().
func (f ActionFunc) Trigger() { f() }

// RevealState is the lifecycle phase of a SwipeRevealController.
type RevealState uint8

const (
	RevealIdle      RevealState = iota // row at rest
	RevealSwiping                      // following a horizontal pan in a locked direction
	RevealResetting                    // animating back to rest
)

// String returns the state name.
func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "idle"
	case RevealSwiping:
		return "swiping"
	case RevealResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// SwipeRevealController reveals and triggers actions for one list row.
// Create one per row and feed its recognizer only that row's input, so no
// two rows ever observe the same contact.
type SwipeRevealController struct {
	cfg     RevealConfig
	haptics Haptics
	handles []CallbackHandle

	// Ease shapes the Resetting animation. Nil selects ease.OutCubic.
	Ease ease.TweenFunc

	state   RevealState
	delta   float64
	dir     Direction
	ignored string // session whose pan moved vertically before locking
	panned  string // last session that delivered a pan
	reset   *offsetTween
	now     time.Duration
	hasNow  bool

	onState []func(from, to RevealState)
	closed  bool
}

// NewSwipeReveal subscribes a controller to rec's pan and swipe events.
// Zero thresholds in cfg take their DefaultRevealConfig values; a nil
// haptics sink is allowed.
func NewSwipeReveal(rec *Recognizer, cfg RevealConfig, haptics Haptics) *SwipeRevealController {
	def := DefaultRevealConfig()
	if cfg.ActionThreshold == 0 {
		cfg.ActionThreshold = def.ActionThreshold
	}
	if cfg.FeltThreshold == 0 {
		cfg.FeltThreshold = def.FeltThreshold
	}
	if cfg.LockThreshold == 0 {
		cfg.LockThreshold = rec.Config().PanCancelThreshold
	}
	if haptics == nil {
		haptics = noHaptics{}
	}
	c := &SwipeRevealController{cfg: cfg, haptics: haptics}
	c.handles = append(c.handles,
		rec.OnPan(c.handlePan),
		rec.OnSwipe(c.handleSwipe),
	)
	return c
}

// State returns the current phase.
func (c *SwipeRevealController) State() RevealState {
	return c.state
}

// Direction returns the locked direction while Swiping.
func (c *SwipeRevealController) Direction() Direction {
	if c.state != RevealSwiping {
		return DirectionNone
	}
	return c.dir
}

// Offset returns the row's horizontal displacement.
func (c *SwipeRevealController) Offset() float64 {
	switch c.state {
	case RevealSwiping:
		return c.delta
	case RevealResetting:
		return c.reset.Value()
	default:
		return 0
	}
}

// OnStateChange registers fn to observe every transition.
func (c *SwipeRevealController) OnStateChange(fn func(from, to RevealState)) {
	c.onState = append(c.onState, fn)
}

// Update advances the Resetting animation.
func (c *SwipeRevealController) Update(now time.Duration) {
	if c.closed {
		return
	}
	var dt time.Duration
	if c.hasNow && now > c.now {
		dt = now - c.now
	}
	c.now, c.hasNow = now, true

	if c.state == RevealResetting {
		c.reset.Update(dt)
		if c.reset.Done {
			c.setState(RevealIdle)
		}
	}
}

// Close unsubscribes from the recognizer.
func (c *SwipeRevealController) Close() {
	if c.closed {
		return
	}
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	c.closed = true
}

func (c *SwipeRevealController) handlePan(e GestureEvent) {
	if c.closed {
		return
	}
	c.panned = e.SessionID
	switch c.state {
	case RevealIdle:
		if e.SessionID == c.ignored || e.Phase == PhaseCancelled {
			return
		}
		adx, ady := math.Abs(e.DX), math.Abs(e.DY)
		if math.Max(adx, ady) <= c.cfg.LockThreshold {
			return
		}
		if adx <= ady {
			// Vertical-dominant at the first qualifying move: leave this
			// pan to others.
			c.ignored = e.SessionID
			return
		}
		c.dir = DirectionRight
		if e.DX < 0 {
			c.dir = DirectionLeft
		}
		c.delta = c.lockedDelta(e.DX)
		c.setState(RevealSwiping)
		if e.Phase == PhaseEnded {
			c.finish()
		}

	case RevealSwiping:
		c.delta = c.lockedDelta(e.DX)
		switch e.Phase {
		case PhaseEnded:
			c.finish()
		case PhaseCancelled:
			c.startReset()
		}
	}
}

func (c *SwipeRevealController) handleSwipe(e GestureEvent) {
	if c.closed || c.state != RevealIdle || !e.Direction.Horizontal() {
		return
	}
	// A panned session was already resolved by its Pan(Ended).
	if e.SessionID == c.panned {
		return
	}
	c.dir = e.Direction
	c.delta = c.lockedDelta(e.DX)
	c.setState(RevealSwiping)
	c.finish()
}

// lockedDelta keeps the displacement on the locked side of the row.
func (c *SwipeRevealController) lockedDelta(dx float64) float64 {
	if c.dir == DirectionLeft {
		return math.Min(dx, 0)
	}
	return math.Max(dx, 0)
}

// finish resolves a release: trigger on a full swipe, otherwise snap back.
func (c *SwipeRevealController) finish() {
	dist := math.Abs(c.delta)
	if dist >= c.cfg.ActionThreshold {
		actions := c.cfg.LeftActions
		if c.dir == DirectionLeft {
			actions = c.cfg.RightActions
		}
		if len(actions) > 0 {
			logger.Debug().Str("controller", "reveal").Stringer("direction", c.dir).
				Float64("delta", c.delta).Msg("trigger action")
			actions[0].Trigger()
			c.haptics.Pulse(HapticSuccess)
		}
	} else if dist > c.cfg.FeltThreshold {
		c.haptics.Pulse(HapticLight)
	}
	c.startReset()
}

func (c *SwipeRevealController) startReset() {
	from := c.delta
	c.delta = 0
	if c.cfg.ResetDuration <= 0 {
		c.setState(RevealIdle)
		return
	}
	c.reset = newOffsetTween(from, c.cfg.ResetDuration, c.Ease)
	c.setState(RevealResetting)
}

func (c *SwipeRevealController) setState(to RevealState) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	logger.Debug().Str("controller", "reveal").Stringer("from", from).Stringer("to", to).Msg("transition")
	for _, fn := range c.onState {
		fn(from, to)
	}
}
