package tactile

import (
	"context"
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// RefreshState is the lifecycle phase of a PullToRefreshController.
type RefreshState uint8

const (
	RefreshIdle       RefreshState = iota // waiting for a downward pan at the top
	RefreshPulling                        // tracking a qualifying pan
	RefreshRefreshing                     // refresh callback in flight; pans ignored
	RefreshResetting                      // animating the offset back to zero
)

// String returns the state name.
func (s RefreshState) String() string {
	switch s {
	case RefreshIdle:
		return "idle"
	case RefreshPulling:
		return "pulling"
	case RefreshRefreshing:
		return "refreshing"
	case RefreshResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Scroller exposes the scroll offset of the container being pulled.
type Scroller interface {
	ScrollTop() float64
}

// ScrollerFunc adapts a function to the Scroller interface.
type ScrollerFunc func() float64

// ScrollTop returns f().
func (f ScrollerFunc) ScrollTop() float64 { return f() }

// RefreshFunc reloads the pulled content. It runs on its own goroutine; ctx
// is cancelled when the controller is closed.
type RefreshFunc func(ctx context.Context) error

// PullToRefreshController drives a refresh from a downward pan that starts
// while the container is scrolled to the top.
//
// All methods except the refresh callback itself run on the host loop.
// The callback's completion is observed by Update (or Wait), which moves
// the controller back to RefreshIdle whether it succeeded or failed.
type PullToRefreshController struct {
	cfg      PullConfig
	scroller Scroller
	refresh  RefreshFunc
	handles  []CallbackHandle

	// Ease shapes the Resetting animation. Nil selects ease.OutCubic.
	Ease ease.TweenFunc

	state    RefreshState
	distance float64

	// Session whose first touch landed while scrolled to the top.
	atTop string

	reset    *offsetTween
	now      time.Duration
	hasNow   bool

	done    chan error
	cancel  context.CancelFunc
	lastErr error

	onState []func(from, to RefreshState)
	closed  bool
}

// NewPullToRefresh subscribes a controller to rec's pan events. A zero
// PullConfig selects DefaultPullConfig.
func NewPullToRefresh(rec *Recognizer, scroller Scroller, refresh RefreshFunc, cfg PullConfig) *PullToRefreshController {
	if cfg == (PullConfig{}) {
		cfg = DefaultPullConfig()
	}
	c := &PullToRefreshController{
		cfg:      cfg,
		scroller: scroller,
		refresh:  refresh,
	}
	c.handles = append(c.handles,
		rec.OnSessionBegin(c.handleBegin),
		rec.OnPan(c.handlePan),
	)
	return c
}

// State returns the current phase.
func (c *PullToRefreshController) State() RefreshState {
	return c.state
}

// Distance returns the clamped pull distance while Pulling.
func (c *PullToRefreshController) Distance() float64 {
	if c.state != RefreshPulling {
		return 0
	}
	return c.distance
}

// Offset returns the visual displacement of the pulled content.
func (c *PullToRefreshController) Offset() float64 {
	switch c.state {
	case RefreshPulling:
		return math.Min(c.distance*c.cfg.Resistance, c.cfg.MaxPullDistance)
	case RefreshRefreshing:
		return math.Min(c.cfg.RefreshThreshold*c.cfg.Resistance, c.cfg.MaxPullDistance)
	case RefreshResetting:
		return c.reset.Value()
	default:
		return 0
	}
}

// LastError returns the error of the most recent failed refresh, if any.
func (c *PullToRefreshController) LastError() error {
	return c.lastErr
}

// OnStateChange registers fn to observe every transition.
func (c *PullToRefreshController) OnStateChange(fn func(from, to RefreshState)) {
	c.onState = append(c.onState, fn)
}

// Update advances the Resetting animation and settles a finished refresh.
func (c *PullToRefreshController) Update(now time.Duration) {
	if c.closed {
		return
	}
	var dt time.Duration
	if c.hasNow && now > c.now {
		dt = now - c.now
	}
	c.now, c.hasNow = now, true

	switch c.state {
	case RefreshRefreshing:
		select {
		case err := <-c.done:
			c.settle(err)
		default:
		}
	case RefreshResetting:
		c.reset.Update(dt)
		if c.reset.Done {
			c.setState(RefreshIdle)
		}
	}
}

// Wait blocks until an in-flight refresh settles and applies the result.
// It returns immediately when no refresh is running.
func (c *PullToRefreshController) Wait(ctx context.Context) error {
	if c.state != RefreshRefreshing {
		return nil
	}
	select {
	case err := <-c.done:
		c.settle(err)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close unsubscribes from the recognizer and cancels an in-flight refresh.
func (c *PullToRefreshController) Close() {
	if c.closed {
		return
	}
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.closed = true
}

func (c *PullToRefreshController) handleBegin(s *TouchSession) {
	c.atTop = ""
	if c.scroller.ScrollTop() == 0 {
		c.atTop = s.ID()
	}
}

func (c *PullToRefreshController) handlePan(e GestureEvent) {
	if c.closed {
		return
	}
	switch c.state {
	case RefreshIdle:
		if e.Phase != PhaseBegan {
			return
		}
		if e.SessionID != c.atTop || e.DY <= 0 || math.Abs(e.DY) < math.Abs(e.DX) {
			return
		}
		c.distance = c.clampPull(e.DY)
		c.setState(RefreshPulling)

	case RefreshPulling:
		if c.scroller.ScrollTop() != 0 {
			c.distance = 0
			c.setState(RefreshIdle)
			return
		}
		switch e.Phase {
		case PhaseChanged:
			c.distance = c.clampPull(e.DY)
		case PhaseEnded:
			c.distance = c.clampPull(e.DY)
			if c.distance >= c.cfg.RefreshThreshold {
				c.startRefresh()
			} else {
				c.startReset()
			}
		case PhaseCancelled:
			c.distance = 0
			c.setState(RefreshIdle)
		}
	}
}

func (c *PullToRefreshController) clampPull(dy float64) float64 {
	return math.Max(0, math.Min(dy, c.cfg.MaxPullDistance))
}

func (c *PullToRefreshController) startRefresh() {
	c.setState(RefreshRefreshing)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	done := make(chan error, 1)
	c.done = done
	refresh := c.refresh
	go func() {
		done <- refresh(ctx)
	}()
}

func (c *PullToRefreshController) settle(err error) {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.done = nil
	c.distance = 0
	if err != nil {
		c.lastErr = err
		logger.Warn().Err(err).Msg("refresh failed")
	}
	c.setState(RefreshIdle)
}

func (c *PullToRefreshController) startReset() {
	from := c.Offset()
	c.distance = 0
	if c.cfg.ResetDuration <= 0 {
		c.setState(RefreshIdle)
		return
	}
	c.reset = newOffsetTween(from, c.cfg.ResetDuration, c.Ease)
	c.setState(RefreshResetting)
}

func (c *PullToRefreshController) setState(to RefreshState) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	logger.Debug().Str("controller", "pull").Stringer("from", from).Stringer("to", to).Msg("transition")
	for _, fn := range c.onState {
		fn(from, to)
	}
}
