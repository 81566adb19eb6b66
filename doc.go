// Package tactile is a touch-gesture recognition engine for [Ebitengine] and
// other event-loop hosts.
//
// Tactile turns a raw stream of pointer down/move/up/cancel notifications
// into Tap, DoubleTap, LongPress, Swipe, Pan and Pinch gestures, and ships
// two controllers built on top of them: pull-to-refresh and swipe-to-reveal
// row actions.
//
// # Quick start
//
// Create a [Recognizer], feed it through an [Ingestor], and call Update
// once per frame so LongPress and deferred Tap timers can fire:
//
//	rec := tactile.NewRecognizer(tactile.DefaultGestureConfig())
//	in := tactile.NewIngestor(rec)
//	src := tactile.NewEbitenSource(in)
//
//	rec.OnDoubleTap(func(e tactile.GestureEvent) { zoomAt(e.X, e.Y) })
//	rec.OnSwipe(func(e tactile.GestureEvent) { page(e.Direction) })
//
//	func (g *Game) Update() error {
//		now := time.Since(g.start)
//		g.src.Poll(now)
//		g.rec.Update(now)
//		return nil
//	}
//
// # Sessions
//
// Every interaction from the first contact down to the last contact up is a
// [TouchSession]. A session emits at most one discrete gesture (Tap,
// DoubleTap, LongPress or Swipe) or a stream of continuous events (Pan or
// Pinch, each with Began/Changed/Ended/Cancelled phases), never both.
// A Tap is reported only after the double-tap window has elapsed with no
// second tap, so a double tap never produces a stray Tap.
//
// # Timers
//
// Recognizer timers live in a [Scheduler] driven by the host clock. They fire
// only inside Update or HandleBatch, on the caller's goroutine, and every
// timer belonging to a session is cancelled before that session ends.
//
// # Controllers
//
// [PullToRefreshController] follows downward pans that start at scroll top
// and runs an asynchronous refresh. [SwipeRevealController] follows
// horizontal pans on one row and triggers that row's first action once the
// swipe passes the action threshold. Reset animations use [gween].
//
// # ECS
//
// The tactile/ecs module publishes every gesture into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package tactile
