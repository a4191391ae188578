// Package gameloop runs a simulation at a fixed update rate, independent of
// how often, or how irregularly, the host presents frames.
//
// Each frame the loop samples the elapsed time, clamps it to a maximum frame
// time (so a long stall cannot trigger an unbounded catch-up burst), adds it
// to an accumulator and runs one update per whole fixed step owed. Then it
// renders once. The part of a step left in the accumulator is exposed as the
// blending factor, which renderers use to interpolate between the last two
// simulated states.
//
// # Quick start
//
// The simplest way to get started is [Run], which drives the loop on the
// calling goroutine until a callback calls [Loop.Exit]:
//
//	type Game struct{ ticks int }
//
//	l, err := gameloop.Run(&Game{}, 240, 100*time.Millisecond,
//		func(l *gameloop.Loop[*Game, struct{}]) {
//			l.Game.ticks++
//			if l.Game.ticks == 1000 {
//				l.Exit()
//			}
//		},
//		func(l *gameloop.Loop[*Game, struct{}]) {
//			draw(l.Game, l.BlendingFactor())
//		},
//	)
//
// For full control, create a [Loop] with [New] and call [Loop.NextFrame]
// yourself from whatever drives your frames.
//
// # Hosts
//
// A [Host] drives frames through the one-method [Stepper] interface:
//
//   - [BlockingHost] loops on the calling goroutine.
//   - [ScheduledHost] re-requests each frame from a cooperative [Scheduler]
//     such as [FrameQueue].
//   - tcellhost runs frames from a terminal event loop and forwards every
//     other event to a handler.
//   - ebitenhost runs frames from Ebitengine's Draw callback.
//   - [ScriptHost] replays a YAML frame script on [ManualTime], for
//     reproducible runs.
//
// Hosts that own a display surface hand it to the loop exactly once, through
// an init callback on first activation; read it with [Loop.Resource].
//
// # Configuration
//
// [Config] sets the update rate, the maximum frame time and an optional cap
// on updates per frame. [LoadConfig] reads the same settings from YAML.
//
// # Interpolation
//
// [Lerp] and [Interpolate] blend previous and current values by the blending
// factor; Interpolate accepts any [gween] easing function.
//
// [gween]: https://github.com/tanema/gween
package gameloop
