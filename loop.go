package gameloop

import (
	"fmt"
	"log/slog"
	"time"
)

// UpdateFunc advances the simulation by one fixed step. It is called zero or
// more times per frame, before that frame's render.
type UpdateFunc[G, R any] func(l *Loop[G, R])

// RenderFunc presents the current state. It is called exactly once per frame
// that runs, with BlendingFactor describing how far between the last two
// simulated states the frame falls.
type RenderFunc[G, R any] func(l *Loop[G, R])

// Loop owns a game payload and schedules fixed-step updates and one render per
// frame. G is the payload type; R is the type of the attached resource a host
// supplies (use struct{} when there is none).
//
// A Loop is driven from a single goroutine. Update and render callbacks get
// the Loop itself and may read counters, change the update rate or call Exit.
type Loop[G, R any] struct {
	// Game is the simulation payload.
	Game G

	ups        int
	maxUpdates int
	clock      *Clock
	acc        Accumulator

	updates     uint64
	renders     uint64
	simTime     time.Duration
	runningTime time.Duration
	lastFrame   time.Duration
	clamped     time.Duration
	dropped     time.Duration
	blend       float64

	resource Resource[R]
	state    LoopState
	occluded bool

	log *slog.Logger
}

// New creates a running Loop for game. The config is validated; an invalid
// update rate, frame clamp or cap is rejected.
func New[G, R any](game G, cfg Config) (*Loop[G, R], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loop[G, R]{
		Game:       game,
		ups:        cfg.UpdatesPerSecond,
		maxUpdates: cfg.MaxUpdatesPerFrame,
		clock:      NewClock(cfg.TimeSource),
		acc:        NewAccumulator(stepFor(cfg.UpdatesPerSecond), cfg.MaxFrameTime),
		log:        cfg.logger(),
	}, nil
}

// NextFrame runs one frame: it samples the clock, feeds the accumulator,
// calls update once per owed fixed step, then calls render once. It returns
// false, without calling anything, once the loop has stopped, and returns
// false after the render of a frame during which Exit was called.
func (l *Loop[G, R]) NextFrame(update UpdateFunc[G, R], render RenderFunc[G, R]) bool {
	if l.state != StateRunning {
		l.stop()
		return false
	}

	delta := l.clock.Sample()
	added, discarded := l.acc.Feed(delta)
	l.lastFrame = added
	l.runningTime += added
	if discarded > 0 {
		l.clamped += discarded
		l.log.Debug("frame time clamped",
			slog.Duration("delta", delta),
			slog.Duration("max", l.acc.MaxFrameTime()))
	}

	n, dropped := l.acc.Drain(l.maxUpdates, func(step time.Duration) {
		if update != nil {
			update(l)
		}
		l.updates++
		l.simTime += step
	})
	if dropped > 0 {
		l.dropped += dropped
		l.log.Warn("update cap reached",
			slog.Int("updates", n),
			slog.Duration("dropped", dropped))
	}

	l.blend = l.acc.Alpha()
	if render != nil {
		render(l)
	}
	l.renders++

	if l.state != StateRunning {
		l.stop()
		return false
	}
	return true
}

func (l *Loop[G, R]) stop() {
	if l.state == StateStopped {
		return
	}
	l.state = StateStopped
	l.log.Debug("loop stopped", slog.Any("stats", l.Stats()))
}

// Exit requests the loop to stop. The frame in progress, if any, completes.
func (l *Loop[G, R]) Exit() {
	if l.state == StateRunning {
		l.state = StateExitRequested
	}
}

// State returns the lifecycle state.
func (l *Loop[G, R]) State() LoopState {
	return l.state
}

// ReAccumulate samples the clock again and adds the time passed since the
// frame started to the accumulator, refreshing BlendingFactor. Call it from a
// render callback after slow work so interpolation reflects the actual
// presentation time. The blending factor may then be 1 or more until the next
// frame drains the extra time.
func (l *Loop[G, R]) ReAccumulate() {
	d := l.clock.Sample()
	l.acc.Add(d)
	l.runningTime += d
	l.lastFrame += d
	l.blend = l.acc.Alpha()
}

// SetUpdatesPerSecond changes the simulation rate. When called from an update
// callback the new step applies to the very next drain check of the same
// frame.
func (l *Loop[G, R]) SetUpdatesPerSecond(ups int) error {
	if ups <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUpdateRate, ups)
	}
	l.ups = ups
	l.acc.SetStep(stepFor(ups))
	return nil
}

// UpdatesPerSecond returns the simulation rate.
func (l *Loop[G, R]) UpdatesPerSecond() int {
	return l.ups
}

// SetMaxFrameTime changes how much elapsed time a single frame may feed in.
func (l *Loop[G, R]) SetMaxFrameTime(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidMaxFrameTime, d)
	}
	l.acc.SetMaxFrameTime(d)
	return nil
}

// MaxFrameTime returns the per-frame clamp.
func (l *Loop[G, R]) MaxFrameTime() time.Duration {
	return l.acc.MaxFrameTime()
}

// SetMaxUpdatesPerFrame changes the per-frame update cap. Zero disables it.
func (l *Loop[G, R]) SetMaxUpdatesPerFrame(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUpdateCap, n)
	}
	l.maxUpdates = n
	return nil
}

// FixedTimeStep returns the duration of one update.
func (l *Loop[G, R]) FixedTimeStep() time.Duration {
	return l.acc.Step()
}

// NumberOfUpdates returns how many update calls have run.
func (l *Loop[G, R]) NumberOfUpdates() uint64 {
	return l.updates
}

// NumberOfRenders returns how many render calls have run.
func (l *Loop[G, R]) NumberOfRenders() uint64 {
	return l.renders
}

// TotalTimeElapsed returns the simulated time: one fixed step per update.
func (l *Loop[G, R]) TotalTimeElapsed() time.Duration {
	return l.simTime
}

// RunningTime returns the sum of clamped frame times fed to the accumulator.
func (l *Loop[G, R]) RunningTime() time.Duration {
	return l.runningTime
}

// LastFrameTime returns the clamped elapsed time of the latest frame.
func (l *Loop[G, R]) LastFrameTime() time.Duration {
	return l.lastFrame
}

// AccumulatedTime returns the time owed to the simulation.
func (l *Loop[G, R]) AccumulatedTime() time.Duration {
	return l.acc.Debt()
}

// BlendingFactor returns the fraction of a step elapsed beyond the last
// update, in [0, 1). Renderers use it to interpolate between the previous and
// current simulated states.
func (l *Loop[G, R]) BlendingFactor() float64 {
	return l.blend
}

// Resource returns the attached resource and whether it has been set.
func (l *Loop[G, R]) Resource() (R, bool) {
	return l.resource.Get()
}

// SetResource attaches the resource. It may be called once.
func (l *Loop[G, R]) SetResource(r R) error {
	return l.resource.Set(r)
}

// HasResource reports whether the resource has been attached.
func (l *Loop[G, R]) HasResource() bool {
	return l.resource.IsSet()
}

// Occluded reports the host's hint that presentation is currently pointless
// (window hidden, terminal unfocused). Simulation cadence is unaffected.
func (l *Loop[G, R]) Occluded() bool {
	return l.occluded
}

// SetOccluded records the occlusion hint. Hosts call this; the loop itself
// never skips rendering.
func (l *Loop[G, R]) SetOccluded(occluded bool) {
	l.occluded = occluded
}

// ResetClock makes the next frame see zero elapsed time, for use after a
// pause during which no frames ran.
func (l *Loop[G, R]) ResetClock() {
	l.clock.Reset()
}
