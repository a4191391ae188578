package gameloop

import (
	"fmt"
	"log/slog"
	"time"
)

// Stats is a snapshot of a Loop's counters and timing.
type Stats struct {
	State            LoopState
	UpdatesPerSecond int
	FixedTimeStep    time.Duration
	Updates          uint64
	Renders          uint64
	SimulationTime   time.Duration // one fixed step per update
	RunningTime      time.Duration // clamped frame times fed to the accumulator
	LastFrameTime    time.Duration
	Accumulated      time.Duration
	BlendingFactor   float64
	ClampedTime      time.Duration // elapsed time discarded by the frame clamp
	DroppedTime      time.Duration // whole steps discarded by the update cap
}

// Stats returns a snapshot of the loop's counters.
func (l *Loop[G, R]) Stats() Stats {
	return Stats{
		State:            l.state,
		UpdatesPerSecond: l.ups,
		FixedTimeStep:    l.acc.Step(),
		Updates:          l.updates,
		Renders:          l.renders,
		SimulationTime:   l.simTime,
		RunningTime:      l.runningTime,
		LastFrameTime:    l.lastFrame,
		Accumulated:      l.acc.Debt(),
		BlendingFactor:   l.blend,
		ClampedTime:      l.clamped,
		DroppedTime:      l.dropped,
	}
}

// String formats the snapshot on one line for overlays and logs.
func (s Stats) String() string {
	return fmt.Sprintf("ups: %d | updates: %d | renders: %d | sim: %v | blend: %.3f",
		s.UpdatesPerSecond, s.Updates, s.Renders, s.SimulationTime.Round(time.Millisecond), s.BlendingFactor)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("state", s.State.String()),
		slog.Int("ups", s.UpdatesPerSecond),
		slog.Uint64("updates", s.Updates),
		slog.Uint64("renders", s.Renders),
		slog.Duration("simulation", s.SimulationTime),
		slog.Duration("running", s.RunningTime),
		slog.Duration("clamped", s.ClampedTime),
		slog.Duration("dropped", s.DroppedTime),
	)
}
