package ecs

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/gameloop"
)

// StepEvent describes one fixed update.
type StepEvent struct {
	// Index is the zero-based number of this update.
	Index uint64
	// Step is the fixed step being simulated.
	Step time.Duration
	// SimulationTime is the simulated time at the end of this step.
	SimulationTime time.Duration
}

// StepEventType is the Donburi event type carrying StepEvents. Subscribe
// systems to it to run them once per fixed step.
var StepEventType = events.NewEventType[StepEvent]()

// PublishSteps returns an update callback that publishes a StepEvent to
// world, processes it so subscribers run, then calls update. A nil update is
// allowed.
func PublishSteps[G, R any](world donburi.World, update gameloop.UpdateFunc[G, R]) gameloop.UpdateFunc[G, R] {
	return func(l *gameloop.Loop[G, R]) {
		step := l.FixedTimeStep()
		StepEventType.Publish(world, StepEvent{
			Index:          l.NumberOfUpdates(),
			Step:           step,
			SimulationTime: l.TotalTimeElapsed() + step,
		})
		StepEventType.ProcessEvents(world)
		if update != nil {
			update(l)
		}
	}
}
