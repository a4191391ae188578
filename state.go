package gameloop

// LoopState is the lifecycle position of a Loop.
type LoopState uint8

const (
	StateRunning       LoopState = iota // frames run normally
	StateExitRequested                  // Exit was called; the next frame boundary stops
	StateStopped                        // NextFrame reports stop on every call
)

func (s LoopState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExitRequested:
		return "exit-requested"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
