package gameloop

import "fmt"

// Stepper runs one frame and reports whether the host should keep calling it.
type Stepper interface {
	Step() bool
}

// Host drives a Stepper from some scheduling context: a plain loop, a
// cooperative scheduler, a terminal or window event loop. Drive returns once
// the Stepper reports stop, or earlier for hosts that schedule frames
// asynchronously. Host-level failures are returned as errors.
type Host interface {
	Drive(s Stepper) error
}

// Runner binds a Loop to its update and render callbacks. It implements
// Stepper.
type Runner[G, R any] struct {
	Loop   *Loop[G, R]
	Update UpdateFunc[G, R]
	Render RenderFunc[G, R]
}

// Step runs one frame of the bound loop.
func (r *Runner[G, R]) Step() bool {
	return r.Loop.NextFrame(r.Update, r.Render)
}

// InitFunc produces the loop's attached resource. Hosts call it once, on
// first activation, before any frame runs.
type InitFunc[G, R any] func(l *Loop[G, R]) (R, error)

// Activate runs init and attaches its result unless a resource is already
// attached. A nil init is a no-op.
func Activate[G, R any](l *Loop[G, R], init InitFunc[G, R]) error {
	if init == nil || l.HasResource() {
		return nil
	}
	res, err := init(l)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return l.SetResource(res)
}

// RunHost activates the loop with init and lets h drive it.
func RunHost[G, R any](h Host, l *Loop[G, R], init InitFunc[G, R], update UpdateFunc[G, R], render RenderFunc[G, R]) error {
	if err := Activate(l, init); err != nil {
		return err
	}
	return h.Drive(&Runner[G, R]{Loop: l, Update: update, Render: render})
}
