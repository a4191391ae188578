package gameloop

import "time"

// Accumulator holds simulation time that has elapsed but not yet been
// simulated. Each frame's elapsed time is clamped and fed in, then drained in
// whole fixed steps. Whatever remains (always less than one step after a
// drain) is exposed as the render blending factor.
type Accumulator struct {
	step         time.Duration
	maxFrameTime time.Duration
	debt         time.Duration
}

// NewAccumulator creates an Accumulator with the given fixed step and
// per-frame clamp. Both must be positive.
func NewAccumulator(step, maxFrameTime time.Duration) Accumulator {
	return Accumulator{step: step, maxFrameTime: maxFrameTime}
}

// Feed clamps delta to the maximum frame time and adds it to the debt.
// It returns the amount added and the amount discarded by the clamp.
// Negative deltas are treated as zero.
func (a *Accumulator) Feed(delta time.Duration) (added, discarded time.Duration) {
	if delta <= 0 {
		return 0, 0
	}
	if delta > a.maxFrameTime {
		discarded = delta - a.maxFrameTime
		delta = a.maxFrameTime
	}
	a.debt += delta
	return delta, discarded
}

// Ready reports whether at least one full step is owed.
func (a *Accumulator) Ready() bool {
	return a.debt >= a.step
}

// Consume removes one fixed step from the debt. It is a no-op when less than
// a step is owed.
func (a *Accumulator) Consume() {
	if a.debt >= a.step {
		a.debt -= a.step
	}
}

// Drain calls update once per owed step, passing the step the call covers,
// and subtracts that step afterwards. The step is re-read before every check,
// so update may change it and the new value governs the next check. The debt
// never goes negative.
//
// limit caps the number of calls; zero means no cap. When the cap is reached
// with whole steps still owed, those steps are discarded and returned as
// dropped; the sub-step remainder is kept.
func (a *Accumulator) Drain(limit int, update func(step time.Duration)) (n int, dropped time.Duration) {
	for a.debt >= a.step {
		if limit > 0 && n >= limit {
			rem := a.debt % a.step
			dropped = a.debt - rem
			a.debt = rem
			return n, dropped
		}
		step := a.step
		if update != nil {
			update(step)
		}
		a.debt -= step
		n++
	}
	return n, 0
}

// Alpha returns debt / step: the fraction of a step not yet simulated. After
// a Drain it lies in [0, 1).
func (a *Accumulator) Alpha() float64 {
	return float64(a.debt) / float64(a.step)
}

// Step returns the fixed step.
func (a *Accumulator) Step() time.Duration {
	return a.step
}

// SetStep changes the fixed step. Non-positive values are ignored.
func (a *Accumulator) SetStep(step time.Duration) {
	if step > 0 {
		a.step = step
	}
}

// MaxFrameTime returns the per-frame clamp.
func (a *Accumulator) MaxFrameTime() time.Duration {
	return a.maxFrameTime
}

// SetMaxFrameTime changes the per-frame clamp. Non-positive values are ignored.
func (a *Accumulator) SetMaxFrameTime(d time.Duration) {
	if d > 0 {
		a.maxFrameTime = d
	}
}

// Debt returns the time owed to the simulation.
func (a *Accumulator) Debt() time.Duration {
	return a.debt
}

// Add folds d into the debt without clamping. Used to account for time spent
// after the drain of the current frame.
func (a *Accumulator) Add(d time.Duration) {
	if d > 0 {
		a.debt += d
	}
}

// Reset clears the debt.
func (a *Accumulator) Reset() {
	a.debt = 0
}
