package gameloop

import (
	"context"
	"time"
)

// BlockingHost calls Step in a tight loop on the calling goroutine until it
// reports stop. With MinFrameTime set, frames are paced by a ticker instead.
type BlockingHost struct {
	MinFrameTime time.Duration
}

// Drive runs frames until s reports stop.
func (h BlockingHost) Drive(s Stepper) error {
	if h.MinFrameTime <= 0 {
		for s.Step() {
		}
		return nil
	}
	ticker := time.NewTicker(h.MinFrameTime)
	defer ticker.Stop()
	for s.Step() {
		<-ticker.C
	}
	return nil
}

// Run creates a loop for game and runs it on the calling goroutine until an
// update or render callback calls Exit. It returns the stopped loop so its
// payload and counters can be inspected.
func Run[G any](game G, updatesPerSecond int, maxFrameTime time.Duration, update UpdateFunc[G, struct{}], render RenderFunc[G, struct{}]) (*Loop[G, struct{}], error) {
	cfg := DefaultConfig()
	cfg.UpdatesPerSecond = updatesPerSecond
	cfg.MaxFrameTime = maxFrameTime
	l, err := New[G, struct{}](game, cfg)
	if err != nil {
		return nil, err
	}
	if err := RunHost(BlockingHost{}, l, nil, update, render); err != nil {
		return l, err
	}
	return l, nil
}

// RunContext is like Run but takes a full Config and also stops when ctx is
// done. The frame in progress when ctx is cancelled completes. The returned
// error is ctx.Err() if cancellation stopped the loop.
func RunContext[G any](ctx context.Context, game G, cfg Config, update UpdateFunc[G, struct{}], render RenderFunc[G, struct{}]) (*Loop[G, struct{}], error) {
	l, err := New[G, struct{}](game, cfg)
	if err != nil {
		return nil, err
	}
	s := &contextStepper[G]{ctx: ctx, runner: Runner[G, struct{}]{Loop: l, Update: update, Render: render}}
	if err := (BlockingHost{}).Drive(s); err != nil {
		return l, err
	}
	if s.cancelled {
		return l, ctx.Err()
	}
	return l, nil
}

type contextStepper[G any] struct {
	ctx       context.Context
	runner    Runner[G, struct{}]
	cancelled bool
}

func (s *contextStepper[G]) Step() bool {
	if !s.cancelled && s.ctx.Err() != nil {
		s.cancelled = true
		s.runner.Loop.Exit()
	}
	return s.runner.Step()
}
