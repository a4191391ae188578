package gameloop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQueueClosed is returned by FrameQueue.RequestFrame after Close.
var ErrQueueClosed = errors.New("gameloop: frame queue closed")

// Scheduler is a host primitive that runs fn at the next presentation
// opportunity (a vsync, an animation frame, a tick of a cooperative loop).
type Scheduler interface {
	RequestFrame(fn func()) error
}

// ScheduledHost drives a Stepper on a cooperative Scheduler. Each frame that
// reports continue requests the next one, so Drive returns right after the
// first request and frames run whenever the scheduler gets to them.
type ScheduledHost struct {
	Scheduler Scheduler
	// OnError receives failures to request a follow-up frame. The cycle ends
	// after such a failure.
	OnError func(error)
}

// Drive requests the first frame.
func (h ScheduledHost) Drive(s Stepper) error {
	return h.Scheduler.RequestFrame(func() { h.frame(s) })
}

func (h ScheduledHost) frame(s Stepper) {
	if !s.Step() {
		return
	}
	if err := h.Scheduler.RequestFrame(func() { h.frame(s) }); err != nil && h.OnError != nil {
		h.OnError(err)
	}
}

// FrameQueue is a single-threaded cooperative Scheduler. Callbacks requested
// during a pump run on the following pump, mirroring how an animation frame
// request made inside an animation frame waits for the next one.
type FrameQueue struct {
	mu       sync.Mutex
	pending  []func()
	closed   bool
	interval time.Duration
}

// NewFrameQueue creates a queue that Run pumps every interval.
func NewFrameQueue(interval time.Duration) *FrameQueue {
	return &FrameQueue{interval: interval}
}

// RequestFrame queues fn for the next pump. Safe for concurrent use.
func (q *FrameQueue) RequestFrame(fn func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, fn)
	return nil
}

// Pump runs the callbacks queued before the call and returns how many ran.
func (q *FrameQueue) Pump() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Run pumps the queue on every tick of the interval (or back to back when the
// interval is zero) until nothing is left queued or ctx is done.
func (q *FrameQueue) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if q.interval > 0 {
		ticker := time.NewTicker(q.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		if q.Pending() == 0 {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		q.Pump()
	}
}

// Close rejects further requests and discards queued callbacks.
func (q *FrameQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.pending = nil
}
