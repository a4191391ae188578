package gameloop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduledHostOneFramePerPump(t *testing.T) {
	q := NewFrameQueue(0)
	l, err := New[*counter, struct{}](&counter{}, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	render := func(l *Loop[*counter, struct{}]) {
		l.Game.renders++
		if l.Game.renders == 4 {
			l.Exit()
		}
	}
	if err := RunHost(ScheduledHost{Scheduler: q}, l, nil, nil, render); err != nil {
		t.Fatalf("RunHost: %v", err)
	}
	if l.Game.renders != 0 {
		t.Fatalf("frame ran before the scheduler pumped")
	}

	for i := 1; i <= 4; i++ {
		if n := q.Pump(); n != 1 {
			t.Fatalf("pump %d ran %d callbacks, want 1", i, n)
		}
		if l.Game.renders != i {
			t.Fatalf("after pump %d renders = %d", i, l.Game.renders)
		}
	}
	if q.Pending() != 0 {
		t.Errorf("stopped loop left %d frames queued", q.Pending())
	}
}

func TestFrameQueueRunUntilIdle(t *testing.T) {
	q := NewFrameQueue(time.Millisecond)
	frames := 0
	s := stepperFunc(func() bool {
		frames++
		return frames < 5
	})
	if err := (ScheduledHost{Scheduler: q}).Drive(s); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
}

func TestFrameQueueRunCancelled(t *testing.T) {
	q := NewFrameQueue(time.Hour)
	if err := (ScheduledHost{Scheduler: q}).Drive(stepperFunc(func() bool { return true })); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestScheduledHostReportsRescheduleFailure(t *testing.T) {
	q := NewFrameQueue(0)
	var reported error
	h := ScheduledHost{Scheduler: q, OnError: func(err error) { reported = err }}
	s := stepperFunc(func() bool {
		q.Close()
		return true
	})
	if err := h.Drive(s); err != nil {
		t.Fatalf("Drive: %v", err)
	}
	q.Pump()
	if !errors.Is(reported, ErrQueueClosed) {
		t.Errorf("OnError got %v, want ErrQueueClosed", reported)
	}
	if err := h.Drive(s); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Drive on closed queue = %v, want ErrQueueClosed", err)
	}
}
