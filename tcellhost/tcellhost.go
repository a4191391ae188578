// Package tcellhost drives a gameloop.Loop from a tcell terminal event loop.
//
// Frames run only in response to a synthetic present event the host posts to
// the screen's event queue, one at a time. Input, resize, paste and any other
// events are forwarded to the handler untouched; focus changes set the loop's
// occluded hint.
package tcellhost

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/gameloop"
)

// InitFunc builds the loop's attached resource once the screen is ready. It
// runs once, before the first frame.
type InitFunc[G, R any] func(l *gameloop.Loop[G, R], screen tcell.Screen) (R, error)

// HandlerFunc receives every event the host does not consume itself.
type HandlerFunc[G, R any] func(l *gameloop.Loop[G, R], ev tcell.Event)

// PresentEvent asks the host to run a frame. The host posts it; handlers
// never see it.
type PresentEvent struct {
	tcell.EventTime
}

func newPresentEvent() *PresentEvent {
	ev := &PresentEvent{}
	ev.SetEventNow()
	return ev
}

// Host runs frames on the goroutine that calls Drive.
type Host[G, R any] struct {
	Screen  tcell.Screen
	Loop    *gameloop.Loop[G, R]
	Init    InitFunc[G, R]
	Handler HandlerFunc[G, R]
	// FrameInterval delays each present request after a frame. Zero posts the
	// next request immediately, so frames run as fast as events are polled.
	FrameInterval time.Duration

	// owed is set while a present request has not made it into the event
	// queue yet.
	owed atomic.Bool
	done atomic.Bool
}

// Drive initializes the screen, activates the loop and dispatches events
// until the stepper reports stop or the screen is finalized elsewhere.
func (h *Host[G, R]) Drive(s gameloop.Stepper) error {
	if err := h.Screen.Init(); err != nil {
		return fmt.Errorf("tcellhost: init screen: %w", err)
	}
	defer h.Screen.Fini()
	h.Screen.EnableFocus()

	if h.Init != nil && !h.Loop.HasResource() {
		res, err := h.Init(h.Loop, h.Screen)
		if err != nil {
			return fmt.Errorf("tcellhost: init: %w", err)
		}
		if err := h.Loop.SetResource(res); err != nil {
			return fmt.Errorf("tcellhost: %w", err)
		}
	}

	h.owed.Store(false)
	h.done.Store(false)
	defer h.done.Store(true)

	h.requestPresent(0)
	for {
		ev := h.Screen.PollEvent()
		if ev == nil {
			return nil
		}
		// Every dequeued event frees a slot for a present that found the
		// queue full.
		h.flushPresent()

		switch ev := ev.(type) {
		case *PresentEvent:
			if !s.Step() {
				return nil
			}
			h.requestPresent(h.FrameInterval)
		case *tcell.EventFocus:
			h.Loop.SetOccluded(!ev.Focused)
		default:
			if h.Handler != nil {
				h.Handler(h.Loop, ev)
			}
		}
	}
}

func (h *Host[G, R]) requestPresent(delay time.Duration) {
	if delay > 0 {
		time.AfterFunc(delay, h.presentLater)
		return
	}
	h.owed.Store(true)
	h.flushPresent()
}

// presentLater runs on a timer goroutine. While the queue stays full it keeps
// retrying, since the polling goroutine may have emptied the queue between a
// failed post and its own flush.
func (h *Host[G, R]) presentLater() {
	if h.done.Load() {
		return
	}
	h.owed.Store(true)
	if !h.flushPresent() {
		time.AfterFunc(presentRetry, h.presentLater)
	}
}

// presentRetry is how long a delayed present waits before posting again into
// a full queue.
const presentRetry = time.Millisecond

// flushPresent posts the owed present event, if any. It reports false when a
// present is still owed afterwards.
func (h *Host[G, R]) flushPresent() bool {
	if !h.owed.CompareAndSwap(true, false) {
		return true
	}
	if err := h.Screen.PostEvent(newPresentEvent()); err != nil {
		h.owed.Store(true)
		return false
	}
	return true
}

// Run creates a loop for game on screen and drives it until a callback calls
// Exit. A nil screen creates the default terminal screen.
func Run[G, R any](screen tcell.Screen, game G, cfg gameloop.Config, init InitFunc[G, R], update gameloop.UpdateFunc[G, R], render gameloop.RenderFunc[G, R], handler HandlerFunc[G, R]) (*gameloop.Loop[G, R], error) {
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("tcellhost: create screen: %w", err)
		}
	}
	l, err := gameloop.New[G, R](game, cfg)
	if err != nil {
		return nil, err
	}
	h := &Host[G, R]{Screen: screen, Loop: l, Init: init, Handler: handler}
	return l, h.Drive(&gameloop.Runner[G, R]{Loop: l, Update: update, Render: render})
}
