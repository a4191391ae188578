// Package ebitenhost drives a gameloop.Loop from Ebitengine's run loop.
//
// Ebitengine calls Update and Draw once per host iteration. The host treats
// Update as the place where host events are synthesized and forwarded to the
// handler, and Draw as the present event that runs one loop frame. The fixed
// step is entirely the loop's business: the host asks Ebitengine to call
// Update once per displayed frame (SyncWithFPS) rather than at its own TPS.
package ebitenhost

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gameloop"
)

// ErrNilSurface is returned when the loop already holds a nil *Surface.
var ErrNilSurface = errors.New("ebitenhost: attached surface is nil")

// Surface is the display target attached to the loop as its resource.
// Image is the screen of the current Draw call; it is nil outside Draw.
type Surface struct {
	Image         *ebiten.Image
	Width, Height int
}

// Loop is a gameloop.Loop whose resource is the ebiten Surface.
type Loop[G any] = gameloop.Loop[G, *Surface]

// Event is a host event forwarded to the handler.
type Event interface {
	hostEvent()
}

// TickEvent is sent once per host iteration, before that iteration's frame.
type TickEvent struct{}

// LayoutEvent is sent when the outside size of the window changes.
type LayoutEvent struct {
	OutsideWidth, OutsideHeight int
}

// FocusEvent is sent when the window gains or loses focus.
type FocusEvent struct {
	Focused bool
}

func (TickEvent) hostEvent()   {}
func (LayoutEvent) hostEvent() {}
func (FocusEvent) hostEvent()  {}

// InitFunc configures the game once the run loop is active. The surface is
// attached to the loop right after it returns.
type InitFunc[G any] func(l *Loop[G], s *Surface) error

// HandlerFunc receives host events.
type HandlerFunc[G any] func(l *Loop[G], ev Event)

// Host implements ebiten.Game around a loop.
type Host[G any] struct {
	Loop    *Loop[G]
	Init    InitFunc[G]
	Handler HandlerFunc[G]
	// LogicalWidth and LogicalHeight fix the screen size. Zero follows the
	// window's outside size.
	LogicalWidth, LogicalHeight int

	stepper   gameloop.Stepper
	surface   *Surface
	activated bool
	stopped   bool
	focused   bool
	outW      int
	outH      int
	isFocused func() bool
}

// Drive runs Ebitengine until the stepper reports stop.
func (h *Host[G]) Drive(s gameloop.Stepper) error {
	h.stepper = s
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (h *Host[G]) Update() error {
	if h.stopped {
		return ebiten.Termination
	}
	if !h.activated {
		if err := h.activate(); err != nil {
			return err
		}
	}

	focused := h.focusProbe()()
	if focused != h.focused {
		h.focused = focused
		h.Loop.SetOccluded(!focused)
		h.dispatch(FocusEvent{Focused: focused})
	}
	h.dispatch(TickEvent{})
	return nil
}

// Draw implements ebiten.Game. It runs one loop frame.
func (h *Host[G]) Draw(screen *ebiten.Image) {
	if h.stopped || !h.activated || h.surface == nil {
		return
	}
	h.surface.Image = screen
	if !h.stepper.Step() {
		h.stopped = true
	}
	h.surface.Image = nil
}

// Layout implements ebiten.Game.
func (h *Host[G]) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.outW || outsideHeight != h.outH {
		h.outW, h.outH = outsideWidth, outsideHeight
		h.dispatch(LayoutEvent{OutsideWidth: outsideWidth, OutsideHeight: outsideHeight})
	}
	w, ht := outsideWidth, outsideHeight
	if h.LogicalWidth > 0 && h.LogicalHeight > 0 {
		w, ht = h.LogicalWidth, h.LogicalHeight
	}
	if h.surface != nil {
		h.surface.Width, h.surface.Height = w, ht
	}
	return w, ht
}

// Stopped reports whether the loop has signalled stop.
func (h *Host[G]) Stopped() bool {
	return h.stopped
}

func (h *Host[G]) activate() error {
	if h.Loop.HasResource() {
		s, _ := h.Loop.Resource()
		if s == nil {
			return ErrNilSurface
		}
		h.surface = s
	} else {
		s := &Surface{Width: h.outW, Height: h.outH}
		if h.LogicalWidth > 0 && h.LogicalHeight > 0 {
			s.Width, s.Height = h.LogicalWidth, h.LogicalHeight
		}
		if h.Init != nil {
			if err := h.Init(h.Loop, s); err != nil {
				return fmt.Errorf("ebitenhost: init: %w", err)
			}
		}
		if err := h.Loop.SetResource(s); err != nil {
			return fmt.Errorf("ebitenhost: %w", err)
		}
		h.surface = s
	}
	h.activated = true
	h.focused = true
	return nil
}

func (h *Host[G]) dispatch(ev Event) {
	if h.Handler != nil {
		h.Handler(h.Loop, ev)
	}
}

func (h *Host[G]) focusProbe() func() bool {
	if h.isFocused != nil {
		return h.isFocused
	}
	return ebiten.IsFocused
}

// Options configures the window Run opens.
type Options struct {
	Title         string
	Width, Height int
	Resizable     bool
	// LogicalWidth and LogicalHeight fix the screen size; zero follows the window.
	LogicalWidth, LogicalHeight int
}

// Run creates a loop for game, opens a window and drives the loop until a
// callback calls Exit or the window is closed.
func Run[G any](game G, cfg gameloop.Config, opts Options, init InitFunc[G], update gameloop.UpdateFunc[G, *Surface], render gameloop.RenderFunc[G, *Surface], handler HandlerFunc[G]) (*Loop[G], error) {
	l, err := gameloop.New[G, *Surface](game, cfg)
	if err != nil {
		return nil, err
	}
	if opts.Title != "" {
		ebiten.SetWindowTitle(opts.Title)
	}
	if opts.Width > 0 && opts.Height > 0 {
		ebiten.SetWindowSize(opts.Width, opts.Height)
	}
	if opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	h := &Host[G]{
		Loop:          l,
		Init:          init,
		Handler:       handler,
		LogicalWidth:  opts.LogicalWidth,
		LogicalHeight: opts.LogicalHeight,
	}
	return l, h.Drive(&gameloop.Runner[G, *Surface]{Loop: l, Update: update, Render: render})
}
