package ebitenhost

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gameloop"
)

type game struct {
	updates int
	renders int
	ticks   int
	events  []Event
}

func newHost(t *testing.T, focus *bool) (*Host[*game], *gameloop.Runner[*game, *Surface]) {
	t.Helper()
	l, err := gameloop.New[*game, *Surface](&game{}, gameloop.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := &Host[*game]{
		Loop: l,
		Handler: func(l *Loop[*game], ev Event) {
			if _, ok := ev.(TickEvent); ok {
				l.Game.ticks++
				return
			}
			l.Game.events = append(l.Game.events, ev)
		},
		isFocused: func() bool { return *focus },
	}
	r := &gameloop.Runner[*game, *Surface]{
		Loop:   l,
		Update: func(l *Loop[*game]) { l.Game.updates++ },
		Render: func(l *Loop[*game]) { l.Game.renders++ },
	}
	h.stepper = r
	return h, r
}

func TestHostDrawRunsOneFrame(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)

	h.Layout(640, 480)
	// Draw before activation does nothing.
	h.Draw(nil)
	if r.Loop.NumberOfRenders() != 0 {
		t.Fatalf("frame ran before first Update")
	}

	for i := 0; i < 3; i++ {
		if err := h.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
		h.Draw(nil)
	}
	if r.Loop.Game.renders != 3 {
		t.Errorf("renders = %d, want 3", r.Loop.Game.renders)
	}
	if r.Loop.Game.ticks != 3 {
		t.Errorf("ticks = %d, want 3", r.Loop.Game.ticks)
	}
}

func TestHostAttachesSurfaceOnce(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)
	inits := 0
	h.Init = func(l *Loop[*game], s *Surface) error {
		inits++
		if s.Width != 320 || s.Height != 240 {
			t.Errorf("surface size at init = %dx%d, want 320x240", s.Width, s.Height)
		}
		return nil
	}
	h.Layout(320, 240)
	for i := 0; i < 3; i++ {
		if err := h.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if inits != 1 {
		t.Errorf("init ran %d times, want 1", inits)
	}
	s, ok := r.Loop.Resource()
	if !ok || s == nil {
		t.Fatal("surface not attached")
	}

	w, ht := h.Layout(800, 600)
	if w != 800 || ht != 600 || s.Width != 800 || s.Height != 600 {
		t.Errorf("layout = %dx%d surface %dx%d, want 800x600", w, ht, s.Width, s.Height)
	}
}

func TestHostInitError(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)
	boom := errors.New("boom")
	h.Init = func(*Loop[*game], *Surface) error { return boom }
	if err := h.Update(); !errors.Is(err, boom) {
		t.Fatalf("Update = %v, want wrapped %v", err, boom)
	}
	if r.Loop.HasResource() {
		t.Error("surface attached after failed init")
	}
}

func TestHostRejectsNilAttachedSurface(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)
	if err := r.Loop.SetResource(nil); err != nil {
		t.Fatal(err)
	}
	if err := h.Update(); !errors.Is(err, ErrNilSurface) {
		t.Fatalf("Update = %v, want ErrNilSurface", err)
	}
	h.Draw(nil)
	if r.Loop.NumberOfRenders() != 0 {
		t.Errorf("renders = %d, want 0", r.Loop.NumberOfRenders())
	}
}

func TestHostUsesSurfaceAlreadyAttached(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)
	attached := &Surface{Width: 64, Height: 64}
	if err := r.Loop.SetResource(attached); err != nil {
		t.Fatal(err)
	}
	h.Init = func(*Loop[*game], *Surface) error {
		t.Error("init ran with a surface already attached")
		return nil
	}
	if err := h.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	h.Draw(nil)
	if r.Loop.Game.renders != 1 {
		t.Errorf("renders = %d, want 1", r.Loop.Game.renders)
	}
	if attached.Image != nil {
		t.Error("surface image left set after Draw")
	}
}

func TestHostTerminatesAfterExit(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)
	r.Render = func(l *Loop[*game]) {
		l.Game.renders++
		l.Exit()
	}

	if err := h.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	h.Draw(nil)
	if !h.Stopped() {
		t.Fatal("host not stopped after Exit")
	}
	if err := h.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update = %v, want ebiten.Termination", err)
	}
	h.Draw(nil)
	if r.Loop.Game.renders != 1 {
		t.Errorf("renders = %d, want 1", r.Loop.Game.renders)
	}
}

func TestHostFocusAndLayoutEvents(t *testing.T) {
	focused := true
	h, r := newHost(t, &focused)

	h.Layout(100, 100)
	h.Layout(100, 100)
	if err := h.Update(); err != nil {
		t.Fatal(err)
	}
	focused = false
	if err := h.Update(); err != nil {
		t.Fatal(err)
	}
	if !r.Loop.Occluded() {
		t.Error("Occluded = false after focus loss")
	}
	focused = true
	if err := h.Update(); err != nil {
		t.Fatal(err)
	}
	if r.Loop.Occluded() {
		t.Error("Occluded = true after focus regained")
	}

	want := []Event{
		LayoutEvent{OutsideWidth: 100, OutsideHeight: 100},
		FocusEvent{Focused: false},
		FocusEvent{Focused: true},
	}
	got := r.Loop.Game.events
	if len(got) != len(want) {
		t.Fatalf("events = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestHostLogicalSize(t *testing.T) {
	focused := true
	h, _ := newHost(t, &focused)
	h.LogicalWidth, h.LogicalHeight = 320, 180
	w, ht := h.Layout(1280, 720)
	if w != 320 || ht != 180 {
		t.Errorf("Layout = %dx%d, want 320x180", w, ht)
	}
}

func TestFormatStats(t *testing.T) {
	text := formatStats(59.5, 60, gameloop.Stats{UpdatesPerSecond: 120, Updates: 42, BlendingFactor: 0.25})
	for _, want := range []string{"FPS: 59.5", "TPS: 60.0", "UPS: 120", "updates: 42", "blend: 0.25"} {
		if !strings.Contains(text, want) {
			t.Errorf("formatStats missing %q in %q", want, text)
		}
	}
}

func TestStatsOverlayRefreshInterval(t *testing.T) {
	o := &StatsOverlay{Interval: 100 * time.Millisecond}
	o.Update(gameloop.Stats{Updates: 1, LastFrameTime: 10 * time.Millisecond})
	if !strings.Contains(o.Text(), "updates: 1") {
		t.Fatalf("first Update did not fill text: %q", o.Text())
	}
	o.Update(gameloop.Stats{Updates: 2, LastFrameTime: 50 * time.Millisecond})
	if !strings.Contains(o.Text(), "updates: 1") {
		t.Errorf("text refreshed before interval: %q", o.Text())
	}
	o.Update(gameloop.Stats{Updates: 3, LastFrameTime: 60 * time.Millisecond})
	if !strings.Contains(o.Text(), "updates: 3") {
		t.Errorf("text not refreshed after interval: %q", o.Text())
	}
}
