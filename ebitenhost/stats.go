package ebitenhost

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/gameloop"
)

// StatsOverlay prints FPS, TPS and loop counters in the top-left corner.
// The text is refreshed every Interval of rendered time (~0.5s by default)
// so it stays readable.
type StatsOverlay struct {
	Interval time.Duration

	text    string
	elapsed time.Duration
}

// Update refreshes the text when the interval has passed. Call it from a
// render callback.
func (o *StatsOverlay) Update(s gameloop.Stats) {
	interval := o.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	o.elapsed += s.LastFrameTime
	if o.text != "" && o.elapsed < interval {
		return
	}
	o.elapsed = 0
	o.text = formatStats(ebiten.ActualFPS(), ebiten.ActualTPS(), s)
}

// Draw prints the overlay onto dst.
func (o *StatsOverlay) Draw(dst *ebiten.Image) {
	if dst == nil || o.text == "" {
		return
	}
	ebitenutil.DebugPrint(dst, o.text)
}

// Text returns the current overlay text.
func (o *StatsOverlay) Text() string {
	return o.text
}

func formatStats(fps, tps float64, s gameloop.Stats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nUPS: %d\nupdates: %d\nblend: %.2f",
		fps, tps, s.UpdatesPerSecond, s.Updates, s.BlendingFactor)
}
