package gameloop

import "github.com/tanema/gween/ease"

// Lerp blends linearly from prev to cur by alpha. Pass BlendingFactor as alpha
// to draw a value between its last two simulated states.
func Lerp(prev, cur, alpha float64) float64 {
	return prev + (cur-prev)*alpha
}

// Interpolate blends from prev to cur by alpha through an easing function.
// alpha is clamped to [0, 1]. A nil fn is linear.
func Interpolate(prev, cur, alpha float64, fn ease.TweenFunc) float64 {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	if fn == nil {
		return Lerp(prev, cur, alpha)
	}
	return float64(fn(float32(alpha), float32(prev), float32(cur-prev), 1))
}

// Vec2 is a 2D point used by the interpolation helpers.
type Vec2 struct {
	X, Y float64
}

// LerpVec2 blends two points linearly by alpha.
func LerpVec2(prev, cur Vec2, alpha float64) Vec2 {
	return Vec2{X: Lerp(prev.X, cur.X, alpha), Y: Lerp(prev.Y, cur.Y, alpha)}
}
