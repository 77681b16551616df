// Package gauge turns percentages into ring, arc, disk and grid primitives.
// All functions are pure; nothing is cached between frames.
package gauge

import (
	"math"

	"hwgauge/internal/render"
)

var (
	ringColor    = render.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}
	valueColor   = render.White
	labelColor   = render.Color{R: 0.8, G: 0.8, B: 0.8, A: 1}
	subtextColor = render.Color{R: 0.7, G: 0.7, B: 0.7, A: 1}
)

// ClampPercent bounds v to [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Gradient maps a percentage onto green (0) through yellow (50) to red (100).
// It is the only colour policy for percentages.
func Gradient(v float64) render.Color {
	v = ClampPercent(v)
	if v <= 50 {
		return render.Color{R: v / 50, G: 1, B: 0, A: 1}
	}
	return render.Color{R: 1, G: 1 - (v-50)/50, B: 0, A: 1}
}
