package term

import (
	"unicode/utf8"

	"hwgauge/internal/render"
)

// FontMeasurer approximates a monospace font of the given height whose
// glyphs are half as wide as they are tall.
type FontMeasurer struct {
	Size float64
}

func (m FontMeasurer) Measure(text string) render.Point {
	return render.Pt(float64(utf8.RuneCountInString(text))*m.Size/2, m.Size)
}
