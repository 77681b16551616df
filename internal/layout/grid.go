package layout

import (
	"math"

	"hwgauge/internal/render"
)

// GridDims returns the column and row count for a core grid: as many columns
// as the integer square root of count, and enough rows to hold the rest.
func GridDims(count int) (cols, rows int) {
	if count <= 0 {
		return 0, 0
	}
	cols = int(math.Sqrt(float64(count)))
	// guard against float rounding at perfect squares
	for (cols+1)*(cols+1) <= count {
		cols++
	}
	for cols*cols > count {
		cols--
	}
	if cols < 1 {
		cols = 1
	}
	rows = (count + cols - 1) / cols
	return cols, rows
}

// GridCells returns count square cells in row-major order, centred inside box.
// Cell i corresponds to core i.
func GridCells(count int, box render.Rect) []render.Rect {
	cols, rows := GridDims(count)
	if cols == 0 {
		return nil
	}
	side := math.Min(box.Width()/float64(cols), box.Height()/float64(rows))
	offsetX := (box.Width() - side*float64(cols)) / 2
	offsetY := (box.Height() - side*float64(rows)) / 2

	cells := make([]render.Rect, 0, count)
	for i := 0; i < count; i++ {
		row := i / cols
		col := i % cols
		x := box.Min.X + offsetX + float64(col)*side
		y := box.Min.Y + offsetY + float64(row)*side
		cells = append(cells, render.Rect{
			Min: render.Pt(x, y),
			Max: render.Pt(x+side, y+side),
		})
	}
	return cells
}
