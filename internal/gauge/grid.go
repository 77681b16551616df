package gauge

import (
	"hwgauge/internal/layout"
	"hwgauge/internal/render"
)

const (
	cellPadding  = 2.0
	cellRounding = 3.0
)

// CoreGridSpec is the per-core usage list, in core-index order, and the box
// the grid is fitted into.
type CoreGridSpec struct {
	Usages []float64
	Box    render.Rect
}

// CoreGrid draws one padded, rounded cell per core coloured by its usage.
func CoreGrid(s CoreGridSpec) []render.Primitive {
	cells := layout.GridCells(len(s.Usages), s.Box)
	out := make([]render.Primitive, 0, len(cells))
	for i, cell := range cells {
		out = append(out, render.FilledRect{
			Rect: render.Rect{
				Min: render.Pt(cell.Min.X+cellPadding, cell.Min.Y+cellPadding),
				Max: render.Pt(cell.Max.X-cellPadding, cell.Max.Y-cellPadding),
			},
			Color:    Gradient(s.Usages[i]),
			Rounding: cellRounding,
		})
	}
	return out
}
