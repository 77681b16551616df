// Package term hosts the dashboard in a terminal. Primitives are rasterized
// into a half-block framebuffer: each character cell carries two square
// pixels stacked vertically, drawn with an upper-half-block glyph whose
// foreground is the top pixel and background the bottom one.
package term

import (
	"math"

	"hwgauge/internal/render"
)

const upperHalfBlock = '▀'

// minHalfWidth keeps thin strokes at least one pixel wide after scaling.
const minHalfWidth = 0.5

type Cell struct {
	Rune rune
	Fg   render.Color
	Bg   render.Color
}

type textCell struct {
	r     rune
	color render.Color
}

// Raster is a framebuffer of cols x rows*2 pixels plus a text layer of
// cols x rows cells. The canvas keeps its configured size: it is scaled to
// fit the terminal and centred, leaving black bars on the loose axis.
type Raster struct {
	cols, rows    int
	width, height float64
	// pixels per canvas unit
	scale            float64
	offsetX, offsetY float64
	px               []render.Color
	text             map[int]textCell

	// stamp marks pixels already painted by the current primitive so
	// overlapping stroke pieces blend once.
	stamp []uint32
	gen   uint32
}

// NewRaster fits a canvas of width x height into cols x rows cells.
func NewRaster(cols, rows int, width, height float64) *Raster {
	r := &Raster{width: width, height: height}
	r.Resize(cols, rows)
	return r
}

// FitScale returns the pixels-per-canvas-unit factor that fits a canvas of
// width x height into a terminal of cols x rows cells.
func FitScale(cols, rows int, width, height float64) float64 {
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return 1
	}
	return math.Min(float64(cols)/width, float64(rows*2)/height)
}

// Resize refits the canvas to a new terminal size.
func (r *Raster) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	r.cols, r.rows = cols, rows
	r.scale = FitScale(cols, rows, r.width, r.height)
	r.offsetX = math.Max(0, math.Floor((float64(cols)-r.width*r.scale)/2))
	r.offsetY = math.Max(0, math.Floor((float64(rows*2)-r.height*r.scale)/2))
	n := cols * rows * 2
	r.px = make([]render.Color, n)
	r.stamp = make([]uint32, n)
	r.gen = 0
	r.text = make(map[int]textCell)
}

func (r *Raster) Cols() int { return r.cols }
func (r *Raster) Rows() int { return r.rows }

// CanvasSize is the configured canvas extent; it does not change on resize.
func (r *Raster) CanvasSize() (float64, float64) {
	return r.width, r.height
}

// Scale reports pixels per canvas unit for the current terminal size.
func (r *Raster) Scale() float64 { return r.scale }

// Draw replaces the raster contents with list.
func (r *Raster) Draw(list *render.DrawList) {
	for i := range r.px {
		r.px[i] = list.Clear
	}
	clear(r.text)
	for _, item := range list.Items {
		switch p := item.(type) {
		case render.Circle:
			r.ring(p.Center, p.Radius, p.Thickness, p.Color)
		case render.Arc:
			r.polyline(p.Points(), p.Thickness, p.Color)
		case render.FilledCircle:
			r.disk(p.Center, p.Radius, p.Color)
		case render.FilledRect:
			r.rect(p.Rect, p.Rounding, p.Color)
		case render.Text:
			r.label(p)
		}
	}
}

// Cell composes the pixel pair and text layer at (col, row).
func (r *Raster) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return Cell{Rune: ' '}
	}
	top := r.px[(row*2)*r.cols+col]
	bottom := r.px[(row*2+1)*r.cols+col]
	if tc, ok := r.text[row*r.cols+col]; ok {
		return Cell{Rune: tc.r, Fg: tc.color, Bg: mix(top, bottom)}
	}
	if top == bottom {
		return Cell{Rune: ' ', Fg: top, Bg: bottom}
	}
	return Cell{Rune: upperHalfBlock, Fg: top, Bg: bottom}
}

// Pixel returns the framebuffer colour at pixel (x, y).
func (r *Raster) Pixel(x, y int) render.Color {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows*2 {
		return render.Color{}
	}
	return r.px[y*r.cols+x]
}

func (r *Raster) toPx(p render.Point) (float64, float64) {
	return r.offsetX + p.X*r.scale, r.offsetY + p.Y*r.scale
}

func (r *Raster) halfWidth(thickness float64) float64 {
	return math.Max(thickness*r.scale/2, minHalfWidth)
}

// span clips [lo, hi] pixel coordinates to the framebuffer.
func span(lo, hi float64, limit int) (int, int) {
	a := int(math.Floor(lo))
	b := int(math.Ceil(hi))
	if a < 0 {
		a = 0
	}
	if b > limit-1 {
		b = limit - 1
	}
	return a, b
}

func (r *Raster) nextGen() {
	r.gen++
	if r.gen == 0 {
		clear(r.stamp)
		r.gen = 1
	}
}

func (r *Raster) blend(x, y int, c render.Color) {
	i := y*r.cols + x
	if r.stamp[i] == r.gen {
		return
	}
	r.stamp[i] = r.gen
	dst := r.px[i]
	a := c.A
	r.px[i] = render.Color{
		R: c.R*a + dst.R*(1-a),
		G: c.G*a + dst.G*(1-a),
		B: c.B*a + dst.B*(1-a),
		A: 1,
	}
}

func (r *Raster) ring(center render.Point, radius, thickness float64, c render.Color) {
	r.nextGen()
	cx, cy := r.toPx(center)
	rad := radius * r.scale
	hw := r.halfWidth(thickness)
	x0, x1 := span(cx-rad-hw, cx+rad+hw, r.cols)
	y0, y1 := span(cy-rad-hw, cy+rad+hw, r.rows*2)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if math.Abs(d-rad) <= hw {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *Raster) polyline(points []render.Point, thickness float64, c render.Color) {
	if len(points) < 2 {
		return
	}
	r.nextGen()
	hw := r.halfWidth(thickness)
	for i := 1; i < len(points); i++ {
		ax, ay := r.toPx(points[i-1])
		bx, by := r.toPx(points[i])
		x0, x1 := span(math.Min(ax, bx)-hw, math.Max(ax, bx)+hw, r.cols)
		y0, y1 := span(math.Min(ay, by)-hw, math.Max(ay, by)+hw, r.rows*2)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if segmentDistance(float64(x)+0.5, float64(y)+0.5, ax, ay, bx, by) <= hw {
					r.blend(x, y, c)
				}
			}
		}
	}
}

func (r *Raster) disk(center render.Point, radius float64, c render.Color) {
	r.nextGen()
	cx, cy := r.toPx(center)
	rad := radius * r.scale
	x0, x1 := span(cx-rad, cx+rad, r.cols)
	y0, y1 := span(cy-rad, cy+rad, r.rows*2)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= rad {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *Raster) rect(rc render.Rect, rounding float64, c render.Color) {
	r.nextGen()
	minX, minY := r.toPx(rc.Min)
	maxX, maxY := r.toPx(rc.Max)
	if maxX <= minX || maxY <= minY {
		return
	}
	rr := math.Min(rounding*r.scale, math.Min(maxX-minX, maxY-minY)/2)
	x0, x1 := span(minX, maxX, r.cols)
	y0, y1 := span(minY, maxY, r.rows*2)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if px < minX || px > maxX || py < minY || py > maxY {
				continue
			}
			qx := math.Min(math.Max(px, minX+rr), maxX-rr)
			qy := math.Min(math.Max(py, minY+rr), maxY-rr)
			if math.Hypot(px-qx, py-qy) <= rr {
				r.blend(x, y, c)
			}
		}
	}
}

// label snaps text to whole cells, centred on the centre of its measured
// extent.
func (r *Raster) label(t render.Text) {
	runes := []rune(t.Text)
	if len(runes) == 0 {
		return
	}
	cx, cy := r.toPx(render.Pt(t.Pos.X+t.Size.X/2, t.Pos.Y+t.Size.Y/2))
	row := int(math.Floor(cy / 2))
	if row < 0 || row >= r.rows {
		return
	}
	start := int(math.Round(cx - float64(len(runes))/2))
	for i, ch := range runes {
		col := start + i
		if col < 0 || col >= r.cols {
			continue
		}
		r.text[row*r.cols+col] = textCell{r: ch, color: t.Color}
	}
}

func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

func mix(a, b render.Color) render.Color {
	return render.Color{R: (a.R + b.R) / 2, G: (a.G + b.G) / 2, B: (a.B + b.B) / 2, A: 1}
}
