// Package render defines the draw primitives produced by the gauge and layout
// engines and the contracts a host draw surface has to satisfy.
package render

import "math"

// Color is a straight (non-premultiplied) RGBA colour with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Primitive is one of Circle, Arc, FilledCircle, FilledRect or Text.
type Primitive interface {
	primitive()
}

// Circle is a stroked full circle.
type Circle struct {
	Center    Point
	Radius    float64
	Color     Color
	Segments  int
	Thickness float64
}

// Arc is a stroked circular arc from Start to End (radians, screen
// coordinates, so positive sweep is clockwise) tessellated into Segments
// straight pieces.
type Arc struct {
	Center    Point
	Radius    float64
	Start     float64
	End       float64
	Segments  int
	Color     Color
	Thickness float64
}

// Points returns the Segments+1 vertices of the tessellated arc.
func (a Arc) Points() []Point {
	n := a.Segments
	if n < 1 {
		n = 1
	}
	out := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := a.Start + (a.End-a.Start)*float64(i)/float64(n)
		out = append(out, Point{
			X: a.Center.X + math.Cos(t)*a.Radius,
			Y: a.Center.Y + math.Sin(t)*a.Radius,
		})
	}
	return out
}

// Sweep is the signed angular extent of the arc.
func (a Arc) Sweep() float64 { return a.End - a.Start }

type FilledCircle struct {
	Center   Point
	Radius   float64
	Color    Color
	Segments int
}

type FilledRect struct {
	Rect     Rect
	Color    Color
	Rounding float64
}

// Text is drawn with its top-left corner at Pos. Size is the extent the
// text measurer reported when the position was computed.
type Text struct {
	Pos   Point
	Size  Point
	Color Color
	Text  string
}

func (Circle) primitive()       {}
func (Arc) primitive()          {}
func (FilledCircle) primitive() {}
func (FilledRect) primitive()   {}
func (Text) primitive()         {}
