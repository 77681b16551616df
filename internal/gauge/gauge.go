package gauge

import (
	"fmt"
	"math"

	"hwgauge/internal/render"
)

const (
	BackgroundThickness = 8.0
	ForegroundThickness = 12.0

	// FullSegments is the tessellation of a complete ring and of a full
	// sweep of the combo arc; HalfSegments of a full half-circle arc.
	FullSegments = 128
	HalfSegments = 64
	MinSegments  = 2

	InnerAlpha = 0.6

	labelOffset    = 15.0
	subtextGap     = 5.0
	readoutPadding = 5.0
)

// top of the ring in screen coordinates
const startAngle = -math.Pi / 2

// Spec describes a single-direction combo gauge (CPU/RAM, GPU/VRAM).
type Spec struct {
	Center       render.Point
	Radius       float64
	OuterPercent float64
	InnerPercent float64
	Label        string
	Subtext      string
}

// SplitSpec describes a dual gauge whose left half grows counter-clockwise
// from the top with LeftPercent and whose right half grows clockwise with
// RightPercent. TopReadout and BottomReadout are stacked in the centre.
type SplitSpec struct {
	Center        render.Point
	Radius        float64
	LeftPercent   float64
	RightPercent  float64
	InnerPercent  float64
	Label         string
	Subtext       string
	TopReadout    string
	BottomReadout string
}

// Segments scales tessellation with the visible share of the arc. Near-empty
// arcs get few segments, never fewer than MinSegments.
func Segments(base int, percent float64) int {
	n := int(math.Floor(float64(base) * ClampPercent(percent) / 100))
	if n < MinSegments {
		n = MinSegments
	}
	return n
}

// Combo builds the primitives for a combo gauge: background ring, foreground
// arc for OuterPercent, inner disk for InnerPercent and text overlays.
func Combo(s Spec, m render.TextMeasurer) []render.Primitive {
	outer := ClampPercent(s.OuterPercent)
	inner := ClampPercent(s.InnerPercent)

	out := []render.Primitive{backgroundRing(s.Center, s.Radius)}
	if outer > 0 {
		out = append(out, render.Arc{
			Center:    s.Center,
			Radius:    s.Radius,
			Start:     startAngle,
			End:       startAngle + outer/100*2*math.Pi,
			Segments:  Segments(FullSegments, outer),
			Color:     Gradient(outer),
			Thickness: ForegroundThickness,
		})
	}
	if disk, ok := innerDisk(s.Center, s.Radius, inner); ok {
		out = append(out, disk)
	}

	out = append(out, centeredText(m, s.Center, fmt.Sprintf("%d%%", int(outer)), valueColor))
	out = append(out, captions(m, s.Center, s.Radius, s.Label, s.Subtext)...)
	return out
}

// Split builds the primitives for a dual gauge (network up/down, disk
// write/read). Both arcs share the colour of their averaged percentage.
func Split(s SplitSpec, m render.TextMeasurer) []render.Primitive {
	left := ClampPercent(s.LeftPercent)
	right := ClampPercent(s.RightPercent)
	color := Gradient((s.LeftPercent + s.RightPercent) / 2)

	out := []render.Primitive{backgroundRing(s.Center, s.Radius)}
	if left > 0 {
		out = append(out, render.Arc{
			Center:    s.Center,
			Radius:    s.Radius,
			Start:     startAngle - left/100*math.Pi,
			End:       startAngle,
			Segments:  Segments(HalfSegments, left),
			Color:     color,
			Thickness: ForegroundThickness,
		})
	}
	if right > 0 {
		out = append(out, render.Arc{
			Center:    s.Center,
			Radius:    s.Radius,
			Start:     startAngle,
			End:       startAngle + right/100*math.Pi,
			Segments:  Segments(HalfSegments, right),
			Color:     color,
			Thickness: ForegroundThickness,
		})
	}
	if disk, ok := innerDisk(s.Center, s.Radius, ClampPercent(s.InnerPercent)); ok {
		out = append(out, disk)
	}

	out = append(out, stackedReadouts(m, s.Center, s.TopReadout, s.BottomReadout)...)
	out = append(out, captions(m, s.Center, s.Radius, s.Label, s.Subtext)...)
	return out
}

func backgroundRing(center render.Point, radius float64) render.Circle {
	return render.Circle{
		Center:    center,
		Radius:    radius,
		Color:     ringColor,
		Segments:  FullSegments,
		Thickness: BackgroundThickness,
	}
}

func innerDisk(center render.Point, radius, percent float64) (render.FilledCircle, bool) {
	if percent <= 0 {
		return render.FilledCircle{}, false
	}
	return render.FilledCircle{
		Center:   center,
		Radius:   radius * percent / 100,
		Color:    Gradient(percent).WithAlpha(InnerAlpha),
		Segments: FullSegments,
	}, true
}

func centeredText(m render.TextMeasurer, center render.Point, text string, color render.Color) render.Text {
	size := m.Measure(text)
	return render.Text{
		Pos:   render.Pt(center.X-size.X/2, center.Y-size.Y/2),
		Size:  size,
		Color: color,
		Text:  text,
	}
}

// captions places the label below the ring and the optional subtext below
// the label, both horizontally centred.
func captions(m render.TextMeasurer, center render.Point, radius float64, label, subtext string) []render.Primitive {
	labelSize := m.Measure(label)
	labelPos := render.Pt(center.X-labelSize.X/2, center.Y+radius+labelOffset)
	out := []render.Primitive{render.Text{Pos: labelPos, Size: labelSize, Color: labelColor, Text: label}}
	if subtext == "" {
		return out
	}
	subSize := m.Measure(subtext)
	out = append(out, render.Text{
		Pos:   render.Pt(center.X-subSize.X/2, labelPos.Y+labelSize.Y+subtextGap),
		Size:  subSize,
		Color: subtextColor,
		Text:  subtext,
	})
	return out
}

func stackedReadouts(m render.TextMeasurer, center render.Point, top, bottom string) []render.Primitive {
	topSize := m.Measure(top)
	bottomSize := m.Measure(bottom)
	total := topSize.Y + bottomSize.Y + readoutPadding
	topY := center.Y - total/2
	bottomY := topY + topSize.Y + readoutPadding
	return []render.Primitive{
		render.Text{Pos: render.Pt(center.X-topSize.X/2, topY), Size: topSize, Color: valueColor, Text: top},
		render.Text{Pos: render.Pt(center.X-bottomSize.X/2, bottomY), Size: bottomSize, Color: valueColor, Text: bottom},
	}
}
