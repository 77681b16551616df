// Package layout positions the fixed row of gauges inside the current canvas.
// Everything is recomputed from the canvas size on every frame.
package layout

import (
	"math"

	"hwgauge/internal/render"
)

type ItemKind int

const (
	ItemCPU ItemKind = iota
	ItemGPU
	ItemNetwork
	ItemDisk
)

// ItemCount is the number of gauge slots; the row has ItemCount+1 gaps.
const ItemCount = 4

const (
	radiusFactor = 0.25
	// gridFactor sizes the square core grid relative to the gauge radius.
	gridFactor = 1.0
	// GridGap separates the CPU gauge from its core grid.
	GridGap = 20.0
)

func (k ItemKind) String() string {
	switch k {
	case ItemCPU:
		return "cpu"
	case ItemGPU:
		return "gpu"
	case ItemNetwork:
		return "network"
	case ItemDisk:
		return "disk"
	default:
		return "unknown"
	}
}

// Item is one slot of the row. Center is the centre of the slot's full width;
// for the CPU slot that includes the core grid.
type Item struct {
	Kind   ItemKind
	Center render.Point
	Width  float64
}

// Left and Right are the horizontal extent of the slot.
func (i Item) Left() float64  { return i.Center.X - i.Width/2 }
func (i Item) Right() float64 { return i.Center.X + i.Width/2 }

type Layout struct {
	Width, Height float64
	Radius        float64
	GridWidth     float64
	Spacing       float64
	ContentWidth  float64
	Items         [ItemCount]Item

	// CPUGauge is the centre of the CPU ring, offset left of the CPU slot
	// centre by half the grid width.
	CPUGauge render.Point
	// GridBox is the square region handed to the core grid.
	GridBox render.Rect
}

// Item returns the slot for kind.
func (l Layout) Item(kind ItemKind) Item {
	return l.Items[kind]
}

// GaugeCenter is where the ring for kind is drawn.
func (l Layout) GaugeCenter(kind ItemKind) render.Point {
	if kind == ItemCPU {
		return l.CPUGauge
	}
	return l.Items[kind].Center
}

// Compute lays out the four gauges for a canvas of the given size.
func Compute(width, height float64) Layout {
	radius := math.Min(width, height) * radiusFactor
	gridWidth := radius*gridFactor + GridGap
	cpuWidth := radius*2 + gridWidth
	gaugeWidth := radius * 2

	widths := [ItemCount]float64{cpuWidth, gaugeWidth, gaugeWidth, gaugeWidth}
	content := 0.0
	for _, w := range widths {
		content += w
	}
	spacing := (width - content) / float64(ItemCount+1)
	centerY := height / 2

	l := Layout{
		Width:        width,
		Height:       height,
		Radius:       radius,
		GridWidth:    gridWidth,
		Spacing:      spacing,
		ContentWidth: content,
	}

	x := spacing
	for i, w := range widths {
		l.Items[i] = Item{
			Kind:   ItemKind(i),
			Center: render.Pt(x+w/2, centerY),
			Width:  w,
		}
		x += w + spacing
	}

	cpu := l.Items[ItemCPU]
	l.CPUGauge = render.Pt(cpu.Center.X-gridWidth/2, centerY)
	side := radius * gridFactor
	topLeft := render.Pt(l.CPUGauge.X+radius+GridGap, centerY-side/2)
	l.GridBox = render.Rect{Min: topLeft, Max: render.Pt(topLeft.X+side, topLeft.Y+side)}
	return l
}
