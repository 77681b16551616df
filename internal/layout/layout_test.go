package layout

import (
	"math"
	"testing"
)

func TestGridDims(t *testing.T) {
	cases := []struct {
		count      int
		cols, rows int
	}{
		{count: 1, cols: 1, rows: 1},
		{count: 2, cols: 1, rows: 2},
		{count: 4, cols: 2, rows: 2},
		{count: 5, cols: 2, rows: 3},
		{count: 8, cols: 2, rows: 4},
		{count: 9, cols: 3, rows: 3},
		{count: 16, cols: 4, rows: 4},
		{count: 24, cols: 4, rows: 6},
		{count: 0, cols: 0, rows: 0},
	}
	for _, tc := range cases {
		cols, rows := GridDims(tc.count)
		if cols != tc.cols || rows != tc.rows {
			t.Fatalf("GridDims(%d) = %dx%d, want %dx%d", tc.count, cols, rows, tc.cols, tc.rows)
		}
	}
}

func TestComputeSpacingIsSymmetric(t *testing.T) {
	for _, size := range [][2]float64{{2400, 480}, {3000, 500}, {1200, 240}} {
		l := Compute(size[0], size[1])

		wantRadius := math.Min(size[0], size[1]) * 0.25
		if l.Radius != wantRadius {
			t.Fatalf("radius = %v, want %v", l.Radius, wantRadius)
		}
		if l.GridWidth != wantRadius+20 {
			t.Fatalf("grid width = %v, want %v", l.GridWidth, wantRadius+20)
		}
		wantSpacing := (size[0] - l.ContentWidth) / 5
		if math.Abs(l.Spacing-wantSpacing) > 1e-9 {
			t.Fatalf("spacing = %v, want %v", l.Spacing, wantSpacing)
		}

		// left margin, three inner gaps and right margin are all equal
		gaps := []float64{l.Items[0].Left()}
		for i := 1; i < ItemCount; i++ {
			gaps = append(gaps, l.Items[i].Left()-l.Items[i-1].Right())
		}
		gaps = append(gaps, size[0]-l.Items[ItemCount-1].Right())
		for i, g := range gaps {
			if math.Abs(g-wantSpacing) > 1e-9 {
				t.Fatalf("canvas %v: gap %d = %v, want %v", size, i, g, wantSpacing)
			}
		}

		for i := 1; i < ItemCount; i++ {
			if l.Items[i].Center.X <= l.Items[i-1].Center.X {
				t.Fatalf("centres not increasing at %d", i)
			}
			if l.Items[i].Left() < l.Items[i-1].Right() {
				t.Fatalf("item %d overlaps item %d", i, i-1)
			}
		}
	}
}

func TestComputeNarrowCanvasGoesNegative(t *testing.T) {
	// r=225, grid=245: content 695+3*450=2045 is wider than the canvas
	l := Compute(1600, 900)
	if l.ContentWidth != 2045 {
		t.Fatalf("content width = %v", l.ContentWidth)
	}
	if l.Spacing != -89 {
		t.Fatalf("spacing = %v, want -89", l.Spacing)
	}
	for i := 1; i < ItemCount; i++ {
		if l.Items[i].Center.X <= l.Items[i-1].Center.X {
			t.Fatalf("centres not increasing at %d", i)
		}
	}
}

func TestComputeItemWidths(t *testing.T) {
	l := Compute(2400, 480)
	r := l.Radius
	if got := l.Item(ItemCPU).Width; got != 2*r+r+20 {
		t.Fatalf("cpu width = %v", got)
	}
	for _, k := range []ItemKind{ItemGPU, ItemNetwork, ItemDisk} {
		if got := l.Item(k).Width; got != 2*r {
			t.Fatalf("%s width = %v, want %v", k, got, 2*r)
		}
	}
	if l.CPUGauge.X != l.Item(ItemCPU).Center.X-l.GridWidth/2 {
		t.Fatalf("cpu gauge centre = %v", l.CPUGauge)
	}
	if l.GridBox.Min.X != l.CPUGauge.X+r+20 {
		t.Fatalf("grid box left = %v", l.GridBox.Min.X)
	}
	if l.GridBox.Width() != r || l.GridBox.Height() != r {
		t.Fatalf("grid box = %v", l.GridBox)
	}
	// grid must end exactly at the right edge of the cpu slot
	if math.Abs(l.GridBox.Max.X-l.Item(ItemCPU).Right()) > 1e-9 {
		t.Fatalf("grid right %v != slot right %v", l.GridBox.Max.X, l.Item(ItemCPU).Right())
	}
}

func TestGridCellsCentredAndRowMajor(t *testing.T) {
	l := Compute(2400, 480)
	cells := GridCells(5, l.GridBox)
	if len(cells) != 5 {
		t.Fatalf("cells = %d", len(cells))
	}
	side := cells[0].Width()
	if side != cells[0].Height() {
		t.Fatalf("cells are not square: %v", cells[0])
	}
	// 2 cols x 3 rows in a square box: height-bound
	if math.Abs(side-l.GridBox.Height()/3) > 1e-9 {
		t.Fatalf("side = %v", side)
	}
	if cells[1].Min.Y != cells[0].Min.Y || cells[1].Min.X <= cells[0].Min.X {
		t.Fatalf("cell 1 should be right of cell 0: %v %v", cells[0], cells[1])
	}
	if cells[2].Min.X != cells[0].Min.X || cells[2].Min.Y <= cells[0].Min.Y {
		t.Fatalf("cell 2 should start the second row: %v", cells[2])
	}
	leftPad := cells[0].Min.X - l.GridBox.Min.X
	rightPad := l.GridBox.Max.X - cells[1].Max.X
	if math.Abs(leftPad-rightPad) > 1e-9 {
		t.Fatalf("grid not centred: %v vs %v", leftPad, rightPad)
	}
	if GridCells(0, l.GridBox) != nil {
		t.Fatalf("expected no cells for zero cores")
	}
}
