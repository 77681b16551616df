package term

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"hwgauge/internal/layout"
	"hwgauge/internal/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFitScale(t *testing.T) {
	cases := []struct {
		cols, rows int
		w, h       float64
		want       float64
	}{
		{200, 50, 2400, 480, 200.0 / 2400},
		{80, 10, 800, 100, 0.1},
		{80, 10, 100, 100, 0.2},
		{0, 10, 800, 100, 1},
	}
	for _, tc := range cases {
		if got := FitScale(tc.cols, tc.rows, tc.w, tc.h); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("FitScale(%d,%d,%v,%v) = %v, want %v", tc.cols, tc.rows, tc.w, tc.h, got, tc.want)
		}
	}
}

func TestRasterRingAndDisk(t *testing.T) {
	r := NewRaster(20, 10, 20, 20)
	list := render.NewDrawList(render.Black)
	list.Add(
		render.Circle{Center: render.Pt(10, 10), Radius: 6, Color: render.White, Segments: 128, Thickness: 2},
		render.FilledCircle{Center: render.Pt(10, 10), Radius: 3, Color: render.White.WithAlpha(0.5)},
	)
	r.Draw(list)

	if got := r.Pixel(16, 10); got != render.White {
		t.Fatalf("ring pixel = %+v", got)
	}
	centre := r.Pixel(9, 9)
	if math.Abs(centre.R-0.5) > 1e-9 || math.Abs(centre.G-0.5) > 1e-9 {
		t.Fatalf("half-alpha disk over black = %+v", centre)
	}
	if got := r.Pixel(0, 0); got != render.Black {
		t.Fatalf("corner should keep the clear colour, got %+v", got)
	}
}

func TestRasterArcCoversOnlyItsSweep(t *testing.T) {
	r := NewRaster(20, 10, 20, 20)
	list := render.NewDrawList(render.Black)
	list.Add(render.Arc{
		Center:    render.Pt(10, 10),
		Radius:    6,
		Start:     -math.Pi / 2,
		End:       0,
		Segments:  16,
		Color:     render.White,
		Thickness: 2,
	})
	r.Draw(list)
	if got := r.Pixel(13, 5); got != render.White {
		t.Fatalf("top-right arc pixel = %+v", got)
	}
	if got := r.Pixel(6, 5); got != render.Black {
		t.Fatalf("top-left pixel should be untouched, got %+v", got)
	}
	if got := r.Pixel(10, 16); got != render.Black {
		t.Fatalf("bottom pixel should be untouched, got %+v", got)
	}
}

func TestRasterOverlappingStrokeBlendsOnce(t *testing.T) {
	r := NewRaster(20, 10, 20, 20)
	list := render.NewDrawList(render.Black)
	list.Add(render.Arc{
		Center: render.Pt(10, 10), Radius: 6, Start: -math.Pi / 2, End: 0,
		Segments: 64, Color: render.White.WithAlpha(0.5), Thickness: 4,
	})
	r.Draw(list)
	if got := r.Pixel(13, 5); math.Abs(got.R-0.5) > 1e-9 {
		t.Fatalf("joint pixel blended more than once: %+v", got)
	}
}

func TestRasterRoundedRect(t *testing.T) {
	r := NewRaster(10, 5, 10, 10)
	list := render.NewDrawList(render.Black)
	list.Add(render.FilledRect{Rect: render.Rect{Min: render.Pt(2, 2), Max: render.Pt(8, 8)}, Color: render.White, Rounding: 3})
	r.Draw(list)
	if got := r.Pixel(5, 5); got != render.White {
		t.Fatalf("rect centre = %+v", got)
	}
	if got := r.Pixel(2, 2); got != render.Black {
		t.Fatalf("rounded corner should be clipped, got %+v", got)
	}

	list.Items = []render.Primitive{render.FilledRect{Rect: render.Rect{Min: render.Pt(2, 2), Max: render.Pt(8, 8)}, Color: render.White}}
	r.Draw(list)
	if got := r.Pixel(2, 2); got != render.White {
		t.Fatalf("square corner = %+v", got)
	}
}

func TestRasterTextAndCells(t *testing.T) {
	r := NewRaster(20, 10, 20, 20)
	list := render.NewDrawList(render.Black)
	list.Add(
		render.FilledRect{Rect: render.Rect{Min: render.Pt(0, 0), Max: render.Pt(20, 1)}, Color: render.White},
		render.Text{Pos: render.Pt(5, 4), Size: render.Pt(10, 2), Color: render.White, Text: "ab"},
	)
	r.Draw(list)

	if c := r.Cell(9, 2); c.Rune != 'a' || c.Fg != render.White {
		t.Fatalf("cell(9,2) = %+v", c)
	}
	if c := r.Cell(10, 2); c.Rune != 'b' {
		t.Fatalf("cell(10,2) = %+v", c)
	}
	top := r.Cell(3, 0)
	if top.Rune != upperHalfBlock || top.Fg != render.White || top.Bg != render.Black {
		t.Fatalf("half-block cell = %+v", top)
	}
	if c := r.Cell(3, 5); c.Rune != ' ' {
		t.Fatalf("uniform cell = %+v", c)
	}
	if c := r.Cell(-1, 0); c.Rune != ' ' {
		t.Fatalf("out of range cell = %+v", c)
	}

	// a new frame clears the previous text layer
	r.Draw(render.NewDrawList(render.Black))
	if c := r.Cell(9, 2); c.Rune != ' ' {
		t.Fatalf("stale text after redraw: %+v", c)
	}
}

func TestFontMeasurer(t *testing.T) {
	got := FontMeasurer{Size: 32}.Measure("CPU / RAM")
	if got.X != 9*16 || got.Y != 32 {
		t.Fatalf("measure = %+v", got)
	}
}

func newSimSurface(t *testing.T) (*Surface, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewSurface(sim, Options{CanvasWidth: 2400, CanvasHeight: 480, FontSize: 32}, discardLogger())
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, sim
}

func TestRasterLetterboxesCanvas(t *testing.T) {
	// 20x20 canvas in 40x10 cells is height-bound: 20 pixels of bar each side
	r := NewRaster(40, 10, 20, 20)
	if r.Scale() != 1 {
		t.Fatalf("scale = %v", r.Scale())
	}
	list := render.NewDrawList(render.Black)
	list.Add(render.FilledCircle{Center: render.Pt(10, 10), Radius: 3, Color: render.White})
	r.Draw(list)
	if got := r.Pixel(20, 10); got != render.White {
		t.Fatalf("centred disk pixel = %+v", got)
	}
	if got := r.Pixel(10, 10); got != render.Black {
		t.Fatalf("left bar should stay clear, got %+v", got)
	}

	r.Resize(20, 20)
	if w, h := r.CanvasSize(); w != 20 || h != 20 {
		t.Fatalf("canvas after resize = %vx%v", w, h)
	}
	if r.Scale() != 1 {
		t.Fatalf("scale after resize = %v", r.Scale())
	}
	r.Draw(list)
	if got := r.Pixel(10, 20); got != render.White {
		t.Fatalf("vertically centred disk pixel = %+v", got)
	}
}

func TestSurfaceKeepsCanvasAndLayoutFits(t *testing.T) {
	s, sim := newSimSurface(t)
	for _, size := range [][2]int{{80, 25}, {200, 50}, {60, 40}} {
		sim.SetSize(size[0], size[1])
		if err := sim.PostEvent(tcell.NewEventResize(size[0], size[1])); err != nil {
			t.Fatalf("post resize: %v", err)
		}
		s.PollEvents()

		w, h := s.Size()
		if w != 2400 || h != 480 {
			t.Fatalf("%dx%d: canvas = %vx%v, want 2400x480", size[0], size[1], w, h)
		}
		if s.raster.Cols() != size[0] || s.raster.Rows() != size[1] {
			t.Fatalf("raster not resized: %dx%d", s.raster.Cols(), s.raster.Rows())
		}
		if s.raster.Scale()*w > float64(size[0])+1e-9 || s.raster.Scale()*h > float64(size[1]*2)+1e-9 {
			t.Fatalf("%dx%d: scaled canvas exceeds terminal", size[0], size[1])
		}

		l := layout.Compute(w, h)
		if l.Spacing < 0 {
			t.Fatalf("%dx%d: spacing = %v", size[0], size[1], l.Spacing)
		}
		for i := 1; i < layout.ItemCount; i++ {
			if l.Items[i].Left() < l.Items[i-1].Right() {
				t.Fatalf("%dx%d: item %d overlaps item %d", size[0], size[1], i, i-1)
			}
		}
	}
}

func TestSurfaceCloseKey(t *testing.T) {
	s, sim := newSimSurface(t)
	s.PollEvents()
	if s.CloseRequested() {
		t.Fatalf("close requested before any key")
	}
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	s.PollEvents()
	if !s.CloseRequested() {
		t.Fatalf("escape should request close")
	}
}

func TestSurfaceRequestClose(t *testing.T) {
	s, _ := newSimSurface(t)
	s.RequestClose()
	if !s.CloseRequested() {
		t.Fatalf("RequestClose not observed")
	}
}

func TestSurfaceSubmitDrawsText(t *testing.T) {
	s, sim := newSimSurface(t)
	cols, rows := sim.Size()
	w, h := s.Size()

	list := render.NewDrawList(render.Black)
	list.Add(render.Text{Pos: render.Pt(w/2-10, h/2-10), Size: render.Pt(20, 20), Color: render.White, Text: "hi"})
	if err := s.Submit(list); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}

	cells, cw, _ := sim.GetContents()
	row := rows / 2
	found := false
	for col := 0; col < cols; col++ {
		c := cells[row*cw+col]
		if len(c.Runes) > 0 && c.Runes[0] == 'h' && col+1 < cols && cells[row*cw+col+1].Runes[0] == 'i' {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("text not found on row %d", row)
	}

	if err := s.Submit(nil); err == nil {
		t.Fatalf("expected error for nil draw list")
	}
}

func TestSurfaceCloseIsIdempotent(t *testing.T) {
	s, _ := newSimSurface(t)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestNewSurfaceRejectsFontSize(t *testing.T) {
	if _, err := NewSurface(tcell.NewSimulationScreen("UTF-8"), Options{CanvasWidth: 1, CanvasHeight: 1}, discardLogger()); err == nil {
		t.Fatalf("expected error for zero font size")
	}
	if _, err := NewSurface(tcell.NewSimulationScreen("UTF-8"), Options{FontSize: 32}, discardLogger()); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
}
