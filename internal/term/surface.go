package term

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"hwgauge/internal/render"
)

type Options struct {
	// CanvasWidth and CanvasHeight are the drawing canvas. It is refitted into
	// the terminal on every resize and letterboxed on the loose axis.
	CanvasWidth  float64
	CanvasHeight float64
	// FontSize is the nominal text height in canvas units.
	FontSize float64
}

// Surface implements render.Surface on a tcell screen.
type Surface struct {
	screen tcell.Screen
	logger *slog.Logger
	raster *Raster
	font   float64

	closeRequested atomic.Bool
	closeOnce      sync.Once
}

var _ render.Surface = (*Surface)(nil)

// Open takes over the controlling terminal.
func Open(opts Options, logger *slog.Logger) (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	return NewSurface(screen, opts, logger)
}

// NewSurface initialises screen and fits the configured canvas into it.
func NewSurface(screen tcell.Screen, opts Options, logger *slog.Logger) (*Surface, error) {
	if opts.FontSize <= 0 {
		return nil, fmt.Errorf("font size must be > 0")
	}
	if opts.CanvasWidth <= 0 || opts.CanvasHeight <= 0 {
		return nil, fmt.Errorf("canvas size must be > 0")
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		screen.Fini()
		return nil, fmt.Errorf("terminal reports size %dx%d", cols, rows)
	}
	screen.HideCursor()
	screen.Clear()

	s := &Surface{
		screen: screen,
		logger: logger,
		raster: NewRaster(cols, rows, opts.CanvasWidth, opts.CanvasHeight),
		font:   opts.FontSize,
	}
	logger.Info("terminal surface ready", "cols", cols, "rows", rows, "scale", s.raster.Scale())
	return s, nil
}

// PollEvents drains queued events without blocking.
func (s *Surface) PollEvents() {
	for s.screen.HasPendingEvent() {
		switch ev := s.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if isCloseKey(ev) {
				s.RequestClose()
			}
		case *tcell.EventResize:
			cols, rows := ev.Size()
			s.raster.Resize(cols, rows)
			s.screen.Sync()
			s.logger.Debug("terminal resized", "cols", cols, "rows", rows, "scale", s.raster.Scale())
		case nil:
			return
		}
	}
}

func isCloseKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (s *Surface) CloseRequested() bool { return s.closeRequested.Load() }

func (s *Surface) RequestClose() { s.closeRequested.Store(true) }

func (s *Surface) Size() (float64, float64) { return s.raster.CanvasSize() }

func (s *Surface) Measurer() render.TextMeasurer { return FontMeasurer{Size: s.font} }

func (s *Surface) Submit(list *render.DrawList) error {
	if list == nil {
		return fmt.Errorf("nil draw list")
	}
	s.raster.Draw(list)
	for row := 0; row < s.raster.Rows(); row++ {
		for col := 0; col < s.raster.Cols(); col++ {
			c := s.raster.Cell(col, row)
			style := tcell.StyleDefault.Foreground(toTcell(c.Fg)).Background(toTcell(c.Bg))
			s.screen.SetContent(col, row, c.Rune, nil, style)
		}
	}
	return nil
}

func (s *Surface) Present() error {
	s.screen.Show()
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (s *Surface) Close() error {
	s.closeOnce.Do(func() {
		s.screen.Fini()
	})
	return nil
}

func toTcell(c render.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(math.Round(v * 255))
}
