package collector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"hwgauge/internal/layout"
	"hwgauge/internal/model"
	"hwgauge/internal/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string) render.Point {
	return render.Pt(float64(len([]rune(text)))*10, 20)
}

// fakeClock advances by step on every Now call and records sleeps.
type fakeClock struct {
	t      time.Time
	step   time.Duration
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}

type fakeSurface struct {
	closeAfter int
	polls      int
	submitted  []*render.DrawList
	presented  int
	submitErr  error
	closed     bool
}

func (s *fakeSurface) PollEvents() { s.polls++ }
func (s *fakeSurface) CloseRequested() bool {
	return s.closeAfter > 0 && s.polls >= s.closeAfter
}
func (s *fakeSurface) RequestClose()                 { s.closeAfter = 1 }
func (s *fakeSurface) Size() (float64, float64)      { return 2400, 480 }
func (s *fakeSurface) Measurer() render.TextMeasurer { return fixedMeasurer{} }
func (s *fakeSurface) Present() error                { s.presented++; return nil }
func (s *fakeSurface) Close() error                  { s.closed = true; return nil }
func (s *fakeSurface) Submit(list *render.DrawList) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, list)
	return nil
}

type fakeSampler struct {
	calls int
	raw   model.RawMetrics
}

func (f *fakeSampler) Collect(context.Context) (model.RawMetrics, error) {
	f.calls++
	return f.raw, nil
}

type recordingObserver struct {
	elapsed  []time.Duration
	overruns int
}

func (o *recordingObserver) ObserveFrame(d time.Duration, overrun bool) {
	o.elapsed = append(o.elapsed, d)
	if overrun {
		o.overruns++
	}
}

func TestSchedulerStopsAfterCloseRequest(t *testing.T) {
	surface := &fakeSurface{closeAfter: 3}
	sampler := &fakeSampler{}
	clock := &fakeClock{t: time.Unix(0, 0), step: 10 * time.Millisecond}
	obs := &recordingObserver{}
	s := NewScheduler(discardLogger(), sampler, surface, model.CapacityBaseline{}, 10, WithClock(clock), WithObserver(obs))

	if s.State() != StateStopped {
		t.Fatalf("initial state = %s", s.State())
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.State() != StateStopped {
		t.Fatalf("state after run = %s", s.State())
	}
	// the iteration that saw the close request still draws
	if sampler.calls != 3 || len(surface.submitted) != 3 || surface.presented != 3 {
		t.Fatalf("calls=%d submitted=%d presented=%d", sampler.calls, len(surface.submitted), surface.presented)
	}
	if len(clock.sleeps) != 2 {
		t.Fatalf("expected no sleep after the closing frame, got %v", clock.sleeps)
	}
	for _, d := range clock.sleeps {
		if d != 90*time.Millisecond {
			t.Fatalf("sleep = %v, want the remainder of the 100ms frame", d)
		}
	}
	if surface.closed {
		t.Fatalf("scheduler must leave releasing the surface to its owner")
	}
	if len(obs.elapsed) != 3 || obs.overruns != 0 {
		t.Fatalf("observer = %+v", obs)
	}
}

func TestSchedulerSkipsSleepOnOverrun(t *testing.T) {
	surface := &fakeSurface{closeAfter: 2}
	clock := &fakeClock{t: time.Unix(0, 0), step: 150 * time.Millisecond}
	obs := &recordingObserver{}
	s := NewScheduler(discardLogger(), &fakeSampler{}, surface, model.CapacityBaseline{}, 10, WithClock(clock), WithObserver(obs))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("overrunning frames should not sleep: %v", clock.sleeps)
	}
	if obs.overruns != 2 {
		t.Fatalf("overruns = %d", obs.overruns)
	}
}

func TestSchedulerObservesCancellationAtTop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sampler := &fakeSampler{}
	s := NewScheduler(discardLogger(), sampler, &fakeSurface{}, model.CapacityBaseline{}, 10, WithClock(&fakeClock{}))
	if err := s.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sampler.calls != 0 {
		t.Fatalf("cancelled loop should not sample, got %d calls", sampler.calls)
	}
}

func TestSchedulerReturnsSubmitError(t *testing.T) {
	surface := &fakeSurface{submitErr: errors.New("terminal gone")}
	s := NewScheduler(discardLogger(), &fakeSampler{}, surface, model.CapacityBaseline{}, 10, WithClock(&fakeClock{}))
	err := s.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "submit frame") {
		t.Fatalf("run error = %v", err)
	}
	if s.State() != StateStopped {
		t.Fatalf("state after error = %s", s.State())
	}
}

func TestFrameDuration(t *testing.T) {
	s := NewScheduler(discardLogger(), &fakeSampler{}, &fakeSurface{}, model.CapacityBaseline{}, 20)
	if s.FrameDuration() != 50*time.Millisecond {
		t.Fatalf("frame duration = %v", s.FrameDuration())
	}
}

func labels(list *render.DrawList) []string {
	var out []string
	for _, p := range list.Items {
		if txt, ok := p.(render.Text); ok {
			out = append(out, txt.Text)
		}
	}
	return out
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func sampleRaw() model.RawMetrics {
	t0 := time.Unix(1700000000, 0)
	return model.RawMetrics{
		CPU:      model.CPUMetrics{TotalPercent: 37.9, CorePercent: []float64{10, 20, 30, 40}},
		Memory:   model.MemoryMetrics{UsedBytes: 8 << 30, TotalBytes: 16 << 30, UsagePercent: 50},
		GPU:      model.GPUMetrics{UtilPercent: 5, MemoryUsedBytes: 512 << 20, MemoryTotalBytes: 8192 << 20, MemoryUtilPercent: 6.25},
		Drive:    model.DriveUsage{Drive: "C:", Available: true, UsedBytes: 100 << 30, TotalBytes: 400 << 30, UsagePercent: 25},
		NetPrev:  model.NetSnapshot{BytesSent: 1000, BytesRecv: 2000, Timestamp: t0},
		NetCur:   model.NetSnapshot{BytesSent: 3000, BytesRecv: 2200, Timestamp: t0.Add(time.Second)},
		DiskPrev: model.DiskSnapshot{Timestamp: t0},
		DiskCur:  model.DiskSnapshot{BytesRead: 10 << 20, BytesWritten: 20 << 20, Timestamp: t0.Add(time.Second)},
	}
}

func TestComposeFrameText(t *testing.T) {
	base := model.CapacityBaseline{UploadMbps: 100, DownloadMbps: 100, DiskRWCeilingMBps: 1000}
	list := Compose(Normalize(sampleRaw(), base), layout.Compute(2400, 480), fixedMeasurer{})
	if list.Clear != render.Black {
		t.Fatalf("clear colour = %+v", list.Clear)
	}
	got := labels(list)
	for _, want := range []string{
		"37%", "CPU / RAM", "8.0/16.0 GB",
		"GPU / VRAM", "512/8192 MB",
		"Network", "U: 0.0", "D: 0.0",
		"Disk (C:)", "100.0/400.0 GB", "R: 10.0", "W: 20.0",
	} {
		if !contains(got, want) {
			t.Fatalf("missing %q in frame text %q", want, got)
		}
	}
	cells := 0
	for _, p := range list.Items {
		if _, ok := p.(render.FilledRect); ok {
			cells++
		}
	}
	if cells != 4 {
		t.Fatalf("core grid cells = %d", cells)
	}
}

func TestComposeOmitsUnavailableDrive(t *testing.T) {
	raw := sampleRaw()
	raw.Drive = model.DriveUsage{Drive: "Z:"}
	list := Compose(Normalize(raw, model.CapacityBaseline{}), layout.Compute(2400, 480), fixedMeasurer{})
	for _, txt := range labels(list) {
		if strings.HasPrefix(txt, "Disk") || strings.HasPrefix(txt, "R:") {
			t.Fatalf("disk gauge should be omitted, found %q", txt)
		}
	}
	if !contains(labels(list), "Network") {
		t.Fatalf("other gauges should still be drawn")
	}
}
