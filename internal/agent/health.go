package agent

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FrameStats records frame-loop timing in a private Prometheus registry. It
// is never exposed over the network; the health loop logs Snapshot.
type FrameStats struct {
	registry  *prometheus.Registry
	frames    prometheus.Counter
	overruns  prometheus.Counter
	duration  prometheus.Histogram
	gpu       prometheus.Gauge
	libvirtUp prometheus.Gauge
	startedAt time.Time
}

func NewFrameStats(frameBudget time.Duration) *FrameStats {
	budget := frameBudget.Seconds()
	if budget <= 0 {
		budget = 0.1
	}
	s := &FrameStats{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hwgauge",
			Name:      "frames_total",
			Help:      "Frames drawn.",
		}),
		overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hwgauge",
			Name:      "frame_overruns_total",
			Help:      "Frames that took the whole frame budget or longer.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hwgauge",
			Name:      "frame_duration_seconds",
			Help:      "Time spent sampling and drawing one frame.",
			Buckets:   []float64{budget / 8, budget / 4, budget / 2, budget, budget * 2},
		}),
		gpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hwgauge",
			Name:      "gpu_available",
			Help:      "1 when a GPU management capability is present.",
		}),
		libvirtUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hwgauge",
			Name:      "libvirt_connected",
			Help:      "1 while the libvirt memory fallback is connected.",
		}),
		startedAt: time.Now(),
	}
	s.registry.MustRegister(s.frames, s.overruns, s.duration, s.gpu, s.libvirtUp)
	return s
}

// ObserveFrame satisfies collector.FrameObserver.
func (s *FrameStats) ObserveFrame(elapsed time.Duration, overrun bool) {
	s.frames.Inc()
	if overrun {
		s.overruns.Inc()
	}
	s.duration.Observe(elapsed.Seconds())
}

func (s *FrameStats) SetGPUAvailable(ok bool) { s.gpu.Set(boolGauge(ok)) }

func (s *FrameStats) SetLibvirtConnected(ok bool) { s.libvirtUp.Set(boolGauge(ok)) }

// Snapshot flattens the registry into loggable key/values. Histograms are
// reported as count and mean.
func (s *FrameStats) Snapshot() map[string]any {
	out := map[string]any{
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	}
	families, err := s.registry.Gather()
	if err != nil {
		out["gather_error"] = err.Error()
		return out
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				out[name+"_count"] = h.GetSampleCount()
				if h.GetSampleCount() > 0 {
					mean := h.GetSampleSum() / float64(h.GetSampleCount())
					out[name+"_mean"] = time.Duration(mean * float64(time.Second)).String()
				}
			}
		}
	}
	return out
}

func boolGauge(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
