package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hwgauge/internal/collector"
	"hwgauge/internal/config"
	"hwgauge/internal/libvirt"
	"hwgauge/internal/metric/gpu"
	"hwgauge/internal/metric/node"
	"hwgauge/internal/model"
	"hwgauge/internal/render"
	"hwgauge/internal/system"
)

const (
	libvirtRetryWait   = 500 * time.Millisecond
	libvirtMaxJitter   = 250 * time.Millisecond
	libvirtMaxAttempts = 3
)

type Agent struct {
	cfg       config.Config
	logger    *slog.Logger
	sessionID string
	surface   render.Surface
	reader    *node.NodeMetricsReader
	conn      *libvirt.ConnManager
	scheduler *collector.Scheduler
	stats     *FrameStats
	baseline  model.CapacityBaseline
	notify    signalNotifier
}

type options struct {
	host   system.Host
	gpu    gpu.Capability
	clock  collector.Clock
	notify signalNotifier
}

type Option func(*options)

func WithHost(h system.Host) Option {
	return func(o *options) { o.host = h }
}

// WithGPU skips vendor detection.
func WithGPU(c gpu.Capability) Option {
	return func(o *options) { o.gpu = c }
}

func WithClock(c collector.Clock) Option {
	return func(o *options) { o.clock = c }
}

func withSignalNotifier(n signalNotifier) Option {
	return func(o *options) { o.notify = n }
}

// New wires the sampler, frame loop and optional libvirt fallback around an
// already opened surface. The agent takes ownership of the surface and
// closes it at shutdown.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, surface render.Surface, opts ...Option) (*Agent, error) {
	if surface == nil {
		return nil, fmt.Errorf("draw surface is required")
	}
	o := options{notify: osSignals}
	for _, opt := range opts {
		opt(&o)
	}
	if o.host == nil {
		o.host = system.NewHost()
	}
	if o.gpu == nil {
		o.gpu = gpu.Detect(ctx, cfg.GPUQueryTimeout, logger)
	}

	sessionID := uuid.NewString()
	logger = logger.With("session_id", sessionID)
	logger.Info("starting hwgauge", "version", cfg.Version, "refresh_hz", cfg.RefreshHz, "drive", cfg.Drive, "config_path", cfg.ConfigPath)

	stats := NewFrameStats(cfg.FrameDuration())
	stats.SetGPUAvailable(o.gpu.Available())

	var readerOpts []node.Option
	var conn *libvirt.ConnManager
	if cfg.LibvirtURI != "" {
		conn = libvirt.NewConnManager(cfg.LibvirtURI, libvirtRetryWait, libvirtMaxJitter, libvirtMaxAttempts, cfg.HealthInterval, logger)
		readerOpts = append(readerOpts, node.WithMemoryFallback(conn))
	}

	reader := node.NewNodeMetricsReader(o.host, o.gpu, cfg.Drive, logger, readerOpts...)
	reader.Prime(ctx)
	base := node.ProbeBaseline(ctx, o.host, cfg.DiskCeilingMBps, logger)

	schedOpts := []collector.Option{collector.WithObserver(stats)}
	if o.clock != nil {
		schedOpts = append(schedOpts, collector.WithClock(o.clock))
	}
	scheduler := collector.NewScheduler(logger, reader, surface, base, cfg.RefreshHz, schedOpts...)

	return &Agent{
		cfg:       cfg,
		logger:    logger,
		sessionID: sessionID,
		surface:   surface,
		reader:    reader,
		conn:      conn,
		scheduler: scheduler,
		stats:     stats,
		baseline:  base,
		notify:    o.notify,
	}, nil
}

func (a *Agent) SessionID() string { return a.sessionID }

func (a *Agent) Stats() *FrameStats { return a.stats }

func (a *Agent) Baseline() model.CapacityBaseline { return a.baseline }
