// Package node samples the local host once per tick and turns cumulative
// counters into rates against a fixed capacity baseline.
package node

import (
	"context"
	"log/slog"
	"time"

	"hwgauge/internal/metric/gpu"
	"hwgauge/internal/model"
	"hwgauge/internal/system"
)

// NodeMetricsReader owns the previous/current counter snapshots. It is not
// safe for concurrent use; the frame loop is its only caller.
type NodeMetricsReader struct {
	host        system.Host
	gpu         gpu.Capability
	memFallback MemoryFallback
	drive       string
	logger      *slog.Logger
	now         func() time.Time

	coreCount int

	netPrev, netCur   model.NetSnapshot
	diskPrev, diskCur model.DiskSnapshot
}

type Option func(*NodeMetricsReader)

// WithMemoryFallback sets a secondary memory source, used when the OS query
// fails.
func WithMemoryFallback(fb MemoryFallback) Option {
	return func(r *NodeMetricsReader) { r.memFallback = fb }
}

func WithClock(now func() time.Time) Option {
	return func(r *NodeMetricsReader) { r.now = now }
}

func NewNodeMetricsReader(host system.Host, capability gpu.Capability, drive string, logger *slog.Logger, opts ...Option) *NodeMetricsReader {
	if capability == nil {
		capability = gpu.Absent{}
	}
	r := &NodeMetricsReader{
		host:   host,
		gpu:    capability,
		drive:  drive,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prime fixes the per-core count, takes the initial counter snapshots and
// discards the first CPU reading, which has no prior interval.
func (r *NodeMetricsReader) Prime(ctx context.Context) {
	n, err := r.host.LogicalCPUs(ctx)
	if err != nil {
		r.logger.Warn("count logical cpus failed", "error", err)
	}
	if n < 0 {
		n = 0
	}
	r.coreCount = n
	if _, _, err := r.host.CPUPercent(ctx); err != nil {
		r.logger.Debug("prime cpu percent failed", "error", err)
	}
	r.netCur = r.readNetSnapshot(ctx)
	r.diskCur = r.readDiskSnapshot(ctx)
	r.netPrev, r.diskPrev = r.netCur, r.diskCur
}

func (r *NodeMetricsReader) CoreCount() int { return r.coreCount }

func (r *NodeMetricsReader) GPU() gpu.Capability { return r.gpu }

// Collect reads one tick. Individual query failures never fail the call;
// they leave zero values or an unavailable drive. The only error returned is
// the context's.
func (r *NodeMetricsReader) Collect(ctx context.Context) (model.RawMetrics, error) {
	if err := ctx.Err(); err != nil {
		return model.RawMetrics{}, err
	}
	out := model.RawMetrics{
		Timestamp: r.now(),
		CPU:       r.readCPU(ctx),
		Memory:    r.readMemory(ctx),
		GPU:       r.readGPU(ctx),
		Drive:     r.readDrive(ctx),
	}

	r.netPrev, r.netCur = r.netCur, r.readNetSnapshot(ctx)
	r.diskPrev, r.diskCur = r.diskCur, r.readDiskSnapshot(ctx)
	out.NetPrev, out.NetCur = r.netPrev, r.netCur
	out.DiskPrev, out.DiskCur = r.diskPrev, r.diskCur
	return out, nil
}

func (r *NodeMetricsReader) readGPU(ctx context.Context) model.GPUMetrics {
	m, err := r.gpu.Read(ctx)
	if err != nil {
		r.logger.Debug("gpu query failed", "vendor", r.gpu.Vendor(), "error", err)
		return model.GPUMetrics{}
	}
	m.UtilPercent = clampPercent(m.UtilPercent)
	m.MemoryUtilPercent = clampPercent(m.MemoryUtilPercent)
	return m
}

// Close releases the GPU capability.
func (r *NodeMetricsReader) Close() error {
	return r.gpu.Close()
}
