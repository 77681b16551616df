// Package gpu models GPU management as a capability that is either Absent or
// Present. It is decided once at start-up; callers dispatch on the interface
// instead of checking for a nil handle.
package gpu

import (
	"context"
	"log/slog"
	"time"

	"hwgauge/internal/model"
)

// Capability reports GPU load and memory for the first device.
type Capability interface {
	Available() bool
	Vendor() model.GpuVendor
	// Read queries the device. Callers treat an error as a zero reading for
	// the current tick only.
	Read(ctx context.Context) (model.GPUMetrics, error)
	Close() error
}

// Device is a vendor management handle.
type Device interface {
	Vendor() model.GpuVendor
	Query(ctx context.Context) (model.GPUMetrics, error)
	Close() error
}

// Absent reports zero for every metric and never fails.
type Absent struct{}

func (Absent) Available() bool         { return false }
func (Absent) Vendor() model.GpuVendor { return "" }
func (Absent) Close() error            { return nil }
func (Absent) Read(context.Context) (model.GPUMetrics, error) {
	return model.GPUMetrics{}, nil
}

// Present wraps an acquired device handle.
type Present struct {
	dev     Device
	timeout time.Duration
}

func NewPresent(dev Device, timeout time.Duration) *Present {
	return &Present{dev: dev, timeout: timeout}
}

func (p *Present) Available() bool         { return true }
func (p *Present) Vendor() model.GpuVendor { return p.dev.Vendor() }
func (p *Present) Close() error            { return p.dev.Close() }

func (p *Present) Read(ctx context.Context) (model.GPUMetrics, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	m, err := p.dev.Query(ctx)
	if err != nil {
		return model.GPUMetrics{}, err
	}
	if m.MemoryTotalBytes > 0 {
		m.MemoryUtilPercent = float64(m.MemoryUsedBytes) / float64(m.MemoryTotalBytes) * 100
	}
	return m, nil
}

// Detect probes the vendor tools in order and returns Present for the first
// one that answers a query, or Absent. It is called once at start-up.
func Detect(ctx context.Context, timeout time.Duration, logger *slog.Logger) Capability {
	return detect(ctx, timeout, logger, execRunner, lookPath)
}

func detect(ctx context.Context, timeout time.Duration, logger *slog.Logger, run runner, look func(string) bool) Capability {
	probes := []Device{
		newNvidiaDevice(run, 0),
		newAmdDevice(run),
	}
	for _, dev := range probes {
		if !look(toolFor(dev.Vendor())) {
			continue
		}
		p := NewPresent(dev, timeout)
		if _, err := p.Read(ctx); err != nil {
			logger.Info("gpu management tool present but query failed", "vendor", dev.Vendor(), "error", err)
			continue
		}
		logger.Info("gpu management initialised", "vendor", dev.Vendor())
		return p
	}
	logger.Info("no gpu management capability found, gpu metrics disabled")
	return Absent{}
}
