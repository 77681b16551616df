package node

import (
	"context"

	"hwgauge/internal/model"
)

// MemoryFallback supplies host memory when the OS query fails.
type MemoryFallback interface {
	MemoryUsage(ctx context.Context) (used, total uint64, err error)
}

func (r *NodeMetricsReader) readMemory(ctx context.Context) model.MemoryMetrics {
	info, err := r.host.Memory(ctx)
	if err == nil {
		return model.MemoryMetrics{
			UsedBytes:    info.UsedBytes,
			TotalBytes:   info.TotalBytes,
			UsagePercent: clampPercent(info.UsedPercent),
		}
	}
	if r.memFallback == nil {
		r.logger.Debug("read memory failed", "error", err)
		return model.MemoryMetrics{}
	}
	used, total, fbErr := r.memFallback.MemoryUsage(ctx)
	if fbErr != nil {
		r.logger.Debug("read memory failed", "error", err, "fallback_error", fbErr)
		return model.MemoryMetrics{}
	}
	return model.MemoryMetrics{
		UsedBytes:    used,
		TotalBytes:   total,
		UsagePercent: percentOf(used, total),
	}
}
