package node

import (
	"context"

	"hwgauge/internal/model"
)

func (r *NodeMetricsReader) readCPU(ctx context.Context) model.CPUMetrics {
	out := model.CPUMetrics{CorePercent: make([]float64, r.coreCount)}
	total, perCore, err := r.host.CPUPercent(ctx)
	if err != nil {
		r.logger.Debug("read cpu percent failed", "error", err)
		return out
	}
	out.TotalPercent = clampPercent(total)
	// the core list keeps the length fixed at start-up even if the OS
	// reports a different count later
	for i := 0; i < r.coreCount && i < len(perCore); i++ {
		out.CorePercent[i] = clampPercent(perCore[i])
	}
	return out
}
