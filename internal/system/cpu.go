package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

func (h *HostOS) LogicalCPUs(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("count logical cpus: %w", err)
	}
	return n, nil
}

// CPUPercent reports load since the previous call (interval 0), so the first
// call after start-up is not meaningful.
func (h *HostOS) CPUPercent(ctx context.Context) (float64, []float64, error) {
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, nil, fmt.Errorf("cpu percent: %w", err)
	}
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return 0, nil, fmt.Errorf("per-core cpu percent: %w", err)
	}
	if len(total) == 0 {
		return 0, perCore, fmt.Errorf("cpu percent: empty result")
	}
	return total[0], perCore, nil
}
