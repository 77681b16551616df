package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemoryInfo is the host view of RAM. UsedPercent is computed by the OS
// layer from available memory, so it can differ from UsedBytes/TotalBytes.
type MemoryInfo struct {
	TotalBytes  uint64
	UsedBytes   uint64
	UsedPercent float64
}

func (h *HostOS) Memory(ctx context.Context) (MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, fmt.Errorf("virtual memory: %w", err)
	}
	if vm.Total == 0 {
		return MemoryInfo{}, fmt.Errorf("virtual memory: total is zero")
	}
	return MemoryInfo{
		TotalBytes:  vm.Total,
		UsedBytes:   vm.Used,
		UsedPercent: vm.UsedPercent,
	}, nil
}
