package libvirt

import (
	"context"
	"fmt"
	"strings"

	golibvirt "github.com/digitalocean/go-libvirt"
)

// allCells asks libvirt for totals across every NUMA cell.
const allCells = -1

// MemoryUsage reports host memory as seen by the hypervisor. The first call
// asks for the parameter count, the second fetches that many values.
func (m *ConnManager) MemoryUsage(ctx context.Context) (used, total uint64, err error) {
	client, err := m.Client(ctx)
	if err != nil {
		return 0, 0, err
	}
	_, nparams, err := client.NodeGetMemoryStats(0, allCells, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("NodeGetMemoryStats count: %w", err)
	}
	if nparams <= 0 {
		return 0, 0, fmt.Errorf("empty node memory stats")
	}
	stats, _, err := client.NodeGetMemoryStats(nparams, allCells, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("NodeGetMemoryStats: %w", err)
	}
	return usageFromStats(stats)
}

// usageFromStats converts the KiB fields libvirt reports into used/total
// bytes, counting buffers and page cache as free.
func usageFromStats(stats []golibvirt.NodeGetMemoryStats) (uint64, uint64, error) {
	if len(stats) == 0 {
		return 0, 0, fmt.Errorf("empty node memory stats")
	}
	vals := map[string]uint64{}
	for _, st := range stats {
		vals[strings.ToLower(st.Field)] = st.Value
	}
	total := vals["total"] * 1024
	free := vals["free"] * 1024
	buffers := vals["buffers"] * 1024
	cached := vals["cached"] * 1024
	if total == 0 {
		return 0, 0, fmt.Errorf("total memory is zero")
	}
	used := total
	if free+buffers+cached <= total {
		used = total - free - buffers - cached
	}
	return used, total, nil
}
