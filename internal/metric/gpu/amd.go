package gpu

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hwgauge/internal/model"
)

type amdDevice struct {
	run runner
}

func newAmdDevice(run runner) *amdDevice {
	return &amdDevice{run: run}
}

func (d *amdDevice) Vendor() model.GpuVendor { return model.GpuVendorAmd }
func (d *amdDevice) Close() error            { return nil }

func (d *amdDevice) Query(ctx context.Context) (model.GPUMetrics, error) {
	out, err := d.run(ctx, "rocm-smi", "--showuse", "--showmeminfo", "vram", "--json")
	if err != nil {
		return model.GPUMetrics{}, fmt.Errorf("rocm-smi query: %w", err)
	}
	return parseRocmJSON(out)
}

// parseRocmJSON reads the first card of rocm-smi --json output. Memory
// figures are reported in bytes.
func parseRocmJSON(raw []byte) (model.GPUMetrics, error) {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return model.GPUMetrics{}, fmt.Errorf("parse rocm-smi json: %w", err)
	}
	cards := make([]string, 0, len(decoded))
	for key := range decoded {
		if strings.HasPrefix(strings.ToLower(key), "card") {
			cards = append(cards, key)
		}
	}
	if len(cards) == 0 {
		return model.GPUMetrics{}, fmt.Errorf("parse rocm-smi json: no cards")
	}
	sort.Strings(cards)
	obj, ok := decoded[cards[0]].(map[string]any)
	if !ok {
		return model.GPUMetrics{}, fmt.Errorf("parse rocm-smi json: %s is not an object", cards[0])
	}
	return model.GPUMetrics{
		UtilPercent:      findFloatByContains(obj, "gpu use"),
		MemoryUsedBytes:  uint64(findFloatByContains(obj, "vram total used memory")),
		MemoryTotalBytes: uint64(findFloatByContains(obj, "vram total memory")),
	}, nil
}

func findFloatByContains(m map[string]any, needle string) float64 {
	for k, v := range m {
		if !strings.Contains(strings.ToLower(k), needle) {
			continue
		}
		switch typed := v.(type) {
		case float64:
			return typed
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
			if err == nil {
				return f
			}
		}
	}
	return 0
}
