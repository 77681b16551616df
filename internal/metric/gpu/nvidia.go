package gpu

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"hwgauge/internal/model"
)

type nvidiaDevice struct {
	run   runner
	index int
}

func newNvidiaDevice(run runner, index int) *nvidiaDevice {
	return &nvidiaDevice{run: run, index: index}
}

func (d *nvidiaDevice) Vendor() model.GpuVendor { return model.GpuVendorNvidia }

// nvidia-smi is stateless; there is no session to shut down.
func (d *nvidiaDevice) Close() error { return nil }

func (d *nvidiaDevice) Query(ctx context.Context) (model.GPUMetrics, error) {
	out, err := d.run(ctx, "nvidia-smi",
		"--id="+strconv.Itoa(d.index),
		"--query-gpu=utilization.gpu,memory.used,memory.total",
		"--format=csv,noheader,nounits",
	)
	if err != nil {
		return model.GPUMetrics{}, fmt.Errorf("nvidia-smi query: %w", err)
	}
	return parseNvidiaCSV(out)
}

func parseNvidiaCSV(raw []byte) (model.GPUMetrics, error) {
	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return model.GPUMetrics{}, fmt.Errorf("parse nvidia-smi csv: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) < 3 {
		return model.GPUMetrics{}, fmt.Errorf("parse nvidia-smi csv: unexpected output %q", strings.TrimSpace(string(raw)))
	}
	row := rows[0]
	util, err := parseFloatField(row[0])
	if err != nil {
		return model.GPUMetrics{}, fmt.Errorf("utilization.gpu: %w", err)
	}
	used, err := parseFloatField(row[1])
	if err != nil {
		return model.GPUMetrics{}, fmt.Errorf("memory.used: %w", err)
	}
	total, err := parseFloatField(row[2])
	if err != nil {
		return model.GPUMetrics{}, fmt.Errorf("memory.total: %w", err)
	}
	return model.GPUMetrics{
		UtilPercent:      util,
		MemoryUsedBytes:  mibToBytes(used),
		MemoryTotalBytes: mibToBytes(total),
	}, nil
}

func parseFloatField(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "", "n/a", "[not supported]", "not supported", "[n/a]":
		return 0, fmt.Errorf("value not available")
	}
	v = strings.TrimSuffix(v, "%")
	v = strings.TrimSuffix(v, " MiB")
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

func mibToBytes(v float64) uint64 {
	if v <= 0 {
		return 0
	}
	return uint64(v * 1024 * 1024)
}
