package model

type GpuVendor string

const (
	GpuVendorNvidia GpuVendor = "nvidia"
	GpuVendorAmd    GpuVendor = "amd"
)

// GPUMetrics is all zero when no GPU management capability is present or the
// vendor query failed on this tick.
type GPUMetrics struct {
	UtilPercent       float64 `json:"util_percent"`
	MemoryUsedBytes   uint64  `json:"memory_used_bytes"`
	MemoryTotalBytes  uint64  `json:"memory_total_bytes"`
	MemoryUtilPercent float64 `json:"memory_util_percent"`
}
