package model

import "time"

// DiskSnapshot captures cumulative disk I/O byte counters at one instant.
type DiskSnapshot struct {
	BytesRead    uint64    `json:"bytes_read"`
	BytesWritten uint64    `json:"bytes_written"`
	Timestamp    time.Time `json:"timestamp"`
}

// DiskRates is derived from a DiskSnapshot pair. Percentages are relative to
// the configured ceiling and are not clamped.
type DiskRates struct {
	ReadMBps     float64 `json:"read_mbps"`
	WriteMBps    float64 `json:"write_mbps"`
	ReadPercent  float64 `json:"read_percent"`
	WritePercent float64 `json:"write_percent"`
}

// DriveUsage reports space usage for the monitored drive. Available is false
// when the drive does not exist or could not be queried on this tick.
type DriveUsage struct {
	Drive        string  `json:"drive"`
	Available    bool    `json:"available"`
	UsedBytes    uint64  `json:"used_bytes"`
	TotalBytes   uint64  `json:"total_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}
