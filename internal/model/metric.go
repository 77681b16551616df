package model

import "time"

// RawMetrics is one tick of absolute host readings plus the counter snapshot
// pairs the rate normalizer works on. Values are never partially populated:
// a failed query leaves its zero value or an unavailable marker.
type RawMetrics struct {
	Timestamp time.Time `json:"timestamp"`

	CPU    CPUMetrics    `json:"cpu"`
	Memory MemoryMetrics `json:"memory"`
	GPU    GPUMetrics    `json:"gpu"`
	Drive  DriveUsage    `json:"drive"`

	NetPrev  NetSnapshot  `json:"net_prev"`
	NetCur   NetSnapshot  `json:"net_cur"`
	DiskPrev DiskSnapshot `json:"disk_prev"`
	DiskCur  DiskSnapshot `json:"disk_cur"`
}

// CapacityBaseline holds the denominators used to turn rates into
// percentages. It is fixed for the lifetime of the process.
type CapacityBaseline struct {
	UploadMbps        float64 `json:"upload_mbps"`
	DownloadMbps      float64 `json:"download_mbps"`
	DiskRWCeilingMBps float64 `json:"disk_rw_ceiling_mbps"`
}
