package model

import "time"

// NetSnapshot captures cumulative network byte counters at one instant.
type NetSnapshot struct {
	BytesSent uint64    `json:"bytes_sent"`
	BytesRecv uint64    `json:"bytes_recv"`
	Timestamp time.Time `json:"timestamp"`
}

type NetRates struct {
	UploadMbps      float64 `json:"upload_mbps"`
	DownloadMbps    float64 `json:"download_mbps"`
	UploadPercent   float64 `json:"upload_percent"`
	DownloadPercent float64 `json:"download_percent"`
}
