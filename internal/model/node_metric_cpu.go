package model

type CPUMetrics struct {
	TotalPercent float64   `json:"total_percent"`
	CorePercent  []float64 `json:"core_percent"`
}
