package node

import "math"

const bytesPerMiB = 1024 * 1024

func deltaCounter(cur, prev uint64) uint64 {
	if cur < prev {
		// counter reset or interface restart
		return 0
	}
	return cur - prev
}

func clampPercent(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func percentOf(value, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return clampPercent((float64(value) / float64(total)) * 100)
}

// ratePercent is not clamped; a rate above its baseline reads over 100.
func ratePercent(rate, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return rate / capacity * 100
}
