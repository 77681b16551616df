//go:build linux

package system

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func linkSpeedReader(context.Context) func(string) uint64 { return linkSpeedMbps }

// linkSpeedMbps reads /sys/class/net/<if>/speed. Virtual and down links
// report -1 or fail the read; both map to 0.
func linkSpeedMbps(name string) uint64 {
	raw, err := os.ReadFile(filepath.Join("/sys/class/net", name, "speed"))
	if err != nil {
		return 0
	}
	text := strings.TrimSpace(string(raw))
	if text == "" || strings.HasPrefix(text, "-") {
		return 0
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
