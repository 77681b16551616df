package version

import (
	"runtime"
	"testing"

	"hwgauge/internal/config"
	"hwgauge/internal/model"
)

func TestGet(t *testing.T) {
	info := Get(config.Defaults(), model.GpuVendorAmd)
	if info.Version != config.HardcodedVersion {
		t.Fatalf("version = %q", info.Version)
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH || info.GoVersion == "" {
		t.Fatalf("runtime fields = %+v", info)
	}
	if info.GPU != model.GpuVendorAmd {
		t.Fatalf("gpu = %q", info.GPU)
	}
}
