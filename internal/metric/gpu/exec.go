package gpu

import (
	"context"
	"os/exec"

	"hwgauge/internal/model"
)

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func toolFor(v model.GpuVendor) string {
	switch v {
	case model.GpuVendorNvidia:
		return "nvidia-smi"
	case model.GpuVendorAmd:
		return "rocm-smi"
	default:
		return ""
	}
}
