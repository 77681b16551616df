package version

import (
	"runtime"
	"runtime/debug"

	"hwgauge/internal/config"
	"hwgauge/internal/model"
)

type Info struct {
	Version   string          `json:"version"`
	GoVersion string          `json:"go_version"`
	OS        string          `json:"os"`
	Arch      string          `json:"arch"`
	Revision  string          `json:"revision,omitempty"`
	GPU       model.GpuVendor `json:"gpu,omitempty"`
}

// Get describes the running binary. gpu is the detected vendor, empty when
// no management capability is present.
func Get(cfg config.Config, gpu model.GpuVendor) Info {
	info := Info{
		Version:   cfg.Version,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GPU:       gpu,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Revision = s.Value
			}
		}
	}
	return info
}
