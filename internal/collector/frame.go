package collector

import (
	"fmt"

	"hwgauge/internal/gauge"
	"hwgauge/internal/layout"
	"hwgauge/internal/metric/node"
	"hwgauge/internal/model"
	"hwgauge/internal/render"
)

const (
	bytesPerMiB = 1024 * 1024
	bytesPerGiB = 1024 * 1024 * 1024
)

// Snapshot is one tick after rate normalization.
type Snapshot struct {
	Raw  model.RawMetrics
	Net  model.NetRates
	Disk model.DiskRates
}

func Normalize(raw model.RawMetrics, base model.CapacityBaseline) Snapshot {
	return Snapshot{
		Raw:  raw,
		Net:  node.NetworkRates(raw.NetPrev, raw.NetCur, base),
		Disk: node.DiskRates(raw.DiskPrev, raw.DiskCur, base),
	}
}

// Compose builds the draw list for one frame. The disk gauge is left out
// while the monitored drive is unavailable.
func Compose(snap Snapshot, lay layout.Layout, m render.TextMeasurer) *render.DrawList {
	list := render.NewDrawList(render.Black)
	raw := snap.Raw

	ramText := fmt.Sprintf("%.1f/%.1f GB", gib(raw.Memory.UsedBytes), gib(raw.Memory.TotalBytes))
	vramText := fmt.Sprintf("%.0f/%.0f MB", mib(raw.GPU.MemoryUsedBytes), mib(raw.GPU.MemoryTotalBytes))

	list.Add(gauge.Combo(gauge.Spec{
		Center:       lay.GaugeCenter(layout.ItemCPU),
		Radius:       lay.Radius,
		OuterPercent: raw.CPU.TotalPercent,
		InnerPercent: raw.Memory.UsagePercent,
		Label:        "CPU / RAM",
		Subtext:      ramText,
	}, m)...)
	list.Add(gauge.CoreGrid(gauge.CoreGridSpec{
		Usages: raw.CPU.CorePercent,
		Box:    lay.GridBox,
	})...)

	list.Add(gauge.Combo(gauge.Spec{
		Center:       lay.GaugeCenter(layout.ItemGPU),
		Radius:       lay.Radius,
		OuterPercent: raw.GPU.UtilPercent,
		InnerPercent: raw.GPU.MemoryUtilPercent,
		Label:        "GPU / VRAM",
		Subtext:      vramText,
	}, m)...)

	list.Add(gauge.Split(gauge.SplitSpec{
		Center:        lay.GaugeCenter(layout.ItemNetwork),
		Radius:        lay.Radius,
		LeftPercent:   snap.Net.UploadPercent,
		RightPercent:  snap.Net.DownloadPercent,
		Label:         "Network",
		TopReadout:    fmt.Sprintf("U: %.1f", snap.Net.UploadMbps),
		BottomReadout: fmt.Sprintf("D: %.1f", snap.Net.DownloadMbps),
	}, m)...)

	if raw.Drive.Available {
		list.Add(gauge.Split(gauge.SplitSpec{
			Center:        lay.GaugeCenter(layout.ItemDisk),
			Radius:        lay.Radius,
			LeftPercent:   snap.Disk.WritePercent,
			RightPercent:  snap.Disk.ReadPercent,
			InnerPercent:  raw.Drive.UsagePercent,
			Label:         fmt.Sprintf("Disk (%s)", raw.Drive.Drive),
			Subtext:       fmt.Sprintf("%.1f/%.1f GB", gib(raw.Drive.UsedBytes), gib(raw.Drive.TotalBytes)),
			TopReadout:    fmt.Sprintf("R: %.1f", snap.Disk.ReadMBps),
			BottomReadout: fmt.Sprintf("W: %.1f", snap.Disk.WriteMBps),
		}, m)...)
	}
	return list
}

func gib(b uint64) float64 { return float64(b) / bytesPerGiB }

func mib(b uint64) float64 { return float64(b) / bytesPerMiB }
