package node

import (
	"context"
	"log/slog"

	"hwgauge/internal/model"
	"hwgauge/internal/system"
)

// DefaultLinkSpeedMbps is assumed when no interface reports a link speed.
const DefaultLinkSpeedMbps = 100.0

// NetworkRates converts a snapshot pair into Mbps and percentages of the
// baseline link speed.
func NetworkRates(prev, cur model.NetSnapshot, base model.CapacityBaseline) model.NetRates {
	elapsed := cur.Timestamp.Sub(prev.Timestamp).Seconds()
	if elapsed <= 0 {
		return model.NetRates{}
	}
	up := float64(deltaCounter(cur.BytesSent, prev.BytesSent)) * 8 / elapsed / bytesPerMiB
	down := float64(deltaCounter(cur.BytesRecv, prev.BytesRecv)) * 8 / elapsed / bytesPerMiB
	return model.NetRates{
		UploadMbps:      up,
		DownloadMbps:    down,
		UploadPercent:   ratePercent(up, base.UploadMbps),
		DownloadPercent: ratePercent(down, base.DownloadMbps),
	}
}

// SelectLinkSpeed picks the speed of the busiest link-up interface that
// reports a positive speed.
func SelectLinkSpeed(ifaces []system.InterfaceStat) float64 {
	var (
		best     float64
		maxBytes uint64
	)
	for _, iface := range ifaces {
		if !iface.Up || iface.SpeedMbps == 0 {
			continue
		}
		total := iface.BytesSent + iface.BytesRecv
		if total > maxBytes {
			maxBytes = total
			best = float64(iface.SpeedMbps)
		}
	}
	if best <= 0 {
		return DefaultLinkSpeedMbps
	}
	return best
}

// ProbeBaseline is called once at start-up. The network figures come from
// the busiest interface; the disk ceiling is configuration.
func ProbeBaseline(ctx context.Context, host system.Host, diskCeilingMBps float64, logger *slog.Logger) model.CapacityBaseline {
	ifaces, err := host.Interfaces(ctx)
	if err != nil {
		logger.Warn("list network interfaces failed, assuming default link speed", "error", err)
	}
	speed := SelectLinkSpeed(ifaces)
	logger.Info("network speed detected", "mbps", speed)
	return model.CapacityBaseline{
		UploadMbps:        speed,
		DownloadMbps:      speed,
		DiskRWCeilingMBps: diskCeilingMBps,
	}
}

func (r *NodeMetricsReader) readNetSnapshot(ctx context.Context) model.NetSnapshot {
	now := r.now()
	counters, err := r.host.NetCounters(ctx)
	if err != nil {
		r.logger.Debug("read network counters failed", "error", err)
		return model.NetSnapshot{
			BytesSent: r.netCur.BytesSent,
			BytesRecv: r.netCur.BytesRecv,
			Timestamp: now,
		}
	}
	return model.NetSnapshot{
		BytesSent: counters.TxBytes,
		BytesRecv: counters.RxBytes,
		Timestamp: now,
	}
}
