package node

import (
	"context"
	"errors"

	"hwgauge/internal/model"
	"hwgauge/internal/system"
)

// DiskRates converts a snapshot pair into MB/s and percentages of the
// configured ceiling.
func DiskRates(prev, cur model.DiskSnapshot, base model.CapacityBaseline) model.DiskRates {
	elapsed := cur.Timestamp.Sub(prev.Timestamp).Seconds()
	if elapsed <= 0 {
		return model.DiskRates{}
	}
	read := float64(deltaCounter(cur.BytesRead, prev.BytesRead)) / elapsed / bytesPerMiB
	write := float64(deltaCounter(cur.BytesWritten, prev.BytesWritten)) / elapsed / bytesPerMiB
	return model.DiskRates{
		ReadMBps:     read,
		WriteMBps:    write,
		ReadPercent:  ratePercent(read, base.DiskRWCeilingMBps),
		WritePercent: ratePercent(write, base.DiskRWCeilingMBps),
	}
}

func (r *NodeMetricsReader) readDiskSnapshot(ctx context.Context) model.DiskSnapshot {
	now := r.now()
	counters, err := r.host.DiskCounters(ctx)
	if err != nil {
		r.logger.Debug("read disk counters failed", "error", err)
		return model.DiskSnapshot{
			BytesRead:    r.diskCur.BytesRead,
			BytesWritten: r.diskCur.BytesWritten,
			Timestamp:    now,
		}
	}
	return model.DiskSnapshot{
		BytesRead:    counters.ReadBytes,
		BytesWritten: counters.WriteBytes,
		Timestamp:    now,
	}
}

func (r *NodeMetricsReader) readDrive(ctx context.Context) model.DriveUsage {
	out := model.DriveUsage{Drive: system.DriveLabel(r.drive)}
	info, err := r.host.DriveUsage(ctx, r.drive)
	if err != nil {
		if errors.Is(err, system.ErrDriveNotFound) {
			r.logger.Debug("monitored drive not found", "drive", r.drive)
		} else {
			r.logger.Debug("read drive usage failed", "drive", r.drive, "error", err)
		}
		return out
	}
	out.Available = true
	out.UsedBytes = info.UsedBytes
	out.TotalBytes = info.TotalBytes
	out.UsagePercent = clampPercent(info.UsedPercent)
	return out
}
