// Package system reads absolute host counters and usage figures. It does not
// keep state between calls; rate computation lives in the metric packages.
package system

import (
	"context"
	"errors"
)

// ErrDriveNotFound is returned by DriveUsage when the drive or mount point
// does not exist at query time.
var ErrDriveNotFound = errors.New("drive not found")

// Host is the set of OS queries the sampler needs each tick.
type Host interface {
	LogicalCPUs(ctx context.Context) (int, error)
	CPUPercent(ctx context.Context) (total float64, perCore []float64, err error)
	Memory(ctx context.Context) (MemoryInfo, error)
	DriveUsage(ctx context.Context, drive string) (DriveInfo, error)
	DiskCounters(ctx context.Context) (DiskCounters, error)
	NetCounters(ctx context.Context) (NetCounters, error)
	Interfaces(ctx context.Context) ([]InterfaceStat, error)
}

// HostOS implements Host with gopsutil.
type HostOS struct{}

var _ Host = (*HostOS)(nil)

func NewHost() *HostOS { return &HostOS{} }
