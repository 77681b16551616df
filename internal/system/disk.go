package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

type DiskCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

type DriveInfo struct {
	Path        string
	TotalBytes  uint64
	UsedBytes   uint64
	UsedPercent float64
}

// DrivePath turns a drive identifier into a path usage can be queried for.
// On Windows a bare letter such as "C" becomes "C:\"; elsewhere the
// identifier is already a mount point.
func DrivePath(drive string) string {
	return drivePath(runtime.GOOS, drive)
}

func drivePath(goos, drive string) string {
	drive = strings.TrimSpace(drive)
	if goos != "windows" {
		return drive
	}
	drive = strings.TrimRight(drive, `:\/`)
	if len(drive) == 1 {
		return strings.ToUpper(drive) + `:\`
	}
	return drive
}

// DriveLabel is the short form shown to users: "C:" on Windows, the mount
// point elsewhere.
func DriveLabel(drive string) string {
	return driveLabel(runtime.GOOS, drive)
}

func driveLabel(goos, drive string) string {
	path := drivePath(goos, drive)
	if goos == "windows" {
		return strings.TrimRight(path, `\`)
	}
	return path
}

func (h *HostOS) DriveUsage(ctx context.Context, drive string) (DriveInfo, error) {
	path := DrivePath(drive)
	if path == "" {
		return DriveInfo{}, ErrDriveNotFound
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DriveInfo{}, fmt.Errorf("%s: %w", path, ErrDriveNotFound)
		}
		return DriveInfo{}, fmt.Errorf("stat drive %s: %w", path, err)
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return DriveInfo{}, fmt.Errorf("drive usage %s: %w", path, err)
	}
	return DriveInfo{
		Path:        path,
		TotalBytes:  usage.Total,
		UsedBytes:   usage.Used,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// DiskCounters sums cumulative read/write bytes over whole physical devices.
func (h *HostOS) DiskCounters(ctx context.Context) (DiskCounters, error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return DiskCounters{}, fmt.Errorf("disk io counters: %w", err)
	}
	var out DiskCounters
	for name, st := range stats {
		if !isBlockDevice(name) {
			continue
		}
		out.ReadBytes += st.ReadBytes
		out.WriteBytes += st.WriteBytes
	}
	return out, nil
}

func isBlockDevice(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "loop") || strings.HasPrefix(name, "ram") || strings.HasPrefix(name, "fd") || strings.HasPrefix(name, "sr") {
		return false
	}
	return !isPartition(name)
}
