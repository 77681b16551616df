package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/net"
)

type NetCounters struct {
	RxBytes uint64
	TxBytes uint64
}

// InterfaceStat is the per-interface view used to pick a link-speed
// baseline. SpeedMbps is 0 when the OS does not report it.
type InterfaceStat struct {
	Name      string
	Up        bool
	SpeedMbps uint64
	BytesSent uint64
	BytesRecv uint64
}

func (h *HostOS) NetCounters(ctx context.Context) (NetCounters, error) {
	stats, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return NetCounters{}, fmt.Errorf("net io counters: %w", err)
	}
	var out NetCounters
	for _, st := range stats {
		if shouldSkipNetworkInterface(st.Name) {
			continue
		}
		out.RxBytes += st.BytesRecv
		out.TxBytes += st.BytesSent
	}
	return out, nil
}

func (h *HostOS) Interfaces(ctx context.Context) ([]InterfaceStat, error) {
	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("net io counters: %w", err)
	}
	byName := make(map[string]net.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}

	speed := linkSpeedReader(ctx)
	out := make([]InterfaceStat, 0, len(ifaces))
	for _, iface := range ifaces {
		if shouldSkipNetworkInterface(iface.Name) {
			continue
		}
		c := byName[iface.Name]
		out = append(out, InterfaceStat{
			Name:      iface.Name,
			Up:        hasFlag(iface.Flags, "up"),
			SpeedMbps: speed(iface.Name),
			BytesSent: c.BytesSent,
			BytesRecv: c.BytesRecv,
		})
	}
	return out, nil
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func shouldSkipNetworkInterface(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == "lo" {
		return true
	}
	if strings.HasPrefix(name, "docker") || strings.HasPrefix(name, "veth") {
		return true
	}
	return false
}
