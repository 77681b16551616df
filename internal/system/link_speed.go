package system

import "strings"

// win32NetworkAdapter mirrors the Win32_NetworkAdapter columns used for the
// link-speed baseline. Speed is in bits per second and may be null.
type win32NetworkAdapter struct {
	NetConnectionID *string
	Speed           *uint64
}

// adapterSpeeds maps connection names ("Ethernet", "Wi-Fi"), which are the
// interface names Go reports on Windows, to Mbps.
func adapterSpeeds(adapters []win32NetworkAdapter) map[string]uint64 {
	out := make(map[string]uint64, len(adapters))
	for _, a := range adapters {
		if a.NetConnectionID == nil || a.Speed == nil {
			continue
		}
		name := strings.TrimSpace(*a.NetConnectionID)
		if name == "" {
			continue
		}
		out[name] = *a.Speed / 1_000_000
	}
	return out
}
