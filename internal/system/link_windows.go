//go:build windows

package system

import (
	"context"

	"github.com/yusufpapurcu/wmi"
)

// linkSpeedReader queries every enabled adapter once. On failure all links
// report 0 and the caller falls back to its default baseline.
func linkSpeedReader(ctx context.Context) func(string) uint64 {
	adapters, err := queryNetworkAdapters(ctx)
	if err != nil {
		return func(string) uint64 { return 0 }
	}
	speeds := adapterSpeeds(adapters)
	return func(name string) uint64 { return speeds[name] }
}

func queryNetworkAdapters(ctx context.Context) ([]win32NetworkAdapter, error) {
	var dst []win32NetworkAdapter
	q := wmi.CreateQuery(&dst, "WHERE NetEnabled = TRUE", "Win32_NetworkAdapter")
	errCh := make(chan error, 1)
	go func() {
		errCh <- wmi.Query(q, &dst)
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return dst, err
	}
}
