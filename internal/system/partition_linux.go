//go:build linux

package system

import "os"

// isPartition avoids counting the same bytes once for the disk and again
// for each of its partitions.
func isPartition(name string) bool {
	_, err := os.Stat("/sys/class/block/" + name + "/partition")
	return err == nil
}
