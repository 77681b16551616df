//go:build !linux

package system

func isPartition(string) bool { return false }
