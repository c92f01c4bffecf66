//go:build !linux

// control/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// Portable debug probes for non-Linux platforms.

package control

import (
	"runtime"
)

// RegisterPlatformProbes sets portable debug metrics.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}
