//go:generate mockgen -source=monitor.go -destination=monitor_mock.go -package=monitor
package monitor

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// Stats contains process resource statistics
type Stats struct {
	CPU float64
	MEM float64 // in MB
}

// String renders the stats for the console footer
func (s Stats) String() string {
	return fmt.Sprintf("cpu %.1f%% · mem %.1f MB", s.CPU, s.MEM)
}

// Monitor samples resource usage of this process for the console footer
type Monitor interface {
	Self(ctx context.Context) (Stats, error)
	GetStats(ctx context.Context, pid int) (Stats, error)
}

type monitor struct {
	pid int
}

// NewMonitor creates a Monitor bound to the current process
func NewMonitor() Monitor {
	return &monitor{pid: os.Getpid()}
}

// Self returns the stats of the running siemctl process
func (m *monitor) Self(ctx context.Context) (Stats, error) {
	return m.GetStats(ctx, m.pid)
}

// GetStats returns cpu and rss of the given process; out-of-range pids yield zero stats
func (m *monitor) GetStats(ctx context.Context, pid int) (Stats, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return Stats{}, nil
	}

	proc, err := process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		stats.CPU = cpuPercent
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		stats.MEM = float64(memInfo.RSS) / 1024 / 1024
	}

	return stats, nil
}
