package utils

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"notemark/logger"
)

type SystemStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	Goroutines    int     `json:"goroutines"`
}

// GetSystemStats samples host CPU and memory usage. The CPU figure is
// measured since the previous call so the request never blocks on it.
func GetSystemStats(ctx context.Context) SystemStats {
	stats := SystemStats{Goroutines: runtime.NumGoroutine()}

	if percentage, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		logger.Warn(ctx, "failed to read cpu usage", logger.Err(err))
	} else if len(percentage) > 0 {
		stats.CPUPercent = percentage[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		logger.Warn(ctx, "failed to read memory usage", logger.Err(err))
	} else {
		stats.MemoryPercent = vm.UsedPercent
	}

	return stats
}
