package metrics

import (
	"runtime"
	"time"
)

type PerformanceMetrics struct {
	Label        string        `json:"label"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Duration     time.Duration `json:"duration"`
	Items        int           `json:"items"`
	MemoryUsage  uint64        `json:"memoryUsage"`
	AllocObjects uint64        `json:"allocObjects"`
	GCCycles     uint32        `json:"gcCycles"`
}

// CapturePerformance runs fn and records its wall time, allocations and
// GC cycles. items is the number of units fn processes.
func CapturePerformance(label string, items int, fn func()) *PerformanceMetrics {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	startAlloc := stats.TotalAlloc
	startMallocs := stats.Mallocs
	startGC := stats.NumGC

	metrics := &PerformanceMetrics{
		Label:     label,
		Items:     items,
		StartTime: time.Now(),
	}

	fn()

	runtime.ReadMemStats(&stats)
	metrics.EndTime = time.Now()
	metrics.Duration = metrics.EndTime.Sub(metrics.StartTime)
	metrics.MemoryUsage = stats.TotalAlloc - startAlloc
	metrics.AllocObjects = stats.Mallocs - startMallocs
	metrics.GCCycles = stats.NumGC - startGC

	return metrics
}

func (p *PerformanceMetrics) ItemsPerSecond() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return float64(p.Items) / p.Duration.Seconds()
}
