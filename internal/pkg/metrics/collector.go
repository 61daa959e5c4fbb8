package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"crackInsightBackend/internal/core/domain"
)

type jobMetrics struct {
	metrics domain.ResourceMetrics
	started time.Time
	stop    chan struct{}
}

// Collector samples process and host resources while analysis jobs run.
type Collector struct {
	mu             sync.RWMutex
	jobs           map[string]*jobMetrics
	updateInterval time.Duration
}

func NewCollector(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = time.Second
	}
	return &Collector{
		jobs:           make(map[string]*jobMetrics),
		updateInterval: interval,
	}
}

func (c *Collector) StartCollection(jobID string) {
	now := time.Now()
	job := &jobMetrics{
		metrics: domain.ResourceMetrics{LastUpdated: now},
		started: now,
		stop:    make(chan struct{}),
	}

	c.mu.Lock()
	if old, exists := c.jobs[jobID]; exists {
		close(old.stop)
	}
	c.jobs[jobID] = job
	c.mu.Unlock()

	go c.collect(jobID, job)
}

// StopCollection stops sampling and returns the last metrics of the job.
func (c *Collector) StopCollection(jobID string) domain.ResourceMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	job, exists := c.jobs[jobID]
	if !exists {
		return domain.ResourceMetrics{}
	}
	close(job.stop)
	delete(c.jobs, jobID)
	return job.metrics
}

func (c *Collector) GetMetrics(jobID string) *domain.ResourceMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if job, exists := c.jobs[jobID]; exists {
		m := job.metrics
		return &m
	}
	return nil
}

func (c *Collector) collect(jobID string, job *jobMetrics) {
	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	for {
		c.sample(jobID, job)

		select {
		case <-job.stop:
			return
		case <-ticker.C:
		}
	}
}

func (c *Collector) sample(jobID string, job *jobMetrics) {
	// interval 0 compares against the previous call instead of blocking
	cpuUsage, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.mu.Lock()
	defer c.mu.Unlock()
	if current, exists := c.jobs[jobID]; !exists || current != job {
		return
	}
	if len(cpuUsage) > 0 {
		job.metrics.CPUUsage = cpuUsage[0]
	}
	if vm != nil {
		job.metrics.SystemMemoryUsage = vm.UsedPercent
	}
	job.metrics.MemoryUsageMB = int64(m.Alloc / 1024 / 1024)
	job.metrics.LastUpdated = time.Now()
}

// UpdatePairs records analysis progress for the job.
func (c *Collector) UpdatePairs(jobID string, pairs int64, activeThreads int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	job, exists := c.jobs[jobID]
	if !exists {
		return
	}
	job.metrics.TotalPairs = pairs
	job.metrics.ActiveThreads = activeThreads
	if elapsed := time.Since(job.started).Seconds(); elapsed > 0 {
		job.metrics.PairsPerSec = int64(float64(pairs) / elapsed)
	}
}
