package metrics

import (
	"context"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

const gigabyte = 1 << 30

// EnableMemoryStatistics periodically logs the memory usage and the number of
// goroutines of the process until ctx is done.
func EnableMemoryStatistics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logMemoryStatistics()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func logMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.WithFields(log.Fields{
		"total_alloc_gb": float64(memStats.TotalAlloc) / gigabyte,
		"heap_alloc_gb":  float64(memStats.HeapAlloc) / gigabyte,
		"mallocs":        memStats.Mallocs,
		"frees":          memStats.Frees,
		"goroutines":     runtime.NumGoroutine(),
	}).Info("memory statistics")
}
