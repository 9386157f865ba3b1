package infrastructure

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics records a snapshot of the Go runtime at the end of a run.
// A cleaning run is short, so gauges are sampled once rather than polled.
type RuntimeMetrics struct {
	heapInUse  metric.Int64Gauge
	totalAlloc metric.Int64Gauge
	sysMemory  metric.Int64Gauge
	gcCount    metric.Int64Gauge
	goroutines metric.Int64Gauge
	uptime     metric.Float64Gauge
	startTime  time.Time
}

// RuntimeStats is one sampled snapshot
type RuntimeStats struct {
	HeapInUse  int64
	TotalAlloc int64
	SysMemory  int64
	GCCount    uint32
	Goroutines int64
	Uptime     time.Duration
}

// NewRuntimeMetrics creates the runtime gauges on meter
func NewRuntimeMetrics(meter metric.Meter, startTime time.Time) (*RuntimeMetrics, error) {
	rm := &RuntimeMetrics{startTime: startTime}
	var err error

	if rm.heapInUse, err = meter.Int64Gauge("custclean.process.heap",
		metric.WithDescription("Heap bytes in use at the end of the run"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if rm.totalAlloc, err = meter.Int64Gauge("custclean.process.allocated",
		metric.WithDescription("Cumulative bytes allocated during the run"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if rm.sysMemory, err = meter.Int64Gauge("custclean.process.system",
		metric.WithDescription("Memory obtained from the OS"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if rm.gcCount, err = meter.Int64Gauge("custclean.process.gc",
		metric.WithDescription("Completed garbage collections")); err != nil {
		return nil, err
	}
	if rm.goroutines, err = meter.Int64Gauge("custclean.process.goroutines",
		metric.WithDescription("Live goroutines")); err != nil {
		return nil, err
	}
	if rm.uptime, err = meter.Float64Gauge("custclean.process.uptime",
		metric.WithDescription("Seconds since telemetry was initialized"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return rm, nil
}

// Collect samples the runtime and records the gauges
func (rm *RuntimeMetrics) Collect(ctx context.Context) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := RuntimeStats{
		HeapInUse:  int64(mem.HeapInuse),
		TotalAlloc: int64(mem.TotalAlloc),
		SysMemory:  int64(mem.Sys),
		GCCount:    mem.NumGC,
		Goroutines: int64(runtime.NumGoroutine()),
		Uptime:     time.Since(rm.startTime),
	}

	rm.heapInUse.Record(ctx, stats.HeapInUse)
	rm.totalAlloc.Record(ctx, stats.TotalAlloc)
	rm.sysMemory.Record(ctx, stats.SysMemory)
	rm.gcCount.Record(ctx, int64(stats.GCCount))
	rm.goroutines.Record(ctx, stats.Goroutines)
	rm.uptime.Record(ctx, stats.Uptime.Seconds())
	return stats
}

// LogValue renders the snapshot as a slog group
func (s RuntimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("heap_in_use", s.HeapInUse),
		slog.Int64("total_alloc", s.TotalAlloc),
		slog.Int64("sys", s.SysMemory),
		slog.Int("gc_count", int(s.GCCount)),
		slog.Int64("goroutines", s.Goroutines),
		slog.Duration("uptime", s.Uptime),
	)
}
