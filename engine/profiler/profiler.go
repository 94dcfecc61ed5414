package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame work time and memory statistics for performance monitoring.
// Outputs a report to the log once per update interval.
//
// Not safe for concurrent use; tick it from the frame goroutine only.
type Profiler struct {
	frameCount     int
	totalFrames    uint64
	lastTime       time.Time
	updateInterval time.Duration
	budget         time.Duration

	workTotal time.Duration
	workMax   time.Duration
	overruns  int

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logf func(format string, args ...any)
	last Report
}

// Report is one interval's worth of statistics.
type Report struct {
	FPS         float64
	AvgWork     time.Duration
	MaxWork     time.Duration
	Overruns    int
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	MaxPauseUs  uint64
}

// String formats the report as a single log line.
func (r Report) String() string {
	return fmt.Sprintf("FPS: %.2f | Work: avg %s max %s | Over budget: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max pause: %d µs)",
		r.FPS, r.AvgWork, r.MaxWork, r.Overruns, r.HeapMB, r.AllocRateMB, r.GCCount, r.MaxPauseUs)
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the frame budget to one 60Hz frame.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		budget:         time.Second / 60,
		logf:           log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame with the time the frame's work took.
// Logs a Report when the update interval has elapsed.
//
// Parameters:
//   - work: duration of the frame callback
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(work time.Duration) bool {
	p.frameCount++
	p.totalFrames++
	p.workTotal += work
	if work > p.workMax {
		p.workMax = work
	}
	if p.budget > 0 && work > p.budget {
		p.overruns++
	}

	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	r := Report{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		AvgWork:     p.workTotal / time.Duration(p.frameCount),
		MaxWork:     p.workMax,
		Overruns:    p.overruns,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 GC pauses.
	start := p.lastGCCount
	if r.GCCount-start > 256 {
		start = r.GCCount - 256
	}
	for i := start; i < r.GCCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
			r.MaxPauseUs = pause
		}
	}

	p.logf("[profiler] %s", r)

	p.last = r
	p.frameCount = 0
	p.workTotal = 0
	p.workMax = 0
	p.overruns = 0
	p.lastTime = now
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Frames returns the number of frames ticked since creation.
func (p *Profiler) Frames() uint64 {
	return p.totalFrames
}

// Last returns the most recently logged report.
func (p *Profiler) Last() Report {
	return p.last
}
