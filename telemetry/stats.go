package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// RenderStats aggregates frame pacing over a rolling window: average and
// tail frame time, effective FPS, dropped-frame counts, and the peak live
// particle count seen so far.
type RenderStats struct {
	windowSize int
	frameMS    []float64
	writeIndex int
	count      int

	targetMS      float64
	droppedFrames uint64
	totalFrames   uint64
	peakParticles int
}

// NewRenderStats creates a stats window. A frame counts as dropped when it
// exceeds the target duration.
func NewRenderStats(windowSize int, target time.Duration) *RenderStats {
	if windowSize < 1 {
		windowSize = 120
	}
	return &RenderStats{
		windowSize: windowSize,
		frameMS:    make([]float64, windowSize),
		targetMS:   float64(target) / float64(time.Millisecond),
	}
}

// RecordFrame folds one frame duration into the window.
func (r *RenderStats) RecordFrame(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	r.frameMS[r.writeIndex] = ms
	r.writeIndex = (r.writeIndex + 1) % r.windowSize
	if r.count < r.windowSize {
		r.count++
	}

	r.totalFrames++
	if ms > r.targetMS {
		r.droppedFrames++
	}
}

// RecordParticles tracks the peak live particle count.
func (r *RenderStats) RecordParticles(n int) {
	if n > r.peakParticles {
		r.peakParticles = n
	}
}

// AvgFrameMS returns the mean frame time over the window, in milliseconds.
func (r *RenderStats) AvgFrameMS() float64 {
	if r.count == 0 {
		return 0
	}
	return stat.Mean(r.frameMS[:r.count], nil)
}

// P95FrameMS returns the 95th percentile frame time over the window.
func (r *RenderStats) P95FrameMS() float64 {
	if r.count == 0 {
		return 0
	}
	sorted := make([]float64, r.count)
	copy(sorted, r.frameMS[:r.count])
	sort.Float64s(sorted)
	return stat.Quantile(0.95, stat.Empirical, sorted, nil)
}

// FPS returns the effective frame rate implied by the window average.
func (r *RenderStats) FPS() float64 {
	avg := r.AvgFrameMS()
	if avg <= 0 {
		return 0
	}
	return 1000 / avg
}

// DroppedFrames returns the number of frames that exceeded the target.
func (r *RenderStats) DroppedFrames() uint64 {
	return r.droppedFrames
}

// TotalFrames returns the number of frames recorded.
func (r *RenderStats) TotalFrames() uint64 {
	return r.totalFrames
}

// PeakParticles returns the highest particle count recorded.
func (r *RenderStats) PeakParticles() int {
	return r.peakParticles
}

// LogValue implements slog.LogValuer for structured logging.
func (r *RenderStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("avg_frame_ms", r.AvgFrameMS()),
		slog.Float64("p95_frame_ms", r.P95FrameMS()),
		slog.Float64("fps", r.FPS()),
		slog.Uint64("dropped_frames", r.droppedFrames),
		slog.Uint64("total_frames", r.totalFrames),
		slog.Int("peak_particles", r.peakParticles),
	)
}

// FrameRecord is one per-tick row for frames.csv.
type FrameRecord struct {
	Tick        int64   `csv:"tick"`
	FrameMS     float64 `csv:"frame_ms"`
	Particles   int     `csv:"particles"`
	Quality     int     `csv:"quality"`
	ParticleCap int     `csv:"particle_cap"`
	Rejected    uint64  `csv:"rejected"`
	Culled      uint64  `csv:"culled"`
}

// WindowStats is one aggregated row for windows.csv, emitted every stats
// window.
type WindowStats struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgFrameMS    float64 `csv:"avg_frame_ms"`
	P95FrameMS    float64 `csv:"p95_frame_ms"`
	FPS           float64 `csv:"fps"`
	DroppedFrames uint64  `csv:"dropped_frames"`
	TotalFrames   uint64  `csv:"total_frames"`
	PeakParticles int     `csv:"peak_particles"`
	Quality       int     `csv:"quality"`
}

// Window snapshots the current rolling statistics as a windows.csv row.
func (r *RenderStats) Window(windowEnd int64, quality int) WindowStats {
	return WindowStats{
		WindowEnd:     windowEnd,
		AvgFrameMS:    r.AvgFrameMS(),
		P95FrameMS:    r.P95FrameMS(),
		FPS:           r.FPS(),
		DroppedFrames: r.droppedFrames,
		TotalFrames:   r.totalFrames,
		PeakParticles: r.peakParticles,
		Quality:       quality,
	}
}
