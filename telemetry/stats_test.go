package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestRenderStats_AverageAndFPS(t *testing.T) {
	rs := NewRenderStats(10, 33*time.Millisecond)

	for i := 0; i < 10; i++ {
		rs.RecordFrame(20 * time.Millisecond)
	}

	if got := rs.AvgFrameMS(); math.Abs(got-20) > 1e-9 {
		t.Errorf("AvgFrameMS = %v, want 20", got)
	}
	if got := rs.FPS(); math.Abs(got-50) > 1e-9 {
		t.Errorf("FPS = %v, want 50", got)
	}
}

func TestRenderStats_P95CapturesTail(t *testing.T) {
	rs := NewRenderStats(100, 33*time.Millisecond)

	// 95 fast frames, 5 slow ones.
	for i := 0; i < 95; i++ {
		rs.RecordFrame(10 * time.Millisecond)
	}
	for i := 0; i < 5; i++ {
		rs.RecordFrame(90 * time.Millisecond)
	}

	p95 := rs.P95FrameMS()
	avg := rs.AvgFrameMS()
	if p95 <= avg {
		t.Errorf("p95 (%v) not above average (%v)", p95, avg)
	}
	if p95 < 10 || p95 > 90 {
		t.Errorf("p95 = %v, outside sample range", p95)
	}
}

func TestRenderStats_DroppedFrameCounting(t *testing.T) {
	rs := NewRenderStats(10, 33*time.Millisecond)

	rs.RecordFrame(20 * time.Millisecond)
	rs.RecordFrame(40 * time.Millisecond)
	rs.RecordFrame(50 * time.Millisecond)

	if rs.TotalFrames() != 3 {
		t.Errorf("TotalFrames = %d, want 3", rs.TotalFrames())
	}
	if rs.DroppedFrames() != 2 {
		t.Errorf("DroppedFrames = %d, want 2", rs.DroppedFrames())
	}
}

func TestRenderStats_WindowWrapsButCountersPersist(t *testing.T) {
	rs := NewRenderStats(4, 33*time.Millisecond)

	for i := 0; i < 10; i++ {
		rs.RecordFrame(40 * time.Millisecond)
	}
	// Window holds only the last 4 samples, counters keep the full history.
	if rs.TotalFrames() != 10 {
		t.Errorf("TotalFrames = %d, want 10", rs.TotalFrames())
	}
	if got := rs.AvgFrameMS(); math.Abs(got-40) > 1e-9 {
		t.Errorf("AvgFrameMS = %v, want 40", got)
	}
}

func TestRenderStats_PeakParticles(t *testing.T) {
	rs := NewRenderStats(10, 33*time.Millisecond)

	rs.RecordParticles(50)
	rs.RecordParticles(200)
	rs.RecordParticles(120)

	if rs.PeakParticles() != 200 {
		t.Errorf("PeakParticles = %d, want 200", rs.PeakParticles())
	}
}

func TestRenderStats_EmptyWindow(t *testing.T) {
	rs := NewRenderStats(10, 33*time.Millisecond)

	if rs.AvgFrameMS() != 0 || rs.P95FrameMS() != 0 || rs.FPS() != 0 {
		t.Error("expected zero statistics before any frames")
	}
}

func TestRenderStats_WindowSnapshot(t *testing.T) {
	rs := NewRenderStats(10, 33*time.Millisecond)
	rs.RecordFrame(25 * time.Millisecond)
	rs.RecordParticles(77)

	w := rs.Window(500, 3)
	if w.WindowEnd != 500 {
		t.Errorf("WindowEnd = %d, want 500", w.WindowEnd)
	}
	if w.Quality != 3 {
		t.Errorf("Quality = %d, want 3", w.Quality)
	}
	if w.PeakParticles != 77 {
		t.Errorf("PeakParticles = %d, want 77", w.PeakParticles)
	}
	if math.Abs(w.AvgFrameMS-25) > 1e-9 {
		t.Errorf("AvgFrameMS = %v, want 25", w.AvgFrameMS)
	}
}
