package warpcam

import (
	"log/slog"
	"time"
)

// FrameStats accumulates per-frame processing time and logs the running
// average every Interval frames. It is reset whenever a control changes so
// each mode/filter combination is measured on its own.
type FrameStats struct {
	Interval int

	frames int
	total  time.Duration
	label  []any // attributes identifying the measured configuration
}

// NewFrameStats returns stats logging every interval frames.
func NewFrameStats(interval int) *FrameStats {
	return &FrameStats{Interval: max(interval, 1)}
}

// Record adds one frame's processing time and reports whether a summary line
// was logged.
func (s *FrameStats) Record(d time.Duration) bool {
	s.frames++
	s.total += d
	if s.Interval <= 0 || s.frames%s.Interval != 0 {
		return false
	}
	attrs := append([]any{
		"frames", s.frames,
		"avg_ms", float64(s.Average().Microseconds()) / 1000,
		"fps", s.FPS(),
	}, s.label...)
	Logger().Info("frame stats", attrs...)
	return true
}

// Reset clears the running totals and labels subsequent summaries.
func (s *FrameStats) Reset(mode RenderMode, filter FilterKind) {
	s.frames = 0
	s.total = 0
	s.label = []any{slog.String("mode", mode.String()), slog.String("filter", filter.String())}
}

// Frames returns the number of frames recorded since the last reset.
func (s *FrameStats) Frames() int { return s.frames }

// Average returns the mean frame time since the last reset.
func (s *FrameStats) Average() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return s.total / time.Duration(s.frames)
}

// FPS returns the frame rate implied by Average.
func (s *FrameStats) FPS() float64 {
	avg := s.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
