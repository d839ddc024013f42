package telemetry

import (
	"log/slog"
	"math"
	"sort"
)

// FrameRecord is one row of the per-frame trace.
type FrameRecord struct {
	Tick    int32   `csv:"tick"`
	DT      float64 `csv:"dt"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Z       float64 `csv:"z"`
	Yaw     float64 `csv:"yaw"`
	Pitch   float64 `csv:"pitch"`
	Speed   float64 `csv:"speed"`
	Moving  bool    `csv:"moving"`
	Sprint  bool    `csv:"sprint"`
	Crouch  bool    `csv:"crouch"`
	Contact bool    `csv:"contact"`
}

// WindowStats holds aggregated movement statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	WindowSec       float64 `csv:"window_sec"`
	SimTimeSec      float64 `csv:"sim_time"`

	Frames int `csv:"frames"`

	// Distance covered on the ground plane during the window
	Distance float64 `csv:"distance"`

	// Effective speed over frames with movement input
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Frame counts
	MovingFrames  int `csv:"moving_frames"`
	SprintFrames  int `csv:"sprint_frames"`
	CrouchFrames  int `csv:"crouch_frames"`
	ContactFrames int `csv:"contact_frames"`

	// Orientation at window end
	Yaw   float64 `csv:"yaw"`
	Pitch float64 `csv:"pitch"`

	// Pitch range reached during the window
	PitchMin float64 `csv:"pitch_min"`
	PitchMax float64 `csv:"pitch_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, std, and percentiles from speed samples.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	var sqDiffSum float64
	for _, v := range values {
		d := v - mean
		sqDiffSum += d * d
	}
	std = math.Sqrt(sqDiffSum / float64(n))

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("window_sec", s.WindowSec),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("distance", s.Distance),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Int("moving_frames", s.MovingFrames),
		slog.Int("sprint_frames", s.SprintFrames),
		slog.Int("crouch_frames", s.CrouchFrames),
		slog.Int("contact_frames", s.ContactFrames),
		slog.Float64("yaw", s.Yaw),
		slog.Float64("pitch", s.Pitch),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"window_sec", s.WindowSec,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"distance", s.Distance,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"moving_frames", s.MovingFrames,
		"sprint_frames", s.SprintFrames,
		"crouch_frames", s.CrouchFrames,
		"contact_frames", s.ContactFrames,
		"yaw", s.Yaw,
		"pitch", s.Pitch,
		"pitch_min", s.PitchMin,
		"pitch_max", s.PitchMax,
	)
}
