package telemetry

import "math"

// Collector accumulates frame records within time windows and produces WindowStats.
type Collector struct {
	windowSec float64

	// Current window tracking
	windowStartTick int32
	windowTime      float64 // recorded frame time in the current window
	simTime         float64 // recorded frame time since the first window

	frames        int
	distance      float64
	speeds        []float64
	movingFrames  int
	sprintFrames  int
	crouchFrames  int
	contactFrames int

	last     FrameRecord
	hasLast  bool
	pitchMin float64
	pitchMax float64
}

// NewCollector creates a collector whose windows close after windowSec
// seconds of recorded frame time, whatever the frame rate.
func NewCollector(windowSec float64) *Collector {
	return &Collector{windowSec: windowSec}
}

// Record adds one frame to the current window.
func (c *Collector) Record(r FrameRecord) {
	if c.hasLast {
		c.distance += math.Hypot(r.X-c.last.X, r.Z-c.last.Z)
	}
	if c.frames == 0 {
		c.pitchMin, c.pitchMax = r.Pitch, r.Pitch
	} else {
		c.pitchMin = math.Min(c.pitchMin, r.Pitch)
		c.pitchMax = math.Max(c.pitchMax, r.Pitch)
	}

	c.frames++
	c.windowTime += r.DT
	c.simTime += r.DT
	if r.Moving {
		c.movingFrames++
		c.speeds = append(c.speeds, r.Speed)
	}
	if r.Sprint {
		c.sprintFrames++
	}
	if r.Crouch {
		c.crouchFrames++
	}
	if r.Contact {
		c.contactFrames++
	}

	c.last = r
	c.hasLast = true
}

// flushSlack absorbs rounding in summed frame times, so ten frames of 0.1s
// close a one second window.
const flushSlack = 1e-9

// ShouldFlush reports whether the recorded frames span a whole window.
func (c *Collector) ShouldFlush() bool {
	return c.frames > 0 && c.windowTime >= c.windowSec-flushSlack
}

// Flush produces a WindowStats and resets counters for the next window.
// Distance keeps accumulating across the window boundary from the last
// recorded position.
func (c *Collector) Flush(currentTick int32) WindowStats {
	mean, std, p10, p50, p90 := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		WindowSec:       c.windowTime,
		SimTimeSec:      c.simTime,

		Frames:   c.frames,
		Distance: c.distance,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,

		MovingFrames:  c.movingFrames,
		SprintFrames:  c.sprintFrames,
		CrouchFrames:  c.crouchFrames,
		ContactFrames: c.contactFrames,

		Yaw:      c.last.Yaw,
		Pitch:    c.last.Pitch,
		PitchMin: c.pitchMin,
		PitchMax: c.pitchMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowTime = 0
	c.frames = 0
	c.distance = 0
	c.speeds = c.speeds[:0]
	c.movingFrames = 0
	c.sprintFrames = 0
	c.crouchFrames = 0
	c.contactFrames = 0

	return stats
}
