package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	// Walking, sprinting and crouching samples
	values := []float64{5, 5, 10, 10, 2.5, 2.5}
	mean, std, _, p50, p90 := ComputeSpeedStats(values)

	if math.Abs(mean-35.0/6) > 0.001 {
		t.Errorf("mean = %v, want %v", mean, 35.0/6)
	}
	if std <= 0 {
		t.Errorf("expected positive std, got %v", std)
	}
	if math.Abs(p50-5) > 0.001 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if math.Abs(p90-10) > 0.001 {
		t.Errorf("p90 = %v, want 10", p90)
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeSpeedStats([]float64{})

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(0.5)
	if c.ShouldFlush() {
		t.Fatal("empty window must not flush")
	}

	// Walk 0.5 units per frame along -Z, sprinting on the last two frames
	for tick := int32(1); tick <= 5; tick++ {
		c.Record(FrameRecord{
			Tick:   tick,
			DT:     0.1,
			Z:      -0.5 * float64(tick),
			Pitch:  float64(tick),
			Speed:  5,
			Moving: true,
			Sprint: tick > 3,
		})
		if tick < 5 && c.ShouldFlush() {
			t.Fatalf("unexpected flush at tick %d", tick)
		}
	}
	if !c.ShouldFlush() {
		t.Fatal("expected flush at tick 5")
	}

	stats := c.Flush(5)
	if stats.Frames != 5 || stats.MovingFrames != 5 || stats.SprintFrames != 2 {
		t.Errorf("unexpected frame counts %+v", stats)
	}
	// First record only establishes the start position
	if math.Abs(stats.Distance-2.0) > 1e-9 {
		t.Errorf("expected distance 2.0, got %v", stats.Distance)
	}
	if stats.PitchMin != 1 || stats.PitchMax != 5 || stats.Pitch != 5 {
		t.Errorf("unexpected pitch range [%v, %v] end %v", stats.PitchMin, stats.PitchMax, stats.Pitch)
	}
	if math.Abs(stats.SimTimeSec-0.5) > 1e-9 {
		t.Errorf("expected sim time 0.5, got %v", stats.SimTimeSec)
	}

	// Next window continues from the last position
	c.Record(FrameRecord{Tick: 6, DT: 0.1, Z: -3.5})
	if c.ShouldFlush() {
		t.Error("a single 0.1s frame must not close a fresh 0.5s window")
	}
	next := c.Flush(6)
	if next.Frames != 1 || next.MovingFrames != 0 {
		t.Errorf("expected counters reset, got %+v", next)
	}
	if math.Abs(next.Distance-1.0) > 1e-9 {
		t.Errorf("expected distance 1.0 across the boundary, got %v", next.Distance)
	}
	if math.Abs(next.WindowSec-0.1) > 1e-9 || math.Abs(next.SimTimeSec-0.6) > 1e-9 {
		t.Errorf("expected window 0.1s at sim time 0.6s, got %v / %v", next.WindowSec, next.SimTimeSec)
	}
}

func TestCollectorWindowFollowsFrameTime(t *testing.T) {
	tests := []struct {
		name   string
		dt     float64
		frames int // frames needed to cover a 1s window
	}{
		{"fixed 60hz", 1.0 / 60, 60},
		{"render 144hz", 1.0 / 144, 144},
		{"slow 20hz", 0.05, 20},
		{"uneven 0.3s", 0.3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(1)
			for i := 1; i <= tt.frames; i++ {
				if c.ShouldFlush() {
					t.Fatalf("flushed after %d frames, want %d", i-1, tt.frames)
				}
				c.Record(FrameRecord{Tick: int32(i), DT: tt.dt})
			}
			if !c.ShouldFlush() {
				t.Fatalf("expected flush after %d frames of %vs", tt.frames, tt.dt)
			}
			stats := c.Flush(int32(tt.frames))
			if stats.WindowSec < 1-1e-9 {
				t.Errorf("window closed early at %vs", stats.WindowSec)
			}
		})
	}
}
