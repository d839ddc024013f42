package telemetry

import (
	"log/slog"
	"sort"
	"time"
)

// Phases that wrap the systems in every frame. Systems are timed under
// their registry IDs.
const (
	PhaseInput     = "input"
	PhaseTelemetry = "telemetry"
)

// FramePhases returns the phase order of one frame: input, each system in
// registration order, then telemetry.
func FramePhases(systemIDs []string) []string {
	phases := make([]string, 0, len(systemIDs)+2)
	phases = append(phases, PhaseInput)
	phases = append(phases, systemIDs...)
	return append(phases, PhaseTelemetry)
}

// PerfCollector times frame phases over a rolling window of frames.
// Each slot of the window holds the frame's total and one duration per
// phase, indexed in frame order.
type PerfCollector struct {
	phases []string
	index  map[string]int

	window int
	totals []time.Duration
	rows   [][]time.Duration
	next   int
	filled int

	current    []time.Duration
	frameStart time.Time
	phaseStart time.Time
	open       int // index of the running phase, -1 if none

	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
// Phases not listed are added the first time they are started.
func NewPerfCollector(window int, phases []string) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		index:  make(map[string]int, len(phases)),
		window: window,
		totals: make([]time.Duration, window),
		rows:   make([][]time.Duration, window),
		open:   -1,
	}
	for _, name := range phases {
		p.phaseIndex(name)
	}
	return p
}

func (p *PerfCollector) phaseIndex(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	i := len(p.phases)
	p.phases = append(p.phases, name)
	p.index[name] = i
	p.current = append(p.current, 0)
	return i
}

// BeginFrame starts timing a frame.
func (p *PerfCollector) BeginFrame() {
	p.frameStart = time.Now()
	clear(p.current)
	p.open = -1
}

// StartPhase closes the running phase and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.open = p.phaseIndex(phase)
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.open >= 0 {
		p.current[p.open] += now.Sub(p.phaseStart)
		p.open = -1
	}
}

// EndFrame closes the running phase and stores the frame in the window.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)

	row := p.rows[p.next]
	if cap(row) < len(p.current) {
		row = make([]time.Duration, len(p.current))
	}
	row = row[:len(p.current)]
	copy(row, p.current)

	p.rows[p.next] = row
	p.totals[p.next] = now.Sub(p.frameStart)
	p.next = (p.next + 1) % p.window
	if p.filled < p.window {
		p.filled++
	}
}

// Present marks a rendered frame; the interval between marks gives FPS.
func (p *PerfCollector) Present() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PhaseStat is one phase's average cost over the window.
type PhaseStat struct {
	Name string
	Avg  time.Duration
	Pct  float64 // share of the average frame, 0..100
}

// PerfStats summarizes the window.
type PerfStats struct {
	Frames   int
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	// Phases are in frame order.
	Phases []PhaseStat

	FramesPerSecond float64 // frames the update path could run per second
	PresentInterval time.Duration
	FPS             float64 // rendered frames per second
}

// Stats computes statistics over the frames in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Frames:          p.filled,
		Phases:          make([]PhaseStat, len(p.phases)),
		PresentInterval: p.presentInterval,
	}
	for i, name := range p.phases {
		s.Phases[i].Name = name
	}
	if p.presentInterval > 0 {
		s.FPS = float64(time.Second) / float64(p.presentInterval)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	sums := make([]time.Duration, len(p.phases))
	for i := 0; i < p.filled; i++ {
		d := p.totals[i]
		total += d
		if i == 0 || d < s.MinFrame {
			s.MinFrame = d
		}
		if d > s.MaxFrame {
			s.MaxFrame = d
		}
		// Rows written before a phase was added are shorter
		for j, pd := range p.rows[i] {
			sums[j] += pd
		}
	}

	n := time.Duration(p.filled)
	s.AvgFrame = total / n
	for j := range s.Phases {
		s.Phases[j].Avg = sums[j] / n
		if s.AvgFrame > 0 {
			s.Phases[j].Pct = float64(s.Phases[j].Avg) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// Phase returns the named phase's statistics.
func (s PerfStats) Phase(name string) (PhaseStat, bool) {
	for _, ps := range s.Phases {
		if ps.Name == name {
			return ps, true
		}
	}
	return PhaseStat{}, false
}

// Slowest returns the phases ordered by average cost, most expensive first.
func (s PerfStats) Slowest() []PhaseStat {
	out := append([]PhaseStat(nil), s.Phases...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Avg > out[j].Avg })
	return out
}

// LogStats logs the window through the default logger.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer for structured logging.
// Phases under 0.1% of the frame are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int("frames_per_sec", int(s.FramesPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}

	phases := make([]any, 0, len(s.Phases))
	for _, ps := range s.Phases {
		if ps.Pct > 0.1 {
			phases = append(phases, slog.Float64(ps.Name+"_pct", float64(int(ps.Pct*10))/10))
		}
	}
	if len(phases) > 0 {
		attrs = append(attrs, slog.Group("phases", phases...))
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one line of perf.csv. Every window writes a "frame" row with
// the whole frame, then one row per phase.
type PerfRow struct {
	WindowEnd int32   `csv:"window_end"`
	Phase     string  `csv:"phase"`
	AvgUS     int64   `csv:"avg_us"`
	Pct       float64 `csv:"pct"`
}

// PhaseFrame names the whole-frame row in perf.csv.
const PhaseFrame = "frame"

// ToCSV flattens the stats into perf.csv rows.
func (s PerfStats) ToCSV(windowEnd int32) []PerfRow {
	rows := make([]PerfRow, 0, len(s.Phases)+1)
	rows = append(rows, PerfRow{
		WindowEnd: windowEnd,
		Phase:     PhaseFrame,
		AvgUS:     s.AvgFrame.Microseconds(),
		Pct:       100,
	})
	for _, ps := range s.Phases {
		rows = append(rows, PerfRow{
			WindowEnd: windowEnd,
			Phase:     ps.Name,
			AvgUS:     ps.Avg.Microseconds(),
			Pct:       ps.Pct,
		})
	}
	return rows
}
