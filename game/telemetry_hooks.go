package game

import (
	"log/slog"

	"github.com/pthm-cable/fpwalk/telemetry"
)

// recordFrame captures the player's state after this frame's systems ran.
func (g *Game) recordFrame(dt float32) {
	e, ok := g.player.Entity()
	ctrl := g.player.Controller()
	if !ok || ctrl == nil {
		return
	}

	pos := g.transforms.Get(e).Position
	o := ctrl.Orientation()
	snap := g.actions.Snapshot()

	r := telemetry.FrameRecord{
		Tick:    g.tick,
		DT:      float64(dt),
		X:       pos.X,
		Y:       pos.Y,
		Z:       pos.Z,
		Yaw:     o.Yaw,
		Pitch:   o.Pitch,
		Speed:   ctrl.Speed(),
		Moving:  snap.Move.X != 0 || snap.Move.Y != 0,
		Sprint:  snap.Sprint > 0,
		Crouch:  snap.Crouch > 0,
		Contact: g.physics.Contact(e),
	}
	g.lastFrame = r
	if g.collector != nil {
		g.collector.Record(r)
	}

	if err := g.outputManager.WriteFrame(r); err != nil {
		slog.Error("failed to write frame", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if g.collector == nil || !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.tick)
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
