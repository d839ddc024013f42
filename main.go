package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fpwalk/config"
	"github.com/pthm-cable/fpwalk/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	watch := flag.Bool("watch", false, "Reload -config when the file changes")
	headless := flag.Bool("headless", false, "Run without graphics (requires -script)")
	scriptPath := flag.String("script", "", "CSV input script to replay instead of live input")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI values win over the file, now and after every reload
	overrides := config.Overrides{LogInterval: *statsWindow}
	overrides.Apply(cfg)

	opts := game.Options{
		Headless:   *headless,
		ScriptPath: *scriptPath,
		OutputDir:  *outputDir,
		ConfigPath: *configPath,
		Watch:      *watch,
		LogStats:   *logStats,
		Overrides:  overrides,
	}

	if *headless {
		// Headless mode - scripted input at a fixed dt, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"script", *scriptPath,
			"dt", cfg.Physics.DT,
			"max_ticks", *maxTicks,
		)

		for !g.ScriptDone() {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
		slog.Info("script finished", "tick", g.Tick())
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	// Escape pauses instead of closing the window
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldQuit() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
		if g.ScriptDone() {
			slog.Info("script finished", "tick", g.Tick())
			break
		}
	}
}
