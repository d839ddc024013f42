// Package game wires the walker's world, systems, input and rendering into
// a frame loop.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fpwalk/components"
	"github.com/pthm-cable/fpwalk/config"
	"github.com/pthm-cable/fpwalk/controller"
	"github.com/pthm-cable/fpwalk/input"
	"github.com/pthm-cable/fpwalk/input/rlinput"
	"github.com/pthm-cable/fpwalk/inspector"
	"github.com/pthm-cable/fpwalk/physics"
	"github.com/pthm-cable/fpwalk/scene"
	"github.com/pthm-cable/fpwalk/systems"
	"github.com/pthm-cable/fpwalk/telemetry"
	"github.com/pthm-cable/fpwalk/ui"
)

// Options configures a game instance.
type Options struct {
	Headless   bool   // no window; frames advance at the configured fixed dt
	ScriptPath string // CSV input script (required when headless)
	OutputDir  string // CSV logs and config snapshot (empty = disabled)
	ConfigPath string // config file to watch for changes
	Watch      bool   // reload ConfigPath when it changes
	LogStats   bool   // log window and perf stats via slog

	// Overrides are re-applied to every reloaded config
	Overrides config.Overrides
}

// pointer is the cursor surface the game drives directly.
type pointer interface {
	controller.Cursor
	Unlock()
	Locked() bool
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	scene *scene.Scene

	// Systems
	registry *systems.Registry
	player   *systems.PlayerSystem
	physics  *systems.PhysicsSystem

	// Component lookups for rendering and telemetry
	transforms *ecs.Map1[components.Transform]
	rigs       *ecs.Map1[components.CameraRig]
	colliders  *ecs.Map1[components.CapsuleCollider]
	bodies     *ecs.Map1[components.RigidBody]
	players    *ecs.Map1[components.Player]
	obstacles  *ecs.Filter2[components.Transform, components.Obstacle]

	// Input
	actions *input.Actions
	script  *input.ScriptSource // nil for live input
	cursor  pointer

	// Config hot reload
	watcher   *config.Watcher
	overrides config.Overrides

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	lastFrame     telemetry.FrameRecord

	// UI (nil when headless)
	uiHUD           *ui.HUD
	uiPerfPanel     *ui.PerfPanel
	uiOverlays      *ui.OverlayRegistry
	uiControlsPanel *ui.ControlsPanel
	uiPauseMenu     *ui.PauseMenu
	inspector       *inspector.Inspector

	// State
	tick         int32
	paused       bool
	quit         bool
	headless     bool
	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a new game instance.
// Graphical mode requires an open raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	g := &Game{
		world:        world,
		scene:        scene.New(world),
		transforms:   ecs.NewMap1[components.Transform](world),
		rigs:         ecs.NewMap1[components.CameraRig](world),
		colliders:    ecs.NewMap1[components.CapsuleCollider](world),
		bodies:       ecs.NewMap1[components.RigidBody](world),
		players:      ecs.NewMap1[components.Player](world),
		obstacles:    ecs.NewFilter2[components.Transform, components.Obstacle](world),
		headless:     opts.Headless,
		overrides:    opts.Overrides,
		logStats:     opts.LogStats,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	g.scene.Populate(cfg)

	// Input
	if opts.ScriptPath != "" {
		frames, err := input.LoadScriptFile(opts.ScriptPath)
		if err != nil {
			return nil, err
		}
		g.script = input.NewScriptSource(frames)
		g.actions = input.NewActions(g.script)
		g.cursor = input.NopCursor{}
		slog.Info("replaying input script", "path", opts.ScriptPath, "frames", input.TotalFrames(frames))
	} else if opts.Headless {
		return nil, fmt.Errorf("headless mode needs an input script")
	} else {
		keys, err := rlinput.KeymapFromConfig(cfg.Bindings)
		if err != nil {
			return nil, fmt.Errorf("resolving bindings: %w", err)
		}
		g.actions = input.NewActions(rlinput.NewSource(keys, cfg.Look.InvertY))
		g.cursor = &rlinput.Cursor{}
	}

	// Systems run in registration order; IDs double as perf phase names
	g.player = systems.NewPlayerSystem(controller.SettingsFromConfig(cfg), g.actions, g.cursor, slog.Default())
	g.physics = systems.NewPhysicsSystem(physics.NewWorld())
	g.registry = systems.NewRegistry()
	g.registry.Register(systems.SystemInfo{
		ID:          "player",
		Name:        "Player",
		Description: "Applies look and movement input to the player",
	}, g.player)
	g.registry.Register(systems.SystemInfo{
		ID:          "physics",
		Name:        "Physics",
		Description: "Syncs colliders and reports contacts",
	}, g.physics)
	g.registry.Initialize(world)

	// Telemetry
	if cfg.Telemetry.LogInterval > 0 {
		g.collector = telemetry.NewCollector(cfg.Telemetry.LogInterval)
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, telemetry.FramePhases(g.registry.IDs()))

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("watching config: %w", err)
		}
		g.watcher = w
	}

	if !opts.Headless {
		g.uiHUD = ui.NewHUD()
		g.uiPerfPanel = ui.NewPerfPanel(int32(g.screenWidth)-260, int32(g.screenHeight)-140)
		g.uiOverlays = ui.NewOverlayRegistry()
		g.uiControlsPanel = ui.NewControlsPanel(10, 260, 220)
		g.uiPauseMenu = ui.NewPauseMenu()
		g.inspector = inspector.NewInspector(int32(g.screenWidth), int32(g.screenHeight))
	}

	slog.Info("game initialized",
		"headless", opts.Headless,
		"obstacles", len(g.scene.Obstacles),
		"output_dir", om.Dir(),
	)

	return g, nil
}

// config returns the active configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// Update runs one graphical frame: input, systems, telemetry.
func (g *Game) Update() {
	g.perfCollector.Present()
	g.handleInput()
	g.step(rl.GetFrameTime())
}

// UpdateHeadless runs one frame at the configured fixed dt.
func (g *Game) UpdateHeadless() {
	g.step(g.config().Derived.DT32)
}

// step advances the world by dt unless paused.
func (g *Game) step(dt float32) {
	g.applyConfigReload()

	g.perfCollector.BeginFrame()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.actions.Poll()

	if g.actions.PausePressed() {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.perfCollector.EndFrame()
		return
	}

	g.registry.Update(g.world, dt, g.perfCollector)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.recordFrame(dt)
	g.flushTelemetry()
	g.perfCollector.EndFrame()
}

// setPaused pauses or resumes the walker. Pausing frees the cursor and
// drops the held snapshot so nothing moves while the menu is open.
func (g *Game) setPaused(paused bool) {
	if paused == g.paused {
		return
	}
	g.paused = paused
	g.actions.MuteLook(paused)
	if paused {
		g.actions.Clear()
		g.cursor.Unlock()
		g.logWorldState("paused")
		return
	}
	g.cursor.Lock()
	g.logWorldState("resumed")
}

// applyConfigReload swaps in a reloaded config between frames.
func (g *Game) applyConfigReload() {
	if g.watcher == nil {
		return
	}

	cfg, err := g.watcher.Poll()
	if err != nil {
		slog.Error("config reload failed; keeping previous config", "error", err)
		return
	}
	if cfg == nil {
		return
	}
	g.overrides.Apply(cfg)
	if changed := config.RestartRequired(g.config(), cfg); len(changed) > 0 {
		slog.Warn("config changes take effect on restart", "settings", changed)
	}
	config.Set(cfg)
	g.player.SetSettings(controller.SettingsFromConfig(cfg))
	slog.Info("config reloaded",
		"speed", cfg.Player.DefaultSpeed,
		"sensitivity", cfg.Look.Sensitivity,
		"vertical_look_cap", cfg.Look.VerticalLookCap,
	)
}

// ScriptDone reports whether a replayed input script has run out.
func (g *Game) ScriptDone() bool {
	return g.script != nil && g.script.Done()
}

// ShouldQuit reports whether the pause menu asked to exit.
func (g *Game) ShouldQuit() bool {
	return g.quit
}

// Tick returns the number of frames simulated.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload finalizes systems and closes output.
func (g *Game) Unload() {
	g.logWorldState("shutting down")
	g.registry.Finalize(g.world)

	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			slog.Error("failed to close config watcher", "error", err)
		}
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if !g.headless {
		g.cursor.Unlock()
	}
}
