// Package config provides configuration loading and access for the walker.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is returned (wrapped) when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Player    PlayerConfig    `yaml:"player"`
	Look      LookConfig      `yaml:"look"`
	Body      BodyConfig      `yaml:"body"`
	Bindings  BindingsConfig  `yaml:"bindings"`
	Scene     SceneConfig     `yaml:"scene"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PlayerConfig holds movement speeds.
// Modifiers multiply DefaultSpeed while the matching action is held.
type PlayerConfig struct {
	DefaultSpeed        float64 `yaml:"default_speed"`         // world units per second
	WalkSpeedModifier   float64 `yaml:"walk_speed_modifier"`   // accepted, not applied to speed
	SprintSpeedModifier float64 `yaml:"sprint_speed_modifier"` // applied while sprint is held
	CrouchSpeedModifier float64 `yaml:"crouch_speed_modifier"` // applied while crouch is held
}

// LookConfig holds mouse-look parameters.
type LookConfig struct {
	Sensitivity     float64 `yaml:"sensitivity"`       // degrees per input unit, 0..3
	VerticalLookCap float64 `yaml:"vertical_look_cap"` // max |pitch| in degrees, 0..90
	CameraSmoothing float64 `yaml:"camera_smoothing"`  // reserved
	InvertY         bool    `yaml:"invert_y"`
	FOV             float64 `yaml:"fov"` // vertical field of view in degrees
}

// BodyConfig holds the player capsule and spawn point.
type BodyConfig struct {
	Radius    float64 `yaml:"radius"`
	Height    float64 `yaml:"height"`
	Mass      float64 `yaml:"mass"`
	EyeHeight float64 `yaml:"eye_height"`
	SpawnX    float64 `yaml:"spawn_x"`
	SpawnZ    float64 `yaml:"spawn_z"`
}

// BindingsConfig maps actions to key names (see rlinput.KeyNames).
type BindingsConfig struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Sprint  string `yaml:"sprint"`
	Crouch  string `yaml:"crouch"`
	Pause   string `yaml:"pause"`
}

// ObstacleConfig describes one static box in the scene.
type ObstacleConfig struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
}

// SceneConfig holds the static level layout.
type SceneConfig struct {
	GridSlices  int              `yaml:"grid_slices"`
	GridSpacing float64          `yaml:"grid_spacing"`
	Obstacles   []ObstacleConfig `yaml:"obstacles"`
}

// PhysicsConfig holds stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // fixed frame time for headless runs
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // frames averaged by the perf collector
	LogInterval float64 `yaml:"log_interval"` // seconds per stats window (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Set replaces the global configuration, e.g. after a reload.
func Set(cfg *Config) {
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks value ranges. All violations are reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Player.DefaultSpeed >= 0, "player.default_speed %v is negative", c.Player.DefaultSpeed)
	check(c.Player.WalkSpeedModifier >= 0, "player.walk_speed_modifier %v is negative", c.Player.WalkSpeedModifier)
	check(c.Player.SprintSpeedModifier >= 0, "player.sprint_speed_modifier %v is negative", c.Player.SprintSpeedModifier)
	check(c.Player.CrouchSpeedModifier >= 0, "player.crouch_speed_modifier %v is negative", c.Player.CrouchSpeedModifier)
	check(c.Look.Sensitivity >= 0 && c.Look.Sensitivity <= 3, "look.sensitivity %v outside [0, 3]", c.Look.Sensitivity)
	check(c.Look.VerticalLookCap >= 0 && c.Look.VerticalLookCap <= 90, "look.vertical_look_cap %v outside [0, 90]", c.Look.VerticalLookCap)
	check(c.Look.FOV > 0 && c.Look.FOV < 180, "look.fov %v outside (0, 180)", c.Look.FOV)
	check(c.Body.Radius > 0, "body.radius must be positive")
	check(c.Body.Height >= 2*c.Body.Radius, "body.height %v shorter than capsule diameter", c.Body.Height)
	check(c.Physics.DT > 0, "physics.dt must be positive")

	for i, o := range c.Scene.Obstacles {
		check(o.Width > 0 && o.Depth > 0 && o.Height > 0, "scene.obstacles[%d] has a non-positive extent", i)
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Eye height defaults to just below the top of the capsule
	if c.Body.EyeHeight == 0 {
		c.Body.EyeHeight = c.Body.Height * 0.9
	}

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
