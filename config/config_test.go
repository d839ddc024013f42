package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Player.DefaultSpeed != 5.0 {
		t.Errorf("expected default speed 5, got %f", cfg.Player.DefaultSpeed)
	}
	if cfg.Player.SprintSpeedModifier != 2.0 || cfg.Player.CrouchSpeedModifier != 0.5 {
		t.Errorf("unexpected modifiers: sprint %f crouch %f",
			cfg.Player.SprintSpeedModifier, cfg.Player.CrouchSpeedModifier)
	}
	if cfg.Look.Sensitivity != 0.5 {
		t.Errorf("expected sensitivity 0.5, got %f", cfg.Look.Sensitivity)
	}
	if cfg.Look.VerticalLookCap != 90 {
		t.Errorf("expected look cap 90, got %f", cfg.Look.VerticalLookCap)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("expected derived dt to be set, got %f", cfg.Derived.DT32)
	}
	if len(cfg.Scene.Obstacles) == 0 {
		t.Error("expected default scene obstacles")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "look:\n  sensitivity: 1.5\nplayer:\n  default_speed: 8\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Look.Sensitivity != 1.5 {
		t.Errorf("expected overlay sensitivity 1.5, got %f", cfg.Look.Sensitivity)
	}
	if cfg.Player.DefaultSpeed != 8 {
		t.Errorf("expected overlay speed 8, got %f", cfg.Player.DefaultSpeed)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Look.VerticalLookCap != 90 {
		t.Errorf("expected default look cap to survive overlay, got %f", cfg.Look.VerticalLookCap)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"sensitivity above 3", func(c *Config) { c.Look.Sensitivity = 3.5 }},
		{"negative sensitivity", func(c *Config) { c.Look.Sensitivity = -0.1 }},
		{"look cap above 90", func(c *Config) { c.Look.VerticalLookCap = 120 }},
		{"negative speed", func(c *Config) { c.Player.DefaultSpeed = -1 }},
		{"negative walk modifier", func(c *Config) { c.Player.WalkSpeedModifier = -0.5 }},
		{"negative sprint modifier", func(c *Config) { c.Player.SprintSpeedModifier = -2 }},
		{"negative crouch modifier", func(c *Config) { c.Player.CrouchSpeedModifier = -0.5 }},
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }},
		{"flat obstacle", func(c *Config) {
			c.Scene.Obstacles = []ObstacleConfig{{Width: 1, Depth: 1, Height: 0}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("look:\n  vertical_look_cap: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Look.Sensitivity = 2.25

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if loaded.Look.Sensitivity != 2.25 {
		t.Errorf("expected sensitivity 2.25 after roundtrip, got %f", loaded.Look.Sensitivity)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("look:\n  sensitivity: 1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("creating watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("look:\n  sensitivity: 2.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Look.Sensitivity != 2.0 {
			t.Errorf("expected reloaded sensitivity 2.0, got %f", cfg.Look.Sensitivity)
		}
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestOverridesApply(t *testing.T) {
	tests := []struct {
		name string
		o    Overrides
		want float64
	}{
		{"unset keeps file value", Overrides{}, 10},
		{"set replaces file value", Overrides{LogInterval: 2.5}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A reload is a fresh Load, so the override must be applied again
			for i := 0; i < 2; i++ {
				cfg, err := Load("")
				if err != nil {
					t.Fatal(err)
				}
				tt.o.Apply(cfg)
				if cfg.Telemetry.LogInterval != tt.want {
					t.Errorf("load %d: log interval %v, want %v", i, cfg.Telemetry.LogInterval, tt.want)
				}
			}
		})
	}
}

func TestRestartRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   []string
	}{
		{"unchanged", func(c *Config) {}, nil},
		{"live speed change", func(c *Config) { c.Player.DefaultSpeed = 8 }, nil},
		{"live look change", func(c *Config) { c.Look.Sensitivity = 1; c.Look.VerticalLookCap = 45 }, nil},
		{"bindings", func(c *Config) { c.Bindings.Sprint = "space" }, []string{"bindings"}},
		{"body and fov", func(c *Config) { c.Body.EyeHeight = 1.2; c.Look.FOV = 90 }, []string{"body", "look.fov"}},
		{"obstacles", func(c *Config) { c.Scene.Obstacles = c.Scene.Obstacles[:1] }, []string{"scene"}},
		{"stats window", func(c *Config) { c.Telemetry.LogInterval = 1 }, []string{"telemetry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			next, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(next)

			got := RestartRequired(old, next)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RestartRequired = %v, want %v", got, tt.want)
			}
		})
	}
}
