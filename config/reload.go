package config

import "reflect"

// Overrides are command-line values that take precedence over the file.
// They are applied to the initial config and again to every reload.
type Overrides struct {
	LogInterval float64 // seconds per stats window, 0 = keep the file's value
}

// Apply writes the set overrides into c.
func (o Overrides) Apply(c *Config) {
	if o.LogInterval > 0 {
		c.Telemetry.LogInterval = o.LogInterval
	}
}

// RestartRequired lists the settings that differ between old and next but
// are only read at startup. Player speeds and look tuning apply live.
func RestartRequired(old, next *Config) []string {
	sections := []struct {
		name      string
		old, next any
	}{
		{"screen", old.Screen, next.Screen},
		{"body", old.Body, next.Body},
		{"bindings", old.Bindings, next.Bindings},
		{"scene", old.Scene, next.Scene},
		{"physics", old.Physics, next.Physics},
		{"telemetry", old.Telemetry, next.Telemetry},
		{"look.fov", old.Look.FOV, next.Look.FOV},
		{"look.invert_y", old.Look.InvertY, next.Look.InvertY},
	}

	var changed []string
	for _, s := range sections {
		if !reflect.DeepEqual(s.old, s.next) {
			changed = append(changed, s.name)
		}
	}
	return changed
}
