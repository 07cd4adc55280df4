// Package config loads runtime settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "consolefps.toml"

// envPrefix is prepended to every environment override.
const envPrefix = "CONSOLEFPS_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every runtime setting.
type Config struct {
	LogFile   string          `toml:"log_file"`
	Screen    ScreenConfig    `toml:"screen"`
	Player    PlayerConfig    `toml:"player"`
	Map       MapConfig       `toml:"map"`
	UI        UIConfig        `toml:"ui"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// ScreenConfig controls ray casting and frame pacing.
type ScreenConfig struct {
	FOV               float64 `toml:"fov"`                // Field of view in radians
	Depth             float64 `toml:"depth"`              // Maximum render distance
	StepSize          float64 `toml:"step_size"`          // Ray march increment
	BoundaryTolerance float64 `toml:"boundary_tolerance"` // Corner angle for seams, radians
	CorrectFisheye    bool    `toml:"correct_fisheye"`
	Workers           int     `toml:"workers"` // Column render goroutines; 0 or 1 is sequential
	FPS               int     `toml:"fps"`     // Frame cap; 0 is uncapped
}

// PlayerConfig sets the spawn and movement speeds.
type PlayerConfig struct {
	StartX    float64 `toml:"start_x"`
	StartY    float64 `toml:"start_y"`
	Angle     float64 `toml:"angle"`
	MoveSpeed float64 `toml:"move_speed"`
	TurnSpeed float64 `toml:"turn_speed"`
	WrapAngle bool    `toml:"wrap_angle"` // Keep the heading within [0, 2π)
}

// MapConfig selects the layout. File wins over Generate, which wins over Name.
type MapConfig struct {
	Name     string `toml:"name"`     // Embedded layout
	File     string `toml:"file"`     // Layout text file on disk
	Generate bool   `toml:"generate"` // Build a BSP layout at startup
	Seed     int64  `toml:"seed"`     // Generator seed; 0 picks one from the clock
	Width    int    `toml:"width"`    // Generated layout size
	Height   int    `toml:"height"`
}

// UIConfig controls presentation and input.
type UIConfig struct {
	Palette   string `toml:"palette"`
	KeyHoldMS int    `toml:"key_hold_ms"` // How long a key counts as held after its last event
	ShowMap   bool   `toml:"show_map"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		LogFile: "consolefps.log",
		Screen: ScreenConfig{
			FOV:               math.Pi / 4,
			Depth:             32,
			StepSize:          0.1,
			BoundaryTolerance: 0.007,
			FPS:               60,
		},
		Player: PlayerConfig{
			StartX:    16,
			StartY:    16,
			Angle:     0,
			MoveSpeed: 5,
			TurnSpeed: 2.5,
		},
		Map: MapConfig{
			Name:   "classic",
			Width:  32,
			Height: 32,
		},
		UI: UIConfig{
			Palette:   "classic",
			KeyHoldMS: 500,
			ShowMap:   true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "consolefps",
		},
	}
}

// Load returns defaults overlaid with the TOML file at path and then the
// CONSOLEFPS_* environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := get("MAP"); ok {
		c.Map.Name = v
	}
	if v, ok := get("MAP_FILE"); ok {
		c.Map.File = v
	}
	if v, ok := get("PALETTE"); ok {
		c.UI.Palette = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FPS", &c.Screen.FPS},
		{"WORKERS", &c.Screen.Workers},
	}
	for _, e := range ints {
		if v, ok := get(e.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, envPrefix, e.key, v, err)
			}
			*e.dst = n
		}
	}

	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalid, envPrefix, v, err)
		}
		c.Map.Seed = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"GENERATE", &c.Map.Generate},
		{"TELEMETRY", &c.Telemetry.Enabled},
		{"SHOW_MAP", &c.UI.ShowMap},
		{"CORRECT_FISHEYE", &c.Screen.CorrectFisheye},
	}
	for _, e := range bools {
		if v, ok := get(e.key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, envPrefix, e.key, v, err)
			}
			*e.dst = b
		}
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Screen.FOV > 0 && c.Screen.FOV < math.Pi, "screen.fov %v must be in (0, π)", c.Screen.FOV)
	check(c.Screen.Depth > 0, "screen.depth %v must be positive", c.Screen.Depth)
	check(c.Screen.StepSize > 0 && c.Screen.StepSize < c.Screen.Depth, "screen.step_size %v must be in (0, depth)", c.Screen.StepSize)
	check(c.Screen.BoundaryTolerance >= 0, "screen.boundary_tolerance %v must not be negative", c.Screen.BoundaryTolerance)
	check(c.Screen.Workers >= 0, "screen.workers %d must not be negative", c.Screen.Workers)
	check(c.Screen.FPS >= 0, "screen.fps %d must not be negative", c.Screen.FPS)
	check(c.Player.MoveSpeed >= 0, "player.move_speed %v must not be negative", c.Player.MoveSpeed)
	check(c.Player.TurnSpeed >= 0, "player.turn_speed %v must not be negative", c.Player.TurnSpeed)
	check(c.UI.KeyHoldMS > 0, "ui.key_hold_ms %d must be positive", c.UI.KeyHoldMS)
	check(c.Map.File != "" || c.Map.Generate || c.Map.Name != "", "map needs a name, a file or generate")
	if c.Map.Generate {
		check(c.Map.Width >= 3 && c.Map.Height >= 3, "map.width and map.height %dx%d must be at least 3", c.Map.Width, c.Map.Height)
	}

	return errors.Join(errs...)
}
