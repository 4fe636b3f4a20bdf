package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"geomeasure/internal/units"
)

// Config holds all application configuration.
type Config struct {
	Units UnitsConfig `mapstructure:"units"`
	Map   MapConfig   `mapstructure:"map"`
	Log   LogConfig   `mapstructure:"log"`
}

type UnitsConfig struct {
	Distance string `mapstructure:"distance"`
	Angle    string `mapstructure:"angle"`
}

// DistanceUnit returns the configured distance unit. Validate has already
// rejected unknown names.
func (u UnitsConfig) DistanceUnit() units.DistanceUnit {
	d, _ := units.ParseDistanceUnit(u.Distance)
	return d
}

func (u UnitsConfig) AngleUnit() units.AngleUnit {
	a, _ := units.ParseAngleUnit(u.Angle)
	return a
}

// MapConfig is the initial viewport of an empty map.
type MapConfig struct {
	CenterLon float64 `mapstructure:"center_lon"`
	CenterLat float64 `mapstructure:"center_lat"`
	SpanDeg   float64 `mapstructure:"span_deg"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from defaults, an optional geomeasure.yaml and
// GEOMEASURE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("units.distance", "km")
	v.SetDefault("units.angle", "deg")
	v.SetDefault("map.center_lon", 16.62)
	v.SetDefault("map.center_lat", 49.19)
	v.SetDefault("map.span_deg", 0.1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "geomeasure.log"))

	v.SetConfigName("geomeasure")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "geomeasure"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// GEOMEASURE_UNITS_DISTANCE -> units.distance
	v.SetEnvPrefix("GEOMEASURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	var errs []string

	if _, err := units.ParseDistanceUnit(c.Units.Distance); err != nil {
		errs = append(errs, "units.distance: "+err.Error())
	}
	if _, err := units.ParseAngleUnit(c.Units.Angle); err != nil {
		errs = append(errs, "units.angle: "+err.Error())
	}
	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("map.center_lon must be in [-180, 180], got %g", c.Map.CenterLon))
	}
	if c.Map.CenterLat < -85 || c.Map.CenterLat > 85 {
		errs = append(errs, fmt.Sprintf("map.center_lat must be in [-85, 85], got %g", c.Map.CenterLat))
	}
	if c.Map.SpanDeg <= 0 || c.Map.SpanDeg > 180 {
		errs = append(errs, fmt.Sprintf("map.span_deg must be in (0, 180], got %g", c.Map.SpanDeg))
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil || lvl == zerolog.NoLevel {
		errs = append(errs, fmt.Sprintf("log.level must be one of trace, debug, info, warn, error, fatal, panic, disabled, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Log.File == "" {
		errs = append(errs, "log.file is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
