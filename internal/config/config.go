// Package config handles terrain generator configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/midgard-terrain/pkg/heightmap"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain" toml:"terrain"`
	Export  ExportConfig  `yaml:"export" toml:"export"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// TerrainConfig holds heightmap synthesis settings.
type TerrainConfig struct {
	Size         int     `yaml:"size" toml:"size"` // 2^n+1
	Roughness    float32 `yaml:"roughness" toml:"roughness"`
	InitialScale float32 `yaml:"initial_scale" toml:"initial_scale"`
	CornerHeight float32 `yaml:"corner_height" toml:"corner_height"`
	Seed         uint64  `yaml:"seed" toml:"seed"` // 0 = derive from clock
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	XScale      float32 `yaml:"x_scale" toml:"x_scale"`
	YScale      float32 `yaml:"y_scale" toml:"y_scale"`
	HeightScale float32 `yaml:"height_scale" toml:"height_scale"`
	Normals     bool    `yaml:"normals" toml:"normals"`
	TexCoords   bool    `yaml:"tex_coords" toml:"tex_coords"`
	Output      string  `yaml:"output" toml:"output"`   // "-" = stdout
	Workers     int     `yaml:"workers" toml:"workers"` // 0 = GOMAXPROCS
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Size:         257,
			Roughness:    1.0,
			InitialScale: 1.0,
			CornerHeight: 1.0,
			Seed:         0,
		},
		Export: ExportConfig{
			XScale:      4.0,
			YScale:      4.0,
			HeightScale: 1.0,
			Normals:     true,
			TexCoords:   true,
			Output:      "terrain.obj",
			Workers:     0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the config describes a run that can complete.
func (c *Config) Validate() error {
	if !heightmap.ValidSize(c.Terrain.Size) {
		return fmt.Errorf("%w: terrain.size %d is not 2^n+1", ErrInvalidConfig, c.Terrain.Size)
	}
	for name, v := range map[string]float32{
		"terrain.roughness":     c.Terrain.Roughness,
		"terrain.initial_scale": c.Terrain.InitialScale,
		"terrain.corner_height": c.Terrain.CornerHeight,
		"export.x_scale":        c.Export.XScale,
		"export.y_scale":        c.Export.YScale,
		"export.height_scale":   c.Export.HeightScale,
	} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	if c.Export.XScale == 0 || c.Export.YScale == 0 {
		return fmt.Errorf("%w: export.x_scale and export.y_scale must be non-zero", ErrInvalidConfig)
	}
	if c.Export.Output == "" {
		return fmt.Errorf("%w: export.output is empty", ErrInvalidConfig)
	}
	if c.Export.Workers < 0 {
		return fmt.Errorf("%w: export.workers %d is negative", ErrInvalidConfig, c.Export.Workers)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	return nil
}
