package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Only flags the user actually set
// override file values.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath  string
	Debug       bool
	Size        int
	Roughness   float32
	Seed        uint64
	XScale      float32
	YScale      float32
	HeightScale float32
	Normals     bool
	TexCoords   bool
	Output      string
	Workers     int
	LogFile     string
}

// RegisterFlags defines the generator flags on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (.yaml or .toml)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVarP(&f.Size, "size", "s", 0, "Grid size (2^n+1)")
	fs.Float32VarP(&f.Roughness, "roughness", "r", 0, "Displacement decay exponent")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random seed (0 = derive from clock)")
	fs.Float32Var(&f.XScale, "x-scale", 0, "Horizontal X scale")
	fs.Float32Var(&f.YScale, "y-scale", 0, "Horizontal Y scale")
	fs.Float32Var(&f.HeightScale, "height-scale", 0, "Height scale")
	fs.BoolVar(&f.Normals, "normals", true, "Write vertex normals")
	fs.BoolVar(&f.TexCoords, "texcoords", true, "Write texture coordinates")
	fs.StringVarP(&f.Output, "output", "o", "", "Output OBJ path (- for stdout)")
	fs.IntVar(&f.Workers, "workers", 0, "Export worker count (0 = GOMAXPROCS)")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to a rotated file")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	changed := func(name string) bool {
		return f.fs != nil && f.fs.Changed(name)
	}

	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if changed("size") {
		cfg.Terrain.Size = f.Size
	}
	if changed("roughness") {
		cfg.Terrain.Roughness = f.Roughness
	}
	if changed("seed") {
		cfg.Terrain.Seed = f.Seed
	}
	if changed("x-scale") {
		cfg.Export.XScale = f.XScale
	}
	if changed("y-scale") {
		cfg.Export.YScale = f.YScale
	}
	if changed("height-scale") {
		cfg.Export.HeightScale = f.HeightScale
	}
	if changed("normals") {
		cfg.Export.Normals = f.Normals
	}
	if changed("texcoords") {
		cfg.Export.TexCoords = f.TexCoords
	}
	if changed("output") {
		cfg.Export.Output = f.Output
	}
	if changed("workers") {
		cfg.Export.Workers = f.Workers
	}
	if changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
}
