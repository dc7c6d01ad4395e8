package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/heightmap"
)

func newGenerateCmd() *cobra.Command {
	var flags *config.Flags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a heightmap and export it as OBJ",
		Example: `  terraingen generate -s 257 -o terrain.obj
  terraingen generate --seed 42 --roughness 1.2 --normals=false -o -
  terraingen generate -c terrain.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}

			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()

			return runGenerate(cfg, cmd.OutOrStdout())
		},
	}

	flags = config.RegisterFlags(cmd.Flags())
	return cmd
}

func runGenerate(cfg *config.Config, stdout io.Writer) error {
	start := time.Now()

	seed := cfg.Terrain.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		logger.Info("seed derived from clock", zap.Uint64("seed", seed))
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	params := heightmap.Params{
		Roughness:    cfg.Terrain.Roughness,
		InitialScale: cfg.Terrain.InitialScale,
		CornerHeight: cfg.Terrain.CornerHeight,
	}
	gen := heightmap.NewGenerator(heightmap.NewPCGSource(seed), params,
		heightmap.WithLogger(logger.Named("heightmap")))

	grid, err := gen.Generate(cfg.Terrain.Size)
	if err != nil {
		return fmt.Errorf("generating heightmap: %w", err)
	}
	if err := grid.CheckFinite(); err != nil {
		return fmt.Errorf("generating heightmap: %w", err)
	}
	lo, hi := grid.Range()
	logger.Info("heightmap generated",
		zap.Int("size", grid.Size()),
		zap.Float32("min", lo),
		zap.Float32("max", hi),
		zap.Duration("elapsed", time.Since(start)),
	)

	opts := terrain.Options{
		XScale:      cfg.Export.XScale,
		YScale:      cfg.Export.YScale,
		HeightScale: cfg.Export.HeightScale,
		Normals:     cfg.Export.Normals,
		TexCoords:   cfg.Export.TexCoords,
		Workers:     cfg.Export.Workers,
		Header: []string{
			"terraingen " + version,
			fmt.Sprintf("size %d roughness %g seed %d", cfg.Terrain.Size, cfg.Terrain.Roughness, seed),
		},
	}

	exporter := terrain.NewExporter(opts, logger.Named("terrain"))
	mesh, err := exportTo(cfg.Export.Output, stdout, func(w io.Writer) (*terrain.Mesh, error) {
		return exporter.Export(w, grid)
	})
	if err != nil {
		return err
	}

	logger.Info("mesh exported",
		zap.String("output", cfg.Export.Output),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)),
		zap.Any("bounds_min", mesh.Bounds.Min),
		zap.Any("bounds_max", mesh.Bounds.Max),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// exportTo writes the mesh to path, or to stdout when path is "-". File
// output goes to a temporary file that replaces path only once every
// record is written, so a failed export leaves no partial mesh behind.
func exportTo(path string, stdout io.Writer, export func(io.Writer) (*terrain.Mesh, error)) (*terrain.Mesh, error) {
	if path == "-" {
		return export(stdout)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	tmp := f.Name()

	mesh, err := export(f)
	if err == nil {
		err = f.Chmod(0644)
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("removing partial output", zap.String("path", tmp), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return mesh, nil
}
