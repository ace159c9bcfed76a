package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/metrics"
	"github.com/OCharnyshevich/voxel-terrain/internal/storage"
	"github.com/OCharnyshevich/voxel-terrain/internal/world"
)

func main() {
	cfg := config.DefaultConfig()

	configSrc := flag.String("config", "", "YAML config file or go-getter URL")
	debug := flag.Bool("debug", false, "log every chunk")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "noise seed (0 = random)")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise backend: opensimplex or simplex")
	flag.Float64Var(&cfg.Frequency, "frequency", cfg.Frequency, "noise coordinate divisor")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "generator: density or flat")
	flag.IntVar(&cfg.FlatHeight, "flat-height", cfg.FlatHeight, "solid layers for the flat generator")
	flag.IntVar(&cfg.GenerateHeight, "generate-height", cfg.GenerateHeight, "no solid voxels at or above this y (0 = full height)")
	flag.BoolVar(&cfg.Caves, "caves", cfg.Caves, "carve caves out of the terrain")
	flag.IntVar(&cfg.ChunkWidth, "chunk-width", cfg.ChunkWidth, "chunk width and depth in voxels")
	flag.IntVar(&cfg.ChunkHeight, "chunk-height", cfg.ChunkHeight, "chunk height in voxels")
	flag.IntVar(&cfg.GridWidth, "grid-width", cfg.GridWidth, "chunks along x")
	flag.IntVar(&cfg.GridDepth, "grid-depth", cfg.GridDepth, "chunks along z")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "chunk workers (0 = one per CPU)")
	flag.StringVar(&cfg.Material, "material", cfg.Material, "tile colour as #rrggbb")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "export directory (empty = no export)")
	flag.BoolVar(&cfg.Compress, "compress", cfg.Compress, "zstd-compress exported tiles")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics on this address after the build")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *configSrc != "" {
		if err := loadConfig(cfg, *configSrc, log); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if cfg.Seed == 0 {
		for cfg.Seed == 0 {
			cfg.Seed = rand.Int64()
		}
		log.Info("picked random seed", "seed", cfg.Seed)
	}

	if err := run(cfg, log); err != nil {
		log.Error("voxelgen failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(cfg *config.Config, src string, log *slog.Logger) error {
	tmp, err := os.MkdirTemp("", "voxelgen-config")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	path, err := config.Resolve(src, tmp)
	if err != nil {
		return err
	}
	fromFile, err := config.Load(path)
	if err != nil {
		return err
	}

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	config.Merge(cfg, fromFile, explicit)
	log.Info("loaded config", "source", src)
	return nil
}

func run(cfg *config.Config, log *slog.Logger) error {
	d, err := cfg.Dims()
	if err != nil {
		return err
	}
	sampler, err := cfg.Sampler(cfg.Seed)
	if err != nil {
		return err
	}
	color, err := cfg.MaterialColor()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	terrain := world.NewTerrain(d, sampler)
	builder, err := world.NewBuilder(terrain, log, world.BuilderOptions{
		Workers:  cfg.Workers,
		Material: world.Material{Name: "terrain", Color: color},
		Metrics:  metrics.New(reg),
	})
	if err != nil {
		return err
	}

	log.Info("building terrain",
		"seed", cfg.Seed,
		"generator", cfg.GeneratorType,
		"noise", cfg.Noise,
		"caves", cfg.Caves,
		"dims", d,
		"grid_width", cfg.GridWidth,
		"grid_depth", cfg.GridDepth,
	)
	layout, err := builder.Build(cfg.GridWidth, cfg.GridDepth)
	if err != nil {
		return err
	}
	if len(layout.Failed) > 0 {
		log.Warn("some chunks failed", "failed", len(layout.Failed), "built", len(layout.Tiles))
	}
	log.Info("spawn", "x", 0, "y", terrain.SpawnHeight(0, 0), "z", 0)

	if cfg.OutputDir != "" {
		st, err := storage.New(cfg.OutputDir, cfg.Compress, log)
		if err != nil {
			return err
		}
		if _, err := st.SaveLayout(layout, storage.BuildInfo{Seed: cfg.Seed, Noise: cfg.Noise}); err != nil {
			return err
		}
	}

	if cfg.MetricsAddr != "" {
		return serveMetrics(cfg.MetricsAddr, reg, log)
	}
	return nil
}

// serveMetrics blocks until SIGINT or SIGTERM.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	return srv.Shutdown(shutdownCtx)
}
