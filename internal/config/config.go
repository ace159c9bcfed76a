package config

import (
	"fmt"
	"image/color"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
)

// Generator types.
const (
	GeneratorDensity = "density"
	GeneratorFlat    = "flat"
)

// Config holds the terrain build configuration.
type Config struct {
	Seed           int64   `yaml:"seed"` // 0 = pick a random seed
	Noise          string  `yaml:"noise"`
	Frequency      float64 `yaml:"frequency"`
	GeneratorType  string  `yaml:"generator"`
	FlatHeight     int     `yaml:"flat_height"`
	GenerateHeight int     `yaml:"generate_height"` // solid cells only below this y (0 = full height)
	Caves          bool    `yaml:"caves"`

	ChunkWidth  int `yaml:"chunk_width"`
	ChunkHeight int `yaml:"chunk_height"`
	GridWidth   int `yaml:"grid_width"`
	GridDepth   int `yaml:"grid_depth"`
	Workers     int `yaml:"workers"` // 0 = one per CPU

	Material string `yaml:"material"` // #rrggbb

	OutputDir   string `yaml:"output_dir"` // empty = no export
	Compress    bool   `yaml:"compress"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns 16×256×16 chunks filled up to half height with
// OpenSimplex noise at frequency 16.
func DefaultConfig() *Config {
	return &Config{
		Noise:          gen.BackendOpenSimplex,
		Frequency:      gen.DefaultFrequency,
		GeneratorType:  GeneratorDensity,
		FlatHeight:     4,
		GenerateHeight: 128,
		ChunkWidth:     16,
		ChunkHeight:    256,
		GridWidth:      4,
		GridDepth:      4,
		Material:       "#008000",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["frequency"] {
		cfg.Frequency = fromFile.Frequency
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["flat-height"] {
		cfg.FlatHeight = fromFile.FlatHeight
	}
	if !explicitFlags["generate-height"] {
		cfg.GenerateHeight = fromFile.GenerateHeight
	}
	if !explicitFlags["caves"] {
		cfg.Caves = fromFile.Caves
	}
	if !explicitFlags["chunk-width"] {
		cfg.ChunkWidth = fromFile.ChunkWidth
	}
	if !explicitFlags["chunk-height"] {
		cfg.ChunkHeight = fromFile.ChunkHeight
	}
	if !explicitFlags["grid-width"] {
		cfg.GridWidth = fromFile.GridWidth
	}
	if !explicitFlags["grid-depth"] {
		cfg.GridDepth = fromFile.GridDepth
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["material"] {
		cfg.Material = fromFile.Material
	}
	if !explicitFlags["out"] {
		cfg.OutputDir = fromFile.OutputDir
	}
	if !explicitFlags["compress"] {
		cfg.Compress = fromFile.Compress
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
}

// Validate checks the config for values the builder cannot use.
func (c *Config) Validate() error {
	if _, err := c.Dims(); err != nil {
		return err
	}
	if c.GridWidth <= 0 || c.GridDepth <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.GridWidth, c.GridDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.GeneratorType {
	case GeneratorDensity, GeneratorFlat:
	default:
		return fmt.Errorf("unknown generator %q", c.GeneratorType)
	}
	if c.GeneratorType == GeneratorDensity || c.Caves {
		if _, err := gen.NewNoise(c.Noise, 0); err != nil {
			return err
		}
	}
	if _, err := c.MaterialColor(); err != nil {
		return err
	}
	return nil
}

// Dims returns the validated chunk extents.
func (c *Config) Dims() (chunk.Dims, error) {
	return chunk.NewDims(c.ChunkWidth, c.ChunkHeight)
}

// Sampler builds the density sampler described by the config for the given seed.
func (c *Config) Sampler(seed int64) (gen.Sampler, error) {
	var s gen.Sampler
	switch c.GeneratorType {
	case GeneratorFlat:
		s = gen.Flat{Height: c.FlatHeight}
	case GeneratorDensity:
		n, err := gen.NewNoise(c.Noise, seed)
		if err != nil {
			return nil, err
		}
		s = gen.NewDensitySampler(n, c.Frequency)
	default:
		return nil, fmt.Errorf("unknown generator %q", c.GeneratorType)
	}
	if c.Caves {
		caves, err := gen.NewCaves(s, c.Noise, seed)
		if err != nil {
			return nil, err
		}
		s = caves
	}
	if c.GenerateHeight > 0 {
		s = gen.Ceiling{Sampler: s, MaxY: c.GenerateHeight}
	}
	return s, nil
}

// MaterialColor parses the #rrggbb material colour.
func (c *Config) MaterialColor() (color.RGBA, error) {
	var r, g, b uint8
	if len(c.Material) != 7 {
		return color.RGBA{}, fmt.Errorf("material %q: want #rrggbb", c.Material)
	}
	if _, err := fmt.Sscanf(c.Material, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("material %q: %w", c.Material, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
