package world

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/metrics"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/mesh"
)

// ErrNoTiles is returned by Build when every chunk failed.
var ErrNoTiles = errors.New("no chunk could be built")

// Offset returns the world-space translation of the chunk at pos: (X*W, 0, Z*W).
func Offset(pos ChunkPos, d chunk.Dims) mgl32.Vec3 {
	return mgl32.Vec3{float32(pos.X * d.Width), 0, float32(pos.Z * d.Width)}
}

// Tile is one meshed chunk placed in the world.
type Tile struct {
	Pos      ChunkPos
	Offset   mgl32.Vec3
	Mesh     *mesh.Buffer // chunk-local, base 0
	Collider *mesh.TriMesh
	Material Material
}

// Layout is a grid of independently meshed tiles.
type Layout struct {
	Dims   chunk.Dims
	Width  int
	Depth  int
	Tiles  []Tile     // ordered by X, then Z
	Failed []ChunkPos // tiles skipped because they panicked
}

// Faces returns the total quad count over all tiles.
func (l *Layout) Faces() int {
	n := 0
	for i := range l.Tiles {
		n += l.Tiles[i].Mesh.FaceCount()
	}
	return n
}

// Merge concatenates every tile into one world-space buffer.
func (l *Layout) Merge() *mesh.Buffer {
	out := &mesh.Buffer{}
	for i := range l.Tiles {
		t := &l.Tiles[i]
		out.Append(t.Mesh.Translated(t.Offset))
	}
	return out
}

// BuilderOptions configures a Builder. Zero values pick defaults.
type BuilderOptions struct {
	Workers  int // 0 = runtime.NumCPU()
	Material Material
	Metrics  *metrics.Collector
}

// Builder generates and meshes a grid of chunks on a worker pool.
type Builder struct {
	terrain  *Terrain
	mesher   *mesh.Mesher
	workers  int
	material Material
	metrics  *metrics.Collector
	log      *slog.Logger
}

// NewBuilder creates a Builder over t.
func NewBuilder(t *Terrain, log *slog.Logger, opts BuilderOptions) (*Builder, error) {
	m, err := mesh.NewMesher(t.Dims())
	if err != nil {
		return nil, fmt.Errorf("create builder: %w", err)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("create builder: workers must not be negative, got %d", opts.Workers)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Material == (Material{}) {
		opts.Material = DefaultMaterial()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		terrain:  t,
		mesher:   m,
		workers:  opts.Workers,
		material: opts.Material,
		metrics:  opts.Metrics,
		log:      log,
	}, nil
}

// Terrain returns the chunk cache the builder reads from.
func (b *Builder) Terrain() *Terrain {
	return b.terrain
}

// Build generates and meshes every chunk in [0,gridW) × [0,gridD). A chunk that
// panics is skipped and its position recorded in Failed. If no chunk succeeds
// Build returns ErrNoTiles.
func (b *Builder) Build(gridW, gridD int) (*Layout, error) {
	if gridW <= 0 || gridD <= 0 {
		return nil, fmt.Errorf("build layout: grid must be at least 1x1, got %dx%d", gridW, gridD)
	}

	start := time.Now()
	results := make([]*Tile, gridW*gridD)

	pool := pond.NewPool(b.workers)
	for gx := 0; gx < gridW; gx++ {
		for gz := 0; gz < gridD; gz++ {
			slot := gx*gridD + gz
			pos := ChunkPos{X: gx, Z: gz}
			pool.Submit(func() {
				results[slot] = b.buildTile(pos)
			})
		}
	}
	pool.StopAndWait()

	l := &Layout{
		Dims:  b.terrain.Dims(),
		Width: gridW,
		Depth: gridD,
		Tiles: make([]Tile, 0, len(results)),
	}
	for slot, t := range results {
		if t == nil {
			l.Failed = append(l.Failed, ChunkPos{X: slot / gridD, Z: slot % gridD})
			continue
		}
		l.Tiles = append(l.Tiles, *t)
	}

	b.log.Info("layout built",
		"grid", fmt.Sprintf("%dx%d", gridW, gridD),
		"dims", l.Dims,
		"tiles", len(l.Tiles),
		"failed", len(l.Failed),
		"faces", l.Faces(),
		"took", time.Since(start),
	)
	if len(l.Tiles) == 0 {
		return nil, fmt.Errorf("build layout %dx%d: %w", gridW, gridD, ErrNoTiles)
	}
	return l, nil
}

// buildTile returns nil if the chunk panicked.
func (b *Builder) buildTile(pos ChunkPos) (tile *Tile) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("chunk build failed", "x", pos.X, "z", pos.Z, "error", r)
			b.metrics.ChunkFailed()
			tile = nil
		}
	}()

	c := b.terrain.GetOrGenerateChunk(pos.X, pos.Z)
	buf := b.mesher.Build(c, 0)
	collider, err := mesh.NewTriMesh(buf)
	if err != nil {
		panic(err)
	}

	b.metrics.ChunkBuilt(buf.FaceCount(), time.Since(start))
	b.log.Debug("chunk built", "x", pos.X, "z", pos.Z, "solid", c.SolidCount(), "faces", buf.FaceCount())
	return &Tile{
		Pos:      pos,
		Offset:   Offset(pos, c.Dims()),
		Mesh:     buf,
		Collider: collider,
		Material: b.material,
	}
}

// BuildWorld generates and meshes a gridW × gridD world from s with default options.
func BuildWorld(s gen.Sampler, d chunk.Dims, gridW, gridD int, log *slog.Logger) (*Layout, error) {
	b, err := NewBuilder(NewTerrain(d, s), log, BuilderOptions{})
	if err != nil {
		return nil, err
	}
	return b.Build(gridW, gridD)
}
