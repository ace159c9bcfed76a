package world

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/voxel-terrain/internal/metrics"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/mesh"
)

func newBuilder(t *testing.T, d chunk.Dims, s gen.Sampler, opts BuilderOptions) *Builder {
	t.Helper()
	b, err := NewBuilder(NewTerrain(d, s), nil, opts)
	require.NoError(t, err)
	return b
}

func TestOffset(t *testing.T) {
	d := chunk.MustDims(16, 256)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, Offset(ChunkPos{0, 0}, d))
	assert.Equal(t, mgl32.Vec3{32, 0, 48}, Offset(ChunkPos{2, 3}, d))
	assert.Equal(t, mgl32.Vec3{-16, 0, 0}, Offset(ChunkPos{-1, 0}, d))
}

func TestBuildFlatGrid(t *testing.T) {
	d := chunk.MustDims(4, 8)
	b := newBuilder(t, d, gen.Flat{Height: 1}, BuilderOptions{Workers: 2})

	l, err := b.Build(3, 2)
	require.NoError(t, err)
	require.Len(t, l.Tiles, 6)
	assert.Empty(t, l.Failed)
	assert.Equal(t, 3, l.Width)
	assert.Equal(t, 2, l.Depth)

	want := []ChunkPos{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}
	for i, tile := range l.Tiles {
		assert.Equal(t, want[i], tile.Pos)
		assert.Equal(t, Offset(tile.Pos, d), tile.Offset)
		assert.Equal(t, DefaultMaterial(), tile.Material)
		require.NoError(t, tile.Mesh.Validate(0))

		// A 4x1x4 slab: top + bottom 16 each, 4 sides of 4.
		assert.Equal(t, 48, tile.Mesh.FaceCount())
		require.NotNil(t, tile.Collider)
		assert.Len(t, tile.Collider.Triangles, tile.Mesh.TriangleCount())
	}
	assert.Equal(t, 6*48, l.Faces())
}

func TestBuildMatchesStandaloneMeshing(t *testing.T) {
	d := chunk.MustDims(8, 16)
	n, err := gen.NewNoise(gen.BackendOpenSimplex, 7)
	require.NoError(t, err)
	s := gen.NewDensitySampler(n, 0)

	l, err := newBuilder(t, d, s, BuilderOptions{Workers: 4}).Build(2, 2)
	require.NoError(t, err)

	for _, tile := range l.Tiles {
		tr := NewTerrain(d, s)
		c := gen.NewChunk(d, s, tr.Origin(tile.Pos))
		want := mesh.Build(c)
		assert.Equal(t, want, tile.Mesh, "tile %v", tile.Pos)
	}
}

func TestBuildDeterministic(t *testing.T) {
	d := chunk.MustDims(8, 16)
	build := func() *Layout {
		n, err := gen.NewNoise(gen.BackendSimplex, 42)
		require.NoError(t, err)
		l, err := newBuilder(t, d, gen.NewDensitySampler(n, 0), BuilderOptions{Workers: 3}).Build(2, 3)
		require.NoError(t, err)
		return l
	}
	a, b := build(), build()
	assert.Equal(t, a.Merge(), b.Merge())
}

func TestBuildSkipsPanickingChunk(t *testing.T) {
	d := chunk.MustDims(4, 4)
	s := gen.SamplerFunc(func(x, y, z int) bool {
		if x >= 4 && x < 8 && z < 4 {
			panic("bad sample")
		}
		return y == 0
	})
	reg := prometheus.NewRegistry()
	col := metrics.New(reg)

	l, err := newBuilder(t, d, s, BuilderOptions{Workers: 2, Metrics: col}).Build(2, 2)
	require.NoError(t, err)

	assert.Equal(t, []ChunkPos{{X: 1, Z: 0}}, l.Failed)
	require.Len(t, l.Tiles, 3)
	for _, tile := range l.Tiles {
		assert.NotEqual(t, ChunkPos{X: 1, Z: 0}, tile.Pos)
		assert.Equal(t, 16+16+4*4, tile.Mesh.FaceCount())
	}

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP voxel_chunks_built_total Chunks generated and meshed.
# TYPE voxel_chunks_built_total counter
voxel_chunks_built_total 3
# HELP voxel_chunks_failed_total Chunks skipped because generation or meshing failed.
# TYPE voxel_chunks_failed_total counter
voxel_chunks_failed_total 1
`), "voxel_chunks_built_total", "voxel_chunks_failed_total")
	assert.NoError(t, err)
}

func TestBuildFailsWhenEveryChunkPanics(t *testing.T) {
	s := gen.SamplerFunc(func(_, _, _ int) bool { panic("bad sample") })
	reg := prometheus.NewRegistry()

	l, err := newBuilder(t, chunk.MustDims(4, 4), s, BuilderOptions{Metrics: metrics.New(reg)}).Build(2, 2)
	require.ErrorIs(t, err, ErrNoTiles)
	assert.Nil(t, l)

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP voxel_chunks_failed_total Chunks skipped because generation or meshing failed.
# TYPE voxel_chunks_failed_total counter
voxel_chunks_failed_total 4
`), "voxel_chunks_failed_total")
	assert.NoError(t, err)
}

func TestBuildRejectsEmptyGrid(t *testing.T) {
	b := newBuilder(t, chunk.MustDims(4, 4), gen.Flat{}, BuilderOptions{})
	_, err := b.Build(0, 3)
	assert.Error(t, err)
	_, err = b.Build(3, -1)
	assert.Error(t, err)
}

func TestNewBuilderRejectsNegativeWorkers(t *testing.T) {
	_, err := NewBuilder(NewTerrain(chunk.MustDims(4, 4), gen.Flat{}), nil, BuilderOptions{Workers: -1})
	assert.Error(t, err)
}

func TestCustomMaterial(t *testing.T) {
	m := Material{Name: "sand"}
	m.Color.R, m.Color.G, m.Color.B, m.Color.A = 0xC2, 0xB2, 0x80, 0xFF
	l, err := newBuilder(t, chunk.MustDims(4, 4), gen.Flat{Height: 1}, BuilderOptions{Material: m}).Build(1, 1)
	require.NoError(t, err)
	assert.Equal(t, m, l.Tiles[0].Material)
}

func TestMergeTranslatesAndRebases(t *testing.T) {
	d := chunk.MustDims(4, 4)
	// One solid cell at local (1,1,1) of every chunk.
	s := gen.SamplerFunc(func(x, y, z int) bool {
		return floorMod(x, 4) == 1 && y == 1 && floorMod(z, 4) == 1
	})
	l, err := BuildWorld(s, d, 2, 1, nil)
	require.NoError(t, err)
	require.Len(t, l.Tiles, 2)

	merged := l.Merge()
	require.NoError(t, merged.Validate(0))
	assert.Equal(t, 48, merged.VertexCount())
	assert.Equal(t, 72, len(merged.Indices))

	first := l.Tiles[0].Mesh
	for i, idx := range merged.Indices[len(first.Indices):] {
		assert.Equal(t, first.Indices[i]+uint32(first.VertexCount()), idx)
	}
	for i, p := range merged.Positions[first.VertexCount():] {
		assert.Equal(t, first.Positions[i].Add(mgl32.Vec3{4, 0, 0}), p)
	}
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
