package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/voxel-terrain/internal/world"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
)

func testLayout(t *testing.T, s gen.Sampler) *world.Layout {
	t.Helper()
	l, err := world.BuildWorld(s, chunk.MustDims(4, 4), 2, 1, nil)
	require.NoError(t, err)
	return l
}

func newStorage(t *testing.T, compress bool) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), compress, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return s
}

func readTile(t *testing.T, s *Storage, e TileEntry) string {
	t.Helper()
	rc, err := s.OpenTile(e)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestSaveLayout(t *testing.T) {
	s := newStorage(t, false)
	l := testLayout(t, gen.Flat{Height: 1})

	m, err := s.SaveLayout(l, BuildInfo{Seed: 9, Noise: "opensimplex"})
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(m.BuildID))
	assert.Equal(t, int64(9), m.Seed)
	assert.Equal(t, 4, m.ChunkWidth)
	assert.Equal(t, 2, m.GridWidth)
	assert.Equal(t, 1, m.GridDepth)
	assert.False(t, m.Compressed)
	require.Len(t, m.Tiles, 2)

	e := m.Tiles[1]
	assert.Equal(t, TilePos{X: 1, Z: 0}, e.TilePos)
	assert.Equal(t, [3]float32{4, 0, 0}, e.Offset)
	assert.Equal(t, "tiles/tile_1_0.obj", e.File)
	assert.Equal(t, "#008000", e.Color)
	assert.Equal(t, l.Tiles[1].Mesh.VertexCount(), e.Vertices)

	obj := readTile(t, s, e)
	assert.True(t, strings.HasPrefix(obj, "o tile_1_0\n"))
	assert.Equal(t, e.Vertices, strings.Count(obj, "\nv "))
	assert.Equal(t, e.Indices/3, strings.Count(obj, "\nf "))
	// Positions are written in world space.
	assert.Contains(t, obj, "\nv 7.5 ")
	assert.NotContains(t, obj, "\nv -0.5 ")
	assert.Contains(t, readTile(t, s, m.Tiles[0]), "\nv -0.5 ")

	loaded, err := s.LoadManifest()
	require.NoError(t, err)
	assert.Equal(t, m.BuildID, loaded.BuildID)
	assert.Equal(t, m.Tiles, loaded.Tiles)

	_, err = os.Stat(filepath.Join(s.Dir(), ManifestFile+".tmp"))
	assert.True(t, os.IsNotExist(err), "temp file removed")
}

func TestSaveLayoutCompressed(t *testing.T) {
	s := newStorage(t, true)
	l := testLayout(t, gen.Flat{Height: 2})

	m, err := s.SaveLayout(l, BuildInfo{Seed: 1})
	require.NoError(t, err)
	assert.True(t, m.Compressed)
	require.Len(t, m.Tiles, 2)

	for _, e := range m.Tiles {
		assert.True(t, strings.HasSuffix(e.File, ".obj.zst"), e.File)

		raw, err := os.ReadFile(filepath.Join(s.Dir(), e.File))
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(string(raw), "o "), "file is compressed")

		obj := readTile(t, s, e)
		assert.Equal(t, e.Vertices, strings.Count(obj, "\nv "))
	}
}

func TestSaveLayoutRecordsFailedTiles(t *testing.T) {
	s := newStorage(t, false)
	l := testLayout(t, gen.SamplerFunc(func(x, y, z int) bool {
		if x >= 4 {
			panic("boom")
		}
		return y == 0
	}))
	require.Len(t, l.Failed, 1)

	m, err := s.SaveLayout(l, BuildInfo{})
	require.NoError(t, err)
	assert.Len(t, m.Tiles, 1)
	assert.Equal(t, []TilePos{{X: 1, Z: 0}}, m.Failed)
}

func TestNilLogger(t *testing.T) {
	s, err := New(t.TempDir(), false, nil)
	require.NoError(t, err)

	m, err := s.SaveLayout(testLayout(t, gen.Flat{Height: 1}), BuildInfo{})
	require.NoError(t, err)
	assert.Len(t, m.Tiles, 2)
}

func TestLoadManifestMissing(t *testing.T) {
	s := newStorage(t, false)
	_, err := s.LoadManifest()
	assert.Error(t, err)
}
