package world

import (
	"sync"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"
	"github.com/OCharnyshevich/voxel-terrain/pkg/world/gen"
)

// ChunkPos is a chunk's grid coordinate on the horizontal plane.
type ChunkPos struct {
	X, Z int
}

// Terrain caches chunks generated from a single sampler.
type Terrain struct {
	mu      sync.RWMutex
	dims    chunk.Dims
	sampler gen.Sampler
	chunks  map[ChunkPos]*chunk.Chunk
}

// NewTerrain creates an empty Terrain. Every chunk it produces has extents d.
func NewTerrain(d chunk.Dims, s gen.Sampler) *Terrain {
	return &Terrain{
		dims:    d,
		sampler: s,
		chunks:  make(map[ChunkPos]*chunk.Chunk),
	}
}

// Dims returns the shared chunk extents.
func (t *Terrain) Dims() chunk.Dims {
	return t.dims
}

// Origin returns the world-space voxel coordinate of the chunk's (0, 0, 0) cell.
func (t *Terrain) Origin(pos ChunkPos) chunk.Pos {
	return chunk.Pos{X: pos.X * t.dims.Width, Z: pos.Z * t.dims.Width}
}

// GetOrGenerateChunk returns the chunk at (cx, cz), generating and caching it if needed.
// Generation runs outside the lock; if two callers race, the first stored chunk wins.
func (t *Terrain) GetOrGenerateChunk(cx, cz int) *chunk.Chunk {
	pos := ChunkPos{X: cx, Z: cz}

	t.mu.RLock()
	if c, ok := t.chunks[pos]; ok {
		t.mu.RUnlock()
		return c
	}
	t.mu.RUnlock()

	c := gen.NewChunk(t.dims, t.sampler, t.Origin(pos))

	t.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := t.chunks[pos]; ok {
		t.mu.Unlock()
		return existing
	}
	t.chunks[pos] = c
	t.mu.Unlock()
	return c
}

// Cached reports how many chunks have been generated.
func (t *Terrain) Cached() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.chunks)
}

// VoxelAt returns the voxel at a world coordinate. Cells above or below the
// chunk height are air.
func (t *Terrain) VoxelAt(x, y, z int) chunk.VoxelID {
	if y < 0 || y >= t.dims.Height {
		return chunk.Air
	}
	w := t.dims.Width
	cx, cz := floorDiv(x, w), floorDiv(z, w)
	c := t.GetOrGenerateChunk(cx, cz)
	return c.Get(x-cx*w, y, z-cz*w)
}

// SpawnHeight returns the y just above the highest solid voxel in column (x, z),
// or 0 if the column is empty.
func (t *Terrain) SpawnHeight(x, z int) int {
	for y := t.dims.Height - 1; y >= 0; y-- {
		if t.VoxelAt(x, y, z) != chunk.Air {
			return y + 1
		}
	}
	return 0
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
