package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"
)

// Mesher turns chunks of a fixed size into face-culled geometry.
//
// A face is emitted when the neighbouring cell is outside the chunk or is air,
// and suppressed only when the neighbour is inside the chunk and solid. Chunks
// never look into their neighbours, so two solid chunks that touch both draw
// the shared wall.
type Mesher struct {
	dims chunk.Dims
}

// NewMesher validates dims against the uint32 index width.
func NewMesher(d chunk.Dims) (*Mesher, error) {
	if _, err := chunk.NewDims(d.Width, d.Height); err != nil {
		return nil, fmt.Errorf("new mesher: %w", err)
	}
	return &Mesher{dims: d}, nil
}

// Dims returns the chunk extents this mesher accepts.
func (m *Mesher) Dims() chunk.Dims {
	return m.dims
}

// Build meshes c with indices starting at base, so the result can follow base
// vertices already held by the caller. Positions are chunk-local with each
// voxel centred on its integer coordinate.
func (m *Mesher) Build(c *chunk.Chunk, base uint32) *Buffer {
	if c.Dims() != m.dims {
		panic(fmt.Sprintf("mesh: chunk %s does not match mesher %s", c.Dims(), m.dims))
	}

	faces := CountFaces(c)
	if uint64(base)+uint64(faces)*4 > math.MaxUint32+1 {
		panic(fmt.Sprintf("mesh: %d faces at base %d overflow uint32 indices", faces, base))
	}

	b := newBuffer(faces)
	cursor := base
	forEachVisibleFace(c, func(x, y, z int, f *Face) {
		centre := mgl32.Vec3{float32(x), float32(y), float32(z)}
		for i := 0; i < 4; i++ {
			b.Positions = append(b.Positions, centre.Add(f.Corners[i]))
			b.Normals = append(b.Normals, f.Normal)
			b.UVs = append(b.UVs, f.UVs[i])
		}
		for _, qi := range quadIndices {
			b.Indices = append(b.Indices, cursor+qi)
		}
		cursor += 4
	})
	return b
}

// Build meshes c from index 0.
func Build(c *chunk.Chunk) *Buffer {
	m := &Mesher{dims: c.Dims()}
	return m.Build(c, 0)
}

// CountFaces returns how many quads Build would emit for c.
func CountFaces(c *chunk.Chunk) int {
	n := 0
	forEachVisibleFace(c, func(int, int, int, *Face) { n++ })
	return n
}

// FaceVisible reports whether the solid cell (x, y, z) exposes face f.
func FaceVisible(c *chunk.Chunk, x, y, z int, f *Face) bool {
	nx, ny, nz := x+f.Dir[0], y+f.Dir[1], z+f.Dir[2]
	if !c.Dims().InBounds(nx, ny, nz) {
		return true
	}
	return !c.IsSolid(nx, ny, nz)
}

func forEachVisibleFace(c *chunk.Chunk, fn func(x, y, z int, f *Face)) {
	d := c.Dims()
	for x := 0; x < d.Width; x++ {
		for y := 0; y < d.Height; y++ {
			for z := 0; z < d.Width; z++ {
				if !c.IsSolid(x, y, z) {
					continue
				}
				for i := range Faces {
					if FaceVisible(c, x, y, z, &Faces[i]) {
						fn(x, y, z, &Faces[i])
					}
				}
			}
		}
	}
}
