package chunk

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// VoxelID identifies a voxel's material. Zero is air.
type VoxelID uint16

const (
	Air   VoxelID = 0
	Solid VoxelID = 1
)

// VerticesPerVoxel is the worst case vertex count a single voxel can emit (6 faces × 4 corners).
const VerticesPerVoxel = 24

// ErrInvalidDims is returned when chunk extents cannot be used.
var ErrInvalidDims = errors.New("invalid chunk dimensions")

// Pos is an integer position, either chunk-local or in world space.
type Pos struct{ X, Y, Z int }

// Add returns p + q.
func (p Pos) Add(q Pos) Pos {
	return Pos{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Dims holds the extents shared by every chunk in a world: Width along x and z, Height along y.
type Dims struct {
	Width  int
	Height int
}

// NewDims validates the extents. The worst case vertex count of a chunk must fit a uint32 index.
func NewDims(width, height int) (Dims, error) {
	if width <= 0 || height <= 0 {
		return Dims{}, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDims, width, height, width)
	}
	// Divide instead of multiply so huge extents cannot wrap.
	const maxVoxels = math.MaxUint32 / VerticesPerVoxel
	w, h := uint64(width), uint64(height)
	if w > maxVoxels || h > maxVoxels || w*w > maxVoxels || h > maxVoxels/(w*w) {
		return Dims{}, fmt.Errorf("%w: %dx%dx%d exceeds %d voxels for uint32 indices",
			ErrInvalidDims, width, height, width, uint64(maxVoxels))
	}
	return Dims{Width: width, Height: height}, nil
}

// MustDims is NewDims for constant extents.
func MustDims(width, height int) Dims {
	d, err := NewDims(width, height)
	if err != nil {
		panic(err)
	}
	return d
}

// Volume returns the number of cells.
func (d Dims) Volume() int {
	return d.Width * d.Width * d.Height
}

// InBounds reports whether the local coordinate is inside the chunk.
func (d Dims) InBounds(x, y, z int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height && z >= 0 && z < d.Width
}

// Index = x + z*W + y*W*W. Callers must check InBounds first.
func (d Dims) Index(x, y, z int) int {
	return x + z*d.Width + y*d.Width*d.Width
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Width)
}

// Chunk is a dense W×H×W block of voxels. It starts all air, is filled by one
// generation pass and is read-only once sealed.
type Chunk struct {
	dims   Dims
	voxels []VoxelID
	sealed bool
}

// New allocates an all-air chunk.
func New(d Dims) *Chunk {
	return &Chunk{
		dims:   d,
		voxels: make([]VoxelID, d.Volume()),
	}
}

// Dims returns the chunk extents.
func (c *Chunk) Dims() Dims {
	return c.dims
}

// Get returns the voxel at the local coordinate. Out-of-range coordinates are air.
func (c *Chunk) Get(x, y, z int) VoxelID {
	if !c.dims.InBounds(x, y, z) {
		return Air
	}
	return c.voxels[c.dims.Index(x, y, z)]
}

// IsSolid reports whether the voxel at the local coordinate is anything but air.
func (c *Chunk) IsSolid(x, y, z int) bool {
	return c.Get(x, y, z) != Air
}

// Set writes a voxel. Writing out of range or into a sealed chunk is a programming error.
func (c *Chunk) Set(x, y, z int, id VoxelID) {
	if c.sealed {
		panic("chunk: Set on sealed chunk")
	}
	if !c.dims.InBounds(x, y, z) {
		panic(fmt.Sprintf("chunk: Set(%d,%d,%d) outside %s", x, y, z, c.dims))
	}
	c.voxels[c.dims.Index(x, y, z)] = id
}

// Seal marks the chunk read-only.
func (c *Chunk) Seal() {
	c.sealed = true
}

// Sealed reports whether the chunk has been sealed.
func (c *Chunk) Sealed() bool {
	return c.sealed
}

// SolidCount returns the number of non-air voxels.
func (c *Chunk) SolidCount() int {
	n := 0
	for _, v := range c.voxels {
		if v != Air {
			n++
		}
	}
	return n
}

// Digest hashes the dims and voxel grid.
func (c *Chunk) Digest() [32]byte {
	h := sha256.New()
	var tmp [8]byte
	binary.LittleEndian.PutUint32(tmp[:4], uint32(c.dims.Width))
	binary.LittleEndian.PutUint32(tmp[4:], uint32(c.dims.Height))
	h.Write(tmp[:])
	for _, v := range c.voxels {
		binary.LittleEndian.PutUint16(tmp[:2], uint16(v))
		h.Write(tmp[:2])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
