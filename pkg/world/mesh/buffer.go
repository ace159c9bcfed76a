package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is triangle-list geometry as four parallel sequences. Positions, normals
// and UVs have one entry per vertex; indices reference positions.
type Buffer struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

func newBuffer(faces int) *Buffer {
	return &Buffer{
		Positions: make([]mgl32.Vec3, 0, faces*4),
		Normals:   make([]mgl32.Vec3, 0, faces*4),
		UVs:       make([]mgl32.Vec2, 0, faces*4),
		Indices:   make([]uint32, 0, faces*6),
	}
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Positions)
}

// FaceCount returns the number of quads.
func (b *Buffer) FaceCount() int {
	return len(b.Positions) / 4
}

// TriangleCount returns the number of triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// Validate checks the buffer invariants. base is the vertex offset the indices were
// built with; indices must fall in [base, base+VertexCount).
func (b *Buffer) Validate(base uint32) error {
	n := len(b.Positions)
	if len(b.Normals) != n || len(b.UVs) != n {
		return fmt.Errorf("attribute length mismatch: positions=%d normals=%d uvs=%d",
			n, len(b.Normals), len(b.UVs))
	}
	if n%4 != 0 {
		return fmt.Errorf("vertex count %d is not a multiple of 4", n)
	}
	if len(b.Indices) != n/4*6 {
		return fmt.Errorf("index count %d, want %d for %d quads", len(b.Indices), n/4*6, n/4)
	}
	end := uint64(base) + uint64(n)
	for i, idx := range b.Indices {
		if idx < base || uint64(idx) >= end {
			return fmt.Errorf("index %d = %d outside [%d,%d)", i, idx, base, end)
		}
	}
	return nil
}

// Append copies other onto b, shifting other's indices by b's current vertex
// count. other must have been built with base 0.
func (b *Buffer) Append(other *Buffer) {
	offset := uint64(len(b.Positions))
	if offset+uint64(len(other.Positions)) > math.MaxUint32+1 {
		panic(fmt.Sprintf("mesh: appending %d vertices at %d overflows uint32 indices",
			len(other.Positions), offset))
	}
	b.Positions = append(b.Positions, other.Positions...)
	b.Normals = append(b.Normals, other.Normals...)
	b.UVs = append(b.UVs, other.UVs...)
	for _, idx := range other.Indices {
		b.Indices = append(b.Indices, idx+uint32(offset))
	}
}

// Translated returns a copy of b with every position moved by offset.
func (b *Buffer) Translated(offset mgl32.Vec3) *Buffer {
	out := b.Clone()
	for i := range out.Positions {
		out.Positions[i] = out.Positions[i].Add(offset)
	}
	return out
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		Positions: append([]mgl32.Vec3(nil), b.Positions...),
		Normals:   append([]mgl32.Vec3(nil), b.Normals...),
		UVs:       append([]mgl32.Vec2(nil), b.UVs...),
		Indices:   append([]uint32(nil), b.Indices...),
	}
}
