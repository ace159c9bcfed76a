package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// TriMesh is a triangle-mesh collision shape built directly from a render buffer.
type TriMesh struct {
	Vertices  []mgl32.Vec3
	Triangles [][3]uint32
	Min, Max  mgl32.Vec3
}

// NewTriMesh triangulates b. b must have been built with base 0.
func NewTriMesh(b *Buffer) (*TriMesh, error) {
	if err := b.Validate(0); err != nil {
		return nil, fmt.Errorf("build trimesh: %w", err)
	}

	t := &TriMesh{
		Vertices:  append([]mgl32.Vec3(nil), b.Positions...),
		Triangles: make([][3]uint32, 0, len(b.Indices)/3),
	}
	for i := 0; i+2 < len(b.Indices); i += 3 {
		t.Triangles = append(t.Triangles, [3]uint32{b.Indices[i], b.Indices[i+1], b.Indices[i+2]})
	}

	for i, v := range t.Vertices {
		if i == 0 {
			t.Min, t.Max = v, v
			continue
		}
		for a := 0; a < 3; a++ {
			t.Min[a] = min(t.Min[a], v[a])
			t.Max[a] = max(t.Max[a], v[a])
		}
	}
	return t, nil
}

// Empty reports whether the shape has no triangles.
func (t *TriMesh) Empty() bool {
	return len(t.Triangles) == 0
}

// Area returns the total surface area of all triangles.
func (t *TriMesh) Area() float32 {
	var area float32
	for _, tri := range t.Triangles {
		a, b, c := t.Vertices[tri[0]], t.Vertices[tri[1]], t.Vertices[tri[2]]
		area += b.Sub(a).Cross(c.Sub(a)).Len() / 2
	}
	return area
}
