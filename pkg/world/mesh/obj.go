package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// WriteOBJ writes b as a Wavefront OBJ object named name, moving every position
// by offset. b must have been built with base 0.
func WriteOBJ(w io.Writer, name string, b *Buffer, offset mgl32.Vec3) error {
	if err := b.Validate(0); err != nil {
		return fmt.Errorf("write obj %s: %w", name, err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", name)
	for _, p := range b.Positions {
		p = p.Add(offset)
		fmt.Fprintf(bw, "v %s %s %s\n", ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
	}
	for _, uv := range b.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", ftoa(uv[0]), ftoa(uv[1]))
	}
	for _, n := range b.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n[0]), ftoa(n[1]), ftoa(n[2]))
	}
	// OBJ indices are 1-based; position, uv and normal share an index.
	for i := 0; i+2 < len(b.Indices); i += 3 {
		a, c, d := b.Indices[i]+1, b.Indices[i+1]+1, b.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, c, c, c, d, d, d)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj %s: %w", name, err)
	}
	return nil
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
