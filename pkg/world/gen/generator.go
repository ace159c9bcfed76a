package gen

import "github.com/OCharnyshevich/voxel-terrain/pkg/world/chunk"

// Generate fills an all-air chunk from the sampler and seals it. Each local cell
// (x, y, z) is sampled once at origin + (x, y, z); solid cells get chunk.Solid.
func Generate(c *chunk.Chunk, s Sampler, origin chunk.Pos) {
	d := c.Dims()
	for x := 0; x < d.Width; x++ {
		for y := 0; y < d.Height; y++ {
			for z := 0; z < d.Width; z++ {
				if s.Solid(origin.X+x, origin.Y+y, origin.Z+z) {
					c.Set(x, y, z, chunk.Solid)
				}
			}
		}
	}
	c.Seal()
}

// NewChunk allocates and generates a chunk in one step.
func NewChunk(d chunk.Dims, s Sampler, origin chunk.Pos) *chunk.Chunk {
	c := chunk.New(d)
	Generate(c, s, origin)
	return c
}
