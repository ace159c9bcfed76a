package gen

// Cave carving constants.
const (
	CaveThreshold = 0.55
	CaveFloor     = 4 // no carving below this y
)

// Caves hollows tunnels out of another sampler using two combined noise fields.
type Caves struct {
	Sampler Sampler
	noise1  Noise
	noise2  Noise
}

// NewCaves wraps s with cave carving. The carving fields are seeded from seed
// so they differ from the terrain field.
func NewCaves(s Sampler, backend string, seed int64) (*Caves, error) {
	n1, err := NewNoise(backend, seed+300)
	if err != nil {
		return nil, err
	}
	n2, err := NewNoise(backend, seed+400)
	if err != nil {
		return nil, err
	}
	return &Caves{Sampler: s, noise1: n1, noise2: n2}, nil
}

// Solid reports whether the wrapped sampler is solid and the cell is not carved.
func (c *Caves) Solid(x, y, z int) bool {
	if !c.Sampler.Solid(x, y, z) {
		return false
	}
	return y < CaveFloor || !c.Carved(x, y, z)
}

// Carved reports whether the cave fields open the cell, ignoring the wrapped sampler.
func (c *Caves) Carved(x, y, z int) bool {
	bx, by, bz := float64(x), float64(y), float64(z)

	// Two noise fields combined for more interesting cave shapes.
	n1 := c.noise1.Eval3(bx/32.0, by/24.0, bz/32.0)
	n2 := c.noise2.Eval3(bx/48.0, by/32.0, bz/48.0)
	return (n1+n2)/2.0 > CaveThreshold
}
