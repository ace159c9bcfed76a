package gen

// DefaultFrequency is the divisor applied to world coordinates before sampling noise.
const DefaultFrequency = 16.0

// Threshold is the lowest noise value classified as solid.
const Threshold = 0.0

// Sampler classifies a world-space cell as solid or air.
type Sampler interface {
	Solid(x, y, z int) bool
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(x, y, z int) bool

func (f SamplerFunc) Solid(x, y, z int) bool { return f(x, y, z) }

// DensitySampler thresholds a single noise evaluation per cell at
// (x/F, y/F, z/F): no octaves, no normalisation.
type DensitySampler struct {
	noise     Noise
	frequency float64
}

// NewDensitySampler wraps noise. A non-positive frequency selects DefaultFrequency.
func NewDensitySampler(noise Noise, frequency float64) *DensitySampler {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	return &DensitySampler{noise: noise, frequency: frequency}
}

// Frequency returns the coordinate divisor.
func (s *DensitySampler) Frequency() float64 {
	return s.frequency
}

// Solid reports whether noise at the scaled coordinate is >= Threshold.
func (s *DensitySampler) Solid(x, y, z int) bool {
	f := s.frequency
	return s.noise.Eval3(float64(x)/f, float64(y)/f, float64(z)/f) >= Threshold
}

// Flat is solid for every cell below Height.
type Flat struct {
	Height int
}

func (f Flat) Solid(_, y, _ int) bool {
	return y < f.Height
}

// Ceiling clamps another sampler to air at and above MaxY.
// A non-positive MaxY disables the clamp.
type Ceiling struct {
	Sampler Sampler
	MaxY    int
}

func (c Ceiling) Solid(x, y, z int) bool {
	if c.MaxY > 0 && y >= c.MaxY {
		return false
	}
	return c.Sampler.Solid(x, y, z)
}
