package gen

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a seeded, deterministic 3D scalar field.
type Noise interface {
	Eval3(x, y, z float64) float64
}

// Noise backends.
const (
	BackendOpenSimplex = "opensimplex"
	BackendSimplex     = "simplex"
)

// NewNoise builds the named noise backend from a seed. The returned value is
// immutable and safe for concurrent use.
func NewNoise(backend string, seed int64) (Noise, error) {
	switch backend {
	case "", BackendOpenSimplex:
		return opensimplex.New(seed), nil
	case BackendSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}
