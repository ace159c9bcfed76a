package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoiseBackends(t *testing.T) {
	for _, backend := range []string{"", BackendOpenSimplex, BackendSimplex} {
		t.Run(backend, func(t *testing.T) {
			a, err := NewNoise(backend, 7)
			require.NoError(t, err)
			b, err := NewNoise(backend, 7)
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				x, y, z := float64(i)*0.3, float64(i)*0.7, float64(i)*-0.2
				assert.Equal(t, a.Eval3(x, y, z), b.Eval3(x, y, z))
			}
		})
	}
}

func TestNewNoiseUnknownBackend(t *testing.T) {
	_, err := NewNoise("perlin", 1)
	assert.Error(t, err)
}
