package world

import (
	"fmt"
	"image/color"
)

// Material is the single surface reference assigned to a tile.
type Material struct {
	Name  string
	Color color.RGBA
}

// DefaultMaterial is solid dark green.
func DefaultMaterial() Material {
	return Material{Name: "terrain", Color: color.RGBA{G: 0x80, A: 0xFF}}
}

// Hex returns the colour as #rrggbb.
func (m Material) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", m.Color.R, m.Color.G, m.Color.B)
}
