package mesh

import "github.com/go-gl/mathgl/mgl32"

// Face is one side of a unit cube centred on a cell. Corners are offsets from the
// cell centre, listed counter-clockwise when viewed from outside.
type Face struct {
	Name    string
	Dir     [3]int
	Normal  mgl32.Vec3
	Corners [4]mgl32.Vec3
	UVs     [4]mgl32.Vec2
}

// Faces is the fixed emission order. Changing it changes vertex order in every buffer.
var Faces = [6]Face{
	{
		Name:   "front",
		Dir:    [3]int{0, 0, 1},
		Normal: mgl32.Vec3{0, 0, 1},
		Corners: [4]mgl32.Vec3{
			{-0.5, -0.5, 0.5},
			{0.5, -0.5, 0.5},
			{0.5, 0.5, 0.5},
			{-0.5, 0.5, 0.5},
		},
		UVs: [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
	{
		Name:   "back",
		Dir:    [3]int{0, 0, -1},
		Normal: mgl32.Vec3{0, 0, -1},
		Corners: [4]mgl32.Vec3{
			{-0.5, 0.5, -0.5},
			{0.5, 0.5, -0.5},
			{0.5, -0.5, -0.5},
			{-0.5, -0.5, -0.5},
		},
		UVs: [4]mgl32.Vec2{{1, 0}, {0, 0}, {0, 1}, {1, 1}},
	},
	{
		Name:   "right",
		Dir:    [3]int{1, 0, 0},
		Normal: mgl32.Vec3{1, 0, 0},
		Corners: [4]mgl32.Vec3{
			{0.5, -0.5, -0.5},
			{0.5, 0.5, -0.5},
			{0.5, 0.5, 0.5},
			{0.5, -0.5, 0.5},
		},
		UVs: [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
	{
		Name:   "left",
		Dir:    [3]int{-1, 0, 0},
		Normal: mgl32.Vec3{-1, 0, 0},
		Corners: [4]mgl32.Vec3{
			{-0.5, -0.5, 0.5},
			{-0.5, 0.5, 0.5},
			{-0.5, 0.5, -0.5},
			{-0.5, -0.5, -0.5},
		},
		UVs: [4]mgl32.Vec2{{1, 0}, {0, 0}, {0, 1}, {1, 1}},
	},
	{
		Name:   "top",
		Dir:    [3]int{0, 1, 0},
		Normal: mgl32.Vec3{0, 1, 0},
		Corners: [4]mgl32.Vec3{
			{0.5, 0.5, -0.5},
			{-0.5, 0.5, -0.5},
			{-0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5},
		},
		UVs: [4]mgl32.Vec2{{1, 0}, {0, 0}, {0, 1}, {1, 1}},
	},
	{
		Name:   "bottom",
		Dir:    [3]int{0, -1, 0},
		Normal: mgl32.Vec3{0, -1, 0},
		Corners: [4]mgl32.Vec3{
			{0.5, -0.5, 0.5},
			{-0.5, -0.5, 0.5},
			{-0.5, -0.5, -0.5},
			{0.5, -0.5, -0.5},
		},
		UVs: [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	},
}

// quadIndices are the two triangles of a quad relative to its first vertex.
var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}
