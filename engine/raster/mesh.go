package raster

import "github.com/go-gl/mathgl/mgl32"

// Triangle is a flat-shaded triangle in model space. Shade scales the base color
// the mesh is drawn with, so one mesh can be recolored without rebuilding it.
type Triangle struct {
	A, B, C mgl32.Vec3
	Shade   float32
}

// Mesh is an unindexed triangle list.
type Mesh struct {
	Triangles []Triangle
}

const (
	rowShadeLight = 1.0
	rowShadeDark  = 0.86
	sideShade     = 0.62
	bottomShade   = 0.45
)

// NewFieldMesh builds a square slab centered on the origin, lying in the XZ plane. The top
// face is split into rows of alternating shade so rotation reads clearly even with a single
// flat color.
//
// Parameters:
//   - rows: number of shaded strips across the top face, raised to 1 if smaller
//   - size: edge length of the square
//   - thickness: slab height; 0 builds a bare plane at y = 0
//
// Returns:
//   - Mesh: the generated triangle list
func NewFieldMesh(rows int, size, thickness float32) Mesh {
	rows = max(rows, 1)
	h := size / 2
	step := size / float32(rows)
	top := max(thickness, 0) / 2

	m := Mesh{Triangles: make([]Triangle, 0, rows*2+10)}
	for r := 0; r < rows; r++ {
		// Both edges come from the row index so the last row lands exactly on the side faces.
		z0 := -h + float32(r)*step
		z1 := -h + float32(r+1)*step
		if r == rows-1 {
			z1 = h
		}
		shade := float32(rowShadeLight)
		if r%2 == 1 {
			shade = rowShadeDark
		}
		m.addQuad(
			mgl32.Vec3{-h, top, z0}, mgl32.Vec3{h, top, z0},
			mgl32.Vec3{h, top, z1}, mgl32.Vec3{-h, top, z1},
			shade,
		)
	}

	if thickness <= 0 {
		return m
	}

	y := -top
	// Sides.
	m.addQuad(mgl32.Vec3{-h, top, h}, mgl32.Vec3{h, top, h}, mgl32.Vec3{h, y, h}, mgl32.Vec3{-h, y, h}, sideShade)
	m.addQuad(mgl32.Vec3{h, top, -h}, mgl32.Vec3{-h, top, -h}, mgl32.Vec3{-h, y, -h}, mgl32.Vec3{h, y, -h}, sideShade)
	m.addQuad(mgl32.Vec3{h, top, h}, mgl32.Vec3{h, top, -h}, mgl32.Vec3{h, y, -h}, mgl32.Vec3{h, y, h}, sideShade*0.9)
	m.addQuad(mgl32.Vec3{-h, top, -h}, mgl32.Vec3{-h, top, h}, mgl32.Vec3{-h, y, h}, mgl32.Vec3{-h, y, -h}, sideShade*0.9)
	// Bottom.
	m.addQuad(mgl32.Vec3{-h, y, h}, mgl32.Vec3{h, y, h}, mgl32.Vec3{h, y, -h}, mgl32.Vec3{-h, y, -h}, bottomShade)

	return m
}

func (m *Mesh) addQuad(a, b, c, d mgl32.Vec3, shade float32) {
	m.Triangles = append(m.Triangles,
		Triangle{A: a, B: b, C: c, Shade: shade},
		Triangle{A: a, B: c, C: d, Shade: shade},
	)
}
