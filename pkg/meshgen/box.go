package meshgen

import (
	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// boxCorners holds the z=-0.5 face followed by the z=+0.5 face, each
// walked counter-clockwise when viewed from +z.
var boxCorners = [8]math32.Vector3{
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
}

// boxFaces lists each face as a quad wound counter-clockwise from outside.
var boxFaces = [6][4]uint32{
	{4, 5, 6, 7}, // +z
	{1, 0, 3, 2}, // -z
	{5, 1, 2, 6}, // +x
	{0, 4, 7, 3}, // -x
	{7, 6, 2, 3}, // +y
	{0, 1, 5, 4}, // -y
}

// Box appends the unit cube: 8 shared corners and 12 triangles.
// Corners shared by three faces end up with the diagonal normal.
func Box(m *geom.Mesh) {
	base := uint32(m.VertexCount())
	firstTri := m.TriangleCount()

	for _, p := range boxCorners {
		uv := math32.Vec2(p.X+0.5, 0.5-p.Y)
		m.AddVertex(geom.NewVertex(p, uv))
	}
	for _, f := range boxFaces {
		m.AddTriangle(base+f[0], base+f[1], base+f[2])
		m.AddTriangle(base+f[0], base+f[2], base+f[3])
	}

	accumulateNormals(m, firstTri)
	normalize(m, int(base))
}

// Pyramid appends a square pyramid: the apex followed by four base
// corners, four side triangles and a two-triangle base.
func Pyramid(m *geom.Mesh) {
	base := uint32(m.VertexCount())
	firstTri := m.TriangleCount()

	m.AddVertex(geom.NewVertex(math32.Vec3(0, 0.5, 0), math32.Vec2(0.5, 0)))
	corners := [4]math32.Vector3{
		{X: -0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: -0.5, Z: 0.5},
		{X: -0.5, Y: -0.5, Z: 0.5},
	}
	for _, p := range corners {
		m.AddVertex(geom.NewVertex(p, math32.Vec2(p.X+0.5, p.Z+0.5)))
	}

	apex := base
	b1, b2, b3, b4 := base+1, base+2, base+3, base+4
	m.AddTriangle(b4, b3, apex) // +z
	m.AddTriangle(b3, b2, apex) // +x
	m.AddTriangle(b2, b1, apex) // -z
	m.AddTriangle(b1, b4, apex) // -x
	m.AddTriangle(b1, b2, b3)
	m.AddTriangle(b1, b3, b4)

	accumulateNormals(m, firstTri)
	normalize(m, int(base))
}
