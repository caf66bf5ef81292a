package meshgen

import (
	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// grid addresses a (rows+1)×(cols+1) block of vertices starting at base.
// Row 0 is the top (y=+0.5 or the north pole); column cols duplicates
// column 0.
type grid struct {
	base       uint32
	rows, cols int
}

func (g grid) index(i, j int) uint32 {
	return g.base + uint32(i*(g.cols+1)+j)
}

// ring is the radius and height of one grid row.
type ring func(i int) (radius, y float32)

// addGrid appends the grid vertices and the side quads. Column positions
// use angle index j mod cols so the seam column matches column 0 exactly.
func addGrid(m *geom.Mesh, res Resolution, row ring) grid {
	g := grid{base: uint32(m.VertexCount()), rows: res.Circles, cols: res.VerticesPerCircle}

	for i := 0; i <= g.rows; i++ {
		r, y := row(i)
		v := float32(i) / float32(g.rows)
		for j := 0; j <= g.cols; j++ {
			phi := 2 * math32.Pi * float32(j%g.cols) / float32(g.cols)
			pos := math32.Vec3(r*math32.Cos(phi), y, r*math32.Sin(phi))
			m.AddVertex(geom.NewVertex(pos, math32.Vec2(float32(j)/float32(g.cols), v)))
		}
	}

	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			m.AddQuad(g.index(i, j), g.index(i, j+1), g.index(i+1, j+1), g.index(i+1, j))
		}
	}
	return g
}

// addTopCap fans from a new centre vertex to grid row 0.
func addTopCap(m *geom.Mesh, g grid, y float32) uint32 {
	c := m.AddVertex(geom.NewVertex(math32.Vec3(0, y, 0), math32.Vec2(0.5, 0)))
	for j := 0; j < g.cols; j++ {
		m.AddTriangle(c, g.index(0, j+1), g.index(0, j))
	}
	return c
}

// addBottomCap fans from a new centre vertex to the last grid row.
func addBottomCap(m *geom.Mesh, g grid, y float32) uint32 {
	c := m.AddVertex(geom.NewVertex(math32.Vec3(0, y, 0), math32.Vec2(0.5, 1)))
	for j := 0; j < g.cols; j++ {
		m.AddTriangle(c, g.index(g.rows, j), g.index(g.rows, j+1))
	}
	return c
}

// rowHeight spaces rows evenly from y=0.5 down to y=-0.5.
func rowHeight(i, rows int) float32 {
	return 0.5 - float32(i)/float32(rows)
}

// Cylinder appends a capped cylinder of radius 1 and height 1.
// It adds (n+1)(m+1)+2 vertices and 2mn+2m triangles for m vertices per
// circle and n circles.
func Cylinder(m *geom.Mesh, res Resolution) {
	res = res.Clamp()
	firstTri := m.TriangleCount()

	g := addGrid(m, res, func(i int) (float32, float32) {
		return 1, rowHeight(i, res.Circles)
	})
	addTopCap(m, g, 0.5)
	addBottomCap(m, g, -0.5)

	accumulateNormals(m, firstTri)
	fixSeams(m, g)
	normalize(m, int(g.base))
}

// Cone appends a cone with base radius 1 at y=-0.5 and its apex at y=0.5.
// The first circle has radius zero, so its vertices all sit on the apex.
// It adds (n+1)(m+1)+1 vertices and 2mn+m triangles.
func Cone(m *geom.Mesh, res Resolution) {
	res = res.Clamp()
	firstTri := m.TriangleCount()

	g := addGrid(m, res, func(i int) (float32, float32) {
		return float32(i) / float32(res.Circles), rowHeight(i, res.Circles)
	})
	center := addBottomCap(m, g, -0.5)

	accumulateNormals(m, firstTri)
	fixApex(m, g)
	fixSeams(m, g)
	blendBase(m, g, center)
	normalize(m, int(g.base))
}

// Sphere appends a UV sphere of radius 1. Normals are the normalized
// positions; no accumulation is done. It adds (n+1)(m+1) vertices and 2mn
// triangles, the ones touching a pole being degenerate.
func Sphere(m *geom.Mesh, res Resolution) {
	res = res.Clamp()

	g := addGrid(m, res, func(i int) (float32, float32) {
		if i == 0 {
			return 0, 1
		}
		if i == res.Circles {
			return 0, -1
		}
		theta := math32.Pi * float32(i) / float32(res.Circles)
		return math32.Sin(theta), math32.Cos(theta)
	})

	for k := int(g.base); k < m.VertexCount(); k++ {
		m.Vertices[k].Normal = m.Vertices[k].Position
	}
	normalize(m, int(g.base))
}
