package meshgen

import (
	"github.com/chazu/facet/pkg/geom"
)

// coneBaseBlend scales the bottom cap centre's accumulated normal before it
// is added to each vertex of the cone's base circle. It softens the shading
// where the side meets the cap.
const coneBaseBlend = 0.25

// accumulateNormals adds each triangle's unnormalized face normal, starting
// at firstTri, into its three vertices.
func accumulateNormals(m *geom.Mesh, firstTri int) {
	vs := m.Vertices
	for _, t := range m.Triangles[firstTri:] {
		n := t.Normal(vs)
		vs[t.P0].Normal = vs[t.P0].Normal.Add(n)
		vs[t.P1].Normal = vs[t.P1].Normal.Add(n)
		vs[t.P2].Normal = vs[t.P2].Normal.Add(n)
	}
}

// fixSeams makes the first and last vertex of every grid row carry the sum
// of both, so the seam duplicate shades like its twin.
func fixSeams(m *geom.Mesh, g grid) {
	vs := m.Vertices
	for i := 0; i <= g.rows; i++ {
		first := g.index(i, 0)
		last := g.index(i, g.cols)
		sum := vs[first].Normal.Add(vs[last].Normal)
		vs[first].Normal = sum
		vs[last].Normal = sum
	}
}

// fixApex overwrites every vertex of grid row 0 with the sum of that row's
// normals. All those vertices share the apex position. The seam column is
// left out of the sum so it is not counted twice.
func fixApex(m *geom.Mesh, g grid) {
	vs := m.Vertices
	var sum = vs[g.index(0, 0)].Normal
	for j := 1; j < g.cols; j++ {
		sum = sum.Add(vs[g.index(0, j)].Normal)
	}
	for j := 0; j <= g.cols; j++ {
		vs[g.index(0, j)].Normal = sum
	}
}

// blendBase adds a fraction of the cap centre's normal to each vertex of
// the last grid row.
func blendBase(m *geom.Mesh, g grid, center uint32) {
	vs := m.Vertices
	add := vs[center].Normal.MulScalar(coneBaseBlend)
	for j := 0; j <= g.cols; j++ {
		k := g.index(g.rows, j)
		vs[k].Normal = vs[k].Normal.Add(add)
	}
}

// normalize scales every normal from firstVertex on to unit length.
// Zero normals are left alone.
func normalize(m *geom.Mesh, firstVertex int) {
	for i := firstVertex; i < len(m.Vertices); i++ {
		n := m.Vertices[i].Normal
		if l := n.Length(); l > 0 {
			m.Vertices[i].Normal = n.DivScalar(l)
		}
	}
}
