// Package geom holds the vertex and triangle primitives shared by the mesh
// generators, the shape layer and the build context.
package geom

import (
	"cogentcore.org/core/math32"
)

// Vertex is a single mesh vertex. Normal is unit length once a generator
// has finished with it; TexCoord lies in [0,1]².
type Vertex struct {
	Position math32.Vector3 `json:"position"`
	Normal   math32.Vector3 `json:"normal"`
	TexCoord math32.Vector2 `json:"texCoord"`
}

// NewVertex returns a vertex with a zero normal, ready for accumulation.
func NewVertex(pos math32.Vector3, uv math32.Vector2) Vertex {
	return Vertex{Position: pos, TexCoord: uv}
}

// Triangle is three indices into a vertex buffer owned by someone else.
// The buffer is passed to each method that needs positions.
type Triangle struct {
	P0, P1, P2 uint32
}

// Indices returns the three indices in winding order.
func (t Triangle) Indices() [3]uint32 {
	return [3]uint32{t.P0, t.P1, t.P2}
}

// Offset returns the triangle with every index shifted by base.
func (t Triangle) Offset(base uint32) Triangle {
	return Triangle{t.P0 + base, t.P1 + base, t.P2 + base}
}

// Normal returns the unnormalized face normal (p1-p0)×(p2-p0). Its length
// is twice the triangle's area, which is what makes accumulated vertex
// normals area weighted.
func (t Triangle) Normal(vs []Vertex) math32.Vector3 {
	p0 := vs[t.P0].Position
	e1 := vs[t.P1].Position.Sub(p0)
	e2 := vs[t.P2].Position.Sub(p0)
	return e1.Cross(e2)
}

// Center returns the centroid of the three positions.
func (t Triangle) Center(vs []Vertex) math32.Vector3 {
	sum := vs[t.P0].Position.Add(vs[t.P1].Position).Add(vs[t.P2].Position)
	return sum.DivScalar(3)
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices  []Vertex   `json:"vertices"`
	Triangles []Triangle `json:"triangles"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v Vertex) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends a triangle with the given absolute indices.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Triangles = append(m.Triangles, Triangle{a, b, c})
}

// AddQuad splits the quad tl,tr,br,bl (counter-clockwise from outside when
// read tl→bl→br→tr) into the triangles (tl,br,bl) and (tl,tr,br).
func (m *Mesh) AddQuad(tl, tr, br, bl uint32) {
	m.AddTriangle(tl, br, bl)
	m.AddTriangle(tl, tr, br)
}

// Indices flattens the triangle list into a uint32 index buffer.
func (m *Mesh) Indices() []uint32 {
	idx := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		idx = append(idx, t.P0, t.P1, t.P2)
	}
	return idx
}

// BBox returns the bounding box of all vertex positions.
func (m *Mesh) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, v := range m.Vertices {
		bb.ExpandByPoint(v.Position)
	}
	return bb
}

// SignedVolume returns the volume enclosed by the mesh using the divergence
// theorem. It is positive when every face is wound counter-clockwise as seen
// from outside.
func (m *Mesh) SignedVolume() float32 {
	var vol float32
	for _, t := range m.Triangles {
		p0 := m.Vertices[t.P0].Position
		p1 := m.Vertices[t.P1].Position
		p2 := m.Vertices[t.P2].Position
		vol += p0.Dot(p1.Cross(p2))
	}
	return vol / 6
}
