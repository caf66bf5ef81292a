package scene

import (
	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// DrawItem is what a renderer needs to draw one shape in a frame.
type DrawItem struct {
	Range    geom.DrawRange
	Model    math32.Matrix4
	Color    math32.Vector4
	Selected bool
}

// Renderer is the device-side collaborator. Upload receives the shared
// buffers once; Draw is called per shape per frame. Indices are absolute,
// so a renderer draws with a base vertex of zero.
type Renderer interface {
	Upload(vertices []geom.Vertex, indices []uint32) error
	Draw(item DrawItem) error
}

// DrawList returns one item per shape using the current model matrices.
// It does not recompute them.
func (sc *Scene) DrawList() []DrawItem {
	items := make([]DrawItem, len(sc.shapes))
	for i, s := range sc.shapes {
		items[i] = DrawItem{
			Range:    s.DrawRange(),
			Model:    s.ModelMatrix(),
			Color:    s.Color(),
			Selected: i == sc.selected,
		}
	}
	return items
}

// Upload hands the shared buffers to r.
func (sc *Scene) Upload(r Renderer) error {
	return r.Upload(sc.geometry.Vertices(), sc.geometry.Indices())
}

// Render draws every shape with r, stopping at the first error.
func (sc *Scene) Render(r Renderer) error {
	for _, item := range sc.DrawList() {
		if err := r.Draw(item); err != nil {
			return err
		}
	}
	return nil
}

// Triangles returns every shape's triangles transformed to world space
// by the current model matrices. Exporters use it.
func (sc *Scene) Triangles() [][3]math32.Vector3 {
	verts := sc.geometry.Vertices()
	idx := sc.geometry.Indices()

	var tris [][3]math32.Vector3
	for _, s := range sc.shapes {
		r := s.DrawRange()
		ix := r.IndexSlice(idx)
		for i := 0; i+2 < len(ix); i += 3 {
			tris = append(tris, [3]math32.Vector3{
				s.TransformPoint(verts[ix[i]].Position),
				s.TransformPoint(verts[ix[i+1]].Position),
				s.TransformPoint(verts[ix[i+2]].Position),
			})
		}
	}
	return tris
}
