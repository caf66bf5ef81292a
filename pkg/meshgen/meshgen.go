// Package meshgen generates unit-sized triangle meshes for the primitive
// kinds. Every generator appends to a caller-owned mesh, produces
// counter-clockwise triangles as seen from outside, and leaves unit normals
// on every vertex it added.
//
// Unit sizes: the box spans [-0.5,0.5]³; the pyramid has a [-0.5,0.5]²
// base at y=-0.5 and its apex at y=0.5; cylinder and cone have radius 1 and
// span y in [-0.5,0.5], the cone's apex on top; the sphere has radius 1.
package meshgen

import (
	"fmt"

	"github.com/chazu/facet/pkg/geom"
)

// Generate appends the unit mesh for kind to m. Resolution is ignored by
// the box and pyramid.
func Generate(kind geom.Kind, m *geom.Mesh, res Resolution) error {
	switch kind {
	case geom.KindBox:
		Box(m)
	case geom.KindPyramid:
		Pyramid(m)
	case geom.KindCylinder:
		Cylinder(m, res)
	case geom.KindCone:
		Cone(m, res)
	case geom.KindSphere:
		Sphere(m, res)
	default:
		return fmt.Errorf("meshgen: no generator for %s", kind)
	}
	return nil
}

// Counts returns the vertex and triangle counts Generate will append for
// kind at the given resolution.
func Counts(kind geom.Kind, res Resolution) (vertices, triangles int) {
	res = res.Clamp()
	m := res.VerticesPerCircle
	switch kind {
	case geom.KindBox:
		return 8, 12
	case geom.KindPyramid:
		return 5, 6
	case geom.KindCylinder:
		return res.GridVertexCount() + 2, res.GridTriangleCount() + 2*m
	case geom.KindCone:
		return res.GridVertexCount() + 1, res.GridTriangleCount() + m
	case geom.KindSphere:
		return res.GridVertexCount(), res.GridTriangleCount()
	}
	return 0, 0
}
