// Package kernel defines the reference-solid kernel interface. A kernel
// models each primitive kind as an exact solid, independent of the
// tessellated meshes, so that generated geometry can be checked against it
// and scenes can be exported. The sdfx package implements it.
package kernel

import (
	"errors"
	"math"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// ErrUnsupported is returned for kinds a kernel cannot model.
var ErrUnsupported = errors.New("kernel: kind not supported")

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
	// Distance returns the signed distance from p to the surface,
	// negative inside.
	Distance(p [3]float64) float64
}

// Kernel builds reference solids and writes meshes out.
type Kernel interface {
	// Reference returns the unit solid matching meshgen's unit mesh for kind.
	Reference(kind geom.Kind) (Solid, error)

	// ToMesh tessellates a solid independently of meshgen.
	ToMesh(s Solid) (*geom.Mesh, error)

	// SaveSTL writes world-space triangles to an STL file.
	SaveSTL(path string, tris [][3]math32.Vector3) error
}

// Deviation returns the largest absolute signed distance between any vertex
// of m and the surface of s. Zero means every vertex lies on the surface.
func Deviation(s Solid, m *geom.Mesh) float64 {
	var worst float64
	for _, v := range m.Vertices {
		p := v.Position
		d := math.Abs(s.Distance([3]float64{float64(p.X), float64(p.Y), float64(p.Z)}))
		if d > worst {
			worst = d
		}
	}
	return worst
}
