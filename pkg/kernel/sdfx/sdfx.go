// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"cogentcore.org/core/math32"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes resolution along the longest axis.
const DefaultMeshCells = 64

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// Distance evaluates the signed distance field at p.
func (s *sdfxSolid) Distance(p [3]float64) float64 {
	return s.s.Evaluate(v3.Vec{X: p[0], Y: p[1], Z: p[2]})
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	// Cells is the marching cubes resolution used by ToMesh.
	Cells int
}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{Cells: DefaultMeshCells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) (sdf.SDF3, error) {
	ss, ok := s.(*sdfxSolid)
	if !ok {
		return nil, fmt.Errorf("sdfx: foreign solid %T", s)
	}
	return ss.s, nil
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// yUp turns sdfx's Z-axis solids so that their axis runs along +Y.
var yUp = sdf.RotateX(-math.Pi / 2)

// Reference returns the exact unit solid for kind. sdfx builds cylinders
// and cones along Z, so those are turned to stand on Y like the meshes.
// Pyramids have no sdfx primitive.
func (k *SdfxKernel) Reference(kind geom.Kind) (kernel.Solid, error) {
	var (
		s   sdf.SDF3
		err error
	)
	switch kind {
	case geom.KindBox:
		s, err = sdf.Box3D(v3.Vec{X: 1, Y: 1, Z: 1}, 0)
	case geom.KindCylinder:
		s, err = sdf.Cylinder3D(1, 1, 0)
		if err == nil {
			s = sdf.Transform3D(s, yUp)
		}
	case geom.KindCone:
		// Radius 1 at the bottom, 0 at the apex.
		s, err = sdf.Cone3D(1, 1, 0, 0)
		if err == nil {
			s = sdf.Transform3D(s, yUp)
		}
	case geom.KindSphere:
		s, err = sdf.Sphere3D(1)
	default:
		return nil, fmt.Errorf("sdfx: %s: %w", kind, kernel.ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("sdfx: %s: %w", kind, err)
	}
	return wrap(s), nil
}

// ToMesh converts a solid to a triangle mesh using marching cubes. Vertices
// are not shared; each carries its face normal.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*geom.Mesh, error) {
	sdf3, err := unwrap(s)
	if err != nil {
		return nil, err
	}
	cells := k.Cells
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	m := &geom.Mesh{
		Vertices:  make([]geom.Vertex, 0, len(triangles)*3),
		Triangles: make([]geom.Triangle, 0, len(triangles)),
	}
	for _, tri := range triangles {
		n := tri.Normal()
		normal := math32.Vec3(float32(n.X), float32(n.Y), float32(n.Z))

		var idx [3]uint32
		for j := 0; j < 3; j++ {
			v := tri[j]
			idx[j] = m.AddVertex(geom.Vertex{
				Position: math32.Vec3(float32(v.X), float32(v.Y), float32(v.Z)),
				Normal:   normal,
			})
		}
		m.AddTriangle(idx[0], idx[1], idx[2])
	}
	return m, nil
}

// SaveSTL writes the triangles to a binary STL file.
func (k *SdfxKernel) SaveSTL(path string, tris [][3]math32.Vector3) error {
	mesh := make([]*sdf.Triangle3, len(tris))
	for i, t := range tris {
		mesh[i] = &sdf.Triangle3{toVec(t[0]), toVec(t[1]), toVec(t[2])}
	}
	if err := render.SaveSTL(path, mesh); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}

func toVec(p math32.Vector3) v3.Vec {
	return v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}
