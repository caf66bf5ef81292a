package sdfx

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/meshgen"
)

var res = meshgen.Resolution{VerticesPerCircle: 16, Circles: 4}

func TestReferenceBounds(t *testing.T) {
	tests := []struct {
		kind     geom.Kind
		min, max [3]float64
	}{
		{geom.KindBox, [3]float64{-0.5, -0.5, -0.5}, [3]float64{0.5, 0.5, 0.5}},
		{geom.KindCylinder, [3]float64{-1, -0.5, -1}, [3]float64{1, 0.5, 1}},
		{geom.KindSphere, [3]float64{-1, -1, -1}, [3]float64{1, 1, 1}},
	}
	k := New()
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s, err := k.Reference(tt.kind)
			if err != nil {
				t.Fatalf("Reference failed: %v", err)
			}
			min, max := s.BoundingBox()
			for i := 0; i < 3; i++ {
				if math.Abs(min[i]-tt.min[i]) > 1e-6 || math.Abs(max[i]-tt.max[i]) > 1e-6 {
					t.Fatalf("bounding box %v..%v, want %v..%v", min, max, tt.min, tt.max)
				}
			}
		})
	}
}

// Every generated vertex lies on the exact surface of its kind.
func TestGeneratedMeshesLieOnReference(t *testing.T) {
	k := New()
	for _, kind := range []geom.Kind{geom.KindBox, geom.KindCylinder, geom.KindCone, geom.KindSphere} {
		t.Run(kind.String(), func(t *testing.T) {
			s, err := k.Reference(kind)
			if err != nil {
				t.Fatalf("Reference failed: %v", err)
			}
			m := &geom.Mesh{}
			if err := meshgen.Generate(kind, m, res); err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if d := kernel.Deviation(s, m); d > 1e-4 {
				t.Errorf("max deviation %g", d)
			}
		})
	}
}

func TestReferencePyramidUnsupported(t *testing.T) {
	_, err := New().Reference(geom.KindPyramid)
	if !errors.Is(err, kernel.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestToMesh(t *testing.T) {
	k := New()
	k.Cells = 32
	s, err := k.Reference(geom.KindSphere)
	if err != nil {
		t.Fatalf("Reference failed: %v", err)
	}
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() != mesh.TriangleCount()*3 {
		t.Fatalf("expected unshared vertices, got %d for %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
	t.Logf("sphere triangle count: %d, volume %g", mesh.TriangleCount(), mesh.SignedVolume())
}

func TestToMeshForeignSolid(t *testing.T) {
	if _, err := New().ToMesh(foreign{}); err == nil {
		t.Fatal("expected error for foreign solid")
	}
}

type foreign struct{}

func (foreign) BoundingBox() (min, max [3]float64) { return }
func (foreign) Distance(p [3]float64) float64      { return 0 }

func TestSaveSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	tris := [][3]math32.Vector3{
		{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)},
	}
	if err := New().SaveSTL(path, tris); err != nil {
		t.Fatalf("SaveSTL failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty STL file")
	}
}
