package tessellate_test

import (
	"errors"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/meshgen"
	"github.com/chazu/facet/pkg/shape"
	"github.com/chazu/facet/pkg/tessellate"
)

var lowRes = map[geom.Kind]meshgen.Resolution{
	geom.KindCylinder: {VerticesPerCircle: 8, Circles: 2},
	geom.KindCone:     {VerticesPerCircle: 8, Circles: 3},
	geom.KindSphere:   {VerticesPerCircle: 8, Circles: 4},
}

// register registers every shape, failing the test on error.
func register(t *testing.T, c *tessellate.Context, shapes ...*shape.Shape) {
	t.Helper()
	for _, s := range shapes {
		if err := c.Register(s); err != nil {
			t.Fatalf("Register(%s): %v", s, err)
		}
	}
}

func TestSingleBox(t *testing.T) {
	c := tessellate.NewContext(nil)
	box := shape.NewBox(1, 1, 1)
	register(t, c, box)
	geo := c.Seal()

	if len(geo.Vertices()) != 8 {
		t.Errorf("expected 8 vertices, got %d", len(geo.Vertices()))
	}
	if len(geo.Indices()) != 36 {
		t.Errorf("expected 36 indices, got %d", len(geo.Indices()))
	}

	r := box.DrawRange()
	if r.IndexCount != 36 || r.FirstIndexLocation != 0 || r.FirstVertexLocation != 0 {
		t.Errorf("unexpected draw range %+v", r)
	}
	if !box.Initialized() {
		t.Error("expected registered shape to be initialized")
	}
}

func TestRangesFollowCreationOrder(t *testing.T) {
	c := tessellate.NewContext(lowRes)
	box := shape.NewBox(1, 1, 1)
	cyl := shape.NewCylinder(1, 2)
	sphere := shape.NewSphere(1)
	register(t, c, box, cyl, sphere)
	geo := c.Seal()

	boxV, boxT := meshgen.Counts(geom.KindBox, c.Resolution(geom.KindBox))
	cylV, cylT := meshgen.Counts(geom.KindCylinder, lowRes[geom.KindCylinder])
	sphV, sphT := meshgen.Counts(geom.KindSphere, lowRes[geom.KindSphere])

	cr := cyl.DrawRange()
	if cr.FirstVertexLocation != uint32(boxV) {
		t.Errorf("cylinder vertices start at %d, want %d", cr.FirstVertexLocation, boxV)
	}
	if cr.FirstIndexLocation != uint32(boxT*3) {
		t.Errorf("cylinder indices start at %d, want %d", cr.FirstIndexLocation, boxT*3)
	}

	sr := sphere.DrawRange()
	if sr.FirstVertexLocation != uint32(boxV+cylV) {
		t.Errorf("sphere vertices start at %d, want %d", sr.FirstVertexLocation, boxV+cylV)
	}
	if sr.IndexCount != uint32(sphT*3) {
		t.Errorf("sphere index count %d, want %d", sr.IndexCount, sphT*3)
	}

	if got, want := len(geo.Vertices()), boxV+cylV+sphV; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	if got, want := len(geo.Indices()), 3*(boxT+cylT+sphT); got != want {
		t.Errorf("expected %d indices, got %d", want, got)
	}
}

func TestIndicesAreAbsoluteAndInRange(t *testing.T) {
	c := tessellate.NewContext(lowRes)
	shapes := []*shape.Shape{
		shape.NewBox(1, 1, 1), shape.NewPyramid(1, 1, 1), shape.NewCylinder(1, 1),
		shape.NewCone(1, 1), shape.NewSphere(1),
	}
	register(t, c, shapes...)
	geo := c.Seal()

	if len(geo.Indices())%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(geo.Indices()))
	}
	for _, s := range shapes {
		r := s.DrawRange()
		for _, i := range r.IndexSlice(geo.Indices()) {
			if i < r.FirstVertexLocation || i >= r.FirstVertexLocation+r.VertexCount {
				t.Fatalf("%s: index %d outside its vertices [%d,%d)", s.Kind(), i,
					r.FirstVertexLocation, r.FirstVertexLocation+r.VertexCount)
			}
		}
	}
}

func TestSameKindSharesGeometry(t *testing.T) {
	c := tessellate.NewContext(lowRes)
	a := shape.NewCone(1, 1)
	b := shape.NewCone(3, 2)
	register(t, c, a, b)
	geo := c.Seal()

	ra, rb := a.DrawRange(), b.DrawRange()
	if ra.ConstantDataIndex != 0 || rb.ConstantDataIndex != 1 {
		t.Errorf("expected constant data indices 0 and 1, got %d and %d", ra.ConstantDataIndex, rb.ConstantDataIndex)
	}
	rb.ConstantDataIndex = ra.ConstantDataIndex
	if ra != rb {
		t.Errorf("expected shared geometry, got %+v and %+v", ra, rb)
	}

	wantV, _ := meshgen.Counts(geom.KindCone, lowRes[geom.KindCone])
	if len(geo.Vertices()) != wantV {
		t.Errorf("expected cone generated once (%d vertices), got %d", wantV, len(geo.Vertices()))
	}
	if len(c.Kinds()) != 1 || c.Registered() != 2 {
		t.Errorf("expected 1 kind and 2 shapes, got %v and %d", c.Kinds(), c.Registered())
	}
}

func TestMeshRebasesRange(t *testing.T) {
	c := tessellate.NewContext(lowRes)
	box := shape.NewBox(1, 1, 1)
	cone := shape.NewCone(1, 1)
	register(t, c, box, cone)
	geo := c.Seal()

	want := &geom.Mesh{}
	meshgen.Cone(want, lowRes[geom.KindCone])
	got := geo.Mesh(cone.DrawRange())

	if got.VertexCount() != want.VertexCount() || got.TriangleCount() != want.TriangleCount() {
		t.Fatalf("rebased mesh has %d/%d, want %d/%d", got.VertexCount(), got.TriangleCount(),
			want.VertexCount(), want.TriangleCount())
	}
	for i := range want.Triangles {
		if got.Triangles[i] != want.Triangles[i] {
			t.Fatalf("triangle %d: got %v, want %v", i, got.Triangles[i], want.Triangles[i])
		}
	}
	if r, ok := geo.Range(geom.KindCone); !ok || r.FirstVertexLocation != 8 {
		t.Errorf("unexpected cone range %+v (found %v)", r, ok)
	}
}

func TestRegisterAfterSeal(t *testing.T) {
	c := tessellate.NewContext(nil)
	c.Seal()
	err := c.Register(shape.NewBox(1, 1, 1))
	if !errors.Is(err, tessellate.ErrSealed) {
		t.Errorf("expected ErrSealed, got %v", err)
	}
}

func TestRegisterTwice(t *testing.T) {
	c := tessellate.NewContext(nil)
	box := shape.NewBox(1, 1, 1)
	register(t, c, box)
	want := box.DrawRange()

	err := c.Register(box)
	if !errors.Is(err, tessellate.ErrRegistered) {
		t.Fatalf("expected ErrRegistered, got %v", err)
	}
	if c.Registered() != 1 {
		t.Errorf("registered = %d, want 1", c.Registered())
	}
	if box.DrawRange() != want {
		t.Errorf("draw range changed to %+v, want %+v", box.DrawRange(), want)
	}

	// A second context cannot claim the shape either.
	if err := tessellate.NewContext(nil).Register(box); !errors.Is(err, tessellate.ErrRegistered) {
		t.Errorf("expected ErrRegistered from a fresh context, got %v", err)
	}
}

func TestRegisterUnknownKind(t *testing.T) {
	c := tessellate.NewContext(nil)
	err := c.Register(shape.New(geom.Kind(77), math32.Vec3(1, 1, 1)))
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if c.Registered() != 0 {
		t.Errorf("failed registration should not count, got %d", c.Registered())
	}
}

func TestResolutionIsClamped(t *testing.T) {
	c := tessellate.NewContext(map[geom.Kind]meshgen.Resolution{geom.KindSphere: {}})
	got := c.Resolution(geom.KindSphere)
	if got.VerticesPerCircle != meshgen.MinVerticesPerCircle || got.Circles != meshgen.MinCircles {
		t.Errorf("expected clamped resolution, got %+v", got)
	}
	if c.Resolution(geom.KindCone) != meshgen.DefaultResolution {
		t.Errorf("expected default resolution for unconfigured kind")
	}
}
