package meshgen_test

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/meshgen"
)

var testRes = meshgen.Resolution{VerticesPerCircle: 12, Circles: 5}

func generate(t *testing.T, kind geom.Kind, res meshgen.Resolution) *geom.Mesh {
	t.Helper()
	m := &geom.Mesh{}
	require.NoError(t, meshgen.Generate(kind, m, res))
	return m
}

func TestCounts(t *testing.T) {
	tests := []struct {
		kind      geom.Kind
		res       meshgen.Resolution
		vertices  int
		triangles int
	}{
		{geom.KindBox, testRes, 8, 12},
		{geom.KindPyramid, testRes, 5, 6},
		{geom.KindCylinder, testRes, 6*13 + 2, 2*12*5 + 2*12},
		{geom.KindCone, testRes, 6*13 + 1, 2*12*5 + 12},
		{geom.KindSphere, testRes, 6 * 13, 2 * 12 * 5},
		{geom.KindCylinder, meshgen.Resolution{VerticesPerCircle: 32, Circles: 2}, 3*33 + 2, 2*32*2 + 2*32},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m := generate(t, tt.kind, tt.res)
			assert.Equal(t, tt.vertices, m.VertexCount())
			assert.Equal(t, tt.triangles, m.TriangleCount())

			v, tri := meshgen.Counts(tt.kind, tt.res)
			assert.Equal(t, tt.vertices, v)
			assert.Equal(t, tt.triangles, tri)
		})
	}
}

func TestIndicesInRange(t *testing.T) {
	for _, kind := range geom.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			m := generate(t, kind, testRes)
			idx := m.Indices()
			assert.Zero(t, len(idx)%3)
			for _, i := range idx {
				if i >= uint32(m.VertexCount()) {
					t.Fatalf("index %d out of range for %d vertices", i, m.VertexCount())
				}
			}
		})
	}
}

func TestNormalsAreUnitLength(t *testing.T) {
	for _, kind := range geom.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			m := generate(t, kind, testRes)
			for i, v := range m.Vertices {
				assert.InDelta(t, 1.0, v.Normal.Length(), 1e-4, "vertex %d", i)
			}
		})
	}
}

func TestTexCoordsInUnitSquare(t *testing.T) {
	for _, kind := range geom.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			m := generate(t, kind, testRes)
			for i, v := range m.Vertices {
				uv := v.TexCoord
				if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
					t.Errorf("vertex %d: texcoord %v outside [0,1]", i, uv)
				}
			}
		})
	}
}

// Every triangle with area must face away from the origin, which lies inside
// each unit solid.
func TestWindingFacesOutward(t *testing.T) {
	for _, kind := range geom.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			m := generate(t, kind, testRes)
			for i, tri := range m.Triangles {
				n := tri.Normal(m.Vertices)
				if n.Length() < 1e-6 {
					continue
				}
				if d := n.Dot(tri.Center(m.Vertices)); d <= 0 {
					t.Errorf("triangle %d faces inward (dot %g)", i, d)
				}
			}
		})
	}
}

func TestSignedVolume(t *testing.T) {
	m := float64(testRes.VerticesPerCircle)
	polygon := m / 2 * float64(math32.Sin(2*math32.Pi/float32(m)))

	tests := []struct {
		kind geom.Kind
		want float64
	}{
		{geom.KindBox, 1},
		{geom.KindPyramid, 1.0 / 3},
		{geom.KindCylinder, polygon},
		{geom.KindCone, polygon / 3},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			mesh := generate(t, tt.kind, testRes)
			assert.InDelta(t, tt.want, mesh.SignedVolume(), 1e-4)
		})
	}

	t.Run("sphere", func(t *testing.T) {
		mesh := generate(t, geom.KindSphere, meshgen.Resolution{VerticesPerCircle: 32, Circles: 16})
		assert.InEpsilon(t, 4.0/3*math32.Pi, mesh.SignedVolume(), 0.05)
	})
}

func TestSeamNormalsMatch(t *testing.T) {
	cols := testRes.VerticesPerCircle + 1
	for _, kind := range []geom.Kind{geom.KindCylinder, geom.KindCone, geom.KindSphere} {
		t.Run(kind.String(), func(t *testing.T) {
			m := generate(t, kind, testRes)
			for i := 0; i <= testRes.Circles; i++ {
				first := m.Vertices[i*cols]
				last := m.Vertices[i*cols+cols-1]
				assert.Equal(t, first.Position, last.Position, "row %d position", i)
				assert.Equal(t, first.Normal, last.Normal, "row %d normal", i)
			}
		})
	}
}

func TestConeApexNormalsIdentical(t *testing.T) {
	m := generate(t, geom.KindCone, testRes)
	apex := m.Vertices[0]
	assert.Equal(t, math32.Vec3(0, 0.5, 0), apex.Position)
	assert.InDelta(t, 1.0, apex.Normal.Y, 1e-4)

	for j := 1; j <= testRes.VerticesPerCircle; j++ {
		v := m.Vertices[j]
		assert.Equal(t, apex.Position, v.Position, "column %d", j)
		assert.Equal(t, apex.Normal, v.Normal, "column %d", j)
	}
}

func TestConeApexNormalPointsUp(t *testing.T) {
	for _, res := range []meshgen.Resolution{
		{VerticesPerCircle: 3, Circles: 2},
		{VerticesPerCircle: 7, Circles: 3},
		testRes,
		meshgen.DefaultResolution,
	} {
		m := generate(t, geom.KindCone, res)
		for j := 0; j <= res.VerticesPerCircle; j++ {
			n := m.Vertices[j].Normal
			assert.InDelta(t, 0, n.X, 1e-5, "res %v column %d", res, j)
			assert.InDelta(t, 1, n.Y, 1e-5, "res %v column %d", res, j)
			assert.InDelta(t, 0, n.Z, 1e-5, "res %v column %d", res, j)
		}
	}
}

// The cap centre's normal is blended into the base circle, which tips it
// downward.
func TestConeBaseBlendsTowardsCap(t *testing.T) {
	m := generate(t, geom.KindCone, testRes)
	cols := testRes.VerticesPerCircle + 1
	for j := 0; j < cols; j++ {
		v := m.Vertices[testRes.Circles*cols+j]
		assert.Less(t, v.Normal.Y, float32(0), "column %d", j)
	}
}

func TestResolutionClamp(t *testing.T) {
	assert.Equal(t, meshgen.Resolution{VerticesPerCircle: 3, Circles: 2}, meshgen.Resolution{}.Clamp())
	assert.Equal(t, meshgen.Resolution{VerticesPerCircle: 3, Circles: 2},
		meshgen.Resolution{VerticesPerCircle: -4, Circles: 1}.Clamp())
	assert.Equal(t, testRes, testRes.Clamp())

	low := generate(t, geom.KindCylinder, meshgen.Resolution{VerticesPerCircle: 2, Circles: 1})
	floor := generate(t, geom.KindCylinder, meshgen.Resolution{VerticesPerCircle: 3, Circles: 2})
	assert.Equal(t, floor, low)
	assert.Equal(t, (2+1)*(3+1)+2, low.VertexCount())
}

func TestDeterministic(t *testing.T) {
	for _, kind := range geom.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, generate(t, kind, testRes), generate(t, kind, testRes))
		})
	}
}

func TestAppendOffsetsIndices(t *testing.T) {
	alone := generate(t, geom.KindCylinder, testRes)

	m := &geom.Mesh{}
	meshgen.Box(m)
	meshgen.Cylinder(m, testRes)

	require.Equal(t, 8+alone.VertexCount(), m.VertexCount())
	require.Equal(t, 12+alone.TriangleCount(), m.TriangleCount())
	for i, tri := range alone.Triangles {
		assert.Equal(t, tri.Offset(8), m.Triangles[12+i])
	}
	assert.Equal(t, alone.Vertices, m.Vertices[8:])
}

func TestBoxCornerNormalsPointIntoOctant(t *testing.T) {
	m := generate(t, geom.KindBox, testRes)
	for i, v := range m.Vertices {
		p, n := v.Position, v.Normal
		if p.X*n.X <= 0 || p.Y*n.Y <= 0 || p.Z*n.Z <= 0 {
			t.Errorf("vertex %d: normal %v does not point away from corner %v", i, n, p)
		}
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	err := meshgen.Generate(geom.Kind(42), &geom.Mesh{}, testRes)
	assert.Error(t, err)
}
