package meshgen

// Lower bounds applied by Resolution.Clamp.
const (
	MinVerticesPerCircle = 3
	MinCircles           = 2
)

// Resolution controls the grid density of the revolved solids. A grid has
// Circles+1 rows and VerticesPerCircle+1 columns; the extra column is the
// seam duplicate of column zero.
type Resolution struct {
	VerticesPerCircle int `yaml:"vertices_per_circle" json:"verticesPerCircle"`
	Circles           int `yaml:"circles" json:"circles"`
}

// DefaultResolution is used when no configuration supplies one.
var DefaultResolution = Resolution{VerticesPerCircle: 32, Circles: 16}

// Clamp returns r with out-of-range values raised to the minimums.
func (r Resolution) Clamp() Resolution {
	if r.VerticesPerCircle < MinVerticesPerCircle {
		r.VerticesPerCircle = MinVerticesPerCircle
	}
	if r.Circles < MinCircles {
		r.Circles = MinCircles
	}
	return r
}

// GridVertexCount is the number of vertices in the rows×columns grid,
// excluding any cap centres.
func (r Resolution) GridVertexCount() int {
	r = r.Clamp()
	return (r.Circles + 1) * (r.VerticesPerCircle + 1)
}

// GridTriangleCount is the number of side triangles, excluding caps.
func (r Resolution) GridTriangleCount() int {
	r = r.Clamp()
	return 2 * r.Circles * r.VerticesPerCircle
}
