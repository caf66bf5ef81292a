package kernel

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// ball is a unit sphere solid for testing Deviation without a real kernel.
type ball struct{}

func (ball) BoundingBox() (min, max [3]float64) {
	return [3]float64{-1, -1, -1}, [3]float64{1, 1, 1}
}

func (ball) Distance(p [3]float64) float64 {
	return math.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]) - 1
}

func TestDeviation(t *testing.T) {
	tests := []struct {
		name   string
		points []math32.Vector3
		want   float64
	}{
		{"empty", nil, 0},
		{"on surface", []math32.Vector3{math32.Vec3(1, 0, 0), math32.Vec3(0, -1, 0)}, 0},
		{"inside", []math32.Vector3{math32.Vec3(0.5, 0, 0)}, 0.5},
		{"worst wins", []math32.Vector3{math32.Vec3(0, 0, 1.25), math32.Vec3(0, 0.5, 0)}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &geom.Mesh{}
			for _, p := range tt.points {
				m.AddVertex(geom.Vertex{Position: p})
			}
			if got := Deviation(ball{}, m); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Deviation() = %g, want %g", got, tt.want)
			}
		})
	}
}
