package shape

import (
	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// UpdateModelMatrix recomputes the model matrix from the current extents,
// orientation and position. For row vectors the composition is
// Scale × Rotation × Translation, so a point is scaled first, then rotated,
// then translated. The matrix is stored column major, which makes the same
// transform T·R·S when applied to column vectors.
func (s *Shape) UpdateModelMatrix() {
	s.model.SetTransform(s.position, s.orientation, s.extents)
}

// ModelMatrix returns the matrix computed by the last UpdateModelMatrix.
func (s *Shape) ModelMatrix() math32.Matrix4 {
	return s.model
}

// TransformPoint maps a point of the unit mesh into world space using the
// current model matrix.
func (s *Shape) TransformPoint(p math32.Vector3) math32.Vector3 {
	v := math32.Vector4FromVector3(p, 1).MulMatrix4(&s.model)
	return math32.Vec3(v.X, v.Y, v.Z)
}

// BBox returns the world-space bounds of the shape's unit bounding box under
// the current model matrix.
func (s *Shape) BBox() math32.Box3 {
	return s.unitBBox().MulMatrix4(&s.model)
}

// unitBBox is the bounding box of the kind's unit mesh.
func (s *Shape) unitBBox() math32.Box3 {
	switch s.kind {
	case geom.KindCylinder, geom.KindCone:
		return math32.B3(-1, -0.5, -1, 1, 0.5, 1)
	case geom.KindSphere:
		return math32.B3(-1, -1, -1, 1, 1, 1)
	}
	return math32.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)
}

// Rotate turns the shape by angle degrees about axis, relative to its
// current orientation.
func (s *Shape) Rotate(axis math32.Vector3, angle float32) {
	s.orientation.SetMul(math32.NewQuatAxisAngle(axis.Normal(), math32.DegToRad(angle)))
}

// RotateEuler turns the shape by Euler angles in degrees, XYZ order,
// relative to its current orientation.
func (s *Shape) RotateEuler(x, y, z float32) {
	s.orientation.SetMul(math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor)))
}

// SetEulerRotation sets the orientation from Euler angles in degrees.
func (s *Shape) SetEulerRotation(x, y, z float32) {
	s.orientation.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// EulerRotation returns the orientation as Euler angles in degrees.
func (s *Shape) EulerRotation() math32.Vector3 {
	return s.orientation.ToEuler().MulScalar(math32.RadToDegFactor)
}

// Move translates the shape by delta.
func (s *Shape) Move(delta math32.Vector3) {
	s.position = s.position.Add(delta)
}
