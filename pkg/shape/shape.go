// Package shape is the per-instance layer over the primitive meshes: the
// kind tag, pose, extents and color of one placed primitive, together with
// its derived model matrix and its slice of the shared geometry buffers.
//
// A Shape is a tagged union over geom.Kind. Every kind-dependent operation
// switches on the tag; there is no per-kind type.
//
// The model matrix is derived state that is only recomputed by
// UpdateModelMatrix. Mutating the pose or extents leaves it stale until
// then.
package shape

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
)

// DefaultColor is the opaque mid grey given to shapes built without one.
var DefaultColor = math32.Vec4(0.5, 0.5, 0.5, 1)

// Shape is one placed primitive.
type Shape struct {
	kind        geom.Kind
	position    math32.Vector3
	orientation math32.Quat
	extents     math32.Vector3
	color       math32.Vector4

	model     math32.Matrix4
	drawRange geom.DrawRange
	// registered is set once a build context has assigned the draw range.
	registered bool

	initial pose
}

// pose is the snapshot Reset returns to.
type pose struct {
	position    math32.Vector3
	orientation math32.Quat
	extents     math32.Vector3
	color       math32.Vector4
}

// New returns a shape of the given kind at the origin with identity
// orientation, the given extents (clamped), DefaultColor and an identity
// model matrix. See Dimensions for the meaning of extents per kind.
func New(kind geom.Kind, extents math32.Vector3) *Shape {
	s := &Shape{kind: kind, color: DefaultColor}
	s.orientation.SetIdentity()
	s.model.SetIdentity()
	s.extents = clampExtents(extents)
	s.initial = s.snapshot()
	return s
}

// NewBox returns a box of width w, height h and depth d.
func NewBox(w, h, d float32) *Shape {
	return New(geom.KindBox, math32.Vec3(w, h, d))
}

// NewPyramid returns a pyramid with a w×d base and height h.
func NewPyramid(w, h, d float32) *Shape {
	return New(geom.KindPyramid, math32.Vec3(w, h, d))
}

// NewCylinder returns a cylinder of radius r and height h.
func NewCylinder(r, h float32) *Shape {
	return New(geom.KindCylinder, math32.Vec3(r, h, r))
}

// NewCone returns a cone with base radius r and height h.
func NewCone(r, h float32) *Shape {
	return New(geom.KindCone, math32.Vec3(r, h, r))
}

// NewSphere returns a sphere of radius r.
func NewSphere(r float32) *Shape {
	return New(geom.KindSphere, math32.Vec3(r, r, r))
}

// Kind returns the variant tag.
func (s *Shape) Kind() geom.Kind {
	return s.kind
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s %v at %v", s.kind, s.extents, s.position)
}

// Dimensions returns the extents. Box and pyramid: width, height, depth.
// Cylinder and cone: radius, height, radius. Sphere: radius on all axes.
func (s *Shape) Dimensions() math32.Vector3 {
	return s.extents
}

// SetDimensions replaces the extents. Any component that is zero or
// negative becomes 1, independently of the others.
func (s *Shape) SetDimensions(v math32.Vector3) {
	s.extents = clampExtents(v)
}

func clampExtents(v math32.Vector3) math32.Vector3 {
	if v.X <= 0 {
		v.X = 1
	}
	if v.Y <= 0 {
		v.Y = 1
	}
	if v.Z <= 0 {
		v.Z = 1
	}
	return v
}

// Position returns the translation.
func (s *Shape) Position() math32.Vector3 {
	return s.position
}

// SetPosition sets the translation.
func (s *Shape) SetPosition(p math32.Vector3) {
	s.position = p
}

// Orientation returns the rotation quaternion.
func (s *Shape) Orientation() math32.Quat {
	return s.orientation
}

// SetOrientation sets the rotation. A zero quaternion is treated as
// identity.
func (s *Shape) SetOrientation(q math32.Quat) {
	if q.IsNil() {
		q.SetIdentity()
	}
	s.orientation = q
}

// Color returns the RGBA color.
func (s *Shape) Color() math32.Vector4 {
	return s.color
}

// SetColor sets the RGBA color.
func (s *Shape) SetColor(c math32.Vector4) {
	s.color = c
}

// DrawRange returns the slice of the shared buffers this shape draws.
func (s *Shape) DrawRange() geom.DrawRange {
	return s.drawRange
}

// SetDrawRange records the shape's slice of the shared buffers. It is
// called once, by the build context, and marks the shape initialized.
func (s *Shape) SetDrawRange(r geom.DrawRange) {
	s.drawRange = r
	s.registered = true
}

// Initialized reports whether the shape has been registered with a build
// context.
func (s *Shape) Initialized() bool {
	return s.registered
}

// Volume returns the volume of the solid described by the kind and extents.
func (s *Shape) Volume() float32 {
	e := s.extents
	switch s.kind {
	case geom.KindBox:
		return e.X * e.Y * e.Z
	case geom.KindPyramid:
		return e.X * e.Y * e.Z / 3
	case geom.KindCylinder:
		return math32.Pi * e.X * e.X * e.Y
	case geom.KindCone:
		return math32.Pi * e.X * e.X * e.Y / 3
	case geom.KindSphere:
		return 4.0 / 3.0 * math32.Pi * e.X * e.X * e.X
	}
	return 0
}

func (s *Shape) snapshot() pose {
	return pose{position: s.position, orientation: s.orientation, extents: s.extents, color: s.color}
}

// MarkInitialPose records the current pose, extents and color as the state
// Reset returns to.
func (s *Shape) MarkInitialPose() {
	s.initial = s.snapshot()
}

// Reset restores the pose, extents and color recorded at construction or by
// the last MarkInitialPose. The model matrix is not recomputed.
func (s *Shape) Reset() {
	s.position = s.initial.position
	s.orientation = s.initial.orientation
	s.extents = s.initial.extents
	s.color = s.initial.color
}
