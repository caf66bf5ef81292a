// Package scene holds the placed shapes built from a list of specs, the
// current selection, and the per-frame hand-off to a renderer.
package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/meshgen"
	"github.com/chazu/facet/pkg/shape"
	"github.com/chazu/facet/pkg/tessellate"
)

// ErrOutOfRange is wrapped by every lookup with a bad index.
var ErrOutOfRange = errors.New("index out of range")

// NoSelection is the selection index when nothing is selected.
const NoSelection = -1

// Spec describes one shape to place. Rotation is in Euler degrees, XYZ order.
// Extents follow shape.Shape.Dimensions. Color is used only when HasColor is
// set; otherwise the shape keeps shape.DefaultColor.
type Spec struct {
	Name     string         `json:"name,omitempty"`
	Kind     geom.Kind      `json:"kind"`
	Extents  math32.Vector3 `json:"extents"`
	Position math32.Vector3 `json:"position"`
	Rotation math32.Vector3 `json:"rotation"`
	Color    math32.Vector4 `json:"color"`
	HasColor bool           `json:"hasColor,omitempty"`
}

// Scene is a built, immutable set of geometry with mutable shape poses.
type Scene struct {
	shapes   []*shape.Shape
	names    []string
	geometry *tessellate.Geometry
	selected int
}

// Build places one shape per spec, registers them with a fresh build
// context using res, and seals it. Model matrices are computed once here;
// afterwards they only change through UpdateTransforms.
func Build(specs []Spec, res map[geom.Kind]meshgen.Resolution) (*Scene, error) {
	ctx := tessellate.NewContext(res)
	sc := &Scene{selected: NoSelection}

	for i, sp := range specs {
		s := shape.New(sp.Kind, sp.Extents)
		s.SetPosition(sp.Position)
		s.SetEulerRotation(sp.Rotation.X, sp.Rotation.Y, sp.Rotation.Z)
		if sp.HasColor {
			s.SetColor(sp.Color)
		}
		s.MarkInitialPose()
		if err := ctx.Register(s); err != nil {
			return nil, fmt.Errorf("scene: spec %d (%s): %w", i, sp.Kind, err)
		}
		s.UpdateModelMatrix()
		sc.shapes = append(sc.shapes, s)
		sc.names = append(sc.names, sp.Name)
	}

	sc.geometry = ctx.Seal()
	slog.Debug("scene built",
		"shapes", len(sc.shapes),
		"kinds", len(ctx.Kinds()),
		"vertices", len(sc.geometry.Vertices()),
		"indices", len(sc.geometry.Indices()))
	return sc, nil
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	return len(sc.shapes)
}

// Shape returns the i-th shape.
func (sc *Scene) Shape(i int) (*shape.Shape, error) {
	if i < 0 || i >= len(sc.shapes) {
		return nil, fmt.Errorf("scene: shape %d: %w", i, ErrOutOfRange)
	}
	return sc.shapes[i], nil
}

// Name returns the i-th shape's name, which may be empty.
func (sc *Scene) Name(i int) (string, error) {
	if i < 0 || i >= len(sc.names) {
		return "", fmt.Errorf("scene: name %d: %w", i, ErrOutOfRange)
	}
	return sc.names[i], nil
}

// Lookup returns the index of the first shape with the given name, or -1.
func (sc *Scene) Lookup(name string) int {
	for i, n := range sc.names {
		if n == name && n != "" {
			return i
		}
	}
	return -1
}

// Shapes returns the shapes in creation order.
func (sc *Scene) Shapes() []*shape.Shape {
	return sc.shapes
}

// Geometry returns the shared buffers.
func (sc *Scene) Geometry() *tessellate.Geometry {
	return sc.geometry
}

// Select makes the i-th shape the selection. NoSelection clears it.
func (sc *Scene) Select(i int) error {
	if i != NoSelection && (i < 0 || i >= len(sc.shapes)) {
		return fmt.Errorf("scene: select %d: %w", i, ErrOutOfRange)
	}
	sc.selected = i
	return nil
}

// SelectNext advances the selection, wrapping to the first shape.
func (sc *Scene) SelectNext() {
	if len(sc.shapes) == 0 {
		return
	}
	sc.selected = (sc.selected + 1) % len(sc.shapes)
}

// SelectedIndex returns the selection index or NoSelection.
func (sc *Scene) SelectedIndex() int {
	return sc.selected
}

// Selected returns the selected shape.
func (sc *Scene) Selected() (*shape.Shape, error) {
	if sc.selected == NoSelection {
		return nil, fmt.Errorf("scene: nothing selected: %w", ErrOutOfRange)
	}
	return sc.Shape(sc.selected)
}

// UpdateTransforms recomputes every shape's model matrix.
func (sc *Scene) UpdateTransforms() {
	for _, s := range sc.shapes {
		s.UpdateModelMatrix()
	}
}

// Reset restores every shape to its built pose and recomputes matrices.
func (sc *Scene) Reset() {
	for _, s := range sc.shapes {
		s.Reset()
		s.UpdateModelMatrix()
	}
}

// Volume returns the summed analytic volume of all shapes.
func (sc *Scene) Volume() float32 {
	var v float32
	for _, s := range sc.shapes {
		v += s.Volume()
	}
	return v
}

// BBox returns the world bounds of all shapes under their current matrices.
func (sc *Scene) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, s := range sc.shapes {
		bb.ExpandByBox(s.BBox())
	}
	return bb
}
