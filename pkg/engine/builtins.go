package engine

import (
	"fmt"
	"sort"
	"strings"

	"cogentcore.org/core/math32"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/scene"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a vector built by (vec3 x y z).
type sexpVec3 struct {
	vec math32.Vector3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape is returned by the shape builtins. It refers to a recorded spec
// by index so later forms can move or recolor it.
type sexpShape struct {
	index int
	kind  geom.Kind
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s #%d)", s.kind, s.index)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// checkKeywords rejects any keyword not in allowed.
func (a kwArgs) checkKeywords(allowed ...string) error {
	var unknown []string
	for k := range a.kw {
		found := false
		for _, ok := range allowed {
			if k == ok {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, ":"+k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown keyword %s", strings.Join(unknown, ", "))
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat32 extracts a number from a Sexp (SexpInt or SexpFloat).
func toFloat32(s zygo.Sexp) (float32, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float32(v.Val), nil
	case *zygo.SexpFloat:
		return float32(v.Val), nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (math32.Vector3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return math32.Vector3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toColor parses a hex color string.
func toColor(s zygo.Sexp) (math32.Vector4, error) {
	str, err := toString(s)
	if err != nil {
		return math32.Vector4{}, err
	}
	return config.ParseColor(str)
}

// toShape extracts the spec index from a sexpShape.
func toShape(s zygo.Sexp) (*sexpShape, error) {
	if ref, ok := s.(*sexpShape); ok {
		return ref, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Scene recording
// ---------------------------------------------------------------------------

// recorder collects the specs produced while a program runs.
type recorder struct {
	cfg   config.Config
	specs []scene.Spec
}

func (r *recorder) add(sp scene.Spec) *sexpShape {
	r.specs = append(r.specs, sp)
	return &sexpShape{index: len(r.specs) - 1, kind: sp.Kind}
}

// placementKeywords are accepted by every shape builtin.
var placementKeywords = []string{"at", "rotate", "color", "name"}

// applyPlacement reads :at, :rotate, :color and :name into sp.
func applyPlacement(fn string, pa kwArgs, sp *scene.Spec) error {
	if v, ok := pa.kw["at"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return fmt.Errorf("%s: at: %w", fn, err)
		}
		sp.Position = vec
	}
	if v, ok := pa.kw["rotate"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return fmt.Errorf("%s: rotate: %w", fn, err)
		}
		sp.Rotation = vec
	}
	if v, ok := pa.kw["color"]; ok {
		c, err := toColor(v)
		if err != nil {
			return fmt.Errorf("%s: color: %w", fn, err)
		}
		sp.Color, sp.HasColor = c, true
	}
	if v, ok := pa.kw["name"]; ok {
		s, err := toString(v)
		if err != nil {
			return fmt.Errorf("%s: name: %w", fn, err)
		}
		sp.Name = s
	}
	return nil
}

// newSpec starts a spec for kind with the configured default size and color.
func (r *recorder) newSpec(kind geom.Kind) scene.Spec {
	size, color := r.cfg.PrimitiveDefaults(kind)
	return scene.Spec{Kind: kind, Extents: size, Color: color, HasColor: true}
}

// boxLike handles (box ...) and (pyramid ...): :size (vec3 w h d).
func (r *recorder) boxLike(kind geom.Kind) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords(append([]string{"size"}, placementKeywords...)...); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		sp := r.newSpec(kind)
		if v, ok := pa.kw["size"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: size: %w", name, err)
			}
			sp.Extents = vec
		}
		if err := applyPlacement(name, pa, &sp); err != nil {
			return zygo.SexpNull, err
		}
		return r.add(sp), nil
	}
}

// revolved handles (cylinder ...) and (cone ...): :radius r :height h.
func (r *recorder) revolved(kind geom.Kind) zygo.ZlispUserFunction {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords(append([]string{"radius", "height"}, placementKeywords...)...); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		sp := r.newSpec(kind)
		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: radius: %w", name, err)
			}
			sp.Extents.X, sp.Extents.Z = f, f
		}
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: height: %w", name, err)
			}
			sp.Extents.Y = f
		}
		if err := applyPlacement(name, pa, &sp); err != nil {
			return zygo.SexpNull, err
		}
		return r.add(sp), nil
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
// Source code must be preprocessed with preprocessSource() first so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, r *recorder) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v [3]float32
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat32(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: math32.Vec3(v[0], v[1], v[2])}, nil
	})

	// (box :size (vec3 2 1 1) :at (vec3 0 0 5) :color "#4A90D9")
	env.AddFunction("box", r.boxLike(geom.KindBox))

	// (pyramid :size (vec3 1 2 1) :rotate (vec3 0 45 0))
	env.AddFunction("pyramid", r.boxLike(geom.KindPyramid))

	// (cylinder :radius 0.5 :height 2)
	env.AddFunction("cylinder", r.revolved(geom.KindCylinder))

	// (cone :radius 1 :height 2)
	env.AddFunction("cone", r.revolved(geom.KindCone))

	// (sphere :radius 1.5 :at (vec3 3 0 0))
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.checkKeywords(append([]string{"radius"}, placementKeywords...)...); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		sp := r.newSpec(geom.KindSphere)
		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat32(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
			}
			sp.Extents = math32.Vec3(f, f, f)
		}
		if err := applyPlacement(name, pa, &sp); err != nil {
			return zygo.SexpNull, err
		}
		return r.add(sp), nil
	})

	// (move shape (vec3 1 0 0)) translates an already placed shape.
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("move requires a shape and a vec3")
		}
		ref, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		delta, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		sp := &r.specs[ref.index]
		sp.Position = sp.Position.Add(delta)
		return ref, nil
	})

	// (paint shape "#ff0000") recolors an already placed shape.
	env.AddFunction("paint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("paint requires a shape and a color")
		}
		ref, err := toShape(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("paint: %w", err)
		}
		c, err := toColor(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("paint: %w", err)
		}
		r.specs[ref.index].Color, r.specs[ref.index].HasColor = c, true
		return ref, nil
	})
}
