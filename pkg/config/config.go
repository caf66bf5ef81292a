// Package config loads facet's YAML configuration: tessellation resolution
// per revolved kind and default size and color per primitive kind.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/meshgen"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "facet.yaml"

// Config is the root of the YAML document.
type Config struct {
	Tessellation Tessellation   `yaml:"tessellation"`
	Primitives   []PrimitiveDef `yaml:"primitives,omitempty"`
}

// Tessellation holds the grid resolution of each revolved kind.
type Tessellation struct {
	Cylinder meshgen.Resolution `yaml:"cylinder"`
	Cone     meshgen.Resolution `yaml:"cone"`
	Sphere   meshgen.Resolution `yaml:"sphere"`
}

// PrimitiveDef is the default size and color for one kind. Size follows
// shape.Shape.Dimensions for the kind.
type PrimitiveDef struct {
	Type  string     `yaml:"type"`
	Size  [3]float32 `yaml:"size,omitempty"`
	Color string     `yaml:"color,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tessellation: Tessellation{
			Cylinder: meshgen.Resolution{VerticesPerCircle: 32, Circles: 2},
			Cone:     meshgen.Resolution{VerticesPerCircle: 32, Circles: 8},
			Sphere:   meshgen.Resolution{VerticesPerCircle: 32, Circles: 16},
		},
		Primitives: []PrimitiveDef{
			{Type: "box", Size: [3]float32{1, 1, 1}, Color: "#808080"},
			{Type: "pyramid", Size: [3]float32{1, 1, 1}, Color: "#D4A373"},
			{Type: "cylinder", Size: [3]float32{0.5, 1, 0.5}, Color: "#4A90D9"},
			{Type: "cone", Size: [3]float32{0.5, 1, 0.5}, Color: "#E67E22"},
			{Type: "sphere", Size: [3]float32{0.5, 0.5, 0.5}, Color: "#2ECC71"},
		},
	}
}

// Load reads the config at path. A missing file yields Default() and no
// error; a file that does not parse or validate is an error. Kinds the file
// leaves out keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	c := Default()
	c.Primitives = nil
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	c.Primitives = mergeDefaults(c.Primitives)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// mergeDefaults appends the built-in definition of every kind defs lacks.
func mergeDefaults(defs []PrimitiveDef) []PrimitiveDef {
	have := make(map[string]bool, len(defs))
	for _, d := range defs {
		have[d.Type] = true
	}
	for _, d := range Default().Primitives {
		if !have[d.Type] {
			defs = append(defs, d)
		}
	}
	return defs
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that every primitive names a known kind and a parsable
// color. Resolutions are not checked; they are clamped when used.
func (c Config) Validate() error {
	var errs []error
	for i, d := range c.Primitives {
		if _, err := geom.ParseKind(d.Type); err != nil {
			errs = append(errs, fmt.Errorf("primitives[%d]: %w", i, err))
		}
		if d.Color != "" {
			if _, err := ParseColor(d.Color); err != nil {
				errs = append(errs, fmt.Errorf("primitives[%d]: %w", i, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Resolutions returns the tessellation settings keyed by kind.
func (c Config) Resolutions() map[geom.Kind]meshgen.Resolution {
	return map[geom.Kind]meshgen.Resolution{
		geom.KindCylinder: c.Tessellation.Cylinder,
		geom.KindCone:     c.Tessellation.Cone,
		geom.KindSphere:   c.Tessellation.Sphere,
	}
}

// PrimitiveDefaults returns the configured size and color for kind. Missing
// sizes are 1 on every axis and missing colors are opaque grey.
func (c Config) PrimitiveDefaults(kind geom.Kind) (math32.Vector3, math32.Vector4) {
	size := math32.Vec3(1, 1, 1)
	color := math32.Vec4(0.5, 0.5, 0.5, 1)
	for _, d := range c.Primitives {
		if k, err := geom.ParseKind(d.Type); err != nil || k != kind {
			continue
		}
		if d.Size != [3]float32{} {
			size = math32.Vec3(d.Size[0], d.Size[1], d.Size[2])
		}
		if col, err := ParseColor(d.Color); err == nil {
			color = col
		}
		break
	}
	return size, color
}
