package main

import (
	"errors"
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/kernel"
	"github.com/chazu/facet/pkg/kernel/sdfx"
	"github.com/chazu/facet/pkg/meshgen"
	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/shape"
)

// App ties the scene engine, the mesh pipeline and the reference kernel
// together. The CLI commands are thin wrappers around it.
type App struct {
	cfg    config.Config
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable form of one placed shape. Vertex data
// is in the shape's local space; Model takes it to world space.
type MeshData struct {
	Name     string         `json:"name,omitempty"`
	Kind     string         `json:"kind"`
	Vertices []float32      `json:"vertices"`
	Normals  []float32      `json:"normals"`
	UVs      []float32      `json:"uvs"`
	Indices  []uint32       `json:"indices"`
	Model    math32.Matrix4 `json:"model"`
	Color    string         `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Stats summarizes a built scene.
type Stats struct {
	Shapes    int     `json:"shapes"`
	Vertices  int     `json:"vertices"`
	Triangles int     `json:"triangles"`
	Volume    float32 `json:"volume"`
}

// EvalResult is the full result of evaluating a scene script.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
	Stats    Stats           `json:"stats"`
}

// NewApp creates an App with the built-in configuration and the sdfx kernel.
func NewApp() *App {
	return NewAppWithConfig(config.Default())
}

// NewAppWithConfig creates an App using cfg for tessellation and defaults.
func NewAppWithConfig(cfg config.Config) *App {
	return &App{
		cfg:    cfg,
		engine: engine.NewEngineWithConfig(cfg),
		kernel: sdfx.New(),
	}
}

// ScriptError carries the diagnostics of a script that failed to evaluate
// or validate.
type ScriptError struct {
	Errors []EvalErrorData
}

func (e *ScriptError) Error() string {
	if len(e.Errors) == 0 {
		return "scene script has errors"
	}
	first := e.Errors[0]
	msg := first.Message
	if first.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", first.Line, msg)
	}
	if len(e.Errors) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(e.Errors)-1)
	}
	return msg
}

// Build evaluates source, validates the specs it places and builds the
// scene. Script problems are returned as a *ScriptError; advisory findings
// come back as warnings alongside the scene.
func (a *App) Build(source string) (*scene.Scene, []scene.Issue, error) {
	specs, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(evalErrs) > 0 {
		se := &ScriptError{}
		for _, e := range evalErrs {
			se.Errors = append(se.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return nil, nil, se
	}

	var warnings []scene.Issue
	se := &ScriptError{}
	for _, issue := range scene.Validate(specs) {
		if issue.Severity == scene.SeverityError {
			se.Errors = append(se.Errors, EvalErrorData{Message: issue.Error()})
			continue
		}
		warnings = append(warnings, issue)
	}
	if len(se.Errors) > 0 {
		return nil, nil, se
	}

	sc, err := scene.Build(specs, a.cfg.Resolutions())
	if err != nil {
		return nil, nil, fmt.Errorf("build: %w", err)
	}
	for _, pair := range sc.Overlaps() {
		warnings = append(warnings, scene.Issue{
			Index:    pair[1],
			Message:  fmt.Sprintf("overlaps shape %d", pair[0]),
			Severity: scene.SeverityWarning,
		})
	}
	return sc, warnings, nil
}

// Evaluate takes scene source and returns per-shape mesh data, errors and
// warnings.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	sc, warnings, err := a.Build(source)
	var se *ScriptError
	switch {
	case errors.As(err, &se):
		result.Errors = append(result.Errors, se.Errors...)
		return result
	case err != nil:
		slog.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Error()})
	}

	geo := sc.Geometry()
	for i, s := range sc.Shapes() {
		name, _ := sc.Name(i)
		result.Meshes = append(result.Meshes, meshData(name, s, geo.Mesh(s.DrawRange())))
	}
	result.Stats = Stats{
		Shapes:    sc.Len(),
		Vertices:  len(geo.Vertices()),
		Triangles: len(geo.Indices()) / 3,
		Volume:    sc.Volume(),
	}
	slog.Debug("evaluated scene",
		"shapes", result.Stats.Shapes,
		"vertices", result.Stats.Vertices,
		"triangles", result.Stats.Triangles,
		"warnings", len(result.Warnings))
	return result
}

func meshData(name string, s *shape.Shape, m *geom.Mesh) MeshData {
	md := MeshData{
		Name:     name,
		Kind:     s.Kind().String(),
		Vertices: make([]float32, 0, len(m.Vertices)*3),
		Normals:  make([]float32, 0, len(m.Vertices)*3),
		UVs:      make([]float32, 0, len(m.Vertices)*2),
		Indices:  m.Indices(),
		Model:    s.ModelMatrix(),
		Color:    config.FormatColor(s.Color()),
	}
	for _, v := range m.Vertices {
		md.Vertices = append(md.Vertices, v.Position.X, v.Position.Y, v.Position.Z)
		md.Normals = append(md.Normals, v.Normal.X, v.Normal.Y, v.Normal.Z)
		md.UVs = append(md.UVs, v.TexCoord.X, v.TexCoord.Y)
	}
	return md
}

// Export builds source and writes the scene's world-space triangles to an
// STL file at path.
func (a *App) Export(source, path string) error {
	sc, warnings, err := a.Build(source)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, w := range warnings {
		slog.Warn("scene", "issue", w.Error())
	}
	tris := sc.Triangles()
	if len(tris) == 0 {
		return errors.New("export: scene is empty")
	}
	if err := a.kernel.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	slog.Info("exported scene", "path", path, "triangles", len(tris))
	return nil
}

// CheckResult compares one kind's generated mesh to the reference solid.
type CheckResult struct {
	Kind      geom.Kind
	Vertices  int
	Triangles int
	// Deviation is the largest distance from a vertex to the reference
	// surface. It is negative when the kernel has no reference for the kind.
	Deviation float64
	// MeshVolume is the enclosed volume of the mesh; Volume is the analytic
	// volume of the unit solid.
	MeshVolume float32
	Volume     float32
}

// Check generates every kind at the configured resolution and measures it
// against the kernel's reference solid and the analytic volume.
func (a *App) Check() ([]CheckResult, error) {
	res := a.cfg.Resolutions()
	var results []CheckResult
	for _, kind := range geom.Kinds {
		r, ok := res[kind]
		if !ok {
			r = meshgen.DefaultResolution
		}
		var m geom.Mesh
		if err := meshgen.Generate(kind, &m, r); err != nil {
			return nil, fmt.Errorf("check %s: %w", kind, err)
		}
		cr := CheckResult{
			Kind:       kind,
			Vertices:   m.VertexCount(),
			Triangles:  m.TriangleCount(),
			Deviation:  -1,
			MeshVolume: m.SignedVolume(),
			Volume:     shape.New(kind, math32.Vec3(1, 1, 1)).Volume(),
		}
		ref, err := a.kernel.Reference(kind)
		switch {
		case errors.Is(err, kernel.ErrUnsupported):
			slog.Debug("no reference solid", "kind", kind)
		case err != nil:
			return nil, fmt.Errorf("check %s: %w", kind, err)
		default:
			cr.Deviation = kernel.Deviation(ref, &m)
		}
		results = append(results, cr)
	}
	return results, nil
}
