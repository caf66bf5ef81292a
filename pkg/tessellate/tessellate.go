// Package tessellate owns the shared vertex and index buffers that every
// placed shape draws from. A Context runs each primitive kind's generator
// once, on first use, appends the result to the shared buffers and hands
// each registered shape the slice it should draw.
//
// A Context is append-only until Seal and read-only afterwards. It is not
// safe for concurrent use; callers serialize registration.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/meshgen"
	"github.com/chazu/facet/pkg/shape"
)

// ErrSealed is returned by Register after Seal.
var ErrSealed = errors.New("tessellate: context is sealed")

// ErrRegistered is returned when a shape already has its draw range.
var ErrRegistered = errors.New("tessellate: shape already registered")

// Context is the geometry build context.
type Context struct {
	resolutions map[geom.Kind]meshgen.Resolution
	buffer      geom.Mesh
	ranges      map[geom.Kind]geom.DrawRange
	order       []geom.Kind
	registered  int
	sealed      bool
}

// NewContext returns an empty context. Revolved kinds missing from res use
// meshgen.DefaultResolution.
func NewContext(res map[geom.Kind]meshgen.Resolution) *Context {
	c := &Context{
		resolutions: make(map[geom.Kind]meshgen.Resolution, len(res)),
		ranges:      make(map[geom.Kind]geom.DrawRange),
	}
	for k, r := range res {
		c.resolutions[k] = r.Clamp()
	}
	return c
}

// Resolution returns the resolution the context uses for kind.
func (c *Context) Resolution(kind geom.Kind) meshgen.Resolution {
	if r, ok := c.resolutions[kind]; ok {
		return r
	}
	return meshgen.DefaultResolution
}

// Register gives s its draw range, generating the geometry for s's kind if
// this is the first shape of that kind. The range's ConstantDataIndex is
// the number of shapes registered before s.
func (c *Context) Register(s *shape.Shape) error {
	if c.sealed {
		return ErrSealed
	}
	if s.Initialized() {
		return fmt.Errorf("%w: %s", ErrRegistered, s)
	}
	r, err := c.rangeFor(s.Kind())
	if err != nil {
		return err
	}
	r.ConstantDataIndex = c.registered
	c.registered++
	s.SetDrawRange(r)
	return nil
}

// rangeFor returns the cached range for kind, generating it if needed.
func (c *Context) rangeFor(kind geom.Kind) (geom.DrawRange, error) {
	if r, ok := c.ranges[kind]; ok {
		return r, nil
	}

	var scratch geom.Mesh
	if err := meshgen.Generate(kind, &scratch, c.Resolution(kind)); err != nil {
		return geom.DrawRange{}, fmt.Errorf("tessellate: %w", err)
	}

	base := uint32(c.buffer.VertexCount())
	r := geom.DrawRange{
		IndexCount:          uint32(scratch.TriangleCount() * 3),
		FirstIndexLocation:  uint32(c.buffer.TriangleCount() * 3),
		FirstVertexLocation: base,
		VertexCount:         uint32(scratch.VertexCount()),
	}

	c.buffer.Vertices = append(c.buffer.Vertices, scratch.Vertices...)
	for _, t := range scratch.Triangles {
		c.buffer.Triangles = append(c.buffer.Triangles, t.Offset(base))
	}

	c.ranges[kind] = r
	c.order = append(c.order, kind)
	return r, nil
}

// Registered returns the number of shapes registered so far.
func (c *Context) Registered() int {
	return c.registered
}

// Kinds returns the kinds generated so far, in generation order.
func (c *Context) Kinds() []geom.Kind {
	return append([]geom.Kind(nil), c.order...)
}

// Seal ends the build and returns the finished buffers.
func (c *Context) Seal() *Geometry {
	c.sealed = true
	return &Geometry{
		vertices: c.buffer.Vertices,
		indices:  c.buffer.Indices(),
		ranges:   c.ranges,
	}
}

// Geometry is the read-only result of a sealed Context.
type Geometry struct {
	vertices []geom.Vertex
	indices  []uint32
	ranges   map[geom.Kind]geom.DrawRange
}

// Vertices returns the combined vertex buffer. Callers must not modify it.
func (g *Geometry) Vertices() []geom.Vertex {
	return g.vertices
}

// Indices returns the combined index buffer with absolute indices.
// Callers must not modify it.
func (g *Geometry) Indices() []uint32 {
	return g.indices
}

// Range returns the draw range generated for kind, if any.
func (g *Geometry) Range(kind geom.Kind) (geom.DrawRange, bool) {
	r, ok := g.ranges[kind]
	return r, ok
}

// Mesh copies the range's vertices and triangles into a standalone mesh
// with indices rebased to zero.
func (g *Geometry) Mesh(r geom.DrawRange) *geom.Mesh {
	m := &geom.Mesh{
		Vertices: append([]geom.Vertex(nil), g.vertices[r.FirstVertexLocation:r.FirstVertexLocation+r.VertexCount]...),
	}
	idx := r.IndexSlice(g.indices)
	for i := 0; i+2 < len(idx); i += 3 {
		m.AddTriangle(idx[i]-r.FirstVertexLocation, idx[i+1]-r.FirstVertexLocation, idx[i+2]-r.FirstVertexLocation)
	}
	return m
}
