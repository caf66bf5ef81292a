package geom

// DrawRange locates one shape's slice of the shared vertex and index
// buffers. Indices in the shared index buffer are already absolute, so
// FirstVertexLocation records where the shape's vertices begin and is not
// an extra offset to apply at draw time.
type DrawRange struct {
	IndexCount          uint32 `json:"indexCount"`
	FirstIndexLocation  uint32 `json:"firstIndexLocation"`
	FirstVertexLocation uint32 `json:"firstVertexLocation"`
	VertexCount         uint32 `json:"vertexCount"`
	ConstantDataIndex   int    `json:"constantDataIndex"`
}

// TriangleCount returns the number of triangles covered by the range.
func (r DrawRange) TriangleCount() int {
	return int(r.IndexCount / 3)
}

// IndexSlice returns the range's portion of a shared index buffer.
func (r DrawRange) IndexSlice(indices []uint32) []uint32 {
	return indices[r.FirstIndexLocation : r.FirstIndexLocation+r.IndexCount]
}
