package mesh

import (
	"errors"
	"fmt"

	"github.com/reverb3d/reverb/types"
)

var (
	ErrIndexCount      = errors.New("mesh: index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("mesh: index references a vertex outside the vertex buffer")
)

// A triangulated surface mesh. The vertex and index buffers are width
// polymorphic (see VertexBuffer and IndexBuffer); the mesh additionally
// carries one material attribute per vertex and a cached bounding box over
// all vertices.
type Mesh struct {
	vb    VertexBuffer
	ib    IndexBuffer
	attrs []Attribute
	aabb  types.AABB
}

// Create an empty mesh. Its bounding box is the expansion identity until
// buffers are attached.
func New() *Mesh {
	return &Mesh{aabb: types.ResetAABB()}
}

// Attach the given buffers by reference; the caller retains ownership of the
// underlying slices and must not mutate them while the mesh is in use. The
// attribute buffer is always allocated by the mesh itself, one solid-default
// attribute per vertex. Any previously attached buffers are released.
//
// Indices are validated up front: an out-of-range index is reported as an
// error here rather than surfacing later as a bogus geometry read.
func (m *Mesh) AssignBuffers(vb VertexBuffer, ib IndexBuffer) error {
	if err := validateBuffers(vb, ib); err != nil {
		return err
	}

	m.vb = vb
	m.ib = ib
	m.attrs = make([]Attribute, vb.Len())
	for i := range m.attrs {
		m.attrs[i] = DefaultSolid()
	}
	m.calculateBounds()
	return nil
}

// Like AssignBuffers but deep-copies both buffers so the mesh owns its own
// storage, preserving the element widths of the originals.
func (m *Mesh) CopyBuffers(vb VertexBuffer, ib IndexBuffer) error {
	if err := validateBuffers(vb, ib); err != nil {
		return err
	}
	return m.AssignBuffers(vb.clone(), ib.clone())
}

func validateBuffers(vb VertexBuffer, ib IndexBuffer) error {
	if ib.Len()%3 != 0 {
		return fmt.Errorf("%w (%d indices)", ErrIndexCount, ib.Len())
	}
	for i := 0; i != ib.Len(); i++ {
		if idx := ib.At(i); idx < 0 || idx >= vb.Len() {
			return fmt.Errorf("%w (index %d at position %d, %d vertices)",
				ErrIndexOutOfRange, idx, i, vb.Len())
		}
	}
	return nil
}

// Number of vertices.
func (m *Mesh) VertexCount() int {
	if m.vb == nil {
		return 0
	}
	return m.vb.Len()
}

// Number of indices.
func (m *Mesh) IndexCount() int {
	if m.ib == nil {
		return 0
	}
	return m.ib.Len()
}

// Number of triangle faces.
func (m *Mesh) FaceCount() int {
	return m.IndexCount() / 3
}

// Decode the vertex position at the given index.
func (m *Mesh) Vertex(index int) types.Vec3 {
	return m.vb.At(index)
}

// Decode the index at the given buffer position.
func (m *Mesh) Index(position int) int {
	return m.ib.At(position)
}

// The mesh index buffer. The octree root aliases this buffer instead of
// copying it.
func (m *Mesh) Indices() IndexBuffer {
	return m.ib
}

// Get the material attribute of a vertex.
func (m *Mesh) Attribute(index int) Attribute {
	return m.attrs[index]
}

// Assign the material attribute of a vertex.
func (m *Mesh) SetAttribute(index int, attr Attribute) {
	m.attrs[index] = attr
}

// The cached bounding box over all vertices.
func (m *Mesh) Bounds() types.AABB {
	return m.aabb
}

// Assemble the face with the given index: 3 decoded vertex positions plus
// their attributes.
func (m *Mesh) Face(faceIndex int) Face {
	return m.FaceFromIndices(m.ib, faceIndex)
}

// Assemble a face using an alternate index view (an octree node's reduced
// index list or a query result) while decoding positions and attributes from
// this mesh.
func (m *Mesh) FaceFromIndices(ib IndexView, faceIndex int) Face {
	i0 := ib.At(faceIndex*3 + 0)
	i1 := ib.At(faceIndex*3 + 1)
	i2 := ib.At(faceIndex*3 + 2)

	return Face{
		{Position: m.vb.At(i0), Attr: m.attrs[i0]},
		{Position: m.vb.At(i1), Attr: m.attrs[i1]},
		{Position: m.vb.At(i2), Attr: m.attrs[i2]},
	}
}

func (m *Mesh) calculateBounds() {
	m.aabb = types.ResetAABB()
	for v := 0; v != m.vb.Len(); v++ {
		m.aabb.ExpandPoint(m.vb.At(v))
	}
}
