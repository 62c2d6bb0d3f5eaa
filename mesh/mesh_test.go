package mesh

import (
	"errors"
	"testing"

	"github.com/reverb3d/reverb/types"
)

func TestAssignBuffers(t *testing.T) {
	vertices := []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	indices := []uint32{0, 1, 2}

	m := New()
	if err := m.AssignBuffers(Float64Vertices(vertices), Uint32Indices(indices)); err != nil {
		t.Fatal(err)
	}

	if m.VertexCount() != 3 || m.IndexCount() != 3 || m.FaceCount() != 1 {
		t.Fatalf("wrong counts: %d vertices, %d indices, %d faces",
			m.VertexCount(), m.IndexCount(), m.FaceCount())
	}

	exp := types.AABB{Min: types.Vec3{0, 0, 0}, Max: types.Vec3{1, 1, 0}}
	if m.Bounds() != exp {
		t.Fatalf("expected bounds %v; got %v", exp, m.Bounds())
	}

	// Attributes default to solid.
	for i := 0; i != m.VertexCount(); i++ {
		if !m.Attribute(i).Same(DefaultSolid()) {
			t.Fatalf("vertex %d: expected solid default attribute; got %+v", i, m.Attribute(i))
		}
	}
}

func TestBufferWidths(t *testing.T) {
	// The same single triangle stored with every supported index width.
	buffers := []IndexBuffer{
		Int8Indices([]int8{0, 1, 2}),
		Uint8Indices([]uint8{0, 1, 2}),
		Int16Indices([]int16{0, 1, 2}),
		Uint16Indices([]uint16{0, 1, 2}),
		Int32Indices([]int32{0, 1, 2}),
		Uint32Indices([]uint32{0, 1, 2}),
		Int64Indices([]int64{0, 1, 2}),
		Uint64Indices([]uint64{0, 1, 2}),
	}

	vb32 := Float32Vertices([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	vb64 := Float64Vertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0})

	for idx, ib := range buffers {
		for _, vb := range []VertexBuffer{vb32, vb64} {
			m := New()
			if err := m.AssignBuffers(vb, ib); err != nil {
				t.Fatalf("[buffer %d] %v", idx, err)
			}
			if m.Vertex(1) != (types.Vec3{1, 0, 0}) {
				t.Fatalf("[buffer %d] wrong vertex decode: %v", idx, m.Vertex(1))
			}
			if m.Index(2) != 2 {
				t.Fatalf("[buffer %d] wrong index decode: %d", idx, m.Index(2))
			}
		}
	}
}

func TestBufferValidation(t *testing.T) {
	vb := Float64Vertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0})

	m := New()
	err := m.AssignBuffers(vb, Uint32Indices([]uint32{0, 1}))
	if !errors.Is(err, ErrIndexCount) {
		t.Fatalf("expected ErrIndexCount; got %v", err)
	}

	err = m.AssignBuffers(vb, Uint32Indices([]uint32{0, 1, 7}))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange; got %v", err)
	}
}

func TestCopyBuffers(t *testing.T) {
	vertices := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	indices := []uint16{0, 1, 2}

	m := New()
	if err := m.CopyBuffers(Float32Vertices(vertices), Uint16Indices(indices)); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slices must not affect the mesh.
	vertices[3] = 99
	indices[0] = 2
	if m.Vertex(1) != (types.Vec3{1, 0, 0}) {
		t.Fatalf("copied mesh sees caller mutation: %v", m.Vertex(1))
	}
	if m.Index(0) != 0 {
		t.Fatalf("copied mesh sees caller index mutation: %d", m.Index(0))
	}
}

func TestFaceAssembly(t *testing.T) {
	m := New()
	err := m.AssignBuffers(
		Float64Vertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}),
		Uint32Indices([]uint32{0, 1, 2, 0, 2, 3}),
	)
	if err != nil {
		t.Fatal(err)
	}
	m.SetAttribute(3, DefaultAir())

	f := m.Face(1)
	if f[0].Position != (types.Vec3{0, 0, 0}) ||
		f[1].Position != (types.Vec3{0, 1, 0}) ||
		f[2].Position != (types.Vec3{0, 0, 1}) {
		t.Fatalf("wrong face positions: %+v", f)
	}
	if !f[2].Attr.Same(DefaultAir()) {
		t.Fatalf("expected air attribute on third vertex; got %+v", f[2].Attr)
	}

	bb := f.Bounds()
	exp := types.AABB{Min: types.Vec3{0, 0, 0}, Max: types.Vec3{0, 1, 1}}
	if bb != exp {
		t.Fatalf("expected face bounds %v; got %v", exp, bb)
	}
}

func TestAttributeNormalized(t *testing.T) {
	a := Attribute{Reflection: 1, Transmission: 1, Absorption: 2}.Normalized()
	if a.Reflection != 0.25 || a.Transmission != 0.25 || a.Absorption != 0.5 {
		t.Fatalf("wrong normalization: %+v", a)
	}

	if !(Attribute{}).Normalized().Same(DefaultSolid()) {
		t.Fatal("zero attribute should normalize to the solid default")
	}
}

func TestBuilderDedup(t *testing.T) {
	b := NewBuilder()
	attr := DefaultSolid()
	b.AddFace(Face{
		{Position: types.Vec3{0, 0, 0}, Attr: attr},
		{Position: types.Vec3{1, 0, 0}, Attr: attr},
		{Position: types.Vec3{0, 1, 0}, Attr: attr},
	})
	// Shares an edge with the first face.
	b.AddFace(Face{
		{Position: types.Vec3{1, 0, 0}, Attr: attr},
		{Position: types.Vec3{1, 1, 0}, Attr: attr},
		{Position: types.Vec3{0, 1, 0}, Attr: attr},
	})

	m, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4 {
		t.Fatalf("expected 4 deduplicated vertices; got %d", m.VertexCount())
	}
	if m.FaceCount() != 2 {
		t.Fatalf("expected 2 faces; got %d", m.FaceCount())
	}
}

func TestCube(t *testing.T) {
	m, err := Cube(types.NewAABB(0, 0, 0, 2, 2, 2), DefaultSolid())
	if err != nil {
		t.Fatal(err)
	}

	if m.VertexCount() != 8 {
		t.Fatalf("expected 8 vertices; got %d", m.VertexCount())
	}
	if m.FaceCount() != 12 {
		t.Fatalf("expected 12 faces; got %d", m.FaceCount())
	}

	exp := types.AABB{Min: types.Vec3{0, 0, 0}, Max: types.Vec3{2, 2, 2}}
	if m.Bounds() != exp {
		t.Fatalf("expected bounds %v; got %v", exp, m.Bounds())
	}
}
