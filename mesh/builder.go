package mesh

import "github.com/reverb3d/reverb/types"

// A Builder accumulates faces one at a time and emits a mesh with
// deduplicated vertices. Importers use it so they don't have to manage the
// flat buffer layout themselves.
type Builder struct {
	faces []Face
	aabb  types.AABB
}

func NewBuilder() *Builder {
	return &Builder{aabb: types.ResetAABB()}
}

// Append a face to the mesh under construction.
func (b *Builder) AddFace(f Face) {
	b.faces = append(b.faces, f)
	bounds := f.Bounds()
	b.aabb.ExpandAABB(bounds)
}

// Number of faces added so far.
func (b *Builder) FaceCount() int {
	return len(b.faces)
}

// Emit the accumulated faces as a mesh. Vertices are deduplicated by exact
// coordinate match; when two faces disagree on the attribute of a shared
// vertex the last one added wins.
func (b *Builder) Build() (*Mesh, error) {
	positions := make([]float64, 0, len(b.faces)*9)
	indices := make([]uint32, 0, len(b.faces)*3)
	attrs := make([]Attribute, 0, len(b.faces)*3)
	seen := make(map[types.Vec3]uint32)

	for _, f := range b.faces {
		for _, v := range f {
			idx, ok := seen[v.Position]
			if !ok {
				idx = uint32(len(attrs))
				seen[v.Position] = idx
				positions = append(positions, v.Position[0], v.Position[1], v.Position[2])
				attrs = append(attrs, v.Attr)
			} else {
				attrs[idx] = v.Attr
			}
			indices = append(indices, idx)
		}
	}

	m := New()
	if err := m.AssignBuffers(Float64Vertices(positions), Uint32Indices(indices)); err != nil {
		return nil, err
	}
	for i, a := range attrs {
		m.SetAttribute(i, a)
	}
	return m, nil
}

// Build an axis-aligned cuboid surface mesh covering the given box, with the
// same attribute on every vertex. Used by tests and demos as a minimal
// closed geometry.
func Cube(bb types.AABB, attr Attribute) (*Mesh, error) {
	corner := func(i int) types.Vec3 {
		p := bb.Min
		if i&4 != 0 {
			p[0] = bb.Max[0]
		}
		if i&2 != 0 {
			p[1] = bb.Max[1]
		}
		if i&1 != 0 {
			p[2] = bb.Max[2]
		}
		return p
	}

	// Two triangles per cuboid face, corners encoded as x/y/z bit patterns.
	quads := [6][4]int{
		{0, 1, 3, 2}, // -x
		{4, 6, 7, 5}, // +x
		{0, 4, 5, 1}, // -y
		{2, 3, 7, 6}, // +y
		{0, 2, 6, 4}, // -z
		{1, 5, 7, 3}, // +z
	}

	b := NewBuilder()
	for _, q := range quads {
		b.AddFace(Face{
			{Position: corner(q[0]), Attr: attr},
			{Position: corner(q[1]), Attr: attr},
			{Position: corner(q[2]), Attr: attr},
		})
		b.AddFace(Face{
			{Position: corner(q[0]), Attr: attr},
			{Position: corner(q[2]), Attr: attr},
			{Position: corner(q[3]), Attr: attr},
		})
	}
	return b.Build()
}
