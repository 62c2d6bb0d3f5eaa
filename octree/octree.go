package octree

import (
	"errors"
	"time"

	"github.com/reverb3d/reverb/log"
	"github.com/reverb3d/reverb/mesh"
	"github.com/reverb3d/reverb/types"
)

var (
	ErrNoMesh = errors.New("octree: no mesh provided")
)

// A single octree node. Leaf nodes have no children; every node carries the
// list of vertex indices (3 per face) whose faces' bounding boxes intersect
// the node box.
type Node struct {
	// The region of space this node covers.
	Box types.AABB

	parent   *Node
	children []Node

	// For the root this aliases the mesh's full index buffer. Every other
	// node owns its own reduced list.
	faces mesh.IndexView
}

// Whether this node has been subdivided.
func (n *Node) Leaf() bool {
	return n.children == nil
}

// Child nodes, nil for a leaf. When present there are always exactly 8, in
// octant order.
func (n *Node) Children() []Node {
	return n.children
}

// The indices of faces assigned to this node, 3 vertex indices per face.
func (n *Node) FaceIndices() mesh.IndexView {
	return n.faces
}

// A hierarchical spatial index over the faces of a mesh. The octree borrows
// the mesh; it must not outlive it.
type Octree struct {
	logger log.Logger
	mesh   *mesh.Mesh
	root   *Node
}

// Build an octree for the given mesh. Each node is recursively split into 8
// octants until a node holds at most one face or its box extents drop below
// minCell on any axis. A face is assigned to every node whose box its own
// bounding box overlaps, so a single face may appear in several leaves.
func Build(m *mesh.Mesh, minCell types.Vec3) (*Octree, error) {
	if m == nil {
		return nil, ErrNoMesh
	}

	t := &Octree{
		logger: log.New("octree"),
		mesh:   m,
		root: &Node{
			Box:   m.Bounds(),
			faces: m.Indices(),
		},
	}

	// An empty mesh yields a childless root.
	if m.FaceCount() == 0 {
		return t, nil
	}

	start := time.Now()
	t.build(t.root, minCell)

	nodes, leaves := 0, 0
	t.Walk(func(n *Node) {
		nodes++
		if n.Leaf() {
			leaves++
		}
	})
	t.logger.Debugf("octree build time: %d ms, nodes: %d, leaves: %d",
		time.Since(start).Nanoseconds()/1e6, nodes, leaves)

	return t, nil
}

// The mesh this octree indexes.
func (t *Octree) Mesh() *mesh.Mesh {
	return t.mesh
}

// The root node. Its box equals the mesh bounding box.
func (t *Octree) Root() *Node {
	return t.root
}

func (t *Octree) build(n *Node, minCell types.Vec3) {
	if n.parent != nil {
		// Scan the parent's index list, not the mesh's: faces already
		// rejected by an ancestor cannot intersect this node.
		parentFaces := n.parent.faces
		var own mesh.IndexList
		for i := 0; i+2 < parentFaces.Len(); i += 3 {
			i0 := parentFaces.At(i + 0)
			i1 := parentFaces.At(i + 1)
			i2 := parentFaces.At(i + 2)

			faceBox := types.AABBFromPoints(
				t.mesh.Vertex(i0), t.mesh.Vertex(i1), t.mesh.Vertex(i2))
			// Inclusive test: an axis-aligned face sitting exactly on the
			// split plane belongs to the nodes on both sides.
			if types.IntersectAABBAABBInclusive(n.Box, faceBox) {
				own = append(own, i0, i1, i2)
			}
		}
		n.faces = own
	}

	// Stop at a single face.
	if n.faces == nil || n.faces.Len() <= 3 {
		return
	}

	// Stop when the box is smaller than the minimum subdivision size on any
	// axis.
	dims := n.Box.Dims()
	for i := 0; i != 3; i++ {
		if dims[i] < minCell[i] {
			return
		}
	}

	n.children = makeChildren(n)
	for i := range n.children {
		t.build(&n.children[i], minCell)
	}
}

// Allocate the 8 octant children of a node. Octant i occupies the half of
// each axis selected by the corner bit pattern x=bit2, y=bit1, z=bit0.
func makeChildren(parent *Node) []Node {
	half := parent.Box.Dims().Mul(0.5)

	children := make([]Node, 8)
	for i := range children {
		cx := float64((i >> 2) & 1)
		cy := float64((i >> 1) & 1)
		cz := float64(i & 1)

		children[i] = Node{
			Box: types.AABB{
				Min: types.Vec3{
					parent.Box.Min[0] + cx*half[0],
					parent.Box.Min[1] + cy*half[1],
					parent.Box.Min[2] + cz*half[2],
				},
				Max: types.Vec3{
					parent.Box.Min[0] + (cx+1)*half[0],
					parent.Box.Min[1] + (cy+1)*half[1],
					parent.Box.Min[2] + (cz+1)*half[2],
				},
			},
			parent: parent,
		}
	}
	return children
}

// Collect the indices of all faces that might intersect the query box. The
// result is conservative: it contains 3 vertex indices per candidate face,
// possibly with duplicates when a face spans several leaves, and callers
// must still run an exact intersection test. An empty result is not an
// error.
func (t *Octree) Query(box types.AABB) mesh.IndexList {
	var out mesh.IndexList
	t.query(t.root, box, &out)
	return out
}

func (t *Octree) query(n *Node, box types.AABB, out *mesh.IndexList) {
	if n.Leaf() {
		if n.faces == nil {
			return
		}
		for i := 0; i != n.faces.Len(); i++ {
			*out = append(*out, n.faces.At(i))
		}
		return
	}

	for i := range n.children {
		child := &n.children[i]
		if types.IntersectAABBAABB(child.Box, box) {
			t.query(child, box, out)
		}
	}
}

// Visit every node depth-first, the node itself before its children in
// octant order. Exporters rely on this ordering.
func (t *Octree) Walk(visit func(*Node)) {
	walk(t.root, visit)
}

func walk(n *Node, visit func(*Node)) {
	visit(n)
	for i := range n.children {
		walk(&n.children[i], visit)
	}
}
