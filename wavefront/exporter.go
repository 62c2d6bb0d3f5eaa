package wavefront

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/btree"

	"github.com/reverb3d/reverb/medium"
	"github.com/reverb3d/reverb/octree"
	"github.com/reverb3d/reverb/types"
)

var (
	ErrVertexNotFound = errors.New("wavefront: box corner missing from the vertex map")
)

// An entry of the exporter's vertex deduplication map: position hash to
// 1-based obj index.
type vertexEntry struct {
	hash  uint64
	index int
}

// An Exporter emits wireframe geometry as a wavefront obj stream. Vertices
// are deduplicated by exact coordinate match so boxes sharing corners share
// vertex statements.
type Exporter struct {
	w            *bufio.Writer
	viMap        *btree.BTreeG[vertexEntry]
	indexCounter int
}

func NewExporter(w io.Writer) *Exporter {
	return &Exporter{
		w: bufio.NewWriter(w),
		viMap: btree.NewG(16, func(a, b vertexEntry) bool {
			return a.hash < b.hash
		}),
		// Obj indices start at 1.
		indexCounter: 1,
	}
}

func hashVec3(v types.Vec3) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(v[0]))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(v[1]))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(v[2]))
	return xxhash.Sum64(buf[:])
}

// Emit a vertex statement unless the same position was written before.
func (e *Exporter) WriteVertex(v types.Vec3) error {
	entry := vertexEntry{hash: hashVec3(v), index: e.indexCounter}
	if _, exists := e.viMap.Get(entry); exists {
		return nil
	}

	e.viMap.ReplaceOrInsert(entry)
	if _, err := fmt.Fprintf(e.w, "v %.6g %.6g %.6g\n", v[0], v[1], v[2]); err != nil {
		return err
	}
	e.indexCounter++
	return nil
}

func aabbCorners(box types.AABB) [8]types.Vec3 {
	a, b := box.Min, box.Max
	return [8]types.Vec3{
		{a[0], a[1], a[2]},
		{a[0], a[1], b[2]},
		{a[0], b[1], a[2]},
		{a[0], b[1], b[2]},
		{b[0], a[1], a[2]},
		{b[0], a[1], b[2]},
		{b[0], b[1], a[2]},
		{b[0], b[1], b[2]},
	}
}

// The 12 box edges as corner pairs, indexing into aabbCorners.
var aabbEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 4},
	{1, 3}, {1, 5},
	{2, 3}, {2, 6},
	{4, 5}, {4, 6},
	{3, 7}, {5, 7}, {6, 7},
}

// Emit the 8 corner vertices of a box.
func (e *Exporter) WriteAABBVertices(box types.AABB) error {
	for _, c := range aabbCorners(box) {
		if err := e.WriteVertex(c); err != nil {
			return err
		}
	}
	return nil
}

// Emit the 12 edges of a box as index pairs. The corners must have been
// written beforehand; an unknown corner is a lookup failure, not a crash.
func (e *Exporter) WriteAABBIndices(box types.AABB) error {
	corners := aabbCorners(box)
	for _, edge := range aabbEdges {
		i1, ok1 := e.viMap.Get(vertexEntry{hash: hashVec3(corners[edge[0]])})
		i2, ok2 := e.viMap.Get(vertexEntry{hash: hashVec3(corners[edge[1]])})
		if !ok1 || !ok2 {
			return ErrVertexNotFound
		}
		if _, err := fmt.Fprintf(e.w, "f %d %d\n", i1.index, i2.index); err != nil {
			return err
		}
	}
	return nil
}

// Flush buffered output to the underlying writer.
func (e *Exporter) Flush() error {
	return e.w.Flush()
}

// Write the octree node boxes as a wireframe: all vertices in a first
// depth-first pass over the tree, then the edges in a second identical
// pass.
func ExportOctree(w io.Writer, oct *octree.Octree) error {
	e := NewExporter(w)

	var err error
	oct.Walk(func(n *octree.Node) {
		if err == nil {
			err = e.WriteAABBVertices(n.Box)
		}
	})
	if err != nil {
		return err
	}
	oct.Walk(func(n *octree.Node) {
		if err == nil {
			err = e.WriteAABBIndices(n.Box)
		}
	})
	if err != nil {
		return err
	}
	return e.Flush()
}

// Write the medium partition boxes as a wireframe, in partition order.
func ExportMedium(w io.Writer, m *medium.Medium) error {
	e := NewExporter(w)

	for i := range m.Partitions {
		if err := e.WriteAABBVertices(m.Partitions[i].Box); err != nil {
			return err
		}
	}
	for i := range m.Partitions {
		if err := e.WriteAABBIndices(m.Partitions[i].Box); err != nil {
			return err
		}
	}
	return e.Flush()
}
