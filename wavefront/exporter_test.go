package wavefront

import (
	"bytes"
	"errors"
	"testing"

	"github.com/reverb3d/reverb/medium"
	"github.com/reverb3d/reverb/mesh"
	"github.com/reverb3d/reverb/octree"
	"github.com/reverb3d/reverb/types"
)

func exportBoxes(t *testing.T, boxes ...types.AABB) ([]types.Vec3, [][2]int) {
	t.Helper()

	var buf bytes.Buffer
	e := NewExporter(&buf)
	for _, box := range boxes {
		if err := e.WriteAABBVertices(box); err != nil {
			t.Fatal(err)
		}
	}
	for _, box := range boxes {
		if err := e.WriteAABBIndices(box); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}

	vertices, edges, err := ReadWireframe(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return vertices, edges
}

func TestExportSingleBox(t *testing.T) {
	vertices, edges := exportBoxes(t, types.NewAABB(0, 0, 0, 1, 2, 3))

	if len(vertices) != 8 {
		t.Fatalf("expected 8 vertices; got %d", len(vertices))
	}
	if len(edges) != 12 {
		t.Fatalf("expected 12 edges; got %d", len(edges))
	}

	seen := make(map[types.Vec3]struct{}, len(vertices))
	for _, v := range vertices {
		seen[v] = struct{}{}
	}
	if len(seen) != 8 {
		t.Fatalf("expected all vertices to be unique; got %d distinct", len(seen))
	}

	// Every edge of a box connects two corners differing on exactly one
	// axis.
	for _, edge := range edges {
		a, b := vertices[edge[0]], vertices[edge[1]]
		differing := 0
		for i := 0; i != 3; i++ {
			if a[i] != b[i] {
				differing++
			}
		}
		if differing != 1 {
			t.Fatalf("edge %v-%v is not axis aligned", a, b)
		}
	}
}

func TestExportSharedCorners(t *testing.T) {
	// Two boxes sharing a face: 4 of the 16 corners coincide and must be
	// emitted once.
	vertices, edges := exportBoxes(t,
		types.NewAABB(0, 0, 0, 1, 1, 1),
		types.NewAABB(1, 0, 0, 2, 1, 1),
	)

	if len(vertices) != 12 {
		t.Fatalf("expected 12 deduplicated vertices; got %d", len(vertices))
	}
	if len(edges) != 24 {
		t.Fatalf("expected 24 edges; got %d", len(edges))
	}
	for _, edge := range edges {
		if edge[0] >= len(vertices) || edge[1] >= len(vertices) {
			t.Fatalf("edge %v references a missing vertex", edge)
		}
	}
}

func TestIndicesWithoutVertices(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(&buf)

	err := e.WriteAABBIndices(types.NewAABB(0, 0, 0, 1, 1, 1))
	if !errors.Is(err, ErrVertexNotFound) {
		t.Fatalf("expected ErrVertexNotFound; got %v", err)
	}
}

func TestExportOctreeWireframe(t *testing.T) {
	m := mesh.New()
	err := m.AssignBuffers(
		mesh.Float64Vertices([]float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 1,
		}),
		mesh.Uint32Indices([]uint32{0, 1, 2}),
	)
	if err != nil {
		t.Fatal(err)
	}
	oct, err := octree.Build(m, types.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportOctree(&buf, oct); err != nil {
		t.Fatal(err)
	}

	// A single face produces a single leaf node: one box.
	vertices, edges, err := ReadWireframe(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 8 {
		t.Fatalf("expected 8 vertices; got %d", len(vertices))
	}
	if len(edges) != 12 {
		t.Fatalf("expected 12 edges; got %d", len(edges))
	}
}

func TestExportMediumWireframe(t *testing.T) {
	m := medium.New()
	m.Boundary = types.NewAABB(0, 0, 0, 2, 1, 1)
	m.AddPartition(types.NewAABB(0, 0, 0, 1, 1, 1), 343)
	m.AddPartition(types.NewAABB(1, 0, 0, 2, 1, 1), 1482)

	var buf bytes.Buffer
	if err := ExportMedium(&buf, m); err != nil {
		t.Fatal(err)
	}

	vertices, edges, err := ReadWireframe(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 12 {
		t.Fatalf("expected 12 vertices for two face-sharing partitions; got %d", len(vertices))
	}
	if len(edges) != 24 {
		t.Fatalf("expected 24 edges; got %d", len(edges))
	}
}
