package medium

import (
	"math"
	"testing"

	"github.com/reverb3d/reverb/mesh"
	"github.com/reverb3d/reverb/octree"
	"github.com/reverb3d/reverb/types"
)

func triangleMesh(t *testing.T, attrs [3]mesh.Attribute) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	err := m.AssignBuffers(
		mesh.Float64Vertices([]float64{
			0, 0, 1,
			2, 0, 1,
			0, 2, 1,
		}),
		mesh.Uint32Indices([]uint32{0, 1, 2}),
	)
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range attrs {
		m.SetAttribute(i, a)
	}
	return m
}

func TestCellAttributeEmptySpace(t *testing.T) {
	m := triangleMesh(t, [3]mesh.Attribute{
		mesh.DefaultSolid(), mesh.DefaultSolid(), mesh.DefaultSolid(),
	})
	oct, err := octree.Build(m, types.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	// A cell far away from all geometry samples as air, exactly.
	attr := CellAttribute(oct, types.NewAABB(10, 10, 10, 11, 11, 11))
	if !attr.Same(mesh.DefaultAir()) {
		t.Fatalf("expected exact air attribute; got %+v", attr)
	}
}

func TestCellAttributeConvexCombination(t *testing.T) {
	m := triangleMesh(t, [3]mesh.Attribute{
		{Reflection: 1},
		{Transmission: 1},
		{Absorption: 1},
	})
	oct, err := octree.Build(m, types.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	attr := CellAttribute(oct, types.NewAABB(0, 0, 0.5, 1, 1, 1.5))

	sum := attr.Reflection + attr.Transmission + attr.Absorption
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("expected components to sum to 1; got %v (%+v)", sum, attr)
	}
	for _, c := range []float64{attr.Reflection, attr.Transmission, attr.Absorption} {
		if c < 0 || c > 1 {
			t.Fatalf("component outside [0,1]: %+v", attr)
		}
	}
	// All three vertices carry weight, so no component may collapse to 0.
	if attr.Reflection == 0 || attr.Transmission == 0 || attr.Absorption == 0 {
		t.Fatalf("expected all vertices to contribute; got %+v", attr)
	}
}

func TestCellAttributeVertexOnCenter(t *testing.T) {
	marker := mesh.Attribute{Reflection: 0.5, Transmission: 0.25, Absorption: 0.25}
	m := triangleMesh(t, [3]mesh.Attribute{
		marker, mesh.DefaultSolid(), mesh.DefaultSolid(),
	})
	oct, err := octree.Build(m, types.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	// Cell centered exactly on the first vertex (0,0,1): its attribute wins
	// outright, bypassing the weighting.
	attr := CellAttribute(oct, types.NewAABB(-1, -1, 0, 1, 1, 2))
	if !attr.Same(marker) {
		t.Fatalf("expected the coincident vertex attribute %+v; got %+v", marker, attr)
	}
}

func TestCellAttributeLeafSpanInvariance(t *testing.T) {
	// One large face covering the z=0 plane next to a small corner face at
	// z=2. In a subdivided tree the large face lands in 4 leaves and the
	// small one in a single leaf, so a whole-bounds query reports them with
	// different multiplicities.
	m := mesh.New()
	err := m.AssignBuffers(
		mesh.Float64Vertices([]float64{
			0, 0, 0,
			2, 0, 0,
			0, 2, 0,
			0, 0, 2,
			0.4, 0, 2,
			0, 0.4, 2,
		}),
		mesh.Uint32Indices([]uint32{0, 1, 2, 3, 4, 5}),
	)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i != 6; i++ {
		m.SetAttribute(i, mesh.Attribute{
			Reflection:   float64(i + 1),
			Transmission: 1,
			Absorption:   float64(6 - i),
		}.Normalized())
	}

	fine, err := octree.Build(m, types.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	coarse, err := octree.Build(m, types.Vec3{4, 4, 4})
	if err != nil {
		t.Fatal(err)
	}
	if fine.Root().Leaf() || !coarse.Root().Leaf() {
		t.Fatal("expected a subdivided fine tree and a single-leaf coarse tree")
	}

	// The sample must not depend on how many leaves a face spans.
	cell := m.Bounds()
	a := CellAttribute(fine, cell)
	b := CellAttribute(coarse, cell)
	for _, diff := range []float64{
		a.Reflection - b.Reflection,
		a.Transmission - b.Transmission,
		a.Absorption - b.Absorption,
	} {
		if math.Abs(diff) > 1e-12 {
			t.Fatalf("samples diverge between trees: %+v vs %+v", a, b)
		}
	}
}

func TestCellAttributeUniformFace(t *testing.T) {
	solid := mesh.DefaultSolid()
	m := triangleMesh(t, [3]mesh.Attribute{solid, solid, solid})
	oct, err := octree.Build(m, types.Vec3{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	// Interpolating identical attributes yields that attribute bit-exactly
	// after normalization; the decomposer's equality test relies on it.
	attr := CellAttribute(oct, types.NewAABB(0, 0, 0.5, 1, 1, 1.5))
	if !attr.Same(solid) {
		t.Fatalf("expected exact solid attribute; got %+v", attr)
	}
}
