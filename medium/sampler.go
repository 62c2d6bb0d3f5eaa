package medium

import (
	"github.com/reverb3d/reverb/mesh"
	"github.com/reverb3d/reverb/octree"
	"github.com/reverb3d/reverb/types"
)

// Determine the acoustic attribute of a grid cell by interpolating the mesh
// geometry around it.
//
// The octree delivers faces that might intersect the cell; each candidate is
// confirmed with an exact triangle test. The attributes of the surviving
// faces' vertices are blended with inverse squared distance weighting
// (Shepard interpolation, p=2) relative to the cell center and normalized so
// the components sum to 1. A cell no face intersects is empty space and
// samples as air.
func CellAttribute(oct *octree.Octree, cell types.AABB) mesh.Attribute {
	candidates := oct.Query(cell)
	center := cell.Center()
	m := oct.Mesh()

	var acc mesh.Attribute
	weightsSum := 0.0
	seen := make(map[[3]int]struct{})
	for f := 0; f*3 < candidates.Len(); f++ {
		// The octree reports a face once per leaf it spans; weight each
		// face only once.
		key := [3]int{candidates.At(f * 3), candidates.At(f*3 + 1), candidates.At(f*3 + 2)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		face := m.FaceFromIndices(candidates, f)
		if !types.IntersectTriangleAABB(
			face[0].Position, face[1].Position, face[2].Position, cell) {
			continue
		}

		for v := 0; v != 3; v++ {
			weight := face[v].Position.Sub(center).LenSqr()
			if weight == 0 {
				// The cell center sits exactly on this vertex; it dominates
				// the sample.
				return face[v].Attr
			}
			weight = 1.0 / weight
			acc.Reflection += face[v].Attr.Reflection * weight
			acc.Transmission += face[v].Attr.Transmission * weight
			acc.Absorption += face[v].Attr.Absorption * weight
			weightsSum += weight
		}
	}

	if weightsSum == 0 {
		return mesh.DefaultAir()
	}

	// Divide rather than scale by a reciprocal: a cell whose contributing
	// vertices all carry the same pure attribute must come out bit-exact,
	// or uniform regions would fail the decomposer's equality test.
	acc.Reflection /= weightsSum
	acc.Transmission /= weightsSum
	acc.Absorption /= weightsSum
	return acc.Normalized()
}
