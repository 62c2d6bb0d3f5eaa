package types

import "math"

// Check whether two boxes overlap. Boxes that merely share a face or an edge
// are not treated as overlapping; the medium decomposer relies on this so
// that a partition does not collide with the partitions it touches.
func IntersectAABBAABB(a, b AABB) bool {
	for i := 0; i != 3; i++ {
		if a.Min[i] >= b.Max[i] || a.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

// Like IntersectAABBAABB but boxes that only touch count as intersecting.
// The spatial index assigns faces to nodes with this test: a face whose
// bounding box is zero-thick along an axis can land exactly on a node
// boundary, and the exclusive test would report it outside both neighbors.
func IntersectAABBAABBInclusive(a, b AABB) bool {
	for i := 0; i != 3; i++ {
		if a.Min[i] > b.Max[i] || a.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Check whether a triangle intersects a box using the separating axis
// theorem: the 3 box face normals, the triangle face normal and the 9 cross
// products of the edge directions. A triangle touching the box surface
// counts as intersecting.
func IntersectTriangleAABB(t0, t1, t2 Vec3, box AABB) bool {
	c := box.Center()
	h := box.Dims().Mul(0.5)

	// Move the triangle into the box's local frame.
	v0 := t0.Sub(c)
	v1 := t1.Sub(c)
	v2 := t2.Sub(c)

	e0 := v1.Sub(v0)
	e1 := v2.Sub(v1)
	e2 := v0.Sub(v2)

	// 9 cross-product axes e_i x axis_j, tested via their projections. The
	// vertex pairs follow the ordering of the reference SAT formulation; the
	// third vertex always projects onto the same point as one of the pair.
	if !axisTest(e0[2], e0[1], v0[1], v0[2], v2[1], v2[2], h[1], h[2]) {
		return false
	}
	if !axisTest(e0[0], e0[2], v0[2], v0[0], v2[2], v2[0], h[2], h[0]) {
		return false
	}
	if !axisTest(e0[1], e0[0], v1[0], v1[1], v2[0], v2[1], h[0], h[1]) {
		return false
	}

	if !axisTest(e1[2], e1[1], v0[1], v0[2], v2[1], v2[2], h[1], h[2]) {
		return false
	}
	if !axisTest(e1[0], e1[2], v0[2], v0[0], v2[2], v2[0], h[2], h[0]) {
		return false
	}
	if !axisTest(e1[1], e1[0], v0[0], v0[1], v1[0], v1[1], h[0], h[1]) {
		return false
	}

	if !axisTest(e2[2], e2[1], v0[1], v0[2], v1[1], v1[2], h[1], h[2]) {
		return false
	}
	if !axisTest(e2[0], e2[2], v0[2], v0[0], v1[2], v1[0], h[2], h[0]) {
		return false
	}
	if !axisTest(e2[1], e2[0], v1[0], v1[1], v2[0], v2[1], h[0], h[1]) {
		return false
	}

	// Box face normals: compare the triangle AABB against the box extents.
	for i := 0; i != 3; i++ {
		lo := math.Min(v0[i], math.Min(v1[i], v2[i]))
		hi := math.Max(v0[i], math.Max(v1[i], v2[i]))
		if lo > h[i] || hi < -h[i] {
			return false
		}
	}

	// Triangle plane vs box.
	n := e0.Cross(e1)
	return planeBoxOverlap(n, v0, h)
}

// Project two triangle vertices and the box onto the axis (a, b) within a
// coordinate plane and check for separation.
func axisTest(a, b, va0, va1, vb0, vb1, ha, hb float64) bool {
	p0 := a*va0 - b*va1
	p1 := a*vb0 - b*vb1
	rad := math.Abs(a)*ha + math.Abs(b)*hb
	if math.Min(p0, p1) > rad || math.Max(p0, p1) < -rad {
		return false
	}
	return true
}

func planeBoxOverlap(normal, vert, halfSize Vec3) bool {
	var vmin, vmax Vec3
	for i := 0; i != 3; i++ {
		v := vert[i]
		if normal[i] > 0 {
			vmin[i] = -halfSize[i] - v
			vmax[i] = halfSize[i] - v
		} else {
			vmin[i] = halfSize[i] - v
			vmax[i] = -halfSize[i] - v
		}
	}
	if normal.Dot(vmin) > 0 {
		return false
	}
	return normal.Dot(vmax) >= 0
}
