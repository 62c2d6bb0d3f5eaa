package types

import "math"

// An axis-aligned bounding box described by its min and max corners. Once
// finalized, Min[i] <= Max[i] holds for every axis.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Define an AABB from its 6 corner scalars.
func NewAABB(ax, ay, az, bx, by, bz float64) AABB {
	return AABB{Vec3{ax, ay, az}, Vec3{bx, by, bz}}
}

// Create an AABB whose corners act as the identity element for incremental
// expansion: expanding it by any point yields a zero-volume box at that point.
func ResetAABB() AABB {
	return AABB{
		Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Compute the bounding box of a triangle.
func AABBFromPoints(a, b, c Vec3) AABB {
	return AABB{
		MinVec3(MinVec3(a, b), c),
		MaxVec3(MaxVec3(a, b), c),
	}
}

// Grow the box so it contains the given point.
func (bb *AABB) ExpandPoint(p Vec3) {
	bb.Min = MinVec3(bb.Min, p)
	bb.Max = MaxVec3(bb.Max, p)
}

// Grow the box so it contains the other box.
func (bb *AABB) ExpandAABB(other AABB) {
	bb.Min = MinVec3(bb.Min, other.Min)
	bb.Max = MaxVec3(bb.Max, other.Max)
}

// Get the box extents along each axis.
func (bb AABB) Dims() Vec3 {
	return bb.Max.Sub(bb.Min)
}

// Get the box center point.
func (bb AABB) Center() Vec3 {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Get the box volume.
func (bb AABB) Volume() float64 {
	d := bb.Dims()
	return d[0] * d[1] * d[2]
}

// Check whether a point lies within the box, boundary included.
func (bb AABB) ContainsPoint(p Vec3) bool {
	for i := 0; i != 3; i++ {
		if p[i] < bb.Min[i] || p[i] > bb.Max[i] {
			return false
		}
	}
	return true
}

// Check whether the other box lies fully within this box. Boxes sharing a
// face still count as contained.
func (bb AABB) ContainsAABB(other AABB) bool {
	for i := 0; i != 3; i++ {
		if other.Min[i] < bb.Min[i] || other.Max[i] > bb.Max[i] {
			return false
		}
	}
	return true
}
