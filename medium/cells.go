package medium

import "github.com/reverb3d/reverb/types"

// A cellIter subdivides an AABB into grid cells and visits every one of
// them, advancing fastest along z, then y, then x. The first cell is valid
// immediately after construction.
type cellIter struct {
	cell    types.AABB
	extents types.AABB
}

func newCellIter(extents types.AABB, cellSize types.Vec3) *cellIter {
	// Begin in the lower left front corner.
	return &cellIter{
		cell: types.AABB{
			Min: extents.Min,
			Max: extents.Min.Add(cellSize),
		},
		extents: extents,
	}
}

// Advance to the next cell. Returns false once all cells within the extents
// have been visited.
func (it *cellIter) next() bool {
	c := &it.cell

	// Advance on the z axis.
	zSize := c.Max[2] - c.Min[2]
	c.Min[2] = c.Max[2]
	c.Max[2] += zSize

	if c.Max[2] > it.extents.Max[2] {
		// Reset z and advance on the y axis.
		ySize := c.Max[1] - c.Min[1]
		c.Min[1] = c.Max[1]
		c.Max[1] += ySize
		c.Min[2] = it.extents.Min[2]
		c.Max[2] = it.extents.Min[2] + zSize

		if c.Max[1] > it.extents.Max[1] {
			// Reset y and advance on the x axis.
			xSize := c.Max[0] - c.Min[0]
			c.Min[0] = c.Max[0]
			c.Max[0] += xSize
			c.Min[1] = it.extents.Min[1]
			c.Max[1] = it.extents.Min[1] + ySize

			if c.Max[0] > it.extents.Max[0] {
				return false
			}
		}
	}

	return true
}
