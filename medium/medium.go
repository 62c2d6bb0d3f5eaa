package medium

import (
	"errors"

	"github.com/reverb3d/reverb/log"
	"github.com/reverb3d/reverb/mesh"
	"github.com/reverb3d/reverb/octree"
	"github.com/reverb3d/reverb/types"
)

var (
	ErrGridSize = errors.New("medium: grid size must be positive on every axis")
)

// A Partition is a rectangular region of homogeneous acoustic material.
// Adjacent partitions are referenced by their position in the medium's
// partition sequence, never by pointer, so appending partitions can not
// invalidate existing adjacency entries.
type Partition struct {
	Box        types.AABB
	SoundSpeed float64
	Adjacent   []int
}

// A DecomposeFunc is a pluggable decomposition strategy. It populates the
// medium's partition sequence from the spatial index; def optionally carries
// a reference medium definition.
type DecomposeFunc func(m *Medium, oct *octree.Octree, def *Medium) error

// A Medium is a decomposition of an axis-aligned volume into non-overlapping
// partitions of homogeneous material aligned to a uniform grid.
type Medium struct {
	Boundary   types.AABB
	GridSize   types.Vec3
	Partitions []Partition

	decompose DecomposeFunc
	logger    log.Logger
}

// Create an empty medium using the systematic decomposition strategy.
func New() *Medium {
	return &Medium{
		Boundary:  types.ResetAABB(),
		decompose: DecomposeSystematic,
		logger:    log.New("medium"),
	}
}

// Replace the decomposition strategy.
func (m *Medium) SetDecomposition(fn DecomposeFunc) {
	m.decompose = fn
}

// Replace the logger. Pass log.Nop to silence the medium in tests.
func (m *Medium) SetLogger(logger log.Logger) {
	m.logger = logger
}

// Drop all partitions and their adjacency lists.
func (m *Medium) Clear() {
	m.Partitions = m.Partitions[:0]
}

// Append a partition and return its position in the sequence.
func (m *Medium) AddPartition(box types.AABB, soundSpeed float64) int {
	m.Partitions = append(m.Partitions, Partition{Box: box, SoundSpeed: soundSpeed})
	return len(m.Partitions) - 1
}

// Check whether a prospective partition box is unavailable: either it
// reaches outside the medium boundary or it overlaps a partition that has
// already been committed.
func (m *Medium) occupied(box types.AABB) bool {
	if !m.Boundary.ContainsAABB(box) {
		return true
	}
	for i := range m.Partitions {
		if types.IntersectAABBAABB(m.Partitions[i].Box, box) {
			return true
		}
	}
	return false
}

// Decompose the volume enclosed by a mesh into partitions. The boundary and
// defaults come from def when given; otherwise the mesh bounding box is
// used. The mesh is indexed with an octree whose minimum cell size equals
// the decomposition grid, then handed to the configured strategy.
func (m *Medium) BuildFromMesh(def *Medium, msh *mesh.Mesh, gridSize types.Vec3) error {
	// A non-positive grid component would stall the cell iterator.
	for i := 0; i != 3; i++ {
		if gridSize[i] <= 0 {
			return ErrGridSize
		}
	}

	m.Clear()

	m.GridSize = gridSize
	if def == nil {
		m.logger.Warningf("no medium definition provided, falling back to mesh bounds and default parameters")
		m.Boundary = msh.Bounds()
	} else {
		m.Boundary = def.Boundary
	}

	oct, err := octree.Build(msh, gridSize)
	if err != nil {
		return err
	}

	if err := m.decompose(m, oct, def); err != nil {
		return err
	}

	m.logger.Noticef("decomposed mesh into %d partitions", len(m.Partitions))
	return nil
}

// Expansion directions, scanned in this fixed order.
const (
	dirUp = iota // +y
	dirDown
	dirLeft // -x
	dirRight
	dirFront // -z
	dirBack

	directionCount   = 6
	allDirectionBits = 1<<directionCount - 1
)

// Compute the grid-aligned slice adjacent to a box in the given direction:
// same extent on the other two axes, one grid cell thick along the
// expansion axis.
func (m *Medium) adjacentSlice(box types.AABB, direction int) types.AABB {
	slice := box
	switch direction {
	case dirUp:
		slice.Min[1] = box.Max[1]
		slice.Max[1] = box.Max[1] + m.GridSize[1]
	case dirDown:
		slice.Min[1] = box.Min[1] - m.GridSize[1]
		slice.Max[1] = box.Min[1]
	case dirLeft:
		slice.Min[0] = box.Min[0] - m.GridSize[0]
		slice.Max[0] = box.Min[0]
	case dirRight:
		slice.Min[0] = box.Max[0]
		slice.Max[0] = box.Max[0] + m.GridSize[0]
	case dirFront:
		slice.Min[2] = box.Min[2] - m.GridSize[2]
		slice.Max[2] = box.Min[2]
	case dirBack:
		slice.Min[2] = box.Max[2]
		slice.Max[2] = box.Max[2] + m.GridSize[2]
	}
	return slice
}

// A seed cell waiting to be grown into a partition, together with the
// position of the partition it split off from (-1 for the initial seed).
type pendingSeed struct {
	box    types.AABB
	parent int
}

// Systematically decompose the medium with a seeded flood fill: grow a
// partition from the boundary corner cell until it can expand no further,
// then grow partitions from every rejected neighboring cell, depth first,
// until the whole boundary is claimed.
//
// The original recursive formulation would nest one call per committed
// partition; an explicit worklist bounds the stack while preserving the
// processing order.
func DecomposeSystematic(m *Medium, oct *octree.Octree, def *Medium) error {
	// Start at the bottom left front corner.
	first := types.AABB{
		Min: m.Boundary.Min,
		Max: m.Boundary.Min.Add(m.GridSize),
	}

	stack := []pendingSeed{{box: first, parent: -1}}
	for len(stack) > 0 {
		seed := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// A cell recorded as a potential seed may have been swallowed by a
		// partition committed in the meantime.
		if seed.parent >= 0 && m.occupied(seed.box) {
			continue
		}

		grown, rejected := m.growSeed(oct, seed.box)

		idx := m.AddPartition(grown, placeholderSoundSpeed)
		m.logger.Infof("adding partition #%d (%g,%g,%g)-(%g,%g,%g)", idx,
			grown.Min[0], grown.Min[1], grown.Min[2],
			grown.Max[0], grown.Max[1], grown.Max[2])

		if seed.parent >= 0 {
			parent := &m.Partitions[seed.parent]
			parent.Adjacent = append(parent.Adjacent, idx)
		}

		// Queue the rejected cells as new seeds. Pushed in reverse so they
		// pop in the order they were discovered, matching the depth-first
		// recursion they replace.
		for i := len(rejected) - 1; i >= 0; i-- {
			stack = append(stack, pendingSeed{box: rejected[i], parent: idx})
		}
	}

	return nil
}

// Partitions receive this sound speed until material parameters are mapped;
// the solver overwrites it from the medium definition.
const placeholderSoundSpeed = 1.0

// Grow a seed cell into a maximal box of cells sharing the seed's attribute.
// Returns the grown box plus every adjacent cell that was rejected for
// having a different attribute.
func (m *Medium) growSeed(oct *octree.Octree, seed types.AABB) (types.AABB, []types.AABB) {
	seedAttr := CellAttribute(oct, seed)

	var rejected []types.AABB
	for {
		occupiedDirs := 0
		for direction := 0; direction != directionCount; direction++ {
			slice := m.adjacentSlice(seed, direction)
			if m.occupied(slice) {
				occupiedDirs |= 1 << direction
				continue
			}

			// Every cell inside the slice must match the seed's attribute
			// for the slice to be merged. Mismatching cells become seeds of
			// their own later.
			sliceMatches := true
			for it, ok := newCellIter(slice, m.GridSize), true; ok; ok = it.next() {
				if !seedAttr.Same(CellAttribute(oct, it.cell)) {
					rejected = append(rejected, it.cell)
					sliceMatches = false
				}
			}
			if !sliceMatches {
				occupiedDirs |= 1 << direction
				continue
			}

			// Growth along one axis can unlock growth along another, so the
			// direction scan restarts until a full pass blocks everywhere.
			seed.ExpandAABB(slice)
		}

		if occupiedDirs == allDirectionBits {
			break
		}
	}

	return seed, rejected
}

// The greedy random strategy is an extension point and intentionally not
// implemented.
func DecomposeGreedyRandom(m *Medium, oct *octree.Octree, def *Medium) error {
	return nil
}

// Walk every grid cell within the boundary and confirm it is covered by
// exactly one committed partition. Purely diagnostic; returns false and logs
// the offending cells when coverage has gaps or overlaps.
func (m *Medium) CheckIntegrity() bool {
	m.logger.Info("integrity check...")

	ok := true
	for it, more := newCellIter(m.Boundary, m.GridSize), true; more; more = it.next() {
		covering := 0
		for i := range m.Partitions {
			if types.IntersectAABBAABB(m.Partitions[i].Box, it.cell) {
				covering++
			}
		}
		if covering != 1 {
			ok = false
			m.logger.Infof("integrity failure, cell (%g,%g,%g)-(%g,%g,%g) covered by %d partitions",
				it.cell.Min[0], it.cell.Min[1], it.cell.Min[2],
				it.cell.Max[0], it.cell.Max[1], it.cell.Max[2], covering)
		}
	}

	if ok {
		m.logger.Info("integrity check successful")
	}
	return ok
}
