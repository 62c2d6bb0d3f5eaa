package mesh

import "github.com/reverb3d/reverb/types"

// A mesh vertex together with its material attribute.
type Vertex struct {
	Position types.Vec3
	Attr     Attribute
}

// A triangle face assembled from the mesh buffers.
type Face [3]Vertex

// Compute the face bounding box.
func (f Face) Bounds() types.AABB {
	return types.AABBFromPoints(f[0].Position, f[1].Position, f[2].Position)
}
