package mesh

import "github.com/reverb3d/reverb/types"

// A VertexBuffer provides random access decoding of vertex positions stored
// as flat coordinate triplets of some concrete floating point width. The set
// of implementations is closed; callers pick the width at construction time
// via one of the XxxVertices functions.
type VertexBuffer interface {
	// Number of vertices (the underlying slice holds 3x as many scalars).
	Len() int

	// Decode the vertex at the given index.
	At(index int) types.Vec3

	clone() VertexBuffer
}

// An IndexView is a read-only random access view over a list of vertex
// indices. Index buffers of every supported width implement it, as does the
// plain IndexList used for derived index sets.
type IndexView interface {
	// Number of indices in the view.
	Len() int

	// Decode the index at the given position.
	At(position int) int
}

// An IndexBuffer is an IndexView over storage of some concrete integer width
// and signedness. Like VertexBuffer the implementation set is closed.
type IndexBuffer interface {
	IndexView

	clone() IndexBuffer
}

// A decoded list of vertex indices. Spatial index nodes accumulate their
// per-node face index sets in this form.
type IndexList []int

func (l IndexList) Len() int            { return len(l) }
func (l IndexList) At(position int) int { return l[position] }

type vertexScalar interface {
	~float32 | ~float64
}

type vertexSlice[T vertexScalar] []T

func (s vertexSlice[T]) Len() int {
	return len(s) / 3
}

func (s vertexSlice[T]) At(index int) types.Vec3 {
	index *= 3
	return types.Vec3{float64(s[index]), float64(s[index+1]), float64(s[index+2])}
}

func (s vertexSlice[T]) clone() VertexBuffer {
	out := make(vertexSlice[T], len(s))
	copy(out, s)
	return out
}

// Wrap a flat float32 triplet slice without copying.
func Float32Vertices(data []float32) VertexBuffer {
	return vertexSlice[float32](data)
}

// Wrap a flat float64 triplet slice without copying.
func Float64Vertices(data []float64) VertexBuffer {
	return vertexSlice[float64](data)
}

type indexScalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

type indexSlice[T indexScalar] []T

func (s indexSlice[T]) Len() int {
	return len(s)
}

func (s indexSlice[T]) At(position int) int {
	return int(s[position])
}

func (s indexSlice[T]) clone() IndexBuffer {
	out := make(indexSlice[T], len(s))
	copy(out, s)
	return out
}

// Wrap an index slice without copying. One wrapper per supported width and
// signedness.
func Int8Indices(data []int8) IndexBuffer     { return indexSlice[int8](data) }
func Uint8Indices(data []uint8) IndexBuffer   { return indexSlice[uint8](data) }
func Int16Indices(data []int16) IndexBuffer   { return indexSlice[int16](data) }
func Uint16Indices(data []uint16) IndexBuffer { return indexSlice[uint16](data) }
func Int32Indices(data []int32) IndexBuffer   { return indexSlice[int32](data) }
func Uint32Indices(data []uint32) IndexBuffer { return indexSlice[uint32](data) }
func Int64Indices(data []int64) IndexBuffer   { return indexSlice[int64](data) }
func Uint64Indices(data []uint64) IndexBuffer { return indexSlice[uint64](data) }
