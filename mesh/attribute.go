package mesh

import "math"

// An acoustic material attribute attached to a mesh vertex. When normalized
// the three components sum to 1.
type Attribute struct {
	Reflection   float64
	Transmission float64
	Absorption   float64
}

// The attribute of a fully absorbing material. Vertices default to this
// until a caller assigns something else.
func DefaultSolid() Attribute {
	return Attribute{Absorption: 1}
}

// The attribute of empty space: sound passes straight through.
func DefaultAir() Attribute {
	return Attribute{Transmission: 1}
}

func (a Attribute) IsZero() bool {
	return a.Reflection == 0 && a.Transmission == 0 && a.Absorption == 0
}

// Compare two attributes for equality. Comparison is exact on all three
// components: attributes produced by the same interpolation over the same
// geometry are expected to be bit-identical, and the medium decomposer
// depends on that to detect homogeneous regions.
func (a Attribute) Same(other Attribute) bool {
	return a.Reflection == other.Reflection &&
		a.Transmission == other.Transmission &&
		a.Absorption == other.Absorption
}

// Scale the attribute so the three components sum to 1. A zero attribute
// normalizes to the solid default.
func (a Attribute) Normalized() Attribute {
	if a.IsZero() {
		return DefaultSolid()
	}

	out := Attribute{
		Reflection:   math.Abs(a.Reflection),
		Transmission: math.Abs(a.Transmission),
		Absorption:   math.Abs(a.Absorption),
	}
	sum := out.Reflection + out.Transmission + out.Absorption
	out.Reflection /= sum
	out.Transmission /= sum
	out.Absorption /= sum
	return out
}
