package phys2d

import (
	"math"

	"github.com/vova616/phys2d/vect"
)

//axis aligned bounding box.
type AABB struct {
	Lower, //l b
	Upper vect.Vect // r t
}

func NewAABB(l, b, r, t vect.Float) AABB {
	return AABB{vect.Vect{l, b}, vect.Vect{r, t}}
}

// emptyAABB is the identity for Combine.
func emptyAABB() AABB {
	inf := vect.Float(math.Inf(1))
	return AABB{vect.Vect{inf, inf}, vect.Vect{-inf, -inf}}
}

func (aabb AABB) Valid() bool {
	return aabb.Lower.X <= aabb.Upper.X && aabb.Lower.Y <= aabb.Upper.Y
}

//returns the center of the aabb
func (aabb AABB) Center() vect.Vect {
	return vect.Mult(vect.Add(aabb.Lower, aabb.Upper), 0.5)
}

//returns half the size of the aabb.
func (aabb AABB) Extents() vect.Vect {
	return vect.Mult(vect.Sub(aabb.Upper, aabb.Lower), .5)
}

//returns if other is contained inside this aabb.
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Lower.X <= other.Lower.X &&
		aabb.Upper.X >= other.Upper.X &&
		aabb.Lower.Y <= other.Lower.Y &&
		aabb.Upper.Y >= other.Upper.Y
}

//returns if v is contained inside this aabb.
func (aabb AABB) ContainsVect(v vect.Vect) bool {
	return aabb.Lower.X <= v.X &&
		aabb.Upper.X >= v.X &&
		aabb.Lower.Y <= v.Y &&
		aabb.Upper.Y >= v.Y
}

//returns an AABB that holds both a and b.
func Combine(a, b AABB) AABB {
	return AABB{
		vect.Min(a.Lower, b.Lower),
		vect.Max(a.Upper, b.Upper),
	}
}

//returns an AABB that holds both a and v.
func Expand(a AABB, v vect.Vect) AABB {
	return AABB{
		vect.Min(a.Lower, v),
		vect.Max(a.Upper, v),
	}
}

func TestOverlap(a, b AABB) bool {
	return a.Lower.X <= b.Upper.X && b.Lower.X <= a.Upper.X && a.Lower.Y <= b.Upper.Y && b.Lower.Y <= a.Upper.Y
}

//returns the area of the bounding box.
func (aabb AABB) Area() vect.Float {
	return (aabb.Upper.X - aabb.Lower.X) * (aabb.Upper.Y - aabb.Lower.Y)
}

// MergedArea is the area of Combine(a, b).
func MergedArea(a, b AABB) vect.Float {
	return (vect.FMax(a.Upper.X, b.Upper.X) - vect.FMin(a.Lower.X, b.Lower.X)) * (vect.FMax(a.Upper.Y, b.Upper.Y) - vect.FMin(a.Lower.Y, b.Lower.Y))
}

// Proximity is twice the Manhattan distance between the box centers.
func Proximity(a, b AABB) vect.Float {
	return vect.FAbs(a.Lower.X+a.Upper.X-b.Lower.X-b.Upper.X) + vect.FAbs(a.Lower.Y+a.Upper.Y-b.Lower.Y-b.Upper.Y)
}
