package vect

import (
	"math"
)

type Float float64

var (
	Vector_Zero = Vect{0, 0}
)

func FMin(a, b Float) Float {
	if a > b {
		return b
	}
	return a
}

func FAbs(a Float) Float {
	if a < 0 {
		return -a
	}
	return a
}

func FMax(a, b Float) Float {
	if a > b {
		return a
	}
	return b
}

func FClamp(val, min, max Float) Float {
	if val < min {
		return min
	} else if val > max {
		return max
	}
	return val
}

func FSqrt(a Float) Float {
	return Float(math.Sqrt(float64(a)))
}

//basic 2d vector.
type Vect struct {
	X, Y Float
}

//adds v2 to the given vector.
func (v1 *Vect) Add(v2 Vect) {
	v1.X += v2.X
	v1.Y += v2.Y
}

//subtracts v2 from the given vector.
func (v1 *Vect) Sub(v2 Vect) {
	v1.X -= v2.X
	v1.Y -= v2.Y
}

//adds v2 scaled by s to the given vector.
func (v1 *Vect) MultAdd(v2 Vect, s Float) {
	v1.X += v2.X * s
	v1.Y += v2.Y * s
}

//returns the squared length of the vector.
func (v Vect) LengthSqr() Float {
	return v.X*v.X + v.Y*v.Y
}

//returns the length of the vector.
func (v Vect) Length() Float {
	return FSqrt(v.LengthSqr())
}

//multiplies the vector by the scalar.
func (v *Vect) Mult(s Float) {
	v.X *= s
	v.Y *= s
}

//compare two vectors by value.
func Equals(v1, v2 Vect) bool {
	return v1.X == v2.X && v1.Y == v2.Y
}

//adds the input vectors and returns the result.
func Add(v1, v2 Vect) Vect {
	return Vect{v1.X + v2.X, v1.Y + v2.Y}
}

//subtracts the input vectors and returns the result.
func Sub(v1, v2 Vect) Vect {
	return Vect{v1.X - v2.X, v1.Y - v2.Y}
}

//multiplies a vector by a scalar and returns the result.
func Mult(v1 Vect, s Float) Vect {
	return Vect{v1.X * s, v1.Y * s}
}

//returns v1 + v2*s.
func MultAdd(v1, v2 Vect, s Float) Vect {
	return Vect{v1.X + v2.X*s, v1.Y + v2.Y*s}
}

//returns the vector pointing the other way.
func Neg(v Vect) Vect {
	return Vect{-v.X, -v.Y}
}

//returns the square distance between two vectors.
func DistSqr(v1, v2 Vect) Float {
	return (v1.X-v2.X)*(v1.X-v2.X) + (v1.Y-v2.Y)*(v1.Y-v2.Y)
}

//returns the distance between two vectors.
func Dist(v1, v2 Vect) Float {
	return FSqrt(DistSqr(v1, v2))
}

//returns the squared length of the vector.
func LengthSqr(v Vect) Float {
	return v.LengthSqr()
}

//returns the length of the vector.
func Length(v Vect) Float {
	return v.Length()
}

//returns a new vector with its x/y values set to the smaller one from the two input values.
//e.g. Min({2, 10}, {8, 3}) would return {2, 3}
func Min(v1, v2 Vect) (out Vect) {
	out.X = FMin(v1.X, v2.X)
	out.Y = FMin(v1.Y, v2.Y)
	return
}

//returns a new vector with its x/y values set to the bigger one from the two input values.
//e.g. Max({2, 10}, {8, 3}) would return {8, 10}
func Max(v1, v2 Vect) (out Vect) {
	out.X = FMax(v1.X, v2.X)
	out.Y = FMax(v1.Y, v2.Y)
	return
}

// SafeNormalize returns the unit vector of v and its length.
// ok is false when v has zero length; unit is then the zero vector and the
// caller picks its own fallback direction.
func SafeNormalize(v Vect) (unit Vect, length Float, ok bool) {
	length = v.Length()
	if length == 0 || math.IsNaN(float64(length)) {
		return Vect{}, 0, false
	}
	return Vect{v.X / length, v.Y / length}, length, true
}

//returns the normalized input vector, or fallback when v has zero length.
func NormalizeOr(v, fallback Vect) Vect {
	if n, _, ok := SafeNormalize(v); ok {
		return n
	}
	return fallback
}

//dot product between two vectors.
func Dot(v1, v2 Vect) Float {
	return (v1.X * v2.X) + (v1.Y * v2.Y)
}

//2d cross product, the z component of the 3d one.
func Cross(a, b Vect) Float {
	return (a.X * b.Y) - (a.Y * b.X)
}

//cross product between a vector and a scalar.
//result = {s * a.Y, -s * a.X}
func CrossVF(a Vect, s Float) Vect {
	return Vect{s * a.Y, -s * a.X}
}

//cross product between a scalar and a vector.
//result = {-s * a.Y, s * a.X}
func CrossFV(s Float, a Vect) Vect {
	return Vect{-s * a.Y, s * a.X}
}

//shortens v to length l if it is longer.
func Clamp(v Vect, l Float) Vect {
	if Dot(v, v) > l*l {
		n, _, _ := SafeNormalize(v)
		return Mult(n, l)
	}
	return v
}

//linear interpolation between two vectors by the given scalar
func Lerp(v1, v2 Vect, s Float) Vect {
	return Vect{
		v1.X + (v2.X-v1.X)*s,
		v1.Y + (v2.Y-v1.Y)*s,
	}
}

//Returns v rotated by 90 degrees counter-clockwise.
func Perp(v Vect) Vect {
	return Vect{-v.Y, v.X}
}

//Returns v rotated by 90 degrees clockwise.
func RPerp(v Vect) Vect {
	return Vect{v.Y, -v.X}
}

//Returns v rotated by angle radians.
func Rotate(v Vect, angle Float) Vect {
	c := Float(math.Cos(float64(angle)))
	s := Float(math.Sin(float64(angle)))
	return Vect{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

func FromAngle(angle Float) Vect {
	return Vect{Float(math.Cos(float64(angle))), Float(math.Sin(float64(angle)))}
}
