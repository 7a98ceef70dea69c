package vect

//3d vector used for combined linear/angular impulses.
type Vect3 struct {
	X, Y, Z Float
}

func (v Vect3) XY() Vect {
	return Vect{v.X, v.Y}
}

func Add3(a, b Vect3) Vect3 {
	return Vect3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Neg3(v Vect3) Vect3 {
	return Vect3{-v.X, -v.Y, -v.Z}
}

func Mult3(v Vect3, s Float) Vect3 {
	return Vect3{v.X * s, v.Y * s, v.Z * s}
}

// Mat22 is a row major 2x2 matrix.
type Mat22 struct {
	M11, M12 Float
	M21, M22 Float
}

// Solve returns x for M*x = b. A singular matrix yields the zero vector.
func (m Mat22) Solve(b Vect) Vect {
	det := m.M11*m.M22 - m.M12*m.M21
	if det != 0 {
		det = 1 / det
	}
	return Vect{
		det * (m.M22*b.X - m.M12*b.Y),
		det * (m.M11*b.Y - m.M21*b.X),
	}
}

// Mat33 is a row major symmetric-friendly 3x3 matrix.
type Mat33 struct {
	M11, M12, M13 Float
	M21, M22, M23 Float
	M31, M32, M33 Float
}

// Solve returns x for M*x = b. A singular matrix yields the zero vector.
func (m Mat33) Solve(b Vect3) Vect3 {
	d11 := m.M22*m.M33 - m.M23*m.M32
	d12 := m.M23*m.M31 - m.M21*m.M33
	d13 := m.M21*m.M32 - m.M22*m.M31

	det := m.M11*d11 + m.M12*d12 + m.M13*d13
	if det != 0 {
		det = 1 / det
	}

	d21 := m.M13*m.M32 - m.M12*m.M33
	d22 := m.M11*m.M33 - m.M13*m.M31
	d23 := m.M12*m.M31 - m.M11*m.M32
	d31 := m.M12*m.M23 - m.M13*m.M22
	d32 := m.M13*m.M21 - m.M11*m.M23
	d33 := m.M11*m.M22 - m.M12*m.M21

	return Vect3{
		det * (d11*b.X + d12*b.Y + d13*b.Z),
		det * (d21*b.X + d22*b.Y + d23*b.Z),
		det * (d31*b.X + d32*b.Y + d33*b.Z),
	}
}

// Solve2x2 solves the upper-left 2x2 block only.
func (m Mat33) Solve2x2(b Vect) Vect {
	return Mat22{m.M11, m.M12, m.M21, m.M22}.Solve(b)
}

//shortens v to length l if it is longer.
func Truncate(v Vect, l Float) Vect {
	lsq := v.LengthSqr()
	if lsq > l*l {
		return Mult(v, l/FSqrt(lsq))
	}
	return v
}
