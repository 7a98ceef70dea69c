package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

func k_scalar_body(body *Body, r, n vect.Vect) vect.Float {
	rcn := vect.Cross(r, n)
	return body.m_inv + (body.i_inv * rcn * rcn)
}

// effective inverse mass of the pair along n.
func k_scalar(a, b *Body, r1, r2, n vect.Vect) vect.Float {
	value := k_scalar_body(a, r1, n) + k_scalar_body(b, r2, n)
	if value == 0.0 {
		Logger.Warn("unsolvable collision or constraint", "body1", a.Hash(), "body2", b.Hash())
	}
	return value
}

// K = J * invM * JT for a point constraint plus a relative rotation
// constraint, with J = [-I, skew(r1), I, -skew(r2)]; [0, -1, 0, 1].
func k_matrix(a, b *Body, r1, r2 vect.Vect) vect.Mat33 {
	sum_m_inv := a.m_inv + b.m_inv
	r1x_i := r1.X * a.i_inv
	r1y_i := r1.Y * a.i_inv
	r2x_i := r2.X * b.i_inv
	r2y_i := r2.Y * b.i_inv

	k11 := sum_m_inv + r1.Y*r1y_i + r2.Y*r2y_i
	k12 := -r1.X*r1y_i - r2.X*r2y_i
	k13 := -r1y_i - r2y_i
	k22 := sum_m_inv + r1.X*r1x_i + r2.X*r2x_i
	k23 := r1x_i + r2x_i
	k33 := a.i_inv + b.i_inv

	return vect.Mat33{
		M11: k11, M12: k12, M13: k13,
		M21: k12, M22: k22, M23: k23,
		M31: k13, M32: k23, M33: k33,
	}
}

// velocity of the anchor on b relative to the anchor on a.
func relative_velocity(a, b *Body, r1, r2 vect.Vect) vect.Vect {
	v1_sum := vect.Add(a.v, vect.Mult(vect.Perp(r1), a.w))
	v2_sum := vect.Add(b.v, vect.Mult(vect.Perp(r2), b.w))

	return vect.Sub(v2_sum, v1_sum)
}

func normal_relative_velocity(a, b *Body, r1, r2, n vect.Vect) vect.Float {
	return vect.Dot(relative_velocity(a, b, r1, r2), n)
}

// Applies the linear impulse j at r1/r2 and the angular impulse jz, with
// a receiving the negated impulse.
func apply_impulses(a, b *Body, r1, r2, j vect.Vect, jz vect.Float) {
	a.v.MultAdd(j, -a.m_inv)
	a.w -= (vect.Cross(r1, j) + jz) * a.i_inv
	b.v.MultAdd(j, b.m_inv)
	b.w += (vect.Cross(r2, j) + jz) * b.i_inv
}

// Like apply_impulses but moves positions and angles directly.
func apply_position_impulses(a, b *Body, r1, r2, j vect.Vect, jz vect.Float) {
	if !a.isInfinite() {
		a.nudge(vect.Mult(j, -a.m_inv), -(vect.Cross(r1, j)+jz)*a.i_inv)
	}
	if !b.isInfinite() {
		b.nudge(vect.Mult(j, b.m_inv), (vect.Cross(r2, j)+jz)*b.i_inv)
	}
}
