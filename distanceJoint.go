package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

// Distance joint
//
// d = p2 + r2 - p1 - r1
// u = d / |d|
// C = |d| - restLength
// J = [ -u, -cross(r1, u), u, cross(r2, u) ]

func distanceInitSolver(j *Joint, dt vect.Float, warmStarting bool) {
	b1, b2 := j.Body1, j.Body2
	s := j.cfg()

	d := vect.Sub(vect.Add(b2.p, j.r2), vect.Add(b1.p, j.r1))
	dist := d.Length()

	// coincident anchors give no direction to push along.
	if dist > s.LinearSlop {
		j.u = vect.Mult(d, 1/dist)
	} else {
		j.u = vect.Vector_Zero
	}

	j.s1 = vect.Cross(j.r1, j.u)
	j.s2 = vect.Cross(j.r2, j.u)

	emInv := b1.m_inv + b2.m_inv + b1.i_inv*j.s1*j.s1 + b2.i_inv*j.s2*j.s2
	j.em = 0
	if emInv != 0 {
		j.em = 1 / emInv
	}

	if j.Frequency > 0 {
		gamma, beta := softness(j.em, j.Frequency, j.DampingRatio, dt)
		j.gamma = gamma
		j.betaC = beta * (dist - j.RestLength)

		emInv += gamma
		j.em = 0
		if emInv != 0 {
			j.em = 1 / emInv
		}
	} else {
		j.gamma = 0
		j.betaC = 0
	}

	if warmStarting {
		lambda := j.LambdaAcc.X
		impulse := vect.Mult(j.u, lambda)
		b1.v.MultAdd(impulse, -b1.m_inv)
		b1.w -= j.s1 * lambda * b1.i_inv
		b2.v.MultAdd(impulse, b2.m_inv)
		b2.w += j.s2 * lambda * b2.i_inv
	} else {
		j.LambdaAcc = vect.Vect3{}
	}
}

func distanceSolveVelocity(j *Joint) {
	b1, b2 := j.Body1, j.Body2

	cdot := vect.Dot(j.u, vect.Sub(b2.v, b1.v)) + j.s2*b2.w - j.s1*b1.w
	soft := j.betaC + j.gamma*j.LambdaAcc.X
	lambda := -j.em * (cdot + soft)

	j.LambdaAcc.X += lambda

	impulse := vect.Mult(j.u, lambda)
	b1.v.MultAdd(impulse, -b1.m_inv)
	b1.w -= j.s1 * lambda * b1.i_inv
	b2.v.MultAdd(impulse, b2.m_inv)
	b2.w += j.s2 * lambda * b2.i_inv
}

func distanceSolvePosition(j *Joint) bool {
	// springs are left to the velocity solver.
	if j.Frequency > 0 {
		return true
	}

	b1, b2 := j.Body1, j.Body2
	s := j.cfg()

	r1, r2 := j.anchorOffsets()

	d := vect.Sub(vect.Add(b2.p, r2), vect.Add(b1.p, r1))
	u, dist, ok := vect.SafeNormalize(d)
	if !ok {
		// no direction to correct along.
		return vect.FAbs(j.RestLength) < s.LinearSlop
	}

	c := dist - j.RestLength
	correction := vect.FClamp(c, -s.MaxLinearCorrection, s.MaxLinearCorrection)

	s1 := vect.Cross(r1, u)
	s2 := vect.Cross(r2, u)
	emInv := b1.m_inv + b2.m_inv + b1.i_inv*s1*s1 + b2.i_inv*s2*s2

	var lambda vect.Float
	if emInv != 0 {
		lambda = -correction / emInv
	}

	apply_position_impulses(b1, b2, r1, r2, vect.Mult(u, lambda), 0)

	return vect.FAbs(c) < s.LinearSlop
}
