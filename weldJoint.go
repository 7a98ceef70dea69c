package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

// Weld joint
//
// Point constraint:
// C1 = p2 + r2 - p1 - r1
// Angle constraint:
// C2 = a2 - a1 - refAngle
//
// J = [ -I, skew(r1), I, -skew(r2) ]
//     [  0,       -1, 0,         1 ]
//
// With a spring frequency the angle row becomes soft and is solved on its
// own before the point rows.

func weldInitSolver(j *Joint, dt vect.Float, warmStarting bool) {
	b1, b2 := j.Body1, j.Body2

	j.k = k_matrix(b1, b2, j.r1, j.r2)

	if j.Frequency > 0 {
		var m vect.Float
		if j.k.M33 > 0 {
			m = 1 / j.k.M33
		}
		gamma, beta := softness(m, j.Frequency, j.DampingRatio, dt)
		j.gamma = gamma
		j.betaC = beta * j.angleError()
		j.k.M33 += gamma
	} else {
		j.gamma = 0
		j.betaC = 0
	}

	if warmStarting {
		apply_impulses(b1, b2, j.r1, j.r2, j.LambdaAcc.XY(), j.LambdaAcc.Z)
	} else {
		j.LambdaAcc = vect.Vect3{}
	}
}

func weldSolveVelocity(j *Joint) {
	b1, b2 := j.Body1, j.Body2

	if j.Frequency > 0 {
		cdot2 := b2.w - b1.w
		var lambdaZ vect.Float
		if j.k.M33 != 0 {
			lambdaZ = -(cdot2 + j.betaC + j.gamma*j.LambdaAcc.Z) / j.k.M33
		}
		j.LambdaAcc.Z += lambdaZ
		b1.w -= lambdaZ * b1.i_inv
		b2.w += lambdaZ * b2.i_inv

		cdot1 := relative_velocity(b1, b2, j.r1, j.r2)
		lambda := j.k.Solve2x2(vect.Neg(cdot1))
		j.LambdaAcc.X += lambda.X
		j.LambdaAcc.Y += lambda.Y
		apply_impulses(b1, b2, j.r1, j.r2, lambda, 0)
		return
	}

	cdot1 := relative_velocity(b1, b2, j.r1, j.r2)
	cdot2 := b2.w - b1.w
	lambda := j.k.Solve(vect.Vect3{-cdot1.X, -cdot1.Y, -cdot2})

	j.LambdaAcc = vect.Add3(j.LambdaAcc, lambda)
	apply_impulses(b1, b2, j.r1, j.r2, lambda.XY(), lambda.Z)
}

func weldSolvePosition(j *Joint) bool {
	b1, b2 := j.Body1, j.Body2
	s := j.cfg()

	r1, r2 := j.anchorOffsets()

	c1 := vect.Sub(vect.Add(b2.p, r2), vect.Add(b1.p, r1))
	c2 := j.angleError()

	linearError := c1.Length()
	angularError := vect.FAbs(c2)

	correction1 := vect.Truncate(c1, s.MaxLinearCorrection)
	correction2 := vect.FClamp(c2, -s.MaxAngularCorrection, s.MaxAngularCorrection)

	k := k_matrix(b1, b2, r1, r2)

	if j.Frequency > 0 {
		lambda := k.Solve2x2(vect.Neg(correction1))
		apply_position_impulses(b1, b2, r1, r2, lambda, 0)
		// the spring owns the angle.
		angularError = 0
	} else {
		lambda := k.Solve(vect.Vect3{-correction1.X, -correction1.Y, -correction2})
		apply_position_impulses(b1, b2, r1, r2, lambda.XY(), lambda.Z)
	}

	return linearError < s.LinearSlop && angularError < s.AngularSlop
}
