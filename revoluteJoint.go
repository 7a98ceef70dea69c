package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

// Revolute joint
//
// Point constraint:
// C1 = p2 + r2 - p1 - r1
// Angle limit:
// C2 = a2 - a1 - refAngle
//
// J = [ -I, skew(r1), I, -skew(r2) ]
//     [  0,       -1, 0,         1 ]
//
// The angle row only takes part while a limit is active.

func revoluteInitSolver(j *Joint, dt vect.Float, warmStarting bool) {
	b1, b2 := j.Body1, j.Body2
	s := j.cfg()

	if !j.MotorEnabled {
		j.motorLambdaAcc = 0
	} else {
		j.maxMotorImpulse = j.MaxMotorTorque * dt
	}

	if j.LimitEnabled {
		da := j.angleError()
		switch {
		case vect.FAbs(j.UpperAngle-j.LowerAngle) < s.AngularSlop:
			j.limit = limitEqual
		case da <= j.LowerAngle:
			if j.limit != limitAtLower {
				j.LambdaAcc.Z = 0
			}
			j.limit = limitAtLower
		case da >= j.UpperAngle:
			if j.limit != limitAtUpper {
				j.LambdaAcc.Z = 0
			}
			j.limit = limitAtUpper
		default:
			j.limit = limitInactive
			j.LambdaAcc.Z = 0
		}
	} else {
		j.limit = limitInactive
	}

	j.k = k_matrix(b1, b2, j.r1, j.r2)
	j.em2 = 0
	if j.k.M33 != 0 {
		j.em2 = 1 / j.k.M33
	}

	if warmStarting {
		apply_impulses(b1, b2, j.r1, j.r2, j.LambdaAcc.XY(), j.LambdaAcc.Z+j.motorLambdaAcc)
	} else {
		j.LambdaAcc = vect.Vect3{}
		j.motorLambdaAcc = 0
	}
}

func revoluteSolveVelocity(j *Joint) {
	b1, b2 := j.Body1, j.Body2

	if j.MotorEnabled && j.limit != limitEqual {
		cdot := b2.w - b1.w - j.MotorSpeed
		lambda := -j.em2 * cdot
		old := j.motorLambdaAcc
		j.motorLambdaAcc = vect.FClamp(old+lambda, -j.maxMotorImpulse, j.maxMotorImpulse)
		lambda = j.motorLambdaAcc - old

		b1.w -= lambda * b1.i_inv
		b2.w += lambda * b2.i_inv
	}

	cdot1 := relative_velocity(b1, b2, j.r1, j.r2)

	if !j.LimitEnabled || j.limit == limitInactive {
		lambda := j.k.Solve2x2(vect.Neg(cdot1))
		j.LambdaAcc.X += lambda.X
		j.LambdaAcc.Y += lambda.Y
		apply_impulses(b1, b2, j.r1, j.r2, lambda, 0)
		return
	}

	cdot2 := b2.w - b1.w
	lambda := j.k.Solve(vect.Vect3{-cdot1.X, -cdot1.Y, -cdot2})

	if j.limit == limitEqual {
		j.LambdaAcc = vect.Add3(j.LambdaAcc, lambda)
	} else {
		newZ := j.LambdaAcc.Z + lambda.Z
		lowerLimited := j.limit == limitAtLower && newZ < 0
		upperLimited := j.limit == limitAtUpper && newZ > 0

		if lowerLimited || upperLimited {
			// drop the angle row and bring the accumulated z back to 0.
			rhs := vect.Add(cdot1, vect.Mult(vect.Vect{j.k.M13, j.k.M23}, newZ))
			reduced := j.k.Solve2x2(vect.Neg(rhs))
			lambda = vect.Vect3{reduced.X, reduced.Y, -j.LambdaAcc.Z}
			j.LambdaAcc.X += reduced.X
			j.LambdaAcc.Y += reduced.Y
			j.LambdaAcc.Z = 0
		} else {
			j.LambdaAcc = vect.Add3(j.LambdaAcc, lambda)
		}
	}

	apply_impulses(b1, b2, j.r1, j.r2, lambda.XY(), lambda.Z)
}

func revoluteSolvePosition(j *Joint) bool {
	b1, b2 := j.Body1, j.Body2
	s := j.cfg()

	var angularError, positionError vect.Float

	if j.LimitEnabled && j.limit != limitInactive {
		da := j.angleError()
		var impulse vect.Float

		switch j.limit {
		case limitEqual:
			c := vect.FClamp(da-j.LowerAngle, -s.MaxAngularCorrection, s.MaxAngularCorrection)
			angularError = vect.FAbs(c)
			impulse = -j.em2 * c
		case limitAtLower:
			c := da - j.LowerAngle
			angularError = -c
			c = vect.FClamp(c+s.AngularSlop, -s.MaxAngularCorrection, 0)
			impulse = -j.em2 * c
		case limitAtUpper:
			c := da - j.UpperAngle
			angularError = c
			c = vect.FClamp(c-s.AngularSlop, 0, s.MaxAngularCorrection)
			impulse = -j.em2 * c
		}

		apply_position_impulses(b1, b2, vect.Vector_Zero, vect.Vector_Zero, vect.Vector_Zero, impulse)
	}

	r1, r2 := j.anchorOffsets()

	c := vect.Sub(vect.Add(b2.p, r2), vect.Add(b1.p, r1))
	correction := vect.Truncate(c, s.MaxLinearCorrection)
	positionError = correction.Length()

	k := k_matrix(b1, b2, r1, r2)
	lambda := vect.Mat22{M11: k.M11, M12: k.M12, M21: k.M21, M22: k.M22}.Solve(vect.Neg(correction))

	apply_position_impulses(b1, b2, r1, r2, lambda, 0)

	return positionError < s.LinearSlop && angularError < s.AngularSlop
}
