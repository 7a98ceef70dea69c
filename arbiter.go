package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

// ContactPoint is a Contact together with its solver state.
type ContactPoint struct {
	Contact

	r1, r2           vect.Vect
	r1Local, r2Local vect.Vect

	emn, emt vect.Float
	bounce   vect.Float

	// Accumulated impulses, carried to the next step when the feature
	// matches.
	LambdaNormal  vect.Float
	LambdaTangent vect.Float
}

// Arbiter solves the contacts between one pair of shapes.
type Arbiter struct {
	// The two colliding shapes in HashPair order. Contact normals point
	// from ShapeA to ShapeB.
	ShapeA, ShapeB *Shape
	BodyA, BodyB   *Body

	Contacts []ContactPoint

	// Combined elasticity and friction.
	e vect.Float
	u vect.Float

	settings *Settings

	// last step this pair was touching.
	stamp uint64
}

func newArbiter(a, b *Shape, settings *Settings) *Arbiter {
	return &Arbiter{
		ShapeA:   a,
		ShapeB:   b,
		BodyA:    a.Body,
		BodyB:    b.Body,
		e:        vect.FMax(a.e, b.e),
		u:        vect.FSqrt(a.u * b.u),
		settings: settings,
	}
}

func (arb *Arbiter) Elasticity() vect.Float {
	return arb.e
}

func (arb *Arbiter) Friction() vect.Float {
	return arb.u
}

// update replaces the contacts, keeping the accumulated impulses of
// contacts whose feature id survived.
func (arb *Arbiter) update(contacts []Contact) {
	old := arb.Contacts
	points := make([]ContactPoint, len(contacts))

	for i, c := range contacts {
		points[i].Contact = c
		for _, oldC := range old {
			if oldC.Feature == c.Feature {
				points[i].LambdaNormal = oldC.LambdaNormal
				points[i].LambdaTangent = oldC.LambdaTangent
				break
			}
		}
	}

	arb.Contacts = points
}

func (arb *Arbiter) initSolver() {
	a := arb.BodyA
	b := arb.BodyB

	for i := range arb.Contacts {
		con := &arb.Contacts[i]

		con.r1 = vect.Sub(con.Position, a.p)
		con.r2 = vect.Sub(con.Position, b.p)
		con.r1Local = a.rot.RotateVectInv(con.r1)
		con.r2Local = b.rot.RotateVectInv(con.r2)

		kn := k_scalar(a, b, con.r1, con.r2, con.Normal)
		kt := k_scalar(a, b, con.r1, con.r2, vect.Perp(con.Normal))
		con.emn, con.emt = 0, 0
		if kn != 0 {
			con.emn = 1 / kn
		}
		if kt != 0 {
			con.emt = 1 / kt
		}

		con.bounce = normal_relative_velocity(a, b, con.r1, con.r2, con.Normal) * arb.e
	}
}

func (arb *Arbiter) warmStart() {
	a := arb.BodyA
	b := arb.BodyB

	for i := range arb.Contacts {
		con := &arb.Contacts[i]
		n := con.Normal
		j := vect.Vect{
			con.LambdaNormal*n.X - con.LambdaTangent*n.Y,
			con.LambdaTangent*n.X + con.LambdaNormal*n.Y,
		}
		apply_impulses(a, b, con.r1, con.r2, j, 0)
	}
}

// clearImpulses drops the carried impulses when warm starting is off.
func (arb *Arbiter) clearImpulses() {
	for i := range arb.Contacts {
		arb.Contacts[i].LambdaNormal = 0
		arb.Contacts[i].LambdaTangent = 0
	}
}

func (arb *Arbiter) solveVelocityConstraints() {
	a := arb.BodyA
	b := arb.BodyB

	for i := range arb.Contacts {
		con := &arb.Contacts[i]
		n := con.Normal
		t := vect.Perp(n)

		rv := relative_velocity(a, b, con.r1, con.r2)

		// normal impulse, accumulated impulse never pulls.
		lambdaN := -con.emn * (vect.Dot(n, rv) + con.bounce)
		oldN := con.LambdaNormal
		con.LambdaNormal = vect.FMax(oldN+lambdaN, 0)
		lambdaN = con.LambdaNormal - oldN

		// friction impulse inside the Coulomb cone.
		lambdaT := -con.emt * vect.Dot(t, rv)
		maxT := con.LambdaNormal * arb.u
		oldT := con.LambdaTangent
		con.LambdaTangent = vect.FClamp(oldT+lambdaT, -maxT, maxT)
		lambdaT = con.LambdaTangent - oldT

		j := vect.Vect{
			lambdaN*n.X - lambdaT*n.Y,
			lambdaT*n.X + lambdaN*n.Y,
		}
		apply_impulses(a, b, con.r1, con.r2, j, 0)
	}
}

// solvePositionConstraints pushes the bodies apart along the contact
// normals and reports whether the deepest remaining penetration is small.
func (arb *Arbiter) solvePositionConstraints() bool {
	a := arb.BodyA
	b := arb.BodyB
	s := arb.settings
	if s == nil {
		s = &defaultSettings
	}

	var maxPenetration vect.Float

	for i := range arb.Contacts {
		con := &arb.Contacts[i]
		n := con.Normal

		r1 := a.rot.RotateVect(con.r1Local)
		r2 := b.rot.RotateVect(con.r2Local)

		dp := vect.Sub(vect.Add(b.p, r2), vect.Add(a.p, r1))
		c := vect.Dot(dp, n) + con.Depth

		correction := vect.FClamp(s.Baumgarte*(c+s.ContactSlop), -s.ContactMaxLinearCorrection, 0)
		if correction == 0 {
			continue
		}

		maxPenetration = vect.FMax(maxPenetration, -c)

		sn1 := vect.Cross(r1, n)
		sn2 := vect.Cross(r2, n)
		emInv := a.m_inv + b.m_inv + a.i_inv*sn1*sn1 + b.i_inv*sn2*sn2

		var lambda vect.Float
		if emInv != 0 {
			lambda = -correction / emInv
		}

		apply_position_impulses(a, b, r1, r2, vect.Mult(n, lambda), 0)
	}

	return maxPenetration <= s.ContactSlop*3
}
