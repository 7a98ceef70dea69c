package phys2d

import (
	"errors"
	"fmt"
	"math"

	"github.com/vova616/phys2d/vect"
)

type JointKind uint8

const (
	JointKind_Weld JointKind = iota
	JointKind_Distance
	JointKind_Revolute
)

func (k JointKind) String() string {
	switch k {
	case JointKind_Weld:
		return "Weld"
	case JointKind_Distance:
		return "Distance"
	case JointKind_Revolute:
		return "Revolute"
	}
	return "Unknown"
}

var (
	ErrStaticJoint = errors.New("joint needs at least one body with finite mass")
	ErrSameBody    = errors.New("joint connects a body to itself")
	ErrNilBody     = errors.New("joint body is nil")
)

type limitState uint8

const (
	limitInactive limitState = iota
	limitAtLower
	limitAtUpper
	limitEqual
)

// Joint is a constraint between two bodies. The fields used depend on
// Kind; the solver entry points dispatch on it.
type Joint struct {
	DefaultHash

	Kind JointKind

	// The world owns the bodies.
	Body1, Body2 *Body

	// Anchors in the local frame of Body1 and Body2.
	Anchor1, Anchor2 vect.Vect

	// Allows contacts between the two bodies.
	CollideConnected bool

	// A breakable joint is removed by the space once its reaction force
	// reaches MaxForce.
	Breakable bool
	MaxForce  vect.Float

	// Spring frequency in Hz and damping ratio. Frequency 0 makes the joint rigid.
	Frequency    vect.Float
	DampingRatio vect.Float

	// Accumulated impulse, carried between steps for warm starting.
	// Distance joints only use X.
	LambdaAcc vect.Vect3

	// Initial relative angle of the bodies (Weld, Revolute).
	RefAngle vect.Float

	// Distance the anchors are kept at (Distance).
	RestLength vect.Float

	// Relative angle limits, in radians from RefAngle (Revolute).
	LimitEnabled bool
	LowerAngle   vect.Float
	UpperAngle   vect.Float

	// Drives the relative angular velocity to MotorSpeed with at most
	// MaxMotorTorque (Revolute).
	MotorEnabled   bool
	MotorSpeed     vect.Float
	MaxMotorTorque vect.Float

	UserData interface{}

	motorLambdaAcc  vect.Float
	maxMotorImpulse vect.Float
	limit           limitState

	// per step solver state.
	r1, r2 vect.Vect
	k      vect.Mat33
	em2    vect.Float
	gamma  vect.Float
	betaC  vect.Float
	u      vect.Vect
	s1, s2 vect.Float
	em     vect.Float

	settings *Settings
	space    *Space
}

func newJoint(kind JointKind, body1, body2 *Body) (*Joint, error) {
	if body1 == nil || body2 == nil {
		return nil, fmt.Errorf("%v joint: %w", kind, ErrNilBody)
	}
	if body1 == body2 {
		return nil, fmt.Errorf("%v joint: %w", kind, ErrSameBody)
	}
	if body1.isInfinite() && body2.isInfinite() {
		return nil, fmt.Errorf("%v joint: %w", kind, ErrStaticJoint)
	}
	return &Joint{Kind: kind, Body1: body1, Body2: body2, MaxForce: Inf}, nil
}

// Welds two bodies together at the world point anchor.
func NewWeldJoint(body1, body2 *Body, anchor vect.Vect) (*Joint, error) {
	j, err := newJoint(JointKind_Weld, body1, body2)
	if err != nil {
		return nil, err
	}
	j.Anchor1 = body1.WorldToLocal(anchor)
	j.Anchor2 = body2.WorldToLocal(anchor)
	j.RefAngle = body2.a - body1.a
	return j, nil
}

// Keeps the world points anchor1 and anchor2 at their current distance.
func NewDistanceJoint(body1, body2 *Body, anchor1, anchor2 vect.Vect) (*Joint, error) {
	j, err := newJoint(JointKind_Distance, body1, body2)
	if err != nil {
		return nil, err
	}
	j.Anchor1 = body1.WorldToLocal(anchor1)
	j.Anchor2 = body2.WorldToLocal(anchor2)
	j.RestLength = vect.Dist(anchor1, anchor2)
	j.CollideConnected = true
	return j, nil
}

// Pins two bodies together at the world point anchor, leaving rotation free.
func NewRevoluteJoint(body1, body2 *Body, anchor vect.Vect) (*Joint, error) {
	j, err := newJoint(JointKind_Revolute, body1, body2)
	if err != nil {
		return nil, err
	}
	j.Anchor1 = body1.WorldToLocal(anchor)
	j.Anchor2 = body2.WorldToLocal(anchor)
	j.RefAngle = body2.a - body1.a
	return j, nil
}

func (j *Joint) cfg() *Settings {
	if j.settings != nil {
		return j.settings
	}
	return &defaultSettings
}

func (j *Joint) connects(a, b *Body) bool {
	return (j.Body1 == a && j.Body2 == b) || (j.Body1 == b && j.Body2 == a)
}

func (j *Joint) SetLimits(lower, upper vect.Float) {
	j.LowerAngle = lower
	j.UpperAngle = upper
	j.LimitEnabled = true
}

func (j *Joint) SetMotor(speed, maxTorque vect.Float) {
	j.MotorSpeed = speed
	j.MaxMotorTorque = maxTorque
	j.MotorEnabled = true
}

// World position of the anchors.
func (j *Joint) WorldAnchor1() vect.Vect {
	return j.Body1.LocalToWorld(j.Anchor1)
}

func (j *Joint) WorldAnchor2() vect.Vect {
	return j.Body2.LocalToWorld(j.Anchor2)
}

// InitSolver prepares the per step state and applies the accumulated
// impulse when warmStarting is set; otherwise the impulse is cleared.
func (j *Joint) InitSolver(dt vect.Float, warmStarting bool) {
	j.r1 = j.Body1.rot.RotateVect(j.Anchor1)
	j.r2 = j.Body2.rot.RotateVect(j.Anchor2)

	switch j.Kind {
	case JointKind_Weld:
		weldInitSolver(j, dt, warmStarting)
	case JointKind_Distance:
		distanceInitSolver(j, dt, warmStarting)
	case JointKind_Revolute:
		revoluteInitSolver(j, dt, warmStarting)
	}
}

func (j *Joint) SolveVelocityConstraints() {
	switch j.Kind {
	case JointKind_Weld:
		weldSolveVelocity(j)
	case JointKind_Distance:
		distanceSolveVelocity(j)
	case JointKind_Revolute:
		revoluteSolveVelocity(j)
	}
}

// SolvePositionConstraints moves the bodies towards satisfying the joint
// and reports whether the remaining error is within the slop.
func (j *Joint) SolvePositionConstraints() bool {
	switch j.Kind {
	case JointKind_Weld:
		return weldSolvePosition(j)
	case JointKind_Distance:
		return distanceSolvePosition(j)
	case JointKind_Revolute:
		return revoluteSolvePosition(j)
	}
	return true
}

// ReactionForce is the force the joint applied during the last step.
func (j *Joint) ReactionForce(invDt vect.Float) vect.Vect {
	if j.Kind == JointKind_Distance {
		return vect.Mult(j.u, j.LambdaAcc.X*invDt)
	}
	return vect.Mult(j.LambdaAcc.XY(), invDt)
}

func (j *Joint) ReactionTorque(invDt vect.Float) vect.Float {
	switch j.Kind {
	case JointKind_Weld:
		return j.LambdaAcc.Z * invDt
	case JointKind_Revolute:
		return (j.LambdaAcc.Z + j.motorLambdaAcc) * invDt
	}
	return 0
}

// broken reports whether a breakable joint exceeded MaxForce.
func (j *Joint) broken(invDt vect.Float) bool {
	return j.Breakable && j.ReactionForce(invDt).LengthSqr() >= j.MaxForce*j.MaxForce
}

// current anchor offsets from the body positions.
func (j *Joint) anchorOffsets() (r1, r2 vect.Vect) {
	return j.Body1.rot.RotateVect(j.Anchor1), j.Body2.rot.RotateVect(j.Anchor2)
}

// relative angle minus the reference angle.
func (j *Joint) angleError() vect.Float {
	return j.Body2.a - j.Body1.a - j.RefAngle
}

// soft constraint coefficients for effective mass m, as gamma and beta.
// Both are 0 in rigid mode.
func softness(m, frequency, dampingRatio, dt vect.Float) (gamma, beta vect.Float) {
	if frequency <= 0 {
		return 0, 0
	}
	omega := 2 * math.Pi * frequency
	k := m * omega * omega
	c := m * 2 * dampingRatio * omega

	gamma = (c + k*dt) * dt
	if gamma != 0 {
		gamma = 1 / gamma
	}
	return gamma, dt * k * gamma
}
