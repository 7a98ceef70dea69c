package phys2d

import (
	"errors"
	"fmt"
	"math"

	"github.com/vova616/phys2d/transform"
	. "github.com/vova616/phys2d/vect"
)

type BodyType uint8

const (
	BodyType_Static    = BodyType(0)
	BodyType_Kinematic = BodyType(1)
	BodyType_Dynamic   = BodyType(2)
)

func (t BodyType) String() string {
	switch t {
	case BodyType_Static:
		return "Static"
	case BodyType_Kinematic:
		return "Kinematic"
	case BodyType_Dynamic:
		return "Dynamic"
	}
	return "Unknown"
}

var Inf = Float(math.Inf(1))

var (
	ErrInvalidMass   = errors.New("mass must be positive and non-zero")
	ErrInvalidMoment = errors.New("moment of inertia must be positive and non-zero")
)

type Body struct {
	DefaultHash

	Type BodyType

	// Mass and its inverse. Use SetMass.
	m     Float
	m_inv Float

	// Moment of inertia and its inverse. Use SetMoment.
	i     Float
	i_inv Float

	/// Position of the rigid body's center of gravity.
	p Vect
	/// Velocity of the rigid body's center of gravity.
	v Vect
	/// Force acting on the rigid body's center of gravity.
	f Vect

	/// Rotation of the body around it's center of gravity in radians.
	a Float
	/// Angular velocity of the body around it's center of gravity in radians/second.
	w Float
	/// Torque applied to the body around it's center of gravity.
	t Float

	// Cached rotation of a.
	rot transform.Rotation

	// Bumped whenever p or a changes so shapes can tell their cache is stale.
	stamp uint64

	UserData interface{}

	// Per body damping added to the space damping, per second.
	LinearDamping  Float
	AngularDamping Float

	// Bodies collide only if each one's mask has the other's category bit.
	Category uint32
	Mask     uint32

	IgnoreGravity bool

	space *Space

	Shapes []*Shape

	joints []*Joint

	awake     bool
	sleepTime Float
}

func newBody(typ BodyType) *Body {
	body := &Body{
		Type:     typ,
		Shapes:   make([]*Shape, 0),
		Category: 0x0001,
		Mask:     0xFFFF,
		awake:    true,
	}
	body.setAngle(0)
	return body
}

// Creates a body with infinite mass that never moves.
func NewBodyStatic() *Body {
	body := newBody(BodyType_Static)
	body.m, body.i = Inf, Inf
	body.IgnoreGravity = true
	return body
}

// Creates a body with infinite mass that moves only by its velocity.
func NewBodyKinematic() *Body {
	body := NewBodyStatic()
	body.Type = BodyType_Kinematic
	return body
}

func NewBody(mass, i Float) (*Body, error) {
	body := newBody(BodyType_Dynamic)
	if err := body.SetMass(mass); err != nil {
		return nil, err
	}
	if err := body.SetMoment(i); err != nil {
		return nil, err
	}
	return body, nil
}

func (body *Body) AddShape(shape *Shape) {
	body.Shapes = append(body.Shapes, shape)
	shape.Body = body
	shape.Invalidate()
	if body.space != nil {
		body.space.addShape(shape)
	}
}

func (body *Body) Clone() *Body {
	clone := *body
	clone.Shapes = make([]*Shape, 0)
	for _, shape := range body.Shapes {
		clone.AddShape(shape.Clone())
	}
	clone.space = nil
	clone.joints = nil
	clone.DefaultHash.Reset()
	return &clone
}

func (body *Body) KineticEnergy() Float {
	vsq := Dot(body.v, body.v)
	wsq := body.w * body.w
	if vsq != 0 {
		vsq = vsq * body.m
	}
	if wsq != 0 {
		wsq = wsq * body.i
	}
	return vsq + wsq
}

func (body *Body) SetMass(mass Float) error {
	if !(mass > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}

	body.Activate()
	body.m = mass
	body.m_inv = 1 / mass
	return nil
}

func (body *Body) SetMoment(moment Float) error {
	if !(moment > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidMoment, moment)
	}

	body.Activate()
	body.i = moment
	body.i_inv = 1 / moment
	return nil
}

func (body *Body) Mass() Float {
	return body.m
}

func (body *Body) Moment() Float {
	return body.i
}

func (body *Body) MomentIsInf() bool {
	return math.IsInf(float64(body.i), 0)
}

func (body *Body) IsStatic() bool {
	return body.Type == BodyType_Static
}

func (body *Body) IsDynamic() bool {
	return body.Type == BodyType_Dynamic
}

// reports whether the body has infinite mass and inertia.
func (body *Body) isInfinite() bool {
	return body.m_inv == 0 && body.i_inv == 0
}

func (body *Body) SetAngle(angle Float) {
	body.Activate()
	body.setAngle(angle)
}

func (body *Body) AddAngle(angle Float) {
	body.SetAngle(angle + body.Angle())
}

func (body *Body) setAngle(angle Float) {
	body.a = angle
	body.rot = transform.NewRotation(angle)
	body.stamp++
}

func (body *Body) SetPosition(pos Vect) {
	body.Activate()
	body.p = pos
	body.stamp++
}

// moves the body by a position solver correction.
func (body *Body) nudge(dp Vect, da Float) {
	body.p.Add(dp)
	if da != 0 {
		body.setAngle(body.a + da)
	} else {
		body.stamp++
	}
}

// Activate wakes the body up.
func (body *Body) Activate() {
	body.awake = true
	body.sleepTime = 0
}

// Sleep zeroes velocity, force and torque and takes the body out of the
// solver until something wakes it.
func (body *Body) Sleep() {
	body.awake = false
	body.v = Vector_Zero
	body.w = 0
	body.f = Vector_Zero
	body.t = 0
}

func (body *Body) IsSleeping() bool {
	return !body.awake
}

func (body *Body) IsRogue() bool {
	return body.space == nil
}

// Refreshes the transformed data of every shape on the body.
func (body *Body) UpdateShapes() {
	for _, shape := range body.Shapes {
		shape.Update()
	}
}

// BB is the union of the shape bounding boxes.
func (body *Body) BB() AABB {
	bb := emptyAABB()
	for _, shape := range body.Shapes {
		bb = Combine(bb, shape.AABB())
	}
	return bb
}

// isCollidable reports whether contacts between body and other are wanted.
func (body *Body) isCollidable(other *Body) bool {
	if body == other || (!body.IsDynamic() && !other.IsDynamic()) {
		return false
	}
	if body.Mask&other.Category == 0 || other.Mask&body.Category == 0 {
		return false
	}
	for _, joint := range body.joints {
		if !joint.CollideConnected && joint.connects(body, other) {
			return false
		}
	}
	return true
}

func (body *Body) AddForce(f Vect) {
	body.f.Add(f)
}

func (body *Body) SetForce(f Vect) {
	body.f = f
}

func (body *Body) AddVelocity(v Vect) {
	body.v.Add(v)
}

func (body *Body) SetVelocity(v Vect) {
	body.Activate()
	body.v = v
}

func (body *Body) AddTorque(t Float) {
	body.t += t
}

func (body *Body) SetTorque(t Float) {
	body.t = t
}

func (body *Body) AddAngularVelocity(w Float) {
	body.w += w
}

func (body *Body) SetAngularVelocity(w Float) {
	body.Activate()
	body.w = w
}

func (body *Body) Velocity() Vect {
	return body.v
}

func (body *Body) AngularVelocity() Float {
	return body.w
}

func (body *Body) Position() Vect {
	return body.p
}

func (body *Body) Angle() Float {
	return body.a
}

func (body *Body) Rot() transform.Rotation {
	return body.rot
}

func (body *Body) Transform() transform.Transform {
	return transform.Transform{Position: body.p, Rotation: body.rot}
}

// Maps a point in body space to world space.
func (body *Body) LocalToWorld(v Vect) Vect {
	return body.Transform().TransformVect(v)
}

// Maps a world space point to body space.
func (body *Body) WorldToLocal(v Vect) Vect {
	return body.Transform().TransformVectInv(v)
}

func (body *Body) UpdatePosition(dt Float) {
	if body.v == Vector_Zero && body.w == 0 {
		return
	}
	body.p = Add(body.p, Mult(body.v, dt))
	body.setAngle(body.a + body.w*dt)
}

// Semi-implicit Euler step of the velocity. Damping uses the first order
// expansion of exp(-c*dt), clamped to [0, 1].
func (body *Body) UpdateVelocity(gravity Vect, damping, dt Float) {
	if body.IgnoreGravity {
		gravity = Vector_Zero
	}

	body.v = Add(body.v, Mult(Add(gravity, Mult(body.f, body.m_inv)), dt))
	body.w = body.w + body.t*body.i_inv*dt

	body.v.Mult(FClamp(1-dt*(damping+body.LinearDamping), 0, 1))
	body.w *= FClamp(1-dt*(damping+body.AngularDamping), 0, 1)

	body.f = Vector_Zero
	body.t = 0
}
