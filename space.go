package phys2d

import (
	"errors"
	"fmt"

	"github.com/vova616/phys2d/vect"
)

var (
	ErrBodyInSpace  = errors.New("body is already added to a space")
	ErrJointInSpace = errors.New("joint is already added to a space")
	ErrNotInSpace   = errors.New("not part of this space")
)

// broadphase finds the shape pairs whose bounding boxes overlap.
type broadphase interface {
	Insert(shape *Shape)
	Remove(shape *Shape)
	// Reindex refiles shapes that moved since the last call.
	Reindex()
	Pairs(fn func(a, b *Shape))
	Query(bb AABB, fn func(shape *Shape) bool)
	Count() int
}

func newBroadphase(settings Settings) broadphase {
	if settings.Broadphase == Broadphase_Grid {
		return NewSpatialIndex(settings.CellSize)
	}
	return NewBBTree()
}

type Space struct {
	Settings

	Bodies []*Body
	Joints []*Joint

	// Arbiters with contacts in the last step.
	Arbiters []*Arbiter

	// Contacts generated by the last step.
	NumContacts int
	// Whether the last position solve finished within tolerance.
	PositionSolved bool

	cachedArbiters map[HashPair]*Arbiter
	index          broadphase
	contacts       ContactList

	stamp uint64
}

func NewSpace() *Space {
	return NewSpaceWithSettings(DefaultSettings())
}

func NewSpaceWithSettings(settings Settings) *Space {
	return &Space{
		Settings:       settings,
		Bodies:         make([]*Body, 0),
		Joints:         make([]*Joint, 0),
		Arbiters:       make([]*Arbiter, 0),
		cachedArbiters: make(map[HashPair]*Arbiter),
		index:          newBroadphase(settings),
	}
}

// StepCount is the number of steps taken so far.
func (space *Space) StepCount() uint64 {
	return space.stamp
}

func (space *Space) AddBody(body *Body) (*Body, error) {
	if body.space != nil {
		return body, fmt.Errorf("body %d: %w", body.Hash(), ErrBodyInSpace)
	}

	body.space = space
	body.Activate()
	space.Bodies = append(space.Bodies, body)

	for _, shape := range body.Shapes {
		space.addShape(shape)
	}

	return body, nil
}

func (space *Space) addShape(shape *Shape) {
	shape.space = space
	shape.Update()
	space.index.Insert(shape)
}

// RemoveBody takes the body, its shapes and every joint attached to it
// out of the space.
func (space *Space) RemoveBody(body *Body) error {
	if body == nil || body.space != space {
		return fmt.Errorf("remove body: %w", ErrNotInSpace)
	}

	for len(body.joints) > 0 {
		space.RemoveJoint(body.joints[0])
	}

	for i, pbody := range space.Bodies {
		if pbody == body {
			space.Bodies = append(space.Bodies[:i], space.Bodies[i+1:]...)
			break
		}
	}

	for h, arb := range space.cachedArbiters {
		if arb.BodyA == body || arb.BodyB == body {
			arb.BodyA.Activate()
			arb.BodyB.Activate()
			delete(space.cachedArbiters, h)
		}
	}

	for _, shape := range body.Shapes {
		space.index.Remove(shape)
		shape.space = nil
	}
	body.space = nil
	return nil
}

func (space *Space) AddJoint(joint *Joint) (*Joint, error) {
	if joint.space != nil {
		return joint, fmt.Errorf("%v joint %d: %w", joint.Kind, joint.Hash(), ErrJointInSpace)
	}

	joint.space = space
	joint.settings = &space.Settings
	joint.Body1.Activate()
	joint.Body2.Activate()
	joint.Body1.joints = append(joint.Body1.joints, joint)
	joint.Body2.joints = append(joint.Body2.joints, joint)
	space.Joints = append(space.Joints, joint)

	return joint, nil
}

func (space *Space) RemoveJoint(joint *Joint) {
	if joint.space != space {
		return
	}

	joint.Body1.Activate()
	joint.Body2.Activate()

	space.Joints = removeJoint(space.Joints, joint)
	joint.Body1.joints = removeJoint(joint.Body1.joints, joint)
	joint.Body2.joints = removeJoint(joint.Body2.joints, joint)

	joint.space = nil
	joint.settings = nil
}

func removeJoint(joints []*Joint, joint *Joint) []*Joint {
	for i, j := range joints {
		if j == joint {
			return append(joints[:i], joints[i+1:]...)
		}
	}
	return joints
}

func (space *Space) active(body *Body) bool {
	return !body.IsSleeping() && !body.IsStatic()
}

// genContacts runs the broadphase and narrow phase and refreshes the
// arbiter cache. Arbiters whose shapes stopped touching are dropped.
func (space *Space) genContacts() {
	space.Arbiters = space.Arbiters[:0]
	space.NumContacts = 0

	space.index.Reindex()
	space.index.Pairs(func(a, b *Shape) {
		bodyA, bodyB := a.Body, b.Body
		if a.IsSensor || b.IsSensor {
			return
		}
		if !space.active(bodyA) && !space.active(bodyB) {
			return
		}
		if !bodyA.isCollidable(bodyB) {
			return
		}

		space.contacts.Reset()
		if Collide(a, b, &space.contacts) == 0 {
			return
		}
		space.NumContacts += len(space.contacts)

		pair := HashPair{a, b}
		arb, ok := space.cachedArbiters[pair]
		if !ok {
			arb = newArbiter(a, b, &space.Settings)
			space.cachedArbiters[pair] = arb
		}

		// a moving body touching a sleeping one wakes it.
		if bodyA.IsSleeping() && bodyA.IsDynamic() {
			bodyA.Activate()
		}
		if bodyB.IsSleeping() && bodyB.IsDynamic() {
			bodyB.Activate()
		}

		arb.update(space.contacts)
		arb.stamp = space.stamp
		space.Arbiters = append(space.Arbiters, arb)
	})

	for h, arb := range space.cachedArbiters {
		if arb.stamp != space.stamp {
			delete(space.cachedArbiters, h)
		}
	}
}

// Step advances the simulation by dt.
func (space *Space) Step(dt vect.Float) {
	// don't step if the timestep is 0!
	if dt <= 0 {
		return
	}
	invDt := 1 / dt

	space.stamp++

	space.genContacts()

	for _, arb := range space.Arbiters {
		arb.initSolver()
	}
	for _, joint := range space.Joints {
		joint.InitSolver(dt, space.WarmStarting)
	}
	for _, arb := range space.Arbiters {
		if space.WarmStarting {
			arb.warmStart()
		} else {
			arb.clearImpulses()
		}
	}

	for _, body := range space.Bodies {
		if body.IsDynamic() && !body.IsSleeping() {
			body.UpdateVelocity(space.Gravity, space.Damping, dt)
		}
	}

	// a joint between an awake and a sleeping body wakes the sleeper.
	for _, joint := range space.Joints {
		b1, b2 := joint.Body1, joint.Body2
		if b1.IsSleeping() != b2.IsSleeping() {
			if b1.IsSleeping() {
				b1.Activate()
			} else {
				b2.Activate()
			}
		}
	}

	for i := 0; i < space.VelocityIterations; i++ {
		for _, joint := range space.Joints {
			joint.SolveVelocityConstraints()
		}
		for _, arb := range space.Arbiters {
			arb.solveVelocityConstraints()
		}
	}

	for _, body := range space.Bodies {
		if !body.IsStatic() && !body.IsSleeping() {
			body.UpdatePosition(dt)
		}
	}

	for i := 0; i < len(space.Joints); {
		joint := space.Joints[i]
		if joint.broken(invDt) {
			Logger.Debug("joint broke", "kind", joint.Kind, "joint", joint.Hash(),
				"force", joint.ReactionForce(invDt).Length())
			space.RemoveJoint(joint)
			continue
		}
		i++
	}

	space.PositionSolved = space.solvePositions()

	for _, body := range space.Bodies {
		for _, shape := range body.Shapes {
			shape.ensureFresh()
		}
	}

	if space.AllowSleep {
		space.processSleep(dt)
	}
}

func (space *Space) solvePositions() bool {
	for i := 0; i < space.PositionIterations; i++ {
		contactsOk := true
		jointsOk := true

		for _, arb := range space.Arbiters {
			contactsOk = arb.solvePositionConstraints() && contactsOk
		}
		for _, joint := range space.Joints {
			jointsOk = joint.SolvePositionConstraints() && jointsOk
		}

		// exit early if the position errors are small
		if contactsOk && jointsOk {
			return true
		}
	}
	return false
}

// processSleep puts every dynamic body to sleep once all of them have
// been slow for TimeToSleep and the position solve converged.
func (space *Space) processSleep(dt vect.Float) {
	minSleepTime := vect.Float(Inf)

	linTolSqr := space.SleepLinearTolerance * space.SleepLinearTolerance
	angTolSqr := space.SleepAngularTolerance * space.SleepAngularTolerance

	for _, body := range space.Bodies {
		if body.Type == BodyType_Kinematic && (body.v != vect.Vector_Zero || body.w != 0) {
			minSleepTime = 0
			continue
		}
		if !body.IsDynamic() {
			continue
		}

		if body.w*body.w > angTolSqr || vect.Dot(body.v, body.v) > linTolSqr {
			body.sleepTime = 0
			minSleepTime = 0
		} else {
			body.sleepTime += dt
			minSleepTime = vect.FMin(minSleepTime, body.sleepTime)
		}
	}

	if space.PositionSolved && minSleepTime >= space.TimeToSleep {
		for _, body := range space.Bodies {
			if body.IsDynamic() && !body.IsSleeping() {
				body.Sleep()
			}
		}
	}
}

// PointQuery returns the shapes containing point, sensors included.
func (space *Space) PointQuery(point vect.Vect) []*Shape {
	var shapes []*Shape

	space.index.Reindex()
	space.index.Query(AABB{point, point}, func(shape *Shape) bool {
		if shape.TestPoint(point) {
			shapes = append(shapes, shape)
		}
		return false
	})

	return shapes
}
