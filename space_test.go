package phys2d

import (
	"errors"
	"testing"

	"github.com/vova616/phys2d/vect"
)

const step = 1.0 / 60

func TestFreeFall(t *testing.T) {
	space := NewSpace()
	space.Gravity = vect.Vect{0, -10}

	body := newTestBody(t, vect.Vector_Zero)
	if _, err := space.AddBody(body); err != nil {
		t.Fatal(err)
	}

	n := 60
	for i := 0; i < n; i++ {
		space.Step(step)
	}

	// semi-implicit Euler: the velocity is updated before the position.
	want := -10 * step * step * vect.Float(n*(n+1)/2)
	if y := body.Position().Y; !feq(y, want) {
		t.Errorf("y after %d steps = %v, want %v.", n, y, want)
	}
	if v := body.Velocity().Y; !feq(v, -10) {
		t.Errorf("velocity after 1s = %v, want -10.", v)
	}
	if space.StepCount() != uint64(n) {
		t.Errorf("StepCount() = %d, want %d.", space.StepCount(), n)
	}
}

func TestStepIgnoresZeroDt(t *testing.T) {
	space := NewSpace()
	space.Gravity = vect.Vect{0, -10}
	body := newTestBody(t, vect.Vector_Zero)
	space.AddBody(body)

	space.Step(0)
	if space.StepCount() != 0 || body.Velocity() != vect.Vector_Zero {
		t.Errorf("Step(0) advanced the space.")
	}
}

func TestBoxRestsOnGround(t *testing.T) {
	for _, kind := range []BroadphaseKind{Broadphase_Tree, Broadphase_Grid} {
		t.Run(kind.String(), func(t *testing.T) {
			settings := DefaultSettings()
			settings.Broadphase = kind
			boxRestsOnGround(t, NewSpaceWithSettings(settings))
		})
	}
}

func boxRestsOnGround(t *testing.T, space *Space) {
	t.Helper()
	space.Gravity = vect.Vect{0, -10}

	ground := NewBodyStatic()
	groundBox, err := NewBox(vect.Vect{0, -1}, 20, 2)
	if err != nil {
		t.Fatal(err)
	}
	ground.AddShape(groundBox)
	space.AddBody(ground)

	box, err := NewBox(vect.Vector_Zero, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	box.SetElasticity(0)
	body, err := NewBody(1, box.Moment(1))
	if err != nil {
		t.Fatal(err)
	}
	body.SetPosition(vect.Vect{0, 2})
	body.AddShape(box)
	space.AddBody(body)

	for i := 0; i < 600; i++ {
		space.Step(step)
	}

	if y := body.Position().Y; y < 0.4 || y > 0.6 {
		t.Errorf("box came to rest at y = %v, want about 0.5.", y)
	}
	if a := vect.FAbs(body.Angle()); a > 0.05 {
		t.Errorf("box tipped over to angle %v.", body.Angle())
	}
}

func TestBodiesFallAsleep(t *testing.T) {
	space := NewSpace()
	body := newTestBody(t, vect.Vector_Zero)
	space.AddBody(body)

	for i := 0; i < 40; i++ {
		space.Step(step)
	}
	if !body.IsSleeping() {
		t.Errorf("resting body is still awake after %d steps.", 40)
	}

	body.Activate()
	if body.IsSleeping() {
		t.Errorf("Activate did not wake the body.")
	}
}

func TestMovingKinematicPreventsSleep(t *testing.T) {
	space := NewSpace()
	body := newTestBody(t, vect.Vector_Zero)
	space.AddBody(body)

	platform := NewBodyKinematic()
	platform.SetPosition(vect.Vect{100, 100})
	platform.SetVelocity(vect.Vect{1, 0})
	space.AddBody(platform)

	for i := 0; i < 40; i++ {
		space.Step(step)
	}
	if body.IsSleeping() {
		t.Errorf("body fell asleep while a kinematic body was moving.")
	}
	if x := platform.Position().X; !(x > 100) {
		t.Errorf("kinematic body did not move, x = %v.", x)
	}
}

func TestContactWakesSleepingBody(t *testing.T) {
	space := NewSpace()

	sleeper := newTestBody(t, vect.Vector_Zero)
	sleeper.AddShape(NewCircle(vect.Vector_Zero, 1))
	space.AddBody(sleeper)

	mover := newTestBody(t, vect.Vect{1.5, 0})
	mover.AddShape(NewCircle(vect.Vector_Zero, 1))
	space.AddBody(mover)

	sleeper.Sleep()
	space.Step(step)

	if sleeper.IsSleeping() {
		t.Errorf("touching body did not wake the sleeper.")
	}
	if len(space.Arbiters) != 1 {
		t.Errorf("got %d arbiters, want 1.", len(space.Arbiters))
	}
}

func TestCollisionFiltering(t *testing.T) {
	space := NewSpace()

	a := newTestBody(t, vect.Vector_Zero)
	a.AddShape(NewCircle(vect.Vector_Zero, 1))
	space.AddBody(a)

	b := newTestBody(t, vect.Vect{1, 0})
	b.AddShape(NewCircle(vect.Vector_Zero, 1))
	space.AddBody(b)

	b.Category = 0x0002
	a.Mask = 0x0001
	space.Step(step)
	if space.NumContacts != 0 {
		t.Errorf("masked bodies made %d contacts, want 0.", space.NumContacts)
	}

	a.Mask = 0xFFFF
	joint, err := NewRevoluteJoint(a, b, vect.Vect{0.5, 0})
	if err != nil {
		t.Fatal(err)
	}
	space.AddJoint(joint)
	space.Step(step)
	if space.NumContacts != 0 {
		t.Errorf("jointed bodies made %d contacts, want 0.", space.NumContacts)
	}

	joint.CollideConnected = true
	space.Step(step)
	if space.NumContacts == 0 {
		t.Errorf("CollideConnected bodies made no contacts.")
	}
}

func TestBreakableJoint(t *testing.T) {
	tests := []struct {
		maxForce vect.Float
		broken   bool
	}{
		{1, true},
		{100, false},
	}

	for _, test := range tests {
		space := NewSpace()
		space.Gravity = vect.Vect{0, -10}

		ground := NewBodyStatic()
		space.AddBody(ground)
		body := newTestBody(t, vect.Vector_Zero)
		space.AddBody(body)

		joint, err := NewWeldJoint(ground, body, vect.Vector_Zero)
		if err != nil {
			t.Fatal(err)
		}
		joint.Breakable = true
		joint.MaxForce = test.maxForce
		space.AddJoint(joint)

		space.Step(step)

		if broken := len(space.Joints) == 0; broken != test.broken {
			t.Errorf("MaxForce %v: broken = %v, want %v.", test.maxForce, broken, test.broken)
		}
		if test.broken && (len(body.joints) != 0 || len(ground.joints) != 0) {
			t.Errorf("broken joint is still attached to its bodies.")
		}
	}
}

func TestAddRemove(t *testing.T) {
	space := NewSpace()
	ground := NewBodyStatic()
	ground.AddShape(NewSegment(vect.Vect{-10, 0}, vect.Vect{10, 0}, 0))
	body := newTestBody(t, vect.Vector_Zero)
	body.AddShape(NewCircle(vect.Vector_Zero, 1))
	space.AddBody(ground)
	space.AddBody(body)

	if _, err := space.AddBody(body); !errors.Is(err, ErrBodyInSpace) {
		t.Errorf("AddBody twice: error = %v, want %v.", err, ErrBodyInSpace)
	}

	joint, _ := NewWeldJoint(ground, body, vect.Vector_Zero)
	space.AddJoint(joint)
	if _, err := space.AddJoint(joint); !errors.Is(err, ErrJointInSpace) {
		t.Errorf("AddJoint twice: error = %v, want %v.", err, ErrJointInSpace)
	}

	if err := space.RemoveBody(body); err != nil {
		t.Fatal(err)
	}
	if len(space.Bodies) != 1 || len(space.Joints) != 0 {
		t.Errorf("after RemoveBody: %d bodies and %d joints, want 1 and 0.", len(space.Bodies), len(space.Joints))
	}
	if n := space.index.Count(); n != 1 {
		t.Errorf("after RemoveBody: %d shapes indexed, want 1.", n)
	}
	if err := space.RemoveBody(body); !errors.Is(err, ErrNotInSpace) {
		t.Errorf("RemoveBody twice: error = %v, want %v.", err, ErrNotInSpace)
	}
}

func TestPointQuery(t *testing.T) {
	space := NewSpace()
	body := NewBodyStatic()
	circle := NewCircle(vect.Vector_Zero, 1)
	body.AddShape(circle)
	box, _ := NewBox(vect.Vect{5, 0}, 2, 2)
	body.AddShape(box)
	space.AddBody(body)

	tests := []struct {
		p    vect.Vect
		want *Shape
	}{
		{vect.Vect{0.5, 0}, circle},
		{vect.Vect{0.8, 0.8}, nil},
		{vect.Vect{5.5, -0.5}, box},
		{vect.Vect{2, 0}, nil},
	}

	for _, test := range tests {
		shapes := space.PointQuery(test.p)
		if test.want == nil {
			if len(shapes) != 0 {
				t.Errorf("PointQuery(%v) = %d shapes, want 0.", test.p, len(shapes))
			}
			continue
		}
		if len(shapes) != 1 || shapes[0] != test.want {
			t.Errorf("PointQuery(%v) = %v, want [%v].", test.p, shapes, test.want.ShapeType())
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	space := NewSpace()
	body := newTestBody(t, vect.Vect{3, 4})
	body.AddShape(NewCircle(vect.Vector_Zero, 2))
	space.AddBody(body)
	ground := NewBodyStatic()
	space.AddBody(ground)
	joint, _ := NewDistanceJoint(ground, body, vect.Vector_Zero, body.Position())
	space.AddJoint(joint)

	data, err := space.MarshalSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}

	if len(snap.Bodies) != 2 || len(snap.Joints) != 1 {
		t.Fatalf("snapshot has %d bodies and %d joints, want 2 and 1.", len(snap.Bodies), len(snap.Joints))
	}
	got := snap.Bodies[0]
	if !vect.Equals(got.Transform.Position, vect.Vect{3, 4}) {
		t.Errorf("snapshot position = %v, want (3,4).", got.Transform.Position)
	}
	if got.Type != "Dynamic" || len(got.Shapes) != 1 || got.Shapes[0].Radius != 2 {
		t.Errorf("snapshot body = %+v", got)
	}
	if snap.Joints[0].Kind != "Distance" {
		t.Errorf("snapshot joint kind = %q, want Distance.", snap.Joints[0].Kind)
	}

	if _, err := UnmarshalSnapshot([]byte("{")); err == nil {
		t.Errorf("UnmarshalSnapshot accepted truncated JSON.")
	}
}
