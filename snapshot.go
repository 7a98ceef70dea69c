package phys2d

import (
	"encoding/json"
	"fmt"

	"github.com/vova616/phys2d/transform"
	"github.com/vova616/phys2d/vect"
)

// Snapshot is a read-only view of a space, suitable for JSON encoding.
type Snapshot struct {
	Step   uint64
	Bodies []BodySnapshot
	Joints []JointSnapshot `json:",omitempty"`
}

type BodySnapshot struct {
	ID              HashValue
	Type            string
	Transform       transform.Transform
	Velocity        vect.Vect
	AngularVelocity vect.Float
	Sleeping        bool
	Shapes          []ShapeSnapshot
}

type ShapeSnapshot struct {
	ID       HashValue
	Type     string
	Sensor   bool `json:",omitempty"`
	Lower    vect.Vect
	Upper    vect.Vect
	Radius   vect.Float  `json:",omitempty"`
	Vertices []vect.Vect `json:",omitempty"`
}

type JointSnapshot struct {
	ID           HashValue
	Kind         string
	Body1, Body2 HashValue
	Anchor1      vect.Vect
	Anchor2      vect.Vect
	Impulse      vect.Vect
	AngleImpulse vect.Float
}

func snapshotShape(shape *Shape) ShapeSnapshot {
	bb := shape.AABB()
	ss := ShapeSnapshot{
		ID:     shape.Hash(),
		Type:   shape.ShapeType().String(),
		Sensor: shape.IsSensor,
		Lower:  bb.Lower,
		Upper:  bb.Upper,
	}

	switch class := shape.ShapeClass.(type) {
	case *CircleShape:
		ss.Radius = class.Radius
		ss.Vertices = []vect.Vect{class.Tc}
	case *SegmentShape:
		ss.Radius = class.Radius
		ss.Vertices = []vect.Vect{class.Ta, class.Tb}
	case *PolygonShape:
		ss.Vertices = append([]vect.Vect(nil), class.TVerts...)
	}
	return ss
}

// Snapshot captures the bodies and joints of the space in world space.
func (space *Space) Snapshot() Snapshot {
	snap := Snapshot{
		Step:   space.stamp,
		Bodies: make([]BodySnapshot, 0, len(space.Bodies)),
	}

	for _, body := range space.Bodies {
		bs := BodySnapshot{
			ID:              body.Hash(),
			Type:            body.Type.String(),
			Transform:       body.Transform(),
			Velocity:        body.v,
			AngularVelocity: body.w,
			Sleeping:        body.IsSleeping(),
			Shapes:          make([]ShapeSnapshot, 0, len(body.Shapes)),
		}
		for _, shape := range body.Shapes {
			bs.Shapes = append(bs.Shapes, snapshotShape(shape))
		}
		snap.Bodies = append(snap.Bodies, bs)
	}

	for _, joint := range space.Joints {
		snap.Joints = append(snap.Joints, JointSnapshot{
			ID:           joint.Hash(),
			Kind:         joint.Kind.String(),
			Body1:        joint.Body1.Hash(),
			Body2:        joint.Body2.Hash(),
			Anchor1:      joint.WorldAnchor1(),
			Anchor2:      joint.WorldAnchor2(),
			Impulse:      joint.LambdaAcc.XY(),
			AngleImpulse: joint.LambdaAcc.Z,
		})
	}

	return snap
}

// MarshalSnapshot encodes the current state of the space as JSON.
func (space *Space) MarshalSnapshot() ([]byte, error) {
	data, err := json.Marshal(space.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("snapshot step %d: %w", space.stamp, err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes JSON written by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}
