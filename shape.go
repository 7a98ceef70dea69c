package phys2d

import (
	"github.com/vova616/phys2d/transform"
	"github.com/vova616/phys2d/vect"
)

type Shape struct {
	DefaultHash
	ShapeClass

	// The rigid body this collision shape is attached to.
	Body *Body

	// The bounding box as of the last Update.
	BB AABB

	// Sensor shapes are reported by queries but never generate contacts.
	IsSensor bool

	// Coefficient of restitution.
	e vect.Float
	// Coefficient of friction.
	u vect.Float

	UserData interface{}

	space *Space

	// body stamp the transformed data was computed at.
	stamp  uint64
	cached bool

	// last SpatialIndex query that visited the shape.
	queryStamp uint64
}

func newShape() *Shape {
	return &Shape{e: 0.5, u: 0.5}
}

func (shape *Shape) SetFriction(friction vect.Float) {
	shape.u = friction
}

func (shape *Shape) SetElasticity(e vect.Float) {
	shape.e = e
}

func (shape *Shape) Friction() vect.Float {
	return shape.u
}

func (shape *Shape) Elasticity() vect.Float {
	return shape.e
}

func (shape *Shape) Shape() *Shape {
	return shape
}

func (shape *Shape) AABB() AABB {
	shape.ensureFresh()
	return shape.BB
}

func (shape *Shape) Clone() *Shape {
	clone := *shape
	cc := &clone
	cc.space = nil
	cc.DefaultHash.Reset()
	cc.Body = nil
	cc.cached = false
	cc.ShapeClass = cc.ShapeClass.Clone(cc)
	return cc
}

func (shape *Shape) transform() transform.Transform {
	if shape.Body == nil {
		return transform.NewTransform(vect.Vector_Zero, 0)
	}
	return transform.Transform{Position: shape.Body.p, Rotation: shape.Body.rot}
}

// Update recomputes the transformed geometry and bounding box from the
// local geometry and the body transform.
func (shape *Shape) Update() {
	shape.BB = shape.ShapeClass.update(shape.transform())
	shape.cached = true
	if shape.Body != nil {
		shape.stamp = shape.Body.stamp
	}
}

// Invalidate marks the transformed data stale. Call it after editing the
// exported local geometry fields directly.
func (shape *Shape) Invalidate() {
	shape.cached = false
}

func (shape *Shape) stale() bool {
	return !shape.cached || (shape.Body != nil && shape.stamp != shape.Body.stamp)
}

func (shape *Shape) ensureFresh() {
	if shape.stale() {
		shape.Update()
	}
}
