package phys2d

import (
	"github.com/vova616/phys2d/transform"
	"github.com/vova616/phys2d/vect"
)

// A capsule: the set of points within Radius of the line from A to B.
type SegmentShape struct {
	Shape *Shape
	// start/end points of the segment. Use SetEndpoints to change them.
	A, B vect.Vect
	// radius of the segment.
	Radius vect.Float

	// local normal. Do not touch!
	N vect.Vect
	// transformed normal. Do not touch!
	Tn vect.Vect
	// transformed start/end points. Do not touch!
	Ta, Tb vect.Vect
}

// Creates a new SegmentShape with the given points and radius.
func NewSegment(a, b vect.Vect, r vect.Float) *Shape {
	shape := newShape()
	seg := &SegmentShape{
		A:      a,
		B:      b,
		Radius: r,
		Shape:  shape,
	}
	shape.ShapeClass = seg
	return shape
}

// Returns ShapeType_Segment. Needed to implemet the ShapeClass interface.
func (segment *SegmentShape) ShapeType() ShapeType {
	return ShapeType_Segment
}

func (segment *SegmentShape) SetEndpoints(a, b vect.Vect) {
	segment.A = a
	segment.B = b
	segment.Shape.Invalidate()
}

func (segment *SegmentShape) SetRadius(r vect.Float) {
	segment.Radius = r
	segment.Shape.Invalidate()
}

func (segment *SegmentShape) Moment(mass vect.Float) vect.Float {
	offset := vect.Mult(vect.Add(segment.A, segment.B), 0.5)

	return mass * (vect.DistSqr(segment.B, segment.A)/12.0 + vect.LengthSqr(offset))
}

// Called to update N, Tn, Ta, Tb and the the bounding box.
func (segment *SegmentShape) update(xf transform.Transform) AABB {
	a := xf.TransformVect(segment.A)
	b := xf.TransformVect(segment.B)
	segment.Ta = a
	segment.Tb = b
	// a point segment has no direction; any unit normal works.
	segment.N = vect.Perp(vect.NormalizeOr(vect.Sub(segment.B, segment.A), vect.Vect{1, 0}))
	segment.Tn = xf.RotateVect(segment.N)

	rv := vect.Vect{segment.Radius, segment.Radius}

	min := vect.Min(a, b)
	min.Sub(rv)

	max := vect.Max(a, b)
	max.Add(rv)

	return AABB{
		min,
		max,
	}
}

func (segment *SegmentShape) Clone(s *Shape) ShapeClass {
	clone := *segment
	clone.Shape = s
	return &clone
}

// Returns true if the point lies within Radius of the transformed segment.
func (segment *SegmentShape) TestPoint(point vect.Vect) bool {
	return segmentPointDistanceSq(segment, point) <= segment.Radius*segment.Radius
}

// squared distance from p to the closest point on Ta-Tb.
func segmentPointDistanceSq(seg *SegmentShape, p vect.Vect) vect.Float {
	w := vect.Sub(p, seg.Ta)
	d := vect.Sub(seg.Tb, seg.Ta)
	proj := vect.Dot(w, d)

	if proj <= 0 {
		return vect.Dot(w, w)
	}

	vsq := vect.Dot(d, d)
	if proj >= vsq {
		return vect.Dot(w, w) - 2*proj + vsq
	}

	return vect.Dot(w, w) - proj*proj/vsq
}
