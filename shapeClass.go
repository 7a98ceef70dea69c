package phys2d

import (
	"github.com/vova616/phys2d/transform"
	"github.com/vova616/phys2d/vect"
)

type ShapeType int

const (
	ShapeType_Circle ShapeType = iota
	ShapeType_Segment
	ShapeType_Polygon
	numShapes
)

func (st ShapeType) String() string {
	switch st {
	case ShapeType_Circle:
		return "Circle"
	case ShapeType_Segment:
		return "Segment"
	case ShapeType_Polygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

type ShapeClass interface {
	ShapeType() ShapeType
	// Update the shape with the new transform and compute the AABB.
	update(xf transform.Transform) AABB
	// Returns if the given point is located inside the shape.
	TestPoint(point vect.Vect) bool

	Moment(mass vect.Float) vect.Float

	Clone(s *Shape) ShapeClass
}

// Returns shape.ShapeClass as CircleShape or nil.
func (shape *Shape) GetAsCircle() *CircleShape {
	if circle, ok := shape.ShapeClass.(*CircleShape); ok {
		return circle
	}

	return nil
}

// Returns shape.ShapeClass as PolygonShape or nil.
func (shape *Shape) GetAsPolygon() *PolygonShape {
	if poly, ok := shape.ShapeClass.(*PolygonShape); ok {
		return poly
	}

	return nil
}

// Returns shape.ShapeClass as SegmentShape or nil.
func (shape *Shape) GetAsSegment() *SegmentShape {
	if seg, ok := shape.ShapeClass.(*SegmentShape); ok {
		return seg
	}

	return nil
}
