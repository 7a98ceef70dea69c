package phys2d

import (
	"fmt"

	"github.com/vova616/phys2d/transform"
	"github.com/vova616/phys2d/vect"
)

// A supporting line: points p with Dot(N, p) == D. N points out of the polygon.
type PolygonAxis struct {
	// The axis normal.
	N vect.Vect
	D vect.Float
}

type PolygonShape struct {
	Shape *Shape
	// The raw vertices of the polygon. Do not touch!
	// Use polygon.SetVerts() to change this.
	Verts Vertices
	// The transformed vertices. Do not touch!
	TVerts Vertices
	// The axes of the polygon. Do not touch!
	Axes []PolygonAxis
	// The transformed axes of the polygon Do not touch!
	TAxes []PolygonAxis
	// The number of vertices. Do not touch!
	NumVerts int
}

// Creates a new PolygonShape with the given vertices offset by offset.
// The vertices must be convex and counter-clockwise.
func NewPolygon(verts Vertices, offset vect.Vect) (*Shape, error) {
	shape := newShape()
	poly := &PolygonShape{Shape: shape}
	shape.ShapeClass = poly

	if err := poly.SetVerts(verts, offset); err != nil {
		return nil, err
	}
	return shape, nil
}

// Creates a w by h box polygon centered on pos.
func NewBox(pos vect.Vect, w, h vect.Float) (*Shape, error) {
	hw := vect.FAbs(w / 2.0)
	hh := vect.FAbs(h / 2.0)

	verts := Vertices{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}

	shape, err := NewPolygon(verts, pos)
	if err != nil {
		return nil, fmt.Errorf("box %vx%v: %w", w, h, err)
	}
	return shape, nil
}

// Sets the vertices offset by the offset and calculates the PolygonAxes.
func (poly *PolygonShape) SetVerts(verts Vertices, offset vect.Vect) error {
	if err := verts.ValidatePolygon(); err != nil {
		return err
	}

	numVerts := len(verts)
	oldnumVerts := len(poly.Verts)
	poly.NumVerts = numVerts

	if oldnumVerts < numVerts {
		poly.Verts = make(Vertices, numVerts)
		poly.TVerts = make(Vertices, numVerts)
		poly.Axes = make([]PolygonAxis, numVerts)
		poly.TAxes = make([]PolygonAxis, numVerts)
	} else {
		poly.Verts = poly.Verts[:numVerts]
		poly.TVerts = poly.TVerts[:numVerts]
		poly.Axes = poly.Axes[:numVerts]
		poly.TAxes = poly.TAxes[:numVerts]
	}

	for i := 0; i < numVerts; i++ {
		a := vect.Add(offset, verts[i])
		b := vect.Add(offset, verts[(i+1)%numVerts])
		// validated above, so edges have non-zero length.
		n := vect.NormalizeOr(vect.RPerp(vect.Sub(b, a)), vect.Vect{1, 0})

		poly.Verts[i] = a
		poly.Axes[i].N = n
		poly.Axes[i].D = vect.Dot(n, a)
	}

	if poly.Shape != nil {
		poly.Shape.Invalidate()
	}
	return nil
}

// Returns ShapeType_Polygon. Needed to implemet the ShapeClass interface.
func (poly *PolygonShape) ShapeType() ShapeType {
	return ShapeType_Polygon
}

func (poly *PolygonShape) Moment(mass vect.Float) vect.Float {
	var sum1, sum2 vect.Float
	for i := 0; i < poly.NumVerts; i++ {
		v1 := poly.Verts[i]
		v2 := poly.Verts[(i+1)%poly.NumVerts]

		a := vect.Cross(v2, v1)
		b := vect.Dot(v1, v1) + vect.Dot(v1, v2) + vect.Dot(v2, v2)

		sum1 += a * b
		sum2 += a
	}

	return (mass * sum1) / (6.0 * sum2)
}

// Calculates the transformed vertices and axes and the bounding box.
func (poly *PolygonShape) update(xf transform.Transform) AABB {
	for i := 0; i < poly.NumVerts; i++ {
		n := xf.RotateVect(poly.Axes[i].N)
		poly.TAxes[i].N = n
		poly.TAxes[i].D = vect.Dot(xf.Position, n) + poly.Axes[i].D
	}

	aabb := emptyAABB()
	for i := 0; i < poly.NumVerts; i++ {
		v := xf.TransformVect(poly.Verts[i])
		poly.TVerts[i] = v
		aabb = Expand(aabb, v)
	}
	return aabb
}

func (poly *PolygonShape) Clone(s *Shape) ShapeClass {
	clone := &PolygonShape{Shape: s}
	clone.Verts = append(Vertices(nil), poly.Verts...)
	clone.TVerts = append(Vertices(nil), poly.TVerts...)
	clone.Axes = append([]PolygonAxis(nil), poly.Axes...)
	clone.TAxes = append([]PolygonAxis(nil), poly.TAxes...)
	clone.NumVerts = poly.NumVerts
	return clone
}

// Returns true if the given point is located inside the polygon.
func (poly *PolygonShape) TestPoint(point vect.Vect) bool {
	return poly.ContainsVert(point)
}

func (poly *PolygonShape) ContainsVert(v vect.Vect) bool {
	for _, axis := range poly.TAxes {
		dist := vect.Dot(axis.N, v) - axis.D
		if dist > 0.0 {
			return false
		}
	}

	return true
}

// Like ContainsVert but ignores the axes facing away from n.
func (poly *PolygonShape) ContainsVertPartial(v, n vect.Vect) bool {
	for _, axis := range poly.TAxes {
		if vect.Dot(axis.N, n) < 0.0001 {
			continue
		}
		dist := vect.Dot(axis.N, v) - axis.D
		if dist > 0.0 {
			return false
		}
	}

	return true
}

// Returns the smallest signed distance of any vertex to the line Dot(n, p) == d.
func (poly *PolygonShape) ValueOnAxis(n vect.Vect, d vect.Float) vect.Float {
	verts := poly.TVerts
	min := vect.Dot(n, verts[0])

	for i := 1; i < poly.NumVerts; i++ {
		min = vect.FMin(min, vect.Dot(n, verts[i]))
	}

	return min - d
}
