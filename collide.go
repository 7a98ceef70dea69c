package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

type collisionHandler func(list *ContactList, sA, sB *Shape) int

// Indexed by ShapeType with the lower type first. Entries below the
// diagonal are unused since Collide orders the pair.
var collisionHandlers = [numShapes][numShapes]collisionHandler{
	ShapeType_Circle: {
		ShapeType_Circle:  circle2circle,
		ShapeType_Segment: circle2segment,
		ShapeType_Polygon: circle2polygon,
	},
	ShapeType_Segment: {
		ShapeType_Segment: segment2segment,
		ShapeType_Polygon: segment2polygon,
	},
	ShapeType_Polygon: {
		ShapeType_Polygon: polygon2polygon,
	},
}

// Collide appends the contacts between sA and sB to list and returns how
// many were added. Normals point from sA into sB whatever the argument order.
// Stale transformed data on either shape is refreshed first.
func Collide(sA, sB *Shape, list *ContactList) int {
	sA.ensureFresh()
	sB.ensureFresh()

	swapped := false
	if sA.ShapeType() > sB.ShapeType() {
		sA, sB = sB, sA
		swapped = true
	}

	handler := collisionHandlers[sA.ShapeType()][sB.ShapeType()]
	if handler == nil {
		Logger.Error("no collision handler", "a", sA.ShapeType(), "b", sB.ShapeType())
		return 0
	}

	start := len(*list)
	count := handler(list, sA, sB)
	if swapped {
		for i := start; i < len(*list); i++ {
			(*list)[i].Normal = vect.Neg((*list)[i].Normal)
		}
	}
	return count
}

//START COLLISION HANDLERS
func circle2circle(list *ContactList, sA, sB *Shape) int {
	csA := sA.ShapeClass.(*CircleShape)
	csB := sB.ShapeClass.(*CircleShape)
	return circle2circleQuery(csA.Tc, csB.Tc, csA.Radius, csB.Radius, list)
}

func circle2segment(list *ContactList, sA, sB *Shape) int {
	return circle2segmentFunc(list, sA.ShapeClass.(*CircleShape), sB.ShapeClass.(*SegmentShape))
}

func circle2polygon(list *ContactList, sA, sB *Shape) int {
	return circle2polyFunc(list, sA.ShapeClass.(*CircleShape), sB.ShapeClass.(*PolygonShape))
}

func segment2segment(list *ContactList, sA, sB *Shape) int {
	return seg2segFunc(list, sA.ShapeClass.(*SegmentShape), sB.ShapeClass.(*SegmentShape))
}

func segment2polygon(list *ContactList, sA, sB *Shape) int {
	return seg2polyFunc(list, sA.ShapeClass.(*SegmentShape), sB.ShapeClass.(*PolygonShape))
}

func polygon2polygon(list *ContactList, sA, sB *Shape) int {
	return poly2polyFunc(list, sA.ShapeClass.(*PolygonShape), sB.ShapeClass.(*PolygonShape))
}

//END COLLISION HANDLERS

func circle2circleQuery(p1, p2 vect.Vect, r1, r2 vect.Float, list *ContactList) int {
	minDist := r1 + r2

	delta := vect.Sub(p2, p1)
	distSqr := delta.LengthSqr()

	if distSqr >= minDist*minDist {
		return 0
	}

	// concentric circles push apart along +x.
	norm, dist, ok := vect.SafeNormalize(delta)
	if !ok {
		norm = vect.Vect{1, 0}
	}

	pos := vect.MultAdd(p1, norm, 0.5*(dist+r1-r2))
	list.add(pos, norm, dist-minDist, 0)

	return 1
}

func circle2segmentFunc(list *ContactList, circle *CircleShape, segment *SegmentShape) int {
	rsum := circle.Radius + segment.Radius

	//Calculate normal distance from segment
	dn := vect.Dot(circle.Tc, segment.Tn) - vect.Dot(segment.Ta, segment.Tn)
	dist := vect.FAbs(dn) - rsum
	if dist >= 0.0 {
		return 0
	}

	//Calculate tangential distance along segment
	dt := vect.Cross(circle.Tc, segment.Tn)
	dtMin := vect.Cross(segment.Ta, segment.Tn)
	dtMax := vect.Cross(segment.Tb, segment.Tn)

	if dt < dtMin {
		if dt < dtMin-rsum {
			return 0
		}
		return circle2circleQuery(circle.Tc, segment.Ta, circle.Radius, segment.Radius, list)
	} else if dt > dtMax {
		if dt > dtMax+rsum {
			return 0
		}
		return circle2circleQuery(circle.Tc, segment.Tb, circle.Radius, segment.Radius, list)
	}

	// n points from the segment towards the circle.
	n := segment.Tn
	if dn <= 0 {
		n = vect.Neg(n)
	}

	list.add(vect.MultAdd(circle.Tc, n, -(circle.Radius+dist*0.5)), vect.Neg(n), dist, 0)
	return 1
}

func circle2polyFunc(list *ContactList, circle *CircleShape, poly *PolygonShape) int {
	axes := poly.TAxes

	mini := 0
	min := vect.Dot(axes[0].N, circle.Tc) - axes[0].D - circle.Radius
	for i, axis := range axes {
		dist := vect.Dot(axis.N, circle.Tc) - axis.D - circle.Radius
		if dist >= 0.0 {
			return 0
		} else if dist > min {
			min = dist
			mini = i
		}
	}

	n := axes[mini].N
	a := poly.TVerts[mini]
	b := poly.TVerts[(mini+1)%poly.NumVerts]
	dta := vect.Cross(a, n)
	dtb := vect.Cross(b, n)
	dt := vect.Cross(circle.Tc, n)

	if dt > dta {
		return circle2circleQuery(circle.Tc, a, circle.Radius, 0.0, list)
	} else if dt < dtb {
		return circle2circleQuery(circle.Tc, b, circle.Radius, 0.0, list)
	}

	list.add(
		vect.MultAdd(circle.Tc, n, -(circle.Radius+min/2.0)),
		vect.Neg(n),
		min,
		0,
	)
	return 1
}

// Tests the four endpoint-to-segment distances and collides the closest
// pair as circles. Crossing segments whose endpoints are all far from the
// other segment are missed.
func seg2segFunc(list *ContactList, seg1, seg2 *SegmentShape) int {
	d := [4]vect.Float{
		segmentPointDistanceSq(seg1, seg2.Ta),
		segmentPointDistanceSq(seg1, seg2.Tb),
		segmentPointDistanceSq(seg2, seg1.Ta),
		segmentPointDistanceSq(seg2, seg1.Tb),
	}

	idx1 := 1
	if d[0] < d[1] {
		idx1 = 0
	}
	idx2 := 3
	if d[2] < d[3] {
		idx2 = 2
	}
	idxm := idx2
	if d[idx1] < d[idx2] {
		idxm = idx1
	}

	u := vect.Sub(seg1.Tb, seg1.Ta)
	v := vect.Sub(seg2.Tb, seg2.Ta)

	var s, t vect.Float
	switch idxm {
	case 0:
		s = projectClamped(vect.Sub(seg2.Ta, seg1.Ta), u)
		t = 0
	case 1:
		s = projectClamped(vect.Sub(seg2.Tb, seg1.Ta), u)
		t = 1
	case 2:
		s = 0
		t = projectClamped(vect.Sub(seg1.Ta, seg2.Ta), v)
	case 3:
		s = 1
		t = projectClamped(vect.Sub(seg1.Tb, seg2.Ta), v)
	}

	minp1 := vect.MultAdd(seg1.Ta, u, s)
	minp2 := vect.MultAdd(seg2.Ta, v, t)
	return circle2circleQuery(minp1, minp2, seg1.Radius, seg2.Radius, list)
}

// returns the parameter of w projected on d, clamped to [0, 1].
// A zero length d maps everything to 0.
func projectClamped(w, d vect.Vect) vect.Float {
	dd := vect.Dot(d, d)
	if dd == 0 {
		return 0
	}
	return vect.FClamp(vect.Dot(w, d)/dd, 0, 1)
}

func poly2polyFunc(list *ContactList, poly1, poly2 *PolygonShape) int {
	min1, mini1 := findMSA(poly2, poly1.TAxes)
	if mini1 == -1 {
		return 0
	}

	min2, mini2 := findMSA(poly1, poly2.TAxes)
	if mini2 == -1 {
		return 0
	}

	// There is overlap, find the penetrating verts
	if min1 > min2 {
		return findVerts(list, poly1, poly2, poly1.TAxes[mini1].N, min1)
	}
	return findVerts(list, poly1, poly2, vect.Neg(poly2.TAxes[mini2].N), min2)
}

// Returns the least penetrating axis of axes against poly, or index -1 if
// any axis separates them.
func findMSA(poly *PolygonShape, axes []PolygonAxis) (min_out vect.Float, min_index int) {
	min := poly.ValueOnAxis(axes[0].N, axes[0].D)
	if min >= 0.0 {
		return 0, -1
	}

	for i := 1; i < len(axes); i++ {
		dist := poly.ValueOnAxis(axes[i].N, axes[i].D)
		if dist >= 0.0 {
			return 0, -1
		} else if dist > min {
			min = dist
			min_index = i
		}
	}

	return min, min_index
}

func findVerts(list *ContactList, poly1, poly2 *PolygonShape, n vect.Vect, dist vect.Float) int {
	num := 0

	for i, v := range poly1.TVerts {
		if poly2.ContainsVert(v) {
			list.add(v, n, dist, FeatureID(poly1.Shape.Hash(), i))
			num++
		}
	}

	for i, v := range poly2.TVerts {
		if poly1.ContainsVert(v) {
			list.add(v, n, dist, FeatureID(poly2.Shape.Hash(), i))
			num++
		}
	}

	if num > 0 {
		return num
	}
	return findVertsFallback(list, poly1, poly2, n, dist)
}

func findVertsFallback(list *ContactList, poly1, poly2 *PolygonShape, n vect.Vect, dist vect.Float) int {
	num := 0

	for i, v := range poly1.TVerts {
		if poly2.ContainsVertPartial(v, vect.Neg(n)) {
			list.add(v, n, dist, FeatureID(poly1.Shape.Hash(), i))
			num++
		}
	}

	for i, v := range poly2.TVerts {
		if poly1.ContainsVertPartial(v, n) {
			list.add(v, n, dist, FeatureID(poly2.Shape.Hash(), i))
			num++
		}
	}

	return num
}

func segValueOnAxis(seg *SegmentShape, n vect.Vect, d vect.Float) vect.Float {
	a := vect.Dot(n, seg.Ta) - seg.Radius
	b := vect.Dot(n, seg.Tb) - seg.Radius
	return vect.FMin(a, b) - d
}

// Adds the polygon vertices that lie behind the segment within its span.
func findPointsBehindSeg(list *ContactList, seg *SegmentShape, poly *PolygonShape, pDist, coef vect.Float) int {
	dta := vect.Cross(seg.Tn, seg.Ta)
	dtb := vect.Cross(seg.Tn, seg.Tb)
	n := vect.Mult(seg.Tn, coef)
	num := 0

	for i := 0; i < poly.NumVerts; i++ {
		v := poly.TVerts[i]
		if vect.Dot(v, n) < vect.Dot(seg.Tn, seg.Ta)*coef+seg.Radius {
			dt := vect.Cross(seg.Tn, v)
			if dta >= dt && dt >= dtb {
				list.add(v, n, pDist, FeatureID(poly.Shape.Hash(), i))
				num++
			}
		}
	}
	return num
}

func seg2polyFunc(list *ContactList, seg *SegmentShape, poly *PolygonShape) int {
	axes := poly.TAxes

	segD := vect.Dot(seg.Tn, seg.Ta)
	minNorm := poly.ValueOnAxis(seg.Tn, segD) - seg.Radius
	minNeg := poly.ValueOnAxis(vect.Neg(seg.Tn), -segD) - seg.Radius
	if minNeg >= 0.0 || minNorm >= 0.0 {
		return 0
	}

	mini := 0
	poly_min := segValueOnAxis(seg, axes[0].N, axes[0].D)
	if poly_min >= 0.0 {
		return 0
	}

	for i := 1; i < poly.NumVerts; i++ {
		dist := segValueOnAxis(seg, axes[i].N, axes[i].D)
		if dist >= 0.0 {
			return 0
		} else if dist > poly_min {
			poly_min = dist
			mini = i
		}
	}

	num := 0

	poly_n := vect.Neg(axes[mini].N)

	va := vect.MultAdd(seg.Ta, poly_n, seg.Radius)
	vb := vect.MultAdd(seg.Tb, poly_n, seg.Radius)
	if poly.ContainsVert(va) {
		list.add(va, poly_n, poly_min, FeatureID(seg.Shape.Hash(), 0))
		num++
	}
	if poly.ContainsVert(vb) {
		list.add(vb, poly_n, poly_min, FeatureID(seg.Shape.Hash(), 1))
		num++
	}

	// tolerance for vertices lying almost exactly on the segment plane.
	poly_min -= 0.1
	if minNorm >= poly_min || minNeg >= poly_min {
		if minNorm > minNeg {
			num += findPointsBehindSeg(list, seg, poly, minNorm, 1.0)
		} else {
			num += findPointsBehindSeg(list, seg, poly, minNeg, -1.0)
		}
	}

	// If no other collision points are found, try colliding endpoints.
	if num == 0 {
		poly_a := poly.TVerts[mini]
		poly_b := poly.TVerts[(mini+1)%poly.NumVerts]

		if circle2circleQuery(seg.Ta, poly_a, seg.Radius, 0.0, list) != 0 {
			return 1
		}
		if circle2circleQuery(seg.Tb, poly_a, seg.Radius, 0.0, list) != 0 {
			return 1
		}
		if circle2circleQuery(seg.Ta, poly_b, seg.Radius, 0.0, list) != 0 {
			return 1
		}
		if circle2circleQuery(seg.Tb, poly_b, seg.Radius, 0.0, list) != 0 {
			return 1
		}
	}

	return num
}
