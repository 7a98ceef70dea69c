package phys2d

import (
	"errors"
	"fmt"

	"github.com/vova616/phys2d/vect"
)

var (
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	ErrNotConvexCCW   = errors.New("polygon vertices must be convex and wound counter-clockwise")
)

// Wrapper around []vect.Vect.
type Vertices []vect.Vect

// Checks if verts forms a valid polygon.
// The vertices must be convex and wound counter-clockwise.
func (verts Vertices) ValidatePolygon() error {
	numVerts := len(verts)
	if numVerts < 3 {
		return fmt.Errorf("%w: got %d", ErrTooFewVertices, numVerts)
	}
	for i := 0; i < numVerts; i++ {
		a := verts[i]
		b := verts[(i+1)%numVerts]
		c := verts[(i+2)%numVerts]

		if vect.Cross(vect.Sub(b, a), vect.Sub(c, b)) <= 0.0 {
			return fmt.Errorf("%w: corner %d at %v", ErrNotConvexCCW, (i+1)%numVerts, b)
		}
	}

	return nil
}

// Centroid returns the area weighted center of the polygon.
func (verts Vertices) Centroid() vect.Vect {
	var sum vect.Vect
	var area vect.Float

	for i, a := range verts {
		b := verts[(i+1)%len(verts)]
		c := vect.Cross(a, b)
		area += c
		sum.Add(vect.Mult(vect.Add(a, b), c))
	}

	if area == 0 {
		return vect.Vector_Zero
	}
	return vect.Mult(sum, 1/(3*area))
}
