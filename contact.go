package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

// Contact is one point of a narrow-phase result. Normal points from the
// first shape into the second; Depth is negative while penetrating.
type Contact struct {
	Position vect.Vect
	Normal   vect.Vect
	Depth    vect.Float
	// shapeID<<16 | vertex index, 0 for features without a vertex.
	Feature HashValue
}

// ContactList collects narrow-phase output. Collide only appends to it;
// the owner resets it between steps.
type ContactList []Contact

func (list *ContactList) add(pos, norm vect.Vect, depth vect.Float, feature HashValue) {
	*list = append(*list, Contact{pos, norm, depth, feature})
}

func (list *ContactList) Reset() {
	*list = (*list)[:0]
}
