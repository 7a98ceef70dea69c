package phys2d

import (
	"sync/atomic"
)

var hashCounter = uint32(0)

// HashValue identifies shapes, bodies, joints and contact features.
type HashValue uint32

// FeatureID packs a shape id and a vertex index into the id used to match
// contacts between steps.
func FeatureID(shapeID HashValue, index int) HashValue {
	return shapeID<<16 | HashValue(index&0xffff)
}

// HashPair is the arbiter cache key. The shape with the lower type comes
// first; ties are broken by hash.
type HashPair struct {
	A *Shape
	B *Shape
}

func newPair(a, b *Shape) HashPair {
	if a.ShapeType() > b.ShapeType() || (a.ShapeType() == b.ShapeType() && a.Hash() > b.Hash()) {
		return HashPair{b, a}
	}
	return HashPair{a, b}
}

type DefaultHash struct {
	hash HashValue
}

// Hash returns the id, assigning a fresh one on first use.
func (h *DefaultHash) Hash() HashValue {
	if h.hash == 0 {
		h.hash = HashValue(atomic.AddUint32(&hashCounter, 1))
		if h.hash == 0 {
			panic("Hash overflowed")
		}
	}
	return h.hash
}

func (h *DefaultHash) Reset() {
	h.hash = 0
}
