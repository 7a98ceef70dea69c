package tile

import (
	"github.com/vova616/phys2d"
	"github.com/vova616/phys2d/vect"
)

// DefaultGravity is the per-frame downward acceleration of a new world.
const DefaultGravity = 0.2

// World moves circles through a tile map, one frame per Step.
type World struct {
	Gravity vect.Float
	Bounds  phys2d.AABB
	Map     *Map
	Circles []*Circle
}

// NewWorld returns a world bounded by m. m may be nil for an empty world,
// in which case Bounds must be set by the caller.
func NewWorld(m *Map) *World {
	w := &World{
		Gravity: DefaultGravity,
		Map:     m,
	}
	if m != nil {
		w.Bounds = m.Bounds()
	}
	return w
}

func (w *World) Add(c *Circle) *Circle {
	w.Circles = append(w.Circles, c)
	return c
}

func (w *World) Remove(c *Circle) bool {
	for i, other := range w.Circles {
		if other == c {
			w.Circles = append(w.Circles[:i], w.Circles[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Step() {
	for _, c := range w.Circles {
		c.WasTouching = c.Touching
		c.Touching = Touching{}

		c.Integrate(w.Gravity)
		if w.Map != nil {
			w.Map.Query(c.AABB(), func(cell *Cell) {
				c.CollideTile(cell)
			})
		}
		if c.CollideWorld {
			c.CollideWorldBounds(w.Bounds)
		}
	}
}
