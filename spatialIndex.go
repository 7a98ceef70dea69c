package phys2d

import (
	"math"

	"github.com/vova616/phys2d/vect"
)

// Shapes spanning more cells than this skip the grid and are tested
// against everything.
const maxCellsPerShape = 256

type cellKey struct {
	X, Y int
}

// SpatialIndex is a uniform grid broadphase over an unbounded world.
// Shapes are filed under every cell their bounding box overlaps, and
// Reindex refiles all of them.
type SpatialIndex struct {
	cellSize    vect.Float
	invCellSize vect.Float

	shapes []*Shape

	cells map[cellKey][]*Shape
	// occupied cells in insertion order, so iteration is deterministic.
	order []cellKey
	// shapes too large for the grid.
	large []*Shape

	queryStamp uint64
	seen       map[HashPair]struct{}
}

func NewSpatialIndex(cellSize vect.Float) *SpatialIndex {
	if !(cellSize > 0) {
		cellSize = 64
	}
	return &SpatialIndex{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		cells:       make(map[cellKey][]*Shape),
		seen:        make(map[HashPair]struct{}),
	}
}

func (g *SpatialIndex) Count() int {
	return len(g.shapes)
}

// Clear removes all shapes.
func (g *SpatialIndex) Clear() {
	g.shapes = g.shapes[:0]
	g.clearCells()
}

// clearCells empties the grid, keeping the cell slices of the last step
// for reuse.
func (g *SpatialIndex) clearCells() {
	for k, items := range g.cells {
		// cells left empty for a whole step are dropped.
		if len(items) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = items[:0]
	}
	g.order = g.order[:0]
	g.large = g.large[:0]
}

func (g *SpatialIndex) cellRange(bb AABB) (lo, hi cellKey) {
	lo = cellKey{g.toCell(bb.Lower.X), g.toCell(bb.Lower.Y)}
	hi = cellKey{g.toCell(bb.Upper.X), g.toCell(bb.Upper.Y)}
	return
}

func (g *SpatialIndex) toCell(v vect.Float) int {
	return int(math.Floor(float64(v * g.invCellSize)))
}

// Insert adds the shape under its current bounding box.
func (g *SpatialIndex) Insert(shape *Shape) {
	g.shapes = append(g.shapes, shape)
	g.file(shape)
}

func (g *SpatialIndex) Remove(shape *Shape) {
	for i, s := range g.shapes {
		if s == shape {
			g.shapes = append(g.shapes[:i], g.shapes[i+1:]...)
			g.Reindex()
			return
		}
	}
}

// Reindex refiles every shape under its current bounding box.
func (g *SpatialIndex) Reindex() {
	g.clearCells()
	for _, shape := range g.shapes {
		g.file(shape)
	}
}

func (g *SpatialIndex) file(shape *Shape) {
	bb := shape.AABB()
	if !bb.Valid() {
		g.large = append(g.large, shape)
		return
	}

	lo, hi := g.cellRange(bb)
	if (hi.X-lo.X+1)*(hi.Y-lo.Y+1) > maxCellsPerShape {
		g.large = append(g.large, shape)
		return
	}

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			k := cellKey{x, y}
			if len(g.cells[k]) == 0 {
				g.order = append(g.order, k)
			}
			g.cells[k] = append(g.cells[k], shape)
		}
	}
}

// Query calls fn once for each shape whose bounding box overlaps bb.
// Returning true from fn stops the query.
func (g *SpatialIndex) Query(bb AABB, fn func(shape *Shape) bool) {
	g.queryStamp++
	stamp := g.queryStamp

	visit := func(shape *Shape) bool {
		if shape.queryStamp == stamp {
			return false
		}
		shape.queryStamp = stamp
		if !TestOverlap(shape.BB, bb) {
			return false
		}
		return fn(shape)
	}

	for _, shape := range g.large {
		if visit(shape) {
			return
		}
	}

	lo, hi := g.cellRange(bb)
	if (hi.X-lo.X+1)*(hi.Y-lo.Y+1) > maxCellsPerShape {
		// the box covers more cells than are worth walking.
		for _, k := range g.order {
			for _, shape := range g.cells[k] {
				if visit(shape) {
					return
				}
			}
		}
		return
	}

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			for _, shape := range g.cells[cellKey{x, y}] {
				if visit(shape) {
					return
				}
			}
		}
	}
}

// Pairs calls fn once for every pair of shapes with overlapping
// bounding boxes. The pair is in HashPair order.
func (g *SpatialIndex) Pairs(fn func(a, b *Shape)) {
	clear(g.seen)

	report := func(a, b *Shape) {
		if a == b || !TestOverlap(a.BB, b.BB) {
			return
		}
		pair := newPair(a, b)
		if _, ok := g.seen[pair]; ok {
			return
		}
		g.seen[pair] = struct{}{}
		fn(pair.A, pair.B)
	}

	for i, a := range g.large {
		for _, b := range g.large[i+1:] {
			report(a, b)
		}
		for _, k := range g.order {
			for _, b := range g.cells[k] {
				report(a, b)
			}
		}
	}

	for _, k := range g.order {
		items := g.cells[k]
		for i, a := range items {
			for _, b := range items[i+1:] {
				report(a, b)
			}
		}
	}
}
