package tile

import (
	"errors"
	"fmt"
	"math"

	"github.com/vova616/phys2d/vect"
)

// Category is the collision geometry of a tile.
type Category int

const (
	Empty Category = iota
	Full
	Deg45
	Concave
	Convex
	Deg22S
	Deg22B
	Deg67S
	Deg67B
	Half
	numCategories
)

func (c Category) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Full:
		return "Full"
	case Deg45:
		return "45Deg"
	case Concave:
		return "Concave"
	case Convex:
		return "Convex"
	case Deg22S:
		return "22DegS"
	case Deg22B:
		return "22DegB"
	case Deg67S:
		return "67DegS"
	case Deg67B:
		return "67DegB"
	case Half:
		return "Half"
	}
	return "Unknown"
}

// Tile ids. Each sloped or curved category takes four consecutive ids,
// one per orientation of its normal: (+,-), (-,-), (-,+), (+,+).
const (
	IDEmpty   = 0
	IDFull    = 1
	ID45Deg   = 2
	IDConcave = 6
	IDConvex  = 10
	ID22DegS  = 14
	ID22DegB  = 18
	ID67DegS  = 22
	ID67DegB  = 26
	// Half tiles: down, right, up, left.
	IDHalf = 30
	MaxID  = 33
)

var ErrUnknownTile = errors.New("unknown tile id")

var quadrantSigns = [4][2]vect.Float{
	{1, -1},
	{-1, -1},
	{-1, 1},
	{1, 1},
}

var halfSigns = [4][2]vect.Float{
	{0, -1},
	{-1, 0},
	{0, 1},
	{1, 0},
}

// Cell is one tile of a map. Positions use screen orientation: y grows
// downwards.
type Cell struct {
	// ID <= 0 is empty.
	ID       int
	Category Category

	// Center and half extents.
	Pos    vect.Vect
	XW, YW vect.Float

	// Orientation of the tile normal.
	SignX, SignY vect.Float
	// Unit normal of the slope, zero for tiles without one.
	SX, SY vect.Float
}

func NewCell(id int, pos vect.Vect, xw, yw vect.Float) (*Cell, error) {
	c := &Cell{Pos: pos, XW: xw, YW: yw}
	if err := c.SetID(id); err != nil {
		return nil, err
	}
	return c, nil
}

// SetID changes the tile geometry. Unknown ids leave the cell empty.
func (c *Cell) SetID(id int) error {
	c.ID = id
	c.SignX, c.SignY, c.SX, c.SY = 0, 0, 0, 0

	switch {
	case id <= IDEmpty:
		c.Category = Empty
	case id == IDFull:
		c.Category = Full
	case id < IDConcave:
		c.setSlope(Deg45, id-ID45Deg, 1, 1)
	case id < IDConvex:
		c.setSlope(Concave, id-IDConcave, 0, 0)
	case id < ID22DegS:
		c.setSlope(Convex, id-IDConvex, 0, 0)
	case id < ID22DegB:
		c.setSlope(Deg22S, id-ID22DegS, 1, 2)
	case id < ID67DegS:
		c.setSlope(Deg22B, id-ID22DegB, 1, 2)
	case id < ID67DegB:
		c.setSlope(Deg67S, id-ID67DegS, 2, 1)
	case id < IDHalf:
		c.setSlope(Deg67B, id-ID67DegB, 2, 1)
	case id <= MaxID:
		c.Category = Half
		signs := halfSigns[id-IDHalf]
		c.SignX, c.SignY = signs[0], signs[1]
		c.SX, c.SY = c.SignX, c.SignY
	default:
		c.ID = IDEmpty
		c.Category = Empty
		return fmt.Errorf("tile at %v: %w %d", c.Pos, ErrUnknownTile, id)
	}
	return nil
}

// setSlope orients the cell by quadrant and derives the unit slope normal
// from the (nx, ny) ratio. A zero ratio leaves the normal unset.
func (c *Cell) setSlope(cat Category, quadrant int, nx, ny vect.Float) {
	c.Category = cat
	signs := quadrantSigns[quadrant]
	c.SignX, c.SignY = signs[0], signs[1]

	if l := vect.Float(math.Hypot(float64(nx), float64(ny))); l > 0 {
		c.SX = c.SignX * nx / l
		c.SY = c.SignY * ny / l
	}
}

func (c *Cell) IsEmpty() bool {
	return c.ID <= IDEmpty
}

// Bounds returns the tile rectangle as lower and upper corners.
func (c *Cell) Bounds() (lower, upper vect.Vect) {
	return vect.Vect{X: c.Pos.X - c.XW, Y: c.Pos.Y - c.YW}, vect.Vect{X: c.Pos.X + c.XW, Y: c.Pos.Y + c.YW}
}
