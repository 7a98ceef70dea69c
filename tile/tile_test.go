package tile

import (
	"errors"
	"math"
	"testing"

	"github.com/vova616/phys2d"
	"github.com/vova616/phys2d/vect"
)

const epsilon = 1e-9

func feq(a, b vect.Float) bool {
	return vect.FAbs(a-b) < epsilon
}

func veq(a, b vect.Vect) bool {
	return feq(a.X, b.X) && feq(a.Y, b.Y)
}

func newCell(t *testing.T, id int) *Cell {
	t.Helper()
	cell, err := NewCell(id, vect.Vector_Zero, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	return cell
}

func TestCellIDs(t *testing.T) {
	s2, s5 := vect.Float(1/math.Sqrt2), vect.Float(math.Sqrt(5))

	tests := []struct {
		id           int
		category     Category
		signx, signy vect.Float
		sx, sy       vect.Float
	}{
		{0, Empty, 0, 0, 0, 0},
		{-3, Empty, 0, 0, 0, 0},
		{1, Full, 0, 0, 0, 0},
		{2, Deg45, 1, -1, s2, -s2},
		{5, Deg45, 1, 1, s2, s2},
		{7, Concave, -1, -1, 0, 0},
		{12, Convex, -1, 1, 0, 0},
		{14, Deg22S, 1, -1, 1 / s5, -2 / s5},
		{19, Deg22B, -1, -1, -1 / s5, -2 / s5},
		{24, Deg67S, -1, 1, -2 / s5, 1 / s5},
		{29, Deg67B, 1, 1, 2 / s5, 1 / s5},
		{30, Half, 0, -1, 0, -1},
		{31, Half, -1, 0, -1, 0},
		{32, Half, 0, 1, 0, 1},
		{33, Half, 1, 0, 1, 0},
	}

	for _, test := range tests {
		cell := newCell(t, test.id)
		if cell.Category != test.category {
			t.Errorf("NewCell(%d).Category = %v, want %v.", test.id, cell.Category, test.category)
		}
		if cell.SignX != test.signx || cell.SignY != test.signy {
			t.Errorf("NewCell(%d) signs = (%v, %v), want (%v, %v).", test.id, cell.SignX, cell.SignY, test.signx, test.signy)
		}
		if !feq(cell.SX, test.sx) || !feq(cell.SY, test.sy) {
			t.Errorf("NewCell(%d) normal = (%v, %v), want (%v, %v).", test.id, cell.SX, cell.SY, test.sx, test.sy)
		}
	}

	if _, err := NewCell(MaxID+1, vect.Vector_Zero, 8, 8); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("NewCell(%d) error = %v, want %v.", MaxID+1, err, ErrUnknownTile)
	}
}

func TestFullTileCenter(t *testing.T) {
	cell := newCell(t, IDFull)
	c := NewCircle(vect.Vector_Zero, 1)

	if res := c.CollideTile(cell); res != Axis {
		t.Errorf("CollideTile = %v, want %v.", res, Axis)
	}
	// pushed by xw + r along one axis only
	if !veq(c.Pos, vect.Vect{X: 0, Y: 9}) {
		t.Errorf("Pos = %v, want (0,9).", c.Pos)
	}
}

func TestEmptyTile(t *testing.T) {
	cell := newCell(t, IDEmpty)
	c := NewCircle(vect.Vector_Zero, 1)

	if res := c.CollideTile(cell); res != None {
		t.Errorf("CollideTile on id 0 = %v, want %v.", res, None)
	}
	if c.Pos != vect.Vector_Zero {
		t.Errorf("empty tile moved the circle to %v.", c.Pos)
	}
}

func TestFullTileFace(t *testing.T) {
	cell := newCell(t, IDFull)
	// above the tile, falling one unit per frame
	c := NewCircle(vect.Vect{X: 0, Y: -8.5}, 1)
	c.OldPos = vect.Vect{X: 0, Y: -9.5}

	if res := c.CollideTile(cell); res != Axis {
		t.Errorf("CollideTile = %v, want %v.", res, Axis)
	}
	if !veq(c.Pos, vect.Vect{X: 0, Y: -9}) {
		t.Errorf("Pos = %v, want (0,-9).", c.Pos)
	}
	if !c.Touching.Down {
		t.Errorf("Touching = %+v, want Down.", c.Touching)
	}
	if v := c.Pos.Y - c.OldPos.Y; !feq(v, -DefaultMaterial.Bounce) {
		t.Errorf("velocity after bounce = %v, want %v.", v, -DefaultMaterial.Bounce)
	}
}

func TestSlopedTiles(t *testing.T) {
	s2 := vect.Float(1 / math.Sqrt2)

	t.Run("45Deg", func(t *testing.T) {
		c := NewCircle(vect.Vector_Zero, 1)
		if res := c.CollideTile(newCell(t, ID45Deg)); res != Other {
			t.Errorf("CollideTile = %v, want %v.", res, Other)
		}
		if !veq(c.Pos, vect.Vect{X: s2, Y: -s2}) {
			t.Errorf("Pos = %v, want (%v,%v).", c.Pos, s2, -s2)
		}
	})

	t.Run("Convex", func(t *testing.T) {
		cell := newCell(t, IDConvex)
		c := NewCircle(vect.Vector_Zero, 1)
		if res := c.CollideTile(cell); res != Other {
			t.Errorf("CollideTile = %v, want %v.", res, Other)
		}
		// resting on the quarter circle of radius 2*xw
		corner := vect.Vect{X: -8, Y: 8}
		if d := vect.Dist(c.Pos, corner); !feq(d, 17) {
			t.Errorf("distance to the convex corner = %v, want 17.", d)
		}
	})

	t.Run("Half", func(t *testing.T) {
		cell := newCell(t, IDHalf+2)
		c := NewCircle(vect.Vect{X: 0, Y: -2}, 1)
		if res := c.CollideTile(cell); res != Other {
			t.Errorf("CollideTile = %v, want %v.", res, Other)
		}
		if !veq(c.Pos, vect.Vect{X: 0, Y: 1}) {
			t.Errorf("Pos = %v, want (0,1).", c.Pos)
		}

		open := NewCircle(vect.Vect{X: 0, Y: 4}, 1)
		if res := open.CollideTile(cell); res != None {
			t.Errorf("circle in the empty half: CollideTile = %v, want %v.", res, None)
		}
	})
}

// awayFrom returns the point d along dir from center.
func awayFrom(center, dir vect.Vect, d vect.Float) vect.Vect {
	return vect.Add(center, vect.Mult(vect.NormalizeOr(dir, vect.Vector_Zero), d))
}

func TestProjections(t *testing.T) {
	s5 := vect.Float(math.Sqrt(5))

	// every tile below is in the first quadrant orientation: signs (1,-1),
	// centred on the origin with half width 8.
	tests := []struct {
		name string
		id   int
		pos  vect.Vect
		r    vect.Float
		want Result
		to   vect.Vect
	}{
		// equal axial and radial penetration resolves along the axis.
		{"convex tie", IDConvex, vect.Vect{X: -2, Y: 0}, 2, Axis, vect.Vect{X: -10, Y: 0}},
		{"convex same cell", IDConvex, vect.Vect{X: 1, Y: -4}, 2, Other, vect.Vect{X: 2.8, Y: -6.4}},
		{"convex above", IDConvex, vect.Vect{X: 0, Y: -9}, 4, Other, awayFrom(vect.Vect{X: -8, Y: 8}, vect.Vect{X: 8, Y: -17}, 20)},
		{"convex right", IDConvex, vect.Vect{X: 9, Y: 0}, 4, Other, awayFrom(vect.Vect{X: -8, Y: 8}, vect.Vect{X: 17, Y: -8}, 20)},
		{"convex below", IDConvex, vect.Vect{X: 0, Y: 9}, 2, Axis, vect.Vect{X: 0, Y: 10}},
		{"convex open diagonal", IDConvex, vect.Vect{X: 9, Y: -9}, 10, Other, vect.Vect{X: -8 + 13*math.Sqrt2, Y: 8 - 13*math.Sqrt2}},
		{"convex solid diagonal", IDConvex, vect.Vect{X: -9, Y: 9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: 8 + math.Sqrt2}},

		{"concave hollow", IDConcave, vect.Vect{X: -4, Y: 4}, 2, Other, vect.Vect{X: 8 - 7*math.Sqrt2, Y: -8 + 7*math.Sqrt2}},
		{"concave deep", IDConcave, vect.Vect{X: -7, Y: 7}, 2, Axis, vect.Vect{X: -7, Y: 10}},
		{"concave below", IDConcave, vect.Vect{X: 0, Y: 9}, 2, Axis, vect.Vect{X: 0, Y: 10}},
		{"concave above", IDConcave, vect.Vect{X: -7, Y: -9}, 2, Other, vect.Vect{X: -8 + math.Sqrt2, Y: -8 - math.Sqrt2}},
		{"concave right", IDConcave, vect.Vect{X: 9, Y: 7}, 2, Other, vect.Vect{X: 8 + math.Sqrt2, Y: 8 - math.Sqrt2}},
		{"concave open diagonal", IDConcave, vect.Vect{X: 9, Y: -9}, 2, None, vect.Vect{X: 9, Y: -9}},
		{"concave solid diagonal", IDConcave, vect.Vect{X: -9, Y: 9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: 8 + math.Sqrt2}},

		{"22S same cell", ID22DegS, vect.Vect{X: 0, Y: 2}, 3, Other, vect.Vect{X: 3/s5 - 0.8, Y: 3.6 - 6/s5}},
		{"22S below", ID22DegS, vect.Vect{X: 0, Y: 9}, 2, Axis, vect.Vect{X: 0, Y: 10}},
		{"22S left face", ID22DegS, vect.Vect{X: -9, Y: 4}, 2, Axis, vect.Vect{X: -10, Y: 4}},
		{"22S left vertex", ID22DegS, vect.Vect{X: -9, Y: -1}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: -math.Sqrt2}},
		{"22S right vertex", ID22DegS, vect.Vect{X: 9, Y: 7}, 3, Other, vect.Vect{X: 8 + 3/math.Sqrt2, Y: 8 - 3/math.Sqrt2}},
		{"22S right slope", ID22DegS, vect.Vect{X: 9, Y: 5}, 4, Other, vect.Vect{X: 7.6 + 4/s5, Y: 7.8 - 8/s5}},
		{"22S lower left diagonal", ID22DegS, vect.Vect{X: -9, Y: 9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: 8 + math.Sqrt2}},
		{"22S lower right diagonal", ID22DegS, vect.Vect{X: 9, Y: 9}, 2, Other, vect.Vect{X: 8 + math.Sqrt2, Y: 8 + math.Sqrt2}},

		{"22B same cell", ID22DegB, vect.Vect{X: 0, Y: -2}, 2, Other, vect.Vect{X: 0.8 + 2/s5, Y: -3.6 - 4/s5}},
		{"22B below", ID22DegB, vect.Vect{X: 0, Y: 9}, 2, Axis, vect.Vect{X: 0, Y: 10}},
		{"22B above slope", ID22DegB, vect.Vect{X: -7, Y: -9}, 2, Other, vect.Vect{X: -7.6 + 2/s5, Y: -7.8 - 4/s5}},
		{"22B above vertex", ID22DegB, vect.Vect{X: -8, Y: -9.5}, 2, Other, vect.Vect{X: -8, Y: -10}},
		{"22B right face", ID22DegB, vect.Vect{X: 9, Y: 3}, 2, Axis, vect.Vect{X: 10, Y: 3}},
		{"22B right vertex", ID22DegB, vect.Vect{X: 9, Y: -1}, 2, Other, vect.Vect{X: 8 + math.Sqrt2, Y: -math.Sqrt2}},
		{"22B left", ID22DegB, vect.Vect{X: -9, Y: 0}, 2, Axis, vect.Vect{X: -10, Y: 0}},
		{"22B open diagonal", ID22DegB, vect.Vect{X: 9, Y: -9}, 9, Other, vect.Vect{X: 5.2 + 9/s5, Y: -1.4 - 18/s5}},
		{"22B solid diagonal", ID22DegB, vect.Vect{X: -9, Y: 9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: 8 + math.Sqrt2}},

		{"67S same cell", ID67DegS, vect.Vect{X: -2, Y: 0}, 2, Other, vect.Vect{X: -3.6 + 4/s5, Y: 0.8 - 2/s5}},
		{"67S left", ID67DegS, vect.Vect{X: -9, Y: 0}, 2, Axis, vect.Vect{X: -10, Y: 0}},
		{"67S below face", ID67DegS, vect.Vect{X: -3, Y: 9}, 2, Axis, vect.Vect{X: -3, Y: 10}},
		{"67S below vertex", ID67DegS, vect.Vect{X: 1, Y: 9}, 2, Other, vect.Vect{X: math.Sqrt2, Y: 8 + math.Sqrt2}},
		{"67S above vertex", ID67DegS, vect.Vect{X: -7, Y: -9}, 2, Other, vect.Vect{X: -8 + math.Sqrt2, Y: -8 - math.Sqrt2}},
		{"67S above slope", ID67DegS, vect.Vect{X: -6, Y: -8.5}, 3, Other, vect.Vect{X: -7.8 + 6/s5, Y: -7.6 - 3/s5}},
		{"67S lower left diagonal", ID67DegS, vect.Vect{X: -9, Y: 9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: 8 + math.Sqrt2}},
		{"67S upper left diagonal", ID67DegS, vect.Vect{X: -9, Y: -9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: -8 - math.Sqrt2}},

		{"67B same cell", ID67DegB, vect.Vect{X: 2, Y: -2}, 2, Other, vect.Vect{X: 2.8 + 4/s5, Y: -2.4 - 2/s5}},
		{"67B below", ID67DegB, vect.Vect{X: 0, Y: 9}, 2, Axis, vect.Vect{X: 0, Y: 10}},
		{"67B above face", ID67DegB, vect.Vect{X: -3, Y: -9}, 2, Axis, vect.Vect{X: -3, Y: -10}},
		{"67B above vertex", ID67DegB, vect.Vect{X: 1, Y: -9}, 2, Other, vect.Vect{X: math.Sqrt2, Y: -8 - math.Sqrt2}},
		{"67B above slope", ID67DegB, vect.Vect{X: 3, Y: -8.5}, 3, Other, vect.Vect{X: 0.4 + 6/s5, Y: -7.2 - 3/s5}},
		{"67B left", ID67DegB, vect.Vect{X: -9, Y: 0}, 2, Axis, vect.Vect{X: -10, Y: 0}},
		{"67B right slope", ID67DegB, vect.Vect{X: 9, Y: 7}, 2, Other, vect.Vect{X: 7.8 + 4/s5, Y: 7.6 - 2/s5}},
		{"67B right vertex", ID67DegB, vect.Vect{X: 9, Y: 8}, 2, Other, vect.Vect{X: 10, Y: 8}},
		{"67B open diagonal", ID67DegB, vect.Vect{X: 9, Y: -9}, 9, Other, vect.Vect{X: 1.4 + 18/s5, Y: -5.2 - 9/s5}},
		{"67B solid diagonal", ID67DegB, vect.Vect{X: -9, Y: 9}, 2, Other, vect.Vect{X: -8 - math.Sqrt2, Y: 8 + math.Sqrt2}},
	}

	for _, test := range tests {
		c := NewCircle(test.pos, test.r)
		if res := c.CollideTile(newCell(t, test.id)); res != test.want {
			t.Errorf("%s: CollideTile = %v, want %v.", test.name, res, test.want)
		}
		if !veq(c.Pos, test.to) {
			t.Errorf("%s: Pos = %v, want %v.", test.name, c.Pos, test.to)
		}
	}
}

func TestUnreachableNeighbours(t *testing.T) {
	tests := []struct {
		id  int
		pos vect.Vect
	}{
		// neighbour on the empty side of a half tile
		{IDHalf + 2, vect.Vect{X: 0, Y: 8.5}},
		// above a small 22 degree slope
		{ID22DegS, vect.Vect{X: 0, Y: -8.5}},
		// right of a small 67 degree slope
		{ID67DegS, vect.Vect{X: 8.5, Y: 0}},
		// diagonal on the open side of a 45 degree slope
		{ID45Deg, vect.Vect{X: 8.5, Y: -8.5}},
	}

	for _, test := range tests {
		c := NewCircle(test.pos, 1)
		if res := c.CollideTile(newCell(t, test.id)); res != None {
			t.Errorf("tile %d, circle at %v: CollideTile = %v, want %v.", test.id, test.pos, res, None)
		}
		if c.Pos != test.pos {
			t.Errorf("tile %d moved the circle from %v to %v.", test.id, test.pos, c.Pos)
		}
	}
}

func TestReportCollisionVsWorld(t *testing.T) {
	c := NewCircle(vect.Vector_Zero, 1)
	c.OldPos = vect.Vect{X: -1, Y: -1}

	c.ReportCollisionVsWorld(0, -0.5, 0, -1, nil)
	if !veq(c.Pos, vect.Vect{X: 0, Y: -0.5}) {
		t.Errorf("Pos = %v, want (0,-0.5).", c.Pos)
	}
	v := vect.Sub(c.Pos, c.OldPos)
	want := vect.Vect{X: 1 - DefaultMaterial.Friction, Y: -DefaultMaterial.Bounce}
	if !veq(v, want) {
		t.Errorf("velocity = %v, want %v.", v, want)
	}

	// moving away from the surface keeps the velocity
	away := NewCircle(vect.Vector_Zero, 1)
	away.OldPos = vect.Vect{X: 0, Y: 1}
	away.ReportCollisionVsWorld(0, -0.5, 0, -1, nil)
	if v := vect.Sub(away.Pos, away.OldPos); !veq(v, vect.Vect{X: 0, Y: -1}) {
		t.Errorf("velocity moving away = %v, want (0,-1).", v)
	}
	if away.Touching.Any() {
		t.Errorf("Touching = %+v, want none.", away.Touching)
	}
}

func TestIntegrate(t *testing.T) {
	c := NewCircle(vect.Vector_Zero, 1)
	c.Integrate(0.2)
	c.Integrate(0.2)

	if !veq(c.Pos, vect.Vect{X: 0, Y: 0.6}) {
		t.Errorf("Pos after two frames = %v, want (0,0.6).", c.Pos)
	}
	if !veq(c.Velocity, vect.Vect{X: 0, Y: 0.4}) {
		t.Errorf("Velocity = %v, want (0,0.4).", c.Velocity)
	}

	floating := NewCircle(vect.Vector_Zero, 1)
	floating.GravityScale = 0
	floating.Integrate(0.2)
	if floating.Pos != vect.Vector_Zero {
		t.Errorf("circle without gravity moved to %v.", floating.Pos)
	}
}

func TestCollideWorldBounds(t *testing.T) {
	bounds := phys2d.NewAABB(0, 0, 100, 100)

	tests := []struct {
		pos, want vect.Vect
	}{
		{vect.Vect{X: 0.5, Y: 50}, vect.Vect{X: 1, Y: 50}},
		{vect.Vect{X: 99.5, Y: 50}, vect.Vect{X: 99, Y: 50}},
		{vect.Vect{X: 50, Y: -2}, vect.Vect{X: 50, Y: 1}},
		{vect.Vect{X: 50, Y: 99.75}, vect.Vect{X: 50, Y: 99}},
		{vect.Vect{X: 50, Y: 50}, vect.Vect{X: 50, Y: 50}},
	}

	for _, test := range tests {
		c := NewCircle(test.pos, 1)
		c.CollideWorldBounds(bounds)
		if !veq(c.Pos, test.want) {
			t.Errorf("CollideWorldBounds(%v) = %v, want %v.", test.pos, c.Pos, test.want)
		}
	}
}

func TestMap(t *testing.T) {
	m, err := FromIDs([][]int{
		{0, 1},
		{2},
	}, 16)
	if err != nil {
		t.Fatal(err)
	}

	if m.Cols != 2 || m.Rows != 2 {
		t.Fatalf("map is %dx%d, want 2x2.", m.Cols, m.Rows)
	}
	if cell := m.At(1, 0); cell.Category != Full || !veq(cell.Pos, vect.Vect{X: 24, Y: 8}) {
		t.Errorf("At(1, 0) = %v at %v, want Full at (24,8).", cell.Category, cell.Pos)
	}
	if cell := m.At(1, 1); !cell.IsEmpty() {
		t.Errorf("padded cell has id %d, want empty.", cell.ID)
	}
	if m.At(2, 0) != nil {
		t.Errorf("At outside the grid returned a cell.")
	}

	if err := m.Set(5, 5, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Set(5, 5) error = %v, want %v.", err, ErrOutOfRange)
	}
	if _, err := FromIDs([][]int{{99}}, 16); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("FromIDs with id 99 error = %v, want %v.", err, ErrUnknownTile)
	}

	var found []*Cell
	m.Query(phys2d.NewAABB(-10, -10, 100, 100), func(c *Cell) {
		found = append(found, c)
	})
	if len(found) != 2 {
		t.Errorf("Query over the whole map found %d cells, want 2.", len(found))
	}
}

func TestWorldRestsOnFloor(t *testing.T) {
	m, err := FromIDs([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
	}, 16)
	if err != nil {
		t.Fatal(err)
	}

	w := NewWorld(m)
	c := w.Add(NewCircle(vect.Vect{X: 24, Y: 8}, 4))

	for i := 0; i < 300; i++ {
		w.Step()
	}

	if !feq(c.Pos.Y, 28) || !feq(c.Pos.X, 24) {
		t.Errorf("circle came to rest at %v, want (24,28).", c.Pos)
	}
	if !c.Touching.Down || !c.WasTouching.Down {
		t.Errorf("Touching = %+v, want Down.", c.Touching)
	}

	if !w.Remove(c) || len(w.Circles) != 0 {
		t.Errorf("Remove did not remove the circle.")
	}
}
