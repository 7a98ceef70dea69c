package tile

import (
	"math"

	"github.com/vova616/phys2d"
	"github.com/vova616/phys2d/vect"
)

// Result tells how a circle was pushed out of a tile.
type Result int

const (
	None Result = iota
	// Axis is a push along x or y.
	Axis
	// Other is a push along a slope, curve or vertex normal.
	Other
)

func (r Result) String() string {
	switch r {
	case None:
		return "None"
	case Axis:
		return "Axis"
	case Other:
		return "Other"
	}
	return "Unknown"
}

// Material is the response of a circle to a tile or world bound.
type Material struct {
	Friction vect.Float
	Bounce   vect.Float
}

var DefaultMaterial = Material{
	Friction: 0.05,
	Bounce:   0.3,
}

// Touching records which sides of a circle hit something in the last step.
type Touching struct {
	Up, Down, Left, Right bool
}

func (t Touching) Any() bool {
	return t.Up || t.Down || t.Left || t.Right
}

// Circle is a Verlet body for tile worlds. Velocity is implicit in
// Pos - OldPos.
type Circle struct {
	Pos, OldPos vect.Vect
	Radius      vect.Float

	// Displacement of the last Integrate.
	Velocity vect.Vect

	Drag         vect.Float
	GravityScale vect.Float
	Material     Material

	Touching     Touching
	WasTouching  Touching
	CollideWorld bool
}

func NewCircle(pos vect.Vect, radius vect.Float) *Circle {
	return &Circle{
		Pos:          pos,
		OldPos:       pos,
		Radius:       radius,
		Drag:         1,
		GravityScale: 1,
		Material:     DefaultMaterial,
		CollideWorld: true,
	}
}

// Integrate advances the circle one frame under gravity.
func (c *Circle) Integrate(gravity vect.Float) {
	p := c.Pos
	c.Pos.X += c.Drag*c.Pos.X - c.Drag*c.OldPos.X
	c.Pos.Y += c.Drag*c.Pos.Y - c.Drag*c.OldPos.Y + gravity*c.GravityScale
	c.Velocity = vect.Sub(c.Pos, p)
	c.OldPos = p
}

// Push adds to the implicit velocity.
func (c *Circle) Push(v vect.Vect) {
	c.OldPos.Sub(v)
}

func (c *Circle) AABB() phys2d.AABB {
	return phys2d.NewAABB(c.Pos.X-c.Radius, c.Pos.Y-c.Radius, c.Pos.X+c.Radius, c.Pos.Y+c.Radius)
}

// ReportCollisionVsWorld moves the circle out by (px, py). When the circle
// moves into the surface with normal (nx, ny) its tangential velocity is
// damped by friction and its normal velocity reflected by bounce.
// cell is nil for world bounds.
func (c *Circle) ReportCollisionVsWorld(px, py, nx, ny vect.Float, cell *Cell) {
	vx := c.Pos.X - c.OldPos.X
	vy := c.Pos.Y - c.OldPos.Y

	dp := vx*nx + vy*ny
	normX, normY := nx*dp, ny*dp
	tanX, tanY := vx-normX, vy-normY

	var bx, by, fx, fy vect.Float
	if dp < 0 {
		fx = tanX * c.Material.Friction
		fy = tanY * c.Material.Friction
		bx = normX * (1 + c.Material.Bounce)
		by = normY * (1 + c.Material.Bounce)

		switch {
		case nx == 1:
			c.Touching.Left = true
		case nx == -1:
			c.Touching.Right = true
		}
		switch {
		case ny == 1:
			c.Touching.Up = true
		case ny == -1:
			c.Touching.Down = true
		}
	}

	c.Pos.X += px
	c.Pos.Y += py
	c.OldPos.X += px + bx + fx
	c.OldPos.Y += py + by + fy
}

// CollideWorldBounds keeps the circle inside bounds. Lower is the top left
// corner.
func (c *Circle) CollideWorldBounds(bounds phys2d.AABB) {
	if dx := bounds.Lower.X - (c.Pos.X - c.Radius); dx > 0 {
		c.ReportCollisionVsWorld(dx, 0, 1, 0, nil)
	} else if dx := bounds.Upper.X - (c.Pos.X + c.Radius); dx < 0 {
		c.ReportCollisionVsWorld(dx, 0, -1, 0, nil)
	}

	if dy := bounds.Lower.Y - (c.Pos.Y - c.Radius); dy > 0 {
		c.ReportCollisionVsWorld(0, dy, 0, 1, nil)
	} else if dy := bounds.Upper.Y - (c.Pos.Y + c.Radius); dy < 0 {
		c.ReportCollisionVsWorld(0, dy, 0, -1, nil)
	}
}

// CollideTile pushes the circle out of t if they overlap.
func (c *Circle) CollideTile(t *Cell) Result {
	dx := c.Pos.X - t.Pos.X
	px := (t.XW + c.Radius) - vect.FAbs(dx)
	if px <= 0 {
		return None
	}
	dy := c.Pos.Y - t.Pos.Y
	py := (t.YW + c.Radius) - vect.FAbs(dy)
	if py <= 0 {
		return None
	}

	// cell offset of the circle center relative to the tile
	var oH, oV vect.Float
	if dx < -t.XW {
		oH = -1
	} else if t.XW < dx {
		oH = 1
	}
	if dy < -t.YW {
		oV = -1
	} else if t.YW < dy {
		oV = 1
	}

	return c.resolve(px, py, oH, oV, t)
}

func (c *Circle) resolve(x, y, oH, oV vect.Float, t *Cell) Result {
	if t.ID <= IDEmpty {
		Logger.Warn("empty tile", "id", t.ID, "pos", t.Pos)
		return None
	}
	project := projections[t.Category]
	if project == nil {
		Logger.Warn("tile has no projection", "id", t.ID, "category", t.Category)
		return None
	}
	return project(c, x, y, oH, oV, t)
}

// axial returns the smaller of the x and y penetrations as a push away
// from the tile center, and its length.
func (c *Circle) axial(x, y vect.Float, t *Cell) (px, py, l vect.Float) {
	if x < y {
		if c.Pos.X-t.Pos.X < 0 {
			return -x, 0, x
		}
		return x, 0, x
	}
	if c.Pos.Y-t.Pos.Y < 0 {
		return 0, -y, y
	}
	return 0, y, y
}

// axialOrNormal resolves a same-cell overlap along the smaller axis, or
// along (nx, ny) when the penetration pen along it is smaller.
func (c *Circle) axialOrNormal(x, y, pen, nx, ny vect.Float, t *Cell) Result {
	px, py, l := c.axial(x, y, t)
	if l <= pen {
		c.ReportCollisionVsWorld(px, py, px/l, py/l, t)
		return Axis
	}
	c.ReportCollisionVsWorld(nx*pen, ny*pen, nx, ny, t)
	return Other
}

// faceX and faceY push the circle out through a tile edge.
func (c *Circle) faceX(x, oH vect.Float, t *Cell) Result {
	c.ReportCollisionVsWorld(x*oH, 0, oH, 0, t)
	return Axis
}

func (c *Circle) faceY(y, oV vect.Float, t *Cell) Result {
	c.ReportCollisionVsWorld(0, y*oV, 0, oV, t)
	return Axis
}

// vertex pushes the circle away from the point (vx, vy). (fx, fy) is the
// push direction when the center sits exactly on the point.
func (c *Circle) vertex(vx, vy, fx, fy vect.Float, t *Cell) Result {
	dx := c.Pos.X - vx
	dy := c.Pos.Y - vy
	l := vect.Float(math.Hypot(float64(dx), float64(dy)))
	pen := c.Radius - l
	if pen <= 0 {
		return None
	}
	if l == 0 {
		dx, dy = fx, fy
	} else {
		dx /= l
		dy /= l
	}
	c.ReportCollisionVsWorld(dx*pen, dy*pen, dx, dy, t)
	return Other
}

// corner pushes the circle away from the nearest corner of t.
func (c *Circle) corner(oH, oV vect.Float, t *Cell) Result {
	return c.vertex(t.Pos.X+oH*t.XW, t.Pos.Y+oV*t.YW, oH/math.Sqrt2, oV/math.Sqrt2, t)
}

// slope pushes the circle out along the slope normal of t. (ox, oy) is the
// circle center relative to a point on the slope.
func (c *Circle) slope(ox, oy vect.Float, t *Cell) Result {
	dp := ox*t.SX + oy*t.SY
	pen := c.Radius - vect.FAbs(dp)
	if pen <= 0 {
		return None
	}
	c.ReportCollisionVsWorld(t.SX*pen, t.SY*pen, t.SX, t.SY, t)
	return Other
}

// innerSlope resolves the circle against the slope through (ax, ay) from
// outside the tile, using the circle point deepest along the normal.
func (c *Circle) innerSlope(ax, ay vect.Float, t *Cell) Result {
	ox := (c.Pos.X - t.SX*c.Radius) - ax
	oy := (c.Pos.Y - t.SY*c.Radius) - ay
	dp := ox*t.SX + oy*t.SY
	if dp >= 0 {
		return None
	}
	c.ReportCollisionVsWorld(-t.SX*dp, -t.SY*dp, t.SX, t.SY, t)
	return Other
}
