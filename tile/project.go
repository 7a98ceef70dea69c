package tile

import (
	"math"

	"github.com/vova616/phys2d/vect"
)

// projection resolves a circle overlapping t by x and y on each axis.
// (oH, oV) is the cell offset of the circle center: -1, 0 or 1 per axis.
type projection func(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result

var projections = [numCategories]projection{
	Full:    projectFull,
	Deg45:   project45Deg,
	Concave: projectConcave,
	Convex:  projectConvex,
	Deg22S:  project22DegS,
	Deg22B:  project22DegB,
	Deg67S:  project67DegS,
	Deg67B:  project67DegB,
	Half:    projectHalf,
}

func projectFull(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	switch {
	case oH == 0 && oV == 0:
		px, py, l := c.axial(x, y, t)
		c.ReportCollisionVsWorld(px, py, px/l, py/l, t)
		return Axis
	case oH == 0:
		return c.faceY(y, oV, t)
	case oV == 0:
		return c.faceX(x, oH, t)
	}
	return c.corner(oH, oV, t)
}

func projectHalf(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	// circle is behind the solid half
	celldp := oH*signx + oV*signy
	if celldp > 0 {
		return None
	}

	switch {
	case oH == 0 && oV == 0:
		ox := (c.Pos.X - signx*c.Radius) - t.Pos.X
		oy := (c.Pos.Y - signy*c.Radius) - t.Pos.Y
		dp := ox*signx + oy*signy
		if dp >= 0 {
			return None
		}
		return c.axialOrNormal(x, y, -dp, signx, signy, t)
	case oH == 0:
		if celldp != 0 {
			return c.faceY(y, oV, t)
		}
		// vertical neighbour of a left or right half
		if (c.Pos.X-t.Pos.X)*signx < 0 {
			return c.faceY(y, oV, t)
		}
		return c.vertex(t.Pos.X, t.Pos.Y+oV*t.YW, signx/math.Sqrt2, oV/math.Sqrt2, t)
	case oV == 0:
		if celldp != 0 {
			return c.faceX(x, oH, t)
		}
		if (c.Pos.Y-t.Pos.Y)*signy < 0 {
			return c.faceX(x, oH, t)
		}
		return c.vertex(t.Pos.X+oH*t.XW, t.Pos.Y, oH/math.Sqrt2, signy/math.Sqrt2, t)
	}
	return c.corner(oH, oV, t)
}

func project45Deg(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	switch {
	case oH == 0 && oV == 0:
		ox := (c.Pos.X - t.SX*c.Radius) - t.Pos.X
		oy := (c.Pos.Y - t.SY*c.Radius) - t.Pos.Y
		dp := ox*t.SX + oy*t.SY
		if dp >= 0 {
			return None
		}
		return c.axialOrNormal(x, y, -dp, t.SX, t.SY, t)
	case oH == 0:
		if signy*oV < 0 {
			return c.faceY(y, oV, t)
		}
		vx, vy := t.Pos.X-signx*t.XW, t.Pos.Y+oV*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy > 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	case oV == 0:
		if signx*oH < 0 {
			return c.faceX(x, oH, t)
		}
		vx, vy := t.Pos.X+oH*t.XW, t.Pos.Y-signy*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy < 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	}

	if signx*oH+signy*oV > 0 {
		return None
	}
	return c.corner(oH, oV, t)
}

func projectConcave(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	switch {
	case oH == 0 && oV == 0:
		// the hollow is a circle of radius 2*xw centred on the tile corner
		ox := (t.Pos.X + signx*t.XW) - c.Pos.X
		oy := (t.Pos.Y + signy*t.YW) - c.Pos.Y
		trad := 2 * t.XW
		l := vect.Float(math.Hypot(float64(ox), float64(oy)))
		pen := (l + c.Radius) - trad
		if pen <= 0 {
			return None
		}
		nx, ny := signx/math.Sqrt2, signy/math.Sqrt2
		if l > 0 {
			nx, ny = ox/l, oy/l
		}
		return c.axialOrNormal(x, y, pen, nx, ny, t)
	case oH == 0:
		if signy*oV < 0 {
			return c.faceY(y, oV, t)
		}
		return c.vertex(t.Pos.X-signx*t.XW, t.Pos.Y+oV*t.YW, 0, oV, t)
	case oV == 0:
		if signx*oH < 0 {
			return c.faceX(x, oH, t)
		}
		return c.vertex(t.Pos.X+oH*t.XW, t.Pos.Y-signy*t.YW, oH, 0, t)
	}

	if signx*oH+signy*oV > 0 {
		return None
	}
	return c.corner(oH, oV, t)
}

// convexCircle returns the push out of the quarter circle of a convex tile,
// centred on the corner opposite its normal.
func (c *Circle) convexCircle(t *Cell) (nx, ny, pen vect.Float) {
	ox := c.Pos.X - (t.Pos.X - t.SignX*t.XW)
	oy := c.Pos.Y - (t.Pos.Y - t.SignY*t.YW)
	trad := 2 * t.XW
	l := vect.Float(math.Hypot(float64(ox), float64(oy)))
	pen = (trad + c.Radius) - l
	if l == 0 {
		return t.SignX / math.Sqrt2, t.SignY / math.Sqrt2, pen
	}
	return ox / l, oy / l, pen
}

func (c *Circle) convexEdge(t *Cell) Result {
	nx, ny, pen := c.convexCircle(t)
	if pen <= 0 {
		return None
	}
	c.ReportCollisionVsWorld(nx*pen, ny*pen, nx, ny, t)
	return Other
}

func projectConvex(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	switch {
	case oH == 0 && oV == 0:
		nx, ny, pen := c.convexCircle(t)
		if pen <= 0 {
			return None
		}
		return c.axialOrNormal(x, y, pen, nx, ny, t)
	case oH == 0:
		if signy*oV < 0 {
			return c.faceY(y, oV, t)
		}
		return c.convexEdge(t)
	case oV == 0:
		if signx*oH < 0 {
			return c.faceX(x, oH, t)
		}
		return c.convexEdge(t)
	}

	if signx*oH+signy*oV > 0 {
		return c.convexEdge(t)
	}
	return c.corner(oH, oV, t)
}

func project22DegS(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	// the small 22 degree tile is empty on its normal side
	if signy*oV > 0 {
		return None
	}

	switch {
	case oH == 0 && oV == 0:
		vx, vy := t.Pos.X-signx*t.XW, t.Pos.Y
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy > 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		ox -= c.Radius * t.SX
		oy -= c.Radius * t.SY
		dp := ox*t.SX + oy*t.SY
		if dp >= 0 {
			return None
		}
		return c.axialOrNormal(x, y, -dp, t.SX, t.SY, t)
	case oH == 0:
		return c.faceY(y, oV, t)
	case oV == 0:
		if signx*oH < 0 {
			vx, vy := t.Pos.X-signx*t.XW, t.Pos.Y
			if (c.Pos.Y-vy)*signy < 0 {
				return c.faceX(x, oH, t)
			}
			return c.vertex(vx, vy, oH/math.Sqrt2, signy/math.Sqrt2, t)
		}
		vx, vy := t.Pos.X+oH*t.XW, t.Pos.Y-signy*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy < 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	}
	return c.corner(oH, oV, t)
}

func project22DegB(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	switch {
	case oH == 0 && oV == 0:
		ox := (c.Pos.X - t.SX*c.Radius) - (t.Pos.X - signx*t.XW)
		oy := (c.Pos.Y - t.SY*c.Radius) - (t.Pos.Y + signy*t.YW)
		dp := ox*t.SX + oy*t.SY
		if dp >= 0 {
			return None
		}
		return c.axialOrNormal(x, y, -dp, t.SX, t.SY, t)
	case oH == 0:
		if signy*oV < 0 {
			return c.faceY(y, oV, t)
		}
		vx, vy := t.Pos.X-signx*t.XW, t.Pos.Y+signy*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy > 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	case oV == 0:
		if signx*oH < 0 {
			return c.faceX(x, oH, t)
		}
		vx, vy := t.Pos.X+signx*t.XW, t.Pos.Y
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if oy*signy < 0 {
			return c.faceX(x, oH, t)
		}
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy < 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	}

	if signx*oH+signy*oV > 0 {
		return c.innerSlope(t.Pos.X-signx*t.XW, t.Pos.Y+signy*t.YW, t)
	}
	return c.corner(oH, oV, t)
}

func project67DegS(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	// the small 67 degree tile is empty on its normal side
	if signx*oH > 0 {
		return None
	}

	switch {
	case oH == 0 && oV == 0:
		vx, vy := t.Pos.X, t.Pos.Y-signy*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy < 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		ox -= c.Radius * t.SX
		oy -= c.Radius * t.SY
		dp := ox*t.SX + oy*t.SY
		if dp >= 0 {
			return None
		}
		return c.axialOrNormal(x, y, -dp, t.SX, t.SY, t)
	case oH == 0:
		if signy*oV < 0 {
			vx, vy := t.Pos.X, t.Pos.Y-signy*t.YW
			if (c.Pos.X-vx)*signx < 0 {
				return c.faceY(y, oV, t)
			}
			return c.vertex(vx, vy, signx/math.Sqrt2, oV/math.Sqrt2, t)
		}
		vx, vy := t.Pos.X-signx*t.XW, t.Pos.Y+oV*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy > 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	case oV == 0:
		return c.faceX(x, oH, t)
	}
	return c.corner(oH, oV, t)
}

func project67DegB(c *Circle, x, y, oH, oV vect.Float, t *Cell) Result {
	signx, signy := t.SignX, t.SignY

	switch {
	case oH == 0 && oV == 0:
		ox := (c.Pos.X - t.SX*c.Radius) - (t.Pos.X + signx*t.XW)
		oy := (c.Pos.Y - t.SY*c.Radius) - (t.Pos.Y - signy*t.YW)
		dp := ox*t.SX + oy*t.SY
		if dp >= 0 {
			return None
		}
		return c.axialOrNormal(x, y, -dp, t.SX, t.SY, t)
	case oH == 0:
		if signy*oV < 0 {
			return c.faceY(y, oV, t)
		}
		vx, vy := t.Pos.X, t.Pos.Y+signy*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if ox*signx < 0 {
			return c.faceY(y, oV, t)
		}
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy > 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	case oV == 0:
		if signx*oH < 0 {
			return c.faceX(x, oH, t)
		}
		vx, vy := t.Pos.X+signx*t.XW, t.Pos.Y-signy*t.YW
		ox, oy := c.Pos.X-vx, c.Pos.Y-vy
		if perp := ox*-t.SY + oy*t.SX; perp*signx*signy < 0 {
			return c.vertex(vx, vy, t.SX, t.SY, t)
		}
		return c.slope(ox, oy, t)
	}

	if signx*oH+signy*oV > 0 {
		return c.innerSlope(t.Pos.X+signx*t.XW, t.Pos.Y-signy*t.YW, t)
	}
	return c.corner(oH, oV, t)
}
