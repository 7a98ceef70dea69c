package transform

import (
	"math"

	"github.com/vova616/phys2d/vect"
)

type Rotation struct {
	//cosine and sine.
	C, S vect.Float
}

func NewRotation(angle vect.Float) Rotation {
	return Rotation{
		C: vect.Float(math.Cos(float64(angle))),
		S: vect.Float(math.Sin(float64(angle))),
	}
}

func (rot *Rotation) SetIdentity() {
	rot.S = 0
	rot.C = 1
}

func (rot *Rotation) SetAngle(angle vect.Float) {
	*rot = NewRotation(angle)
}

func (rot Rotation) Angle() vect.Float {
	return vect.Float(math.Atan2(float64(rot.S), float64(rot.C)))
}

//rotates the input vector.
func (rot Rotation) RotateVect(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: (v.X * rot.C) - (v.Y * rot.S),
		Y: (v.X * rot.S) + (v.Y * rot.C),
	}
}

//rotates the input vector by the inverse rotation.
func (rot Rotation) RotateVectInv(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: (v.X * rot.C) + (v.Y * rot.S),
		Y: (-v.X * rot.S) + (v.Y * rot.C),
	}
}

type Transform struct {
	Position vect.Vect
	Rotation
}

func NewTransform(pos vect.Vect, angle vect.Float) Transform {
	return Transform{
		Position: pos,
		Rotation: NewRotation(angle),
	}
}

func (xf *Transform) SetIdentity() {
	xf.Position = vect.Vect{}
	xf.Rotation.SetIdentity()
}

func (xf *Transform) Set(pos vect.Vect, angle vect.Float) {
	xf.Position = pos
	xf.SetAngle(angle)
}

//moves and rotates the input vector from local to world space.
func (xf Transform) TransformVect(v vect.Vect) vect.Vect {
	return vect.Add(xf.Position, xf.RotateVect(v))
}

//maps a world space point back into local space.
func (xf Transform) TransformVectInv(v vect.Vect) vect.Vect {
	return xf.RotateVectInv(vect.Sub(v, xf.Position))
}
