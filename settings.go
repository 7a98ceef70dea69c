package phys2d

import (
	"math"

	"github.com/vova616/phys2d/vect"
)

const (
	RadianConst = math.Pi / 180
	DegreeConst = 180 / math.Pi
)

type BroadphaseKind uint8

const (
	// A dynamic bounding box tree. The default.
	Broadphase_Tree BroadphaseKind = iota
	// A uniform grid of CellSize cells.
	Broadphase_Grid
)

func (k BroadphaseKind) String() string {
	switch k {
	case Broadphase_Tree:
		return "tree"
	case Broadphase_Grid:
		return "grid"
	}
	return "unknown"
}

// Settings holds the solver tuning shared by a space, its joints and its
// contact solvers.
type Settings struct {
	// Velocity and position solver iterations per step.
	VelocityIterations int
	PositionIterations int

	WarmStarting bool
	AllowSleep   bool

	Gravity vect.Vect
	// Linear and angular damping applied to every body, per second.
	Damping vect.Float

	Broadphase BroadphaseKind
	// Broadphase grid cell size, in world units.
	CellSize vect.Float

	// Joint tolerances and correction limits.
	LinearSlop           vect.Float
	AngularSlop          vect.Float
	MaxLinearCorrection  vect.Float
	MaxAngularCorrection vect.Float

	// Contact position correction.
	ContactSlop                vect.Float
	Baumgarte                  vect.Float
	ContactMaxLinearCorrection vect.Float

	// Bodies sleep after resting TimeToSleep seconds below these speeds.
	TimeToSleep           vect.Float
	SleepLinearTolerance  vect.Float
	SleepAngularTolerance vect.Float
}

func DefaultSettings() Settings {
	return Settings{
		VelocityIterations: 8,
		PositionIterations: 4,
		WarmStarting:       true,
		AllowSleep:         true,
		Broadphase:         Broadphase_Tree,
		CellSize:           64,

		LinearSlop:           0.0008,
		AngularSlop:          2 * RadianConst,
		MaxLinearCorrection:  0.5,
		MaxAngularCorrection: 8 * RadianConst,

		ContactSlop:                0.0008,
		Baumgarte:                  0.28,
		ContactMaxLinearCorrection: 1,

		TimeToSleep:           0.5,
		SleepLinearTolerance:  0.5,
		SleepAngularTolerance: 2 * RadianConst,
	}
}

var defaultSettings = DefaultSettings()
