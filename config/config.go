// Package config loads solver and tile-world tuning from TOML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/vova616/phys2d"
	"github.com/vova616/phys2d/clock"
	"github.com/vova616/phys2d/tile"
	"github.com/vova616/phys2d/vect"
)

var (
	ErrUnknownKey = errors.New("unknown config key")
	ErrInvalid    = errors.New("invalid config")
)

var broadphases = map[string]phys2d.BroadphaseKind{
	phys2d.Broadphase_Tree.String(): phys2d.Broadphase_Tree,
	phys2d.Broadphase_Grid.String(): phys2d.Broadphase_Grid,
}

type Settings struct {
	LogLevel string `toml:"log_level"`

	Solver Solver `toml:"solver"`
	Tile   Tile   `toml:"tile"`
	Clock  Clock  `toml:"clock"`
}

// Solver mirrors phys2d.Settings. Angles are in degrees.
type Solver struct {
	VelocityIterations int  `toml:"velocity_iterations"`
	PositionIterations int  `toml:"position_iterations"`
	WarmStarting       bool `toml:"warm_starting"`
	AllowSleep         bool `toml:"allow_sleep"`

	// "tree" or "grid".
	Broadphase string `toml:"broadphase"`

	Gravity  [2]float64 `toml:"gravity"`
	Damping  float64    `toml:"damping"`
	CellSize float64    `toml:"cell_size"`

	LinearSlop           float64 `toml:"linear_slop"`
	AngularSlop          float64 `toml:"angular_slop"`
	MaxLinearCorrection  float64 `toml:"max_linear_correction"`
	MaxAngularCorrection float64 `toml:"max_angular_correction"`

	ContactSlop                float64 `toml:"contact_slop"`
	Baumgarte                  float64 `toml:"baumgarte"`
	ContactMaxLinearCorrection float64 `toml:"contact_max_linear_correction"`

	TimeToSleep           float64 `toml:"time_to_sleep"`
	SleepLinearTolerance  float64 `toml:"sleep_linear_tolerance"`
	SleepAngularTolerance float64 `toml:"sleep_angular_tolerance"`
}

// Tile configures tile worlds. Gravity is per frame.
type Tile struct {
	Gravity  float64 `toml:"gravity"`
	Friction float64 `toml:"friction"`
	Bounce   float64 `toml:"bounce"`
	Drag     float64 `toml:"drag"`
}

type Clock struct {
	Hz       int `toml:"hz"`
	MaxSteps int `toml:"max_steps"`
}

func Default() Settings {
	p := phys2d.DefaultSettings()
	return Settings{
		LogLevel: "warn",
		Solver: Solver{
			VelocityIterations: p.VelocityIterations,
			PositionIterations: p.PositionIterations,
			WarmStarting:       p.WarmStarting,
			AllowSleep:         p.AllowSleep,

			Broadphase: p.Broadphase.String(),

			Gravity:  [2]float64{float64(p.Gravity.X), float64(p.Gravity.Y)},
			Damping:  float64(p.Damping),
			CellSize: float64(p.CellSize),

			LinearSlop:           float64(p.LinearSlop),
			AngularSlop:          float64(p.AngularSlop * phys2d.DegreeConst),
			MaxLinearCorrection:  float64(p.MaxLinearCorrection),
			MaxAngularCorrection: float64(p.MaxAngularCorrection * phys2d.DegreeConst),

			ContactSlop:                float64(p.ContactSlop),
			Baumgarte:                  float64(p.Baumgarte),
			ContactMaxLinearCorrection: float64(p.ContactMaxLinearCorrection),

			TimeToSleep:           float64(p.TimeToSleep),
			SleepLinearTolerance:  float64(p.SleepLinearTolerance),
			SleepAngularTolerance: float64(p.SleepAngularTolerance * phys2d.DegreeConst),
		},
		Tile: Tile{
			Gravity:  tile.DefaultGravity,
			Friction: float64(tile.DefaultMaterial.Friction),
			Bounce:   float64(tile.DefaultMaterial.Bounce),
			Drag:     1,
		},
		Clock: Clock{
			Hz:       60,
			MaxSteps: clock.DefaultMaxSteps,
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file sets that
// Settings does not know are an error.
func Load(path string) (Settings, error) {
	s := Default()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return s, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return s, fmt.Errorf("load %s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	switch {
	case s.Solver.VelocityIterations <= 0 || s.Solver.PositionIterations <= 0:
		return fmt.Errorf("%w: solver iterations must be positive", ErrInvalid)
	case s.Solver.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive", ErrInvalid)
	case s.Clock.Hz <= 0:
		return fmt.Errorf("%w: clock hz must be positive", ErrInvalid)
	case s.Tile.Friction < 0 || s.Tile.Bounce < 0:
		return fmt.Errorf("%w: tile friction and bounce must not be negative", ErrInvalid)
	}
	if _, ok := broadphases[s.Solver.Broadphase]; !ok {
		return fmt.Errorf("%w: unknown broadphase %q", ErrInvalid, s.Solver.Broadphase)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	return nil
}

func (s Settings) Physics() phys2d.Settings {
	p := phys2d.DefaultSettings()
	sv := s.Solver

	p.VelocityIterations = sv.VelocityIterations
	p.PositionIterations = sv.PositionIterations
	p.WarmStarting = sv.WarmStarting
	p.AllowSleep = sv.AllowSleep
	p.Broadphase = broadphases[sv.Broadphase]
	p.Gravity = vect.Vect{X: vect.Float(sv.Gravity[0]), Y: vect.Float(sv.Gravity[1])}
	p.Damping = vect.Float(sv.Damping)
	p.CellSize = vect.Float(sv.CellSize)

	p.LinearSlop = vect.Float(sv.LinearSlop)
	p.AngularSlop = vect.Float(sv.AngularSlop) * phys2d.RadianConst
	p.MaxLinearCorrection = vect.Float(sv.MaxLinearCorrection)
	p.MaxAngularCorrection = vect.Float(sv.MaxAngularCorrection) * phys2d.RadianConst

	p.ContactSlop = vect.Float(sv.ContactSlop)
	p.Baumgarte = vect.Float(sv.Baumgarte)
	p.ContactMaxLinearCorrection = vect.Float(sv.ContactMaxLinearCorrection)

	p.TimeToSleep = vect.Float(sv.TimeToSleep)
	p.SleepLinearTolerance = vect.Float(sv.SleepLinearTolerance)
	p.SleepAngularTolerance = vect.Float(sv.SleepAngularTolerance) * phys2d.RadianConst
	return p
}

func (s Settings) Material() tile.Material {
	return tile.Material{
		Friction: vect.Float(s.Tile.Friction),
		Bounce:   vect.Float(s.Tile.Bounce),
	}
}

// Circle returns a tile-world circle carrying the configured material and
// drag.
func (s Settings) Circle(pos vect.Vect, radius vect.Float) *tile.Circle {
	c := tile.NewCircle(pos, radius)
	c.Material = s.Material()
	c.Drag = vect.Float(s.Tile.Drag)
	return c
}

func (s Settings) Accumulator() *clock.Accumulator {
	a := clock.NewHz(s.Clock.Hz)
	a.MaxSteps = s.Clock.MaxSteps
	return a
}

// Level returns the configured log level, or warn when it does not parse.
func (s Settings) Level() log.Level {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
