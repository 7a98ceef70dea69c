package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const envPrefix = "PHYS2D_"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// FromEnv applies PHYS2D_* overrides to s.
func FromEnv(s *Settings) error {
	s.LogLevel = GetEnv(envPrefix+"LOG_LEVEL", s.LogLevel)
	s.Solver.Broadphase = strings.TrimSpace(GetEnv(envPrefix+"BROADPHASE", s.Solver.Broadphase))

	ints := []struct {
		key string
		dst *int
	}{
		{"VELOCITY_ITERATIONS", &s.Solver.VelocityIterations},
		{"POSITION_ITERATIONS", &s.Solver.PositionIterations},
		{"HZ", &s.Clock.Hz},
		{"MAX_STEPS", &s.Clock.MaxSteps},
	}
	for _, e := range ints {
		if err := envInt(envPrefix+e.key, e.dst); err != nil {
			return err
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"GRAVITY_X", &s.Solver.Gravity[0]},
		{"GRAVITY_Y", &s.Solver.Gravity[1]},
		{"DAMPING", &s.Solver.Damping},
		{"BAUMGARTE", &s.Solver.Baumgarte},
		{"TILE_GRAVITY", &s.Tile.Gravity},
		{"TILE_FRICTION", &s.Tile.Friction},
		{"TILE_BOUNCE", &s.Tile.Bounce},
		{"TILE_DRAG", &s.Tile.Drag},
	}
	for _, e := range floats {
		if err := envFloat(envPrefix+e.key, e.dst); err != nil {
			return err
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"WARM_STARTING", &s.Solver.WarmStarting},
		{"ALLOW_SLEEP", &s.Solver.AllowSleep},
	}
	for _, e := range bools {
		if err := envBool(envPrefix+e.key, e.dst); err != nil {
			return err
		}
	}

	return s.Validate()
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(GetEnv(key, ""))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := strings.TrimSpace(GetEnv(key, ""))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(GetEnv(key, ""))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
