// Package pendulum simulates a point mass hanging from an inextensible
// tether, moving under gravity, quadratic air drag and the pull of fixed
// point magnets. The horizontal position is the only independent degree
// of freedom; the vertical coordinate is always derived from the tether
// constraint.
package pendulum

import (
	"fmt"
	"math"

	"github.com/san-kum/magpen/internal/vec"
)

// minMagnetDistSq floors the squared ball-to-magnet distance in the
// inverse-square law so the force stays finite when a trajectory passes
// through a magnet.
const minMagnetDistSq = 1e-6

// Config holds the physical and numerical constants shared by every
// particle of a simulation.
type Config struct {
	Gravity     float64  // m/s^2, > 0
	Mass        float64  // kg, > 0
	RopeLength  float64  // m, > 0
	Pivot       vec.Vec3 // tether anchor
	AirDrag     float64  // quadratic drag coefficient, >= 0
	MagnetCoeff float64  // magnet strength, negative repels
	MicroStep   float64  // integration step in simulated seconds, > 0
	TimeScale   float64  // simulated seconds per advanced second, > 0
	LengthScale float64  // display pixels per meter, > 0
}

// DefaultConfig returns the reference instrument: a 30 cm tether anchored
// 33 cm above the table.
func DefaultConfig() Config {
	return Config{
		Gravity:     10.0,
		Mass:        0.264,
		RopeLength:  0.3,
		Pivot:       vec.Vec3{X: 0, Y: 0, Z: 0.33},
		AirDrag:     0.037,
		MagnetCoeff: 0.0002,
		MicroStep:   0.0001,
		TimeScale:   0.7,
		LengthScale: 3000,
	}
}

// Validate reports the first configuration value outside its valid range.
// It is checked once before an integration loop starts, never inside it.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"gravity", c.Gravity},
		{"mass", c.Mass},
		{"rope length", c.RopeLength},
		{"pivot x", c.Pivot.X},
		{"pivot y", c.Pivot.Y},
		{"pivot z", c.Pivot.Z},
		{"air drag", c.AirDrag},
		{"magnet coefficient", c.MagnetCoeff},
		{"micro step", c.MicroStep},
		{"time scale", c.TimeScale},
		{"length scale", c.LengthScale},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrBadConfig, f.name)
		}
	}

	if c.Gravity <= 0 {
		return fmt.Errorf("%w: gravity must be positive, got %v", ErrBadConfig, c.Gravity)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrBadConfig, c.Mass)
	}
	if c.RopeLength <= 0 {
		return fmt.Errorf("%w: rope length must be positive, got %v", ErrBadConfig, c.RopeLength)
	}
	if c.AirDrag < 0 {
		return fmt.Errorf("%w: air drag must not be negative, got %v", ErrBadConfig, c.AirDrag)
	}
	if c.MicroStep <= 0 {
		return fmt.Errorf("%w: micro step must be positive, got %v", ErrBadConfig, c.MicroStep)
	}
	if c.TimeScale <= 0 {
		return fmt.Errorf("%w: time scale must be positive, got %v", ErrBadConfig, c.TimeScale)
	}
	if c.LengthScale <= 0 {
		return fmt.Errorf("%w: length scale must be positive, got %v", ErrBadConfig, c.LengthScale)
	}
	return nil
}
