package pendulum

import (
	"fmt"
	"math"

	"github.com/san-kum/magpen/internal/vec"
)

// ropeSlack is the relative tolerance, in units of rope length squared,
// by which the constraint radicand may dip below zero from rounding
// before a position counts as beyond the tether.
const ropeSlack = 1e-9

// State is one particle: its horizontal position and full 3D velocity.
// The vertical position is not stored; it follows from the tether.
type State struct {
	Pos vec.Vec2
	Vel vec.Vec3
}

// NewState returns a particle at rest at pos, or ErrRopeExceeded when the
// tether cannot reach pos.
func NewState(cfg Config, pos vec.Vec2) (State, error) {
	s := State{Pos: pos}
	if _, err := s.BallPosition(cfg); err != nil {
		return State{}, err
	}
	return s, nil
}

// BallPosition derives the 3D position of the mass: the lower intersection
// of the tether sphere with the vertical line through Pos.
func (s State) BallPosition(cfg Config) (vec.Vec3, error) {
	a := s.Pos.Distance(cfg.Pivot.XY())
	radicand := (cfg.RopeLength - a) * (cfg.RopeLength + a)
	if radicand < 0 {
		if radicand < -ropeSlack*cfg.RopeLength*cfg.RopeLength {
			return vec.Vec3{}, fmt.Errorf("%w: offset %v exceeds rope %v",
				ErrRopeExceeded, a, cfg.RopeLength)
		}
		radicand = 0
	}
	return s.Pos.Vec3(cfg.Pivot.Z - math.Sqrt(radicand)), nil
}

// IsValid reports whether every component of the state is finite.
func (s State) IsValid() bool {
	for _, v := range []float64{s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y, s.Vel.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Energy returns the mechanical energy of the state: kinetic plus
// gravitational plus magnet potential. The magnet potential uses the same
// clamped distance as the force law so the two stay consistent.
func (s State) Energy(cfg Config, magnets []Magnet) (float64, error) {
	ball, err := s.BallPosition(cfg)
	if err != nil {
		return 0, err
	}
	e := 0.5*cfg.Mass*s.Vel.LengthSquared() + cfg.Mass*cfg.Gravity*ball.Z
	for _, m := range magnets {
		d2 := m.Position.DistanceSquared(ball)
		if d2 < minMagnetDistSq {
			d2 = minMagnetDistSq
		}
		e -= cfg.MagnetCoeff / math.Sqrt(d2)
	}
	return e, nil
}
