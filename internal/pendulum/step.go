package pendulum

import (
	"math"

	"github.com/san-kum/magpen/internal/vec"
)

// Step advances s by one micro-step of cfg.MicroStep simulated seconds
// using semi-implicit Euler: velocity first, then position with the
// updated velocity.
//
// The tether is handled as a force constraint, not a solved one: the raw
// force is projected onto the rope vector and the projection is flipped
// whenever it makes an acute angle with the force, which cancels the
// radial component. A vanishing projection has angle π/2 and is added
// back unchanged.
func Step(s State, cfg Config, magnets []Magnet) (State, error) {
	ball, err := s.BallPosition(cfg)
	if err != nil {
		return State{}, err
	}

	gravity := vec.Vec3{Z: -cfg.Gravity * cfg.Mass}
	drag := s.Vel.NormalizeOrZero().Scale(-cfg.AirDrag * s.Vel.LengthSquared())

	var magnetic vec.Vec3
	for _, m := range magnets {
		pull := m.Position.Sub(ball)
		d2 := pull.LengthSquared()
		if d2 < minMagnetDistSq {
			d2 = minMagnetDistSq
		}
		magnetic = magnetic.Add(pull.NormalizeOrZero().Scale(cfg.MagnetCoeff / d2))
	}

	force := gravity.Add(magnetic).Add(drag)

	rope := cfg.Pivot.Sub(ball)
	proj := force.Project(rope)
	if proj.AngleBetween(force) < math.Pi/2 {
		proj = proj.Scale(-1)
	}
	force = force.Add(proj)

	accel := force.Scale(1 / cfg.Mass)
	next := s
	next.Vel = s.Vel.Add(accel.Scale(cfg.MicroStep))
	next.Pos = s.Pos.Add(next.Vel.XY().Scale(cfg.MicroStep))
	return next, nil
}

// Steps returns the number of micro-steps Advance takes for duration d:
// floor(d·TimeScale/MicroStep). The remainder shorter than one micro-step
// is dropped.
func Steps(cfg Config, d float64) int {
	return int(math.Floor(d * cfg.TimeScale / cfg.MicroStep))
}

// Advance runs Steps(cfg, d) micro-steps from s and returns the final
// state. Advancing by zero duration returns s unchanged. On error the
// offending state is returned along with a StepError locating the
// micro-step at which it was detected.
func Advance(s State, cfg Config, magnets []Magnet, d float64) (State, error) {
	cur := s
	for i, n := 0, Steps(cfg, d); i < n; i++ {
		next, err := Step(cur, cfg, magnets)
		if err != nil {
			return cur, &StepError{Step: i, Time: float64(i) * cfg.MicroStep, Wrapped: err}
		}
		cur = next
	}
	return cur, nil
}

// AdvanceRecording is Advance keeping the horizontal position after every
// micro-step. The trail has exactly Steps(cfg, d) entries and its last
// entry equals the returned state's position; on error it covers the
// completed steps. Each call allocates a fresh trail.
func AdvanceRecording(s State, cfg Config, magnets []Magnet, d float64) (State, []vec.Vec2, error) {
	n := Steps(cfg, d)
	trail := make([]vec.Vec2, 0, n)
	cur := s
	for i := 0; i < n; i++ {
		next, err := Step(cur, cfg, magnets)
		if err != nil {
			return cur, trail, &StepError{Step: i, Time: float64(i) * cfg.MicroStep, Wrapped: err}
		}
		cur = next
		trail = append(trail, cur.Pos)
	}
	return cur, trail, nil
}
