package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/magpen/internal/pendulum"
)

// DivergenceExponent estimates how quickly two trajectories started
// perturbation meters apart separate, in 1/s of simulated time.
// Strongly positive values mean nearby starts end on different magnets;
// values near or below zero mean the pair stays together.
//
// Two copies of the state advance in lockstep; the separation is
// renormalized whenever it exceeds the rope length so both stay
// comparable.
func DivergenceExponent(cfg pendulum.Config, magnets []pendulum.Magnet, start pendulum.State, perturbation, duration float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if perturbation <= 0 {
		return 0, fmt.Errorf("%w: perturbation must be positive, got %v", pendulum.ErrBadConfig, perturbation)
	}

	a := start
	b := start
	b.Pos.X += perturbation
	if _, err := b.BallPosition(cfg); err != nil {
		return 0, err
	}

	d0 := perturbation
	n := pendulum.Steps(cfg, duration)
	sumLog := 0.0
	count := 0

	for i := 0; i < n; i++ {
		var err error
		if a, err = pendulum.Step(a, cfg, magnets); err != nil {
			return 0, err
		}
		if b, err = pendulum.Step(b, cfg, magnets); err != nil {
			return 0, err
		}

		sep := separation(a, b)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		if sep > cfg.RopeLength {
			scale := d0 / sep
			b.Pos = a.Pos.Add(b.Pos.Sub(a.Pos).Scale(scale))
			b.Vel = a.Vel.Add(b.Vel.Sub(a.Vel).Scale(scale))
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * cfg.MicroStep), nil
}

// separation is the distance between two states in combined
// position-velocity space.
func separation(a, b pendulum.State) float64 {
	dp := a.Pos.DistanceSquared(b.Pos)
	dv := a.Vel.Sub(b.Vel).LengthSquared()
	return math.Sqrt(dp + dv)
}
