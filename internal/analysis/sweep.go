package analysis

import (
	"context"

	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

// SweepPoint is the outcome of settling the same start under one
// magnet strength.
type SweepPoint struct {
	Coeff float64
	Tag   int
	Pos   vec.Vec2
}

// CaptureSweep varies the magnet coefficient between from and to and
// records which magnet the start settles on at each strength. Jumps in
// the resulting tags locate basin restructurings.
func CaptureSweep(ctx context.Context, cfg pendulum.Config, magnets []pendulum.Magnet, start pendulum.State, from, to float64, steps int, settle float64) ([]SweepPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	delta := (to - from) / float64(steps-1)

	points := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := cfg
		c.MagnetCoeff = from + float64(i)*delta
		s, err := pendulum.Advance(start, c, magnets, settle)
		if err != nil {
			return nil, err
		}

		idx, _ := pendulum.ClosestMagnet(s.Pos, magnets)
		tag := -1
		if idx >= 0 {
			tag = magnets[idx].Tag
		}
		points = append(points, SweepPoint{Coeff: c.MagnetCoeff, Tag: tag, Pos: s.Pos})
	}

	return points, nil
}
