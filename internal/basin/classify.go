package basin

import (
	"context"

	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

// Result is a classified grid: the winning magnet tag per cell and the
// squared horizontal distance to it. Cells are row-major.
type Result struct {
	W, H   int
	Tags   []int
	DistSq []float64
}

// Classify assigns every cell the tag of its nearest magnet by horizontal
// distance. Ties keep the earliest magnet. The field keeps advancing
// afterwards; classification is a snapshot.
func (f *Field) Classify() *Result {
	r := &Result{
		W:      f.w,
		H:      f.h,
		Tags:   make([]int, len(f.states)),
		DistSq: make([]float64, len(f.states)),
	}
	for i, s := range f.states {
		idx, d2 := pendulum.ClosestMagnet(s.Pos, f.magnets)
		r.Tags[i] = f.magnets[idx].Tag
		r.DistSq[i] = d2
	}
	return r
}

// At returns the tag of cell (x, y).
func (r *Result) At(x, y int) int { return r.Tags[y*r.W+x] }

// Counts returns how many cells each tag won.
func (r *Result) Counts() map[int]int {
	counts := make(map[int]int)
	for _, tag := range r.Tags {
		counts[tag]++
	}
	return counts
}

// Classify builds a field, settles it for the given duration and returns
// the classified grid in one call.
func Classify(ctx context.Context, cfg pendulum.Config, magnets []pendulum.Magnet, origin vec.Vec2, spacing float64, w, h int, settle float64) (*Result, error) {
	f, err := New(cfg, magnets, origin, spacing, w, h)
	if err != nil {
		return nil, err
	}
	if err := f.Advance(ctx, settle); err != nil {
		return nil, err
	}
	return f.Classify(), nil
}

// GridAround returns the origin and spacing of a w×h grid of cells one
// pixel apart centered on c at ppm pixels per meter, the same mapping a
// screen uses: world = (pixel − center) / ppm.
func GridAround(c vec.Vec2, ppm float64, w, h int) (vec.Vec2, float64) {
	spacing := 1 / ppm
	origin := c.Sub(vec.Vec2{X: float64(w) / 2 * spacing, Y: float64(h) / 2 * spacing})
	return origin, spacing
}
