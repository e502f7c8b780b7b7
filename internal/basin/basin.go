// Package basin evaluates grids of pendulum release points in parallel
// and classifies each by the magnet the particle ends up nearest to,
// which is how the magnetic-pendulum fractal is produced.
package basin

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

// ErrBadGrid indicates unusable grid geometry or magnet setup.
var ErrBadGrid = errors.New("basin: invalid grid")

// Field is a w×h grid of independent particles sharing one configuration.
// Cell (x, y) starts at rest at origin + (x·spacing, y·spacing). Cells
// never interact, so results are independent of how work is split across
// workers.
type Field struct {
	cfg     pendulum.Config
	magnets []pendulum.Magnet
	origin  vec.Vec2
	spacing float64
	w, h    int
	workers int

	states []pendulum.State // row-major
}

// New builds a field of particles at rest. The configuration is validated
// first; the grid corners must all be within tether reach, which covers
// every interior cell.
func New(cfg pendulum.Config, magnets []pendulum.Magnet, origin vec.Vec2, spacing float64, w, h int) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadGrid, w, h)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing %v", ErrBadGrid, spacing)
	}
	if len(magnets) == 0 {
		return nil, fmt.Errorf("%w: need at least one magnet", ErrBadGrid)
	}

	f := &Field{
		cfg:     cfg,
		magnets: magnets,
		origin:  origin,
		spacing: spacing,
		w:       w,
		h:       h,
		workers: runtime.NumCPU(),
	}

	for _, corner := range [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		if _, err := pendulum.NewState(cfg, f.CellPos(corner[0], corner[1])); err != nil {
			return nil, fmt.Errorf("basin: corner (%d,%d): %w", corner[0], corner[1], err)
		}
	}

	f.states = make([]pendulum.State, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.states[y*w+x] = pendulum.State{Pos: f.CellPos(x, y)}
		}
	}
	return f, nil
}

// SetWorkers caps the number of rows advanced concurrently. Values below
// one fall back to one.
func (f *Field) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	f.workers = n
}

// Size returns the grid dimensions.
func (f *Field) Size() (w, h int) { return f.w, f.h }

// CellPos returns the world position of cell (x, y).
func (f *Field) CellPos(x, y int) vec.Vec2 {
	return f.origin.Add(vec.Vec2{X: float64(x) * f.spacing, Y: float64(y) * f.spacing})
}

// State returns the current state of cell (x, y).
func (f *Field) State(x, y int) pendulum.State {
	return f.states[y*f.w+x]
}

// Advance steps every cell by duration d, one row per task. Cancellation
// is honored between rows; a domain violation in any cell aborts the whole
// advance with an error naming the cell.
func (f *Field) Advance(ctx context.Context, d float64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for y := 0; y < f.h; y++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			base := y * f.w
			for x := 0; x < f.w; x++ {
				next, err := pendulum.Advance(f.states[base+x], f.cfg, f.magnets, d)
				if err != nil {
					return fmt.Errorf("basin: cell (%d,%d): %w", x, y, err)
				}
				f.states[base+x] = next
			}
			return nil
		})
	}
	return g.Wait()
}
