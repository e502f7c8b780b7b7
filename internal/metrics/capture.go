package metrics

import (
	"github.com/san-kum/magpen/internal/pendulum"
)

// FinalCapture reports the tag of the magnet nearest the last observed
// position, the same rule basin classification applies after settling.
// The value is -1 until something is observed or when there are no
// magnets.
type FinalCapture struct {
	name    string
	magnets []pendulum.Magnet
	tag     int
}

func NewFinalCapture(magnets []pendulum.Magnet) *FinalCapture {
	return &FinalCapture{
		name:    "final_magnet",
		magnets: magnets,
		tag:     -1,
	}
}

func (f *FinalCapture) Name() string { return f.name }

func (f *FinalCapture) Observe(s pendulum.State, t float64) {
	idx, _ := pendulum.ClosestMagnet(s.Pos, f.magnets)
	if idx < 0 {
		f.tag = -1
		return
	}
	f.tag = f.magnets[idx].Tag
}

func (f *FinalCapture) Value() float64 {
	return float64(f.tag)
}

func (f *FinalCapture) Reset() {
	f.tag = -1
}

// Default is the standard metric set for a trajectory run.
func Default(cfg pendulum.Config, magnets []pendulum.Magnet) []pendulum.Metric {
	return []pendulum.Metric{
		NewEnergyDrift(cfg, magnets),
		NewPathLength(),
		NewMaxSpeed(),
		NewSettled(0.05),
		NewFinalCapture(magnets),
	}
}
