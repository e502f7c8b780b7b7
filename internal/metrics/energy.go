package metrics

import (
	"math"

	"github.com/san-kum/magpen/internal/pendulum"
)

// EnergyDrift tracks the largest relative deviation of total energy
// from its value at the first observed state. Drag makes some decay
// expected; sudden spikes point at a step size too coarse for the
// magnet strength.
type EnergyDrift struct {
	name    string
	cfg     pendulum.Config
	magnets []pendulum.Magnet

	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(cfg pendulum.Config, magnets []pendulum.Magnet) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		cfg:     cfg,
		magnets: magnets,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s pendulum.State, t float64) {
	energy, err := s.Energy(e.cfg, e.magnets)
	if err != nil {
		return
	}

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
