package pendulum

import (
	"context"
	"fmt"
	"math"
)

// Metric observes sampled states during a run and reduces them to a
// single number.
type Metric interface {
	Name() string
	Observe(s State, t float64)
	Value() float64
	Reset()
}

// RunResult is a sampled trajectory with the metric values computed
// over it.
type RunResult struct {
	Times   []float64
	States  []State
	Metrics map[string]float64
}

// Run advances a state for duration seconds of requested time, sampling
// the trajectory every `every` seconds and feeding each sample to the
// metrics. Reported times are simulated seconds, so with TimeScale
// other than 1 they differ from the requested duration.
func Run(ctx context.Context, s State, cfg Config, magnets []Magnet, duration, every float64, metrics []Metric) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 || every <= 0 {
		return nil, fmt.Errorf("%w: duration and sample interval must be positive", ErrBadConfig)
	}
	for _, m := range metrics {
		m.Reset()
	}

	res := &RunResult{Metrics: make(map[string]float64)}
	record := func(t float64, s State) {
		res.Times = append(res.Times, t)
		res.States = append(res.States, s)
		for _, m := range metrics {
			m.Observe(s, t)
		}
	}
	record(0, s)

	sampleTime := float64(Steps(cfg, every)) * cfg.MicroStep
	samples := int(math.Floor(duration/every + 1e-9))
	for i := 1; i <= samples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := Advance(s, cfg, magnets, every)
		if err != nil {
			return nil, err
		}
		s = next
		record(float64(i)*sampleTime, s)
	}

	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
