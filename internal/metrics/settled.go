package metrics

import (
	"github.com/san-kum/magpen/internal/pendulum"
)

// Settled measures the fraction of samples whose speed stays below a
// threshold, a rough indicator of how quickly the ball stops swinging.
type Settled struct {
	name      string
	threshold float64
	slow      int
	samples   int
}

func NewSettled(threshold float64) *Settled {
	return &Settled{name: "settled", threshold: threshold}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) Observe(st pendulum.State, t float64) {
	s.samples++
	if st.Vel.Length() < s.threshold {
		s.slow++
	}
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.slow) / float64(s.samples)
}

func (s *Settled) Reset() {
	s.slow = 0
	s.samples = 0
}
