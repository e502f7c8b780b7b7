package metrics

import (
	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

// PathLength accumulates the horizontal distance traveled by the ball
// between observed samples.
type PathLength struct {
	name    string
	prev    vec.Vec2
	total   float64
	samples int
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(s pendulum.State, t float64) {
	if p.samples > 0 {
		p.total += p.prev.Distance(s.Pos)
	}
	p.prev = s.Pos
	p.samples++
}

func (p *PathLength) Value() float64 {
	return p.total
}

func (p *PathLength) Reset() {
	p.prev = vec.Vec2{}
	p.total = 0
	p.samples = 0
}

// MaxSpeed records the peak ball speed seen so far.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s pendulum.State, t float64) {
	if v := s.Vel.Length(); v > m.max {
		m.max = v
	}
}

func (m *MaxSpeed) Value() float64 {
	return m.max
}

func (m *MaxSpeed) Reset() {
	m.max = 0
}
