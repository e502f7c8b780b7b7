package pendulum

import (
	"math"

	"github.com/san-kum/magpen/internal/vec"
)

// Magnet is a fixed point attractor. Tag identifies the magnet in
// classification results; magnets sharing a tag share a basin.
type Magnet struct {
	Position vec.Vec3
	Tag      int
}

// Ring places n magnets evenly on a horizontal circle of the given radius
// at the given height, starting phaseDeg degrees counterclockwise from the
// x axis. Tags run 0..n-1 in placement order.
func Ring(n int, radius, height, phaseDeg float64) []Magnet {
	magnets := make([]Magnet, 0, n)
	for i := 0; i < n; i++ {
		a := (phaseDeg + float64(i)*360/float64(n)) * math.Pi / 180
		magnets = append(magnets, Magnet{
			Position: vec.Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: height},
			Tag:      i,
		})
	}
	return magnets
}

// ClosestMagnet returns the index of the magnet nearest to the horizontal
// position pos, together with the squared horizontal distance to it. Ties
// keep the earliest magnet. An empty slice yields -1.
func ClosestMagnet(pos vec.Vec2, magnets []Magnet) (int, float64) {
	idx, min := -1, math.MaxFloat64
	for i, m := range magnets {
		if d := pos.DistanceSquared(m.Position.XY()); d < min {
			min, idx = d, i
		}
	}
	return idx, min
}
