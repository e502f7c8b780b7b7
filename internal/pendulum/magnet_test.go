package pendulum

import (
	"math"
	"testing"

	"github.com/san-kum/magpen/internal/vec"
)

func TestRing(t *testing.T) {
	magnets := Ring(3, 0.04, 0.04, 30)
	if len(magnets) != 3 {
		t.Fatalf("Ring(3, ...) returned %d magnets", len(magnets))
	}

	wantAngles := []float64{30, 150, 270}
	for i, m := range magnets {
		if m.Tag != i {
			t.Errorf("magnet %d has tag %d", i, m.Tag)
		}
		if m.Position.Z != 0.04 {
			t.Errorf("magnet %d height = %v, want 0.04", i, m.Position.Z)
		}

		a := wantAngles[i] * math.Pi / 180
		want := vec.Vec2{X: 0.04 * math.Cos(a), Y: 0.04 * math.Sin(a)}
		if m.Position.XY().Distance(want) > 1e-12 {
			t.Errorf("magnet %d at %v, want %v", i, m.Position.XY(), want)
		}
		if r := m.Position.XY().Length(); math.Abs(r-0.04) > 1e-12 {
			t.Errorf("magnet %d radius = %v, want 0.04", i, r)
		}
	}
}

func TestRing_SingleMagnet(t *testing.T) {
	magnets := Ring(1, 0.1, 0.05, 0)
	if len(magnets) != 1 {
		t.Fatalf("Ring(1, ...) returned %d magnets", len(magnets))
	}
	want := vec.Vec3{X: 0.1, Y: 0, Z: 0.05}
	if magnets[0].Position.Distance(want) > 1e-12 {
		t.Errorf("magnet at %v, want %v", magnets[0].Position, want)
	}
}

func TestClosestMagnet(t *testing.T) {
	magnets := []Magnet{
		{Position: vec.Vec3{X: 1, Y: 0, Z: 0.5}, Tag: 0},
		{Position: vec.Vec3{X: -1, Y: 0, Z: 0.5}, Tag: 1},
		{Position: vec.Vec3{X: 0, Y: 2, Z: 0.5}, Tag: 2},
	}

	tests := []struct {
		name string
		pos  vec.Vec2
		want int
	}{
		{"near first", vec.Vec2{X: 0.9, Y: 0.1}, 0},
		{"near second", vec.Vec2{X: -1.2, Y: 0}, 1},
		{"near third", vec.Vec2{X: 0.1, Y: 1.5}, 2},
		{"equidistant keeps first", vec.Vec2{X: 0, Y: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, distSq := ClosestMagnet(tt.pos, magnets)
			if got != tt.want {
				t.Errorf("ClosestMagnet(%v) = %d, want %d", tt.pos, got, tt.want)
			}
			want := tt.pos.DistanceSquared(magnets[got].Position.XY())
			if distSq != want {
				t.Errorf("distSq = %v, want %v", distSq, want)
			}
		})
	}
}

func TestClosestMagnet_Empty(t *testing.T) {
	if idx, _ := ClosestMagnet(vec.Vec2{}, nil); idx != -1 {
		t.Errorf("ClosestMagnet with no magnets = %d, want -1", idx)
	}
}

// The classification uses horizontal distance only: a magnet floating far
// above a point must still win on x, y.
func TestClosestMagnet_IgnoresHeight(t *testing.T) {
	magnets := []Magnet{
		{Position: vec.Vec3{X: 0.01, Y: 0, Z: 10}, Tag: 0},
		{Position: vec.Vec3{X: 5, Y: 0, Z: 0}, Tag: 1},
	}
	if idx, _ := ClosestMagnet(vec.Vec2{}, magnets); idx != 0 {
		t.Errorf("ClosestMagnet = %d, want 0", idx)
	}
}
