package vec

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, -4}

	if got := a.Add(b); got != (Vec2{4, -2}) {
		t.Errorf("Add = %v, want {4 -2}", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 6}) {
		t.Errorf("Sub = %v, want {-2 6}", got)
	}
	if got := a.Scale(-2); got != (Vec2{-2, -4}) {
		t.Errorf("Scale = %v, want {-2 -4}", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
}

func TestVec2_Length(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{Vec2{3, 4}, 5},
		{Vec2{-3, 4}, 5},
		{Vec2{0, 0}, 0},
		{Vec2{1, 0}, 1},
	}

	for _, tt := range tests {
		if got := tt.v.Length(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Length(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.LengthSquared(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("LengthSquared(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestVec2_Distance(t *testing.T) {
	a := Vec2{1, 1}
	b := Vec2{4, 5}
	if got := a.Distance(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := a.DistanceSquared(b); math.Abs(got-25) > 1e-12 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
}

func TestVec2_NormalizeOrZero(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"unit x", Vec2{5, 0}, Vec2{1, 0}},
		{"diagonal", Vec2{3, 4}, Vec2{0.6, 0.8}},
		{"negative", Vec2{0, -2}, Vec2{0, -1}},
		{"zero", Vec2{0, 0}, Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.NormalizeOrZero()
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("NormalizeOrZero(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3_NormalizeOrZero(t *testing.T) {
	v := Vec3{2, -2, 1}
	n := v.NormalizeOrZero()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	if z := (Vec3{}).NormalizeOrZero(); z != (Vec3{}) {
		t.Errorf("NormalizeOrZero(zero) = %v, want zero", z)
	}
}

func TestVec3_Project(t *testing.T) {
	tests := []struct {
		name string
		v, o Vec3
		want Vec3
	}{
		{"onto x axis", Vec3{1, 1, 0}, Vec3{2, 0, 0}, Vec3{1, 0, 0}},
		{"orthogonal", Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, 0}},
		{"opposed", Vec3{-3, 0, 0}, Vec3{1, 0, 0}, Vec3{-3, 0, 0}},
		{"onto zero", Vec3{1, 2, 3}, Vec3{0, 0, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Project(tt.o)
			if got.Distance(tt.want) > 1e-12 {
				t.Errorf("Project(%v, %v) = %v, want %v", tt.v, tt.o, got, tt.want)
			}
		})
	}
}

func TestVec3_AngleBetween(t *testing.T) {
	tests := []struct {
		name string
		v, o Vec3
		want float64
	}{
		{"parallel", Vec3{1, 0, 0}, Vec3{3, 0, 0}, 0},
		{"antiparallel", Vec3{1, 0, 0}, Vec3{-2, 0, 0}, math.Pi},
		{"orthogonal", Vec3{1, 0, 0}, Vec3{0, 5, 0}, math.Pi / 2},
		{"zero operand", Vec3{0, 0, 0}, Vec3{1, 2, 3}, math.Pi / 2},
		{"both zero", Vec3{0, 0, 0}, Vec3{0, 0, 0}, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AngleBetween(tt.o); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AngleBetween = %v, want %v", got, tt.want)
			}
		})
	}
}

// The dot product of near-parallel vectors can round to just above one;
// the clamp keeps Acos from returning NaN.
func TestVec3_AngleBetweenRounding(t *testing.T) {
	v := Vec3{0.1, 0.2, 0.30000000000000004}
	if got := v.AngleBetween(v.Scale(3)); math.IsNaN(got) || got > 1e-7 {
		t.Errorf("AngleBetween(v, 3v) = %v, want 0", got)
	}
}

func TestVec3_XY(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := v.XY(); got != (Vec2{1, 2}) {
		t.Errorf("XY = %v, want {1 2}", got)
	}
	if got := (Vec2{4, 5}).Vec3(-1); got != (Vec3{4, 5, -1}) {
		t.Errorf("Vec3 = %v, want {4 5 -1}", got)
	}
}
