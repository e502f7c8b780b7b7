// Package vec provides the small fixed-size vector types used by the
// pendulum model. All operations are value-based and allocation-free.
package vec

import "math"

// Vec2 is a point or direction in the horizontal plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Length() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Distance(o Vec2) float64        { return v.Sub(o).Length() }
func (v Vec2) DistanceSquared(o Vec2) float64 { return v.Sub(o).LengthSquared() }

// NormalizeOrZero returns the unit vector in the direction of v, or the
// zero vector when v has zero length.
func (v Vec2) NormalizeOrZero() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Vec3 lifts v into 3D space at height z.
func (v Vec2) Vec3(z float64) Vec3 { return Vec3{v.X, v.Y, z} }

// Vec3 is a point or direction in 3D space, z up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Length() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Distance(o Vec3) float64        { return v.Sub(o).Length() }
func (v Vec3) DistanceSquared(o Vec3) float64 { return v.Sub(o).LengthSquared() }

// NormalizeOrZero returns the unit vector in the direction of v, or the
// zero vector when v has zero length.
func (v Vec3) NormalizeOrZero() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Project returns the projection of v onto o. Projecting onto the zero
// vector yields the zero vector.
func (v Vec3) Project(o Vec3) Vec3 {
	d := o.LengthSquared()
	if d == 0 {
		return Vec3{}
	}
	return o.Scale(v.Dot(o) / d)
}

// AngleBetween returns the angle between v and o in radians, in [0, π].
// When either vector has zero length the angle is not defined; π/2 is
// returned so that callers comparing against π/2 treat the pair as
// neither aligned nor opposed.
func (v Vec3) AngleBetween(o Vec3) float64 {
	ll := v.Length() * o.Length()
	if ll == 0 {
		return math.Pi / 2
	}
	c := v.Dot(o) / ll
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// XY drops the vertical component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }
