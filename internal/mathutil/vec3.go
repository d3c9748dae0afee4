package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// Components are addressed by index: 0 = x, 1 = y, 2 = z.
type Vec3 [3]float64

// V3 builds a Vec3 from its components.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// ScaleAdd returns a + b*s.
func (a Vec3) ScaleAdd(b Vec3, s float64) Vec3 {
	return Vec3{a[0] + b[0]*s, a[1] + b[1]*s, a[2] + b[2]*s}
}

// Lerp returns the point at parameter t on the segment a→b.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// (nearly) zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}
