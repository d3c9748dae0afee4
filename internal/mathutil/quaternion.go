package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatIdentity is the no-rotation quaternion.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatAxisAngle returns the rotation of angle radians around axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(angle * 0.5)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

// Mul returns the Hamilton product q × r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q[3]*r[0] + q[0]*r[3] + q[1]*r[2] - q[2]*r[1],
		q[3]*r[1] - q[0]*r[2] + q[1]*r[3] + q[2]*r[0],
		q[3]*r[2] + q[0]*r[1] - q[1]*r[0] + q[2]*r[3],
		q[3]*r[3] - q[0]*r[0] - q[1]*r[1] - q[2]*r[2],
	}
}

// Normalize rescales q to unit length.
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if l < 1e-12 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
