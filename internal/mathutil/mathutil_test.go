package mathutil

import (
	"math"
	"testing"
)

var identity3 = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearVec(a, b Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestVec3Lerp(t *testing.T) {
	a := V3(0, 2, 4)
	b := V3(10, -2, 8)
	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, V3(5, 0, 6)},
		{0.25, V3(2.5, 1, 5)},
	}
	for _, tc := range tests {
		if got := a.Lerp(b, tc.t); !nearVec(got, tc.want) {
			t.Errorf("Lerp(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestVec3ScaleAdd(t *testing.T) {
	got := V3(1, 1, 1).ScaleAdd(V3(1, 2, 3), 2)
	if !nearVec(got, V3(3, 5, 7)) {
		t.Errorf("ScaleAdd = %v", got)
	}
}

func TestVec3CrossDot(t *testing.T) {
	x, y := V3(1, 0, 0), V3(0, 1, 0)
	if z := x.Cross(y); !nearVec(z, V3(0, 0, 1)) {
		t.Errorf("x × y = %v, want z", z)
	}
	if d := x.Dot(y); d != 0 {
		t.Errorf("x · y = %v, want 0", d)
	}
	if n := V3(0, 0, 0).Normalize(); n != (Vec3{}) {
		t.Errorf("Normalize(0) = %v", n)
	}
}

func TestQuatMatchesRotY(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, -135, 270} {
		a := Deg2Rad(deg)
		q := QuatToMat3(QuatAxisAngle(V3(0, 1, 0), a))
		r := RotY(a)
		for i := range q {
			if !near(q[i], r[i]) {
				t.Fatalf("angle %v: quat matrix %v != RotY %v", deg, q, r)
			}
		}
	}
}

func TestQuatMulComposes(t *testing.T) {
	qa := QuatAxisAngle(V3(1, 0, 0), 0.3)
	qb := QuatAxisAngle(V3(0, 1, 0), -0.7)
	got := QuatToMat3(qa.Mul(qb))
	want := Mat3Mul(RotX(0.3), RotY(-0.7))
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("qa*qb = %v, want %v", got, want)
		}
	}
}

func TestRigidInverse(t *testing.T) {
	m := FromMat3Translation(Mat3Mul(RotX(0.4), RotY(1.1)), V3(3, -2, 5))
	inv := m.RigidInverse()
	p := V3(0.5, 7, -1)
	if got := inv.MulPoint(m.MulPoint(p)); !nearVec(got, p) {
		t.Errorf("inverse round trip = %v, want %v", got, p)
	}
	id := Mat4Mul(inv, m)
	want := FromMat3Translation(identity3, Vec3{})
	for i := range id {
		if !near(id[i], want[i]) {
			t.Fatalf("inv × m = %v", id)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tc := range tests {
		if got := WrapAngle(tc.in); !near(got, tc.want) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRotationTransposeIsInverse(t *testing.T) {
	r := Mat3Mul(RotY(0.7), RotX(-0.3))
	got := Mat3Mul(r, r.Transpose())
	want := identity3
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("R·Rᵀ = %v, want identity", got)
		}
	}
	for i := 0; i < 3; i++ {
		if l := r.Row(i).Len(); !near(l, 1) {
			t.Errorf("row %d length %v", i, l)
		}
	}
}
