package frustum

import (
	"math"
	"testing"

	"softraster/internal/mathutil"
)

const (
	testFocal = 1.0
	testHW    = 0.75 // 800x600
)

func newTestFrustum(kind Kind) *Frustum {
	return New(kind, 0.1, 100, testFocal, testHW)
}

func TestCullAndClipEdge_RejectsEdgeBeyondOnePlane(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
	}{
		{"behind near", Edge{mathutil.V3(0, 0, 0.05), mathutil.V3(1, 1, -3)}},
		{"beyond far", Edge{mathutil.V3(0, 0, 150), mathutil.V3(2, 1, 300)}},
		{"left", Edge{mathutil.V3(-10, 0, 1), mathutil.V3(-20, 3, 2)}},
		{"right", Edge{mathutil.V3(10, 0, 1), mathutil.V3(20, -3, 2)}},
		{"below", Edge{mathutil.V3(0, -5, 1), mathutil.V3(1, -8, 3)}},
		{"above", Edge{mathutil.V3(0, 5, 1), mathutil.V3(-1, 8, 3)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFrustum(PerspectiveGL)
			e := tc.edge
			if f.CullAndClipEdge(&e, testFocal, testHW) {
				t.Errorf("edge %v survived clipping", tc.edge)
			}
		})
	}
}

func TestCullAndClipEdge_KeepsInsideEdge(t *testing.T) {
	f := newTestFrustum(PerspectiveDX)
	in := Edge{mathutil.V3(-0.5, 0.2, 2), mathutil.V3(0.5, -0.2, 4)}
	e := in
	if !f.CullAndClipEdge(&e, testFocal, testHW) {
		t.Fatal("inside edge rejected")
	}
	if e != in {
		t.Errorf("inside edge modified: %v -> %v", in, e)
	}
}

func TestCullAndClipEdge_StraddlingOnePlane(t *testing.T) {
	tests := []struct {
		name  string
		plane int
		edge  Edge
		// which endpoint lies outside
		fromOutside bool
	}{
		{"near", 0, Edge{mathutil.V3(0, 0, -1), mathutil.V3(0.2, 0.1, 5)}, true},
		{"far", 1, Edge{mathutil.V3(0, 0, 50), mathutil.V3(0, 0, 250)}, false},
		{"left", 2, Edge{mathutil.V3(-10, 0, 5), mathutil.V3(0, 0, 5)}, true},
		{"right", 3, Edge{mathutil.V3(1, 0.5, 5), mathutil.V3(12, 0.5, 5)}, false},
		{"bottom", 4, Edge{mathutil.V3(0, -9, 5), mathutil.V3(0, 1, 5)}, true},
		{"top", 5, Edge{mathutil.V3(0.3, 0, 5), mathutil.V3(0.3, 9, 5)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFrustum(PerspectiveGL)
			e := tc.edge
			if !f.CullAndClipEdge(&e, testFocal, testHW) {
				t.Fatal("straddling edge rejected")
			}

			moved, kept := e.From, e.To
			origKept := tc.edge.To
			if !tc.fromOutside {
				moved, kept = e.To, e.From
				origKept = tc.edge.From
			}
			if kept != origKept {
				t.Errorf("inside endpoint changed: %v -> %v", origKept, kept)
			}

			p := f.planes(testFocal, testHW)[tc.plane]
			if d := p.distance(moved); math.Abs(d) > 1e-9 {
				t.Errorf("clipped endpoint %v is %g from the plane", moved, d)
			}

			again := e
			if !f.CullAndClipEdge(&again, testFocal, testHW) {
				t.Fatal("re-clipping rejected the clipped edge")
			}
			for i := 0; i < 3; i++ {
				if math.Abs(again.From[i]-e.From[i]) > 1e-9 || math.Abs(again.To[i]-e.To[i]) > 1e-9 {
					t.Fatalf("re-clipping not idempotent: %v -> %v", e, again)
				}
			}
		})
	}
}

func TestCullAndClipEdge_Orthographic(t *testing.T) {
	f := New(Orthographic, 0.1, 100, 0.5, 1)
	// visible half extent is 1/0.5 = 2 world units
	e := Edge{mathutil.V3(-5, 0, 10), mathutil.V3(0, 0, 10)}
	if !f.CullAndClipEdge(&e, 0.5, 1) {
		t.Fatal("edge rejected")
	}
	if math.Abs(e.From[0]+2) > 1e-9 {
		t.Errorf("clipped x = %v, want -2", e.From[0])
	}
	out := Edge{mathutil.V3(3, 0, 10), mathutil.V3(4, 1, 20)}
	if f.CullAndClipEdge(&out, 0.5, 1) {
		t.Error("edge right of the volume survived")
	}
}

func TestProjectEdge_OpticalAxisHitsCenter(t *testing.T) {
	d := NewDimensions(640, 480)
	for _, kind := range []Kind{Orthographic, PerspectiveGL, PerspectiveDX} {
		f := New(kind, 0.1, 100, 1.2, d.HeightOverWidth)
		for _, z := range []float64{0.1, 0.5, 3, 42, 100} {
			e := Edge{mathutil.V3(0, 0, z), mathutil.V3(0, 0, z)}
			f.ProjectEdge(&e, d)
			if math.Abs(e.From[0]-320) > 0.5 || math.Abs(e.From[1]-240) > 0.5 {
				t.Errorf("%v z=%v projected to (%v, %v), want (320, 240)", kind, z, e.From[0], e.From[1])
			}
			if e.From[2] != z {
				t.Errorf("%v: depth %v, want camera depth %v", kind, e.From[2], z)
			}
		}
	}
}

func TestProjectEdge_FlipsVertical(t *testing.T) {
	d := NewDimensions(200, 100)
	f := New(PerspectiveGL, 0.1, 100, 1, d.HeightOverWidth)
	// y = z/focal sits on the top plane
	p := f.ProjectPoint(mathutil.V3(0, 2, 2), d)
	if math.Abs(p[1]) > 1e-9 {
		t.Errorf("top plane maps to row %v, want 0", p[1])
	}
	// x = z/(focal*hw) sits on the right plane
	p = f.ProjectPoint(mathutil.V3(4, 0, 2), d)
	if math.Abs(p[0]-200) > 1e-9 {
		t.Errorf("right plane maps to column %v, want 200", p[0])
	}
}

func TestProjection_DepthRange(t *testing.T) {
	tests := []struct {
		kind          Kind
		atNear, atFar float64
	}{
		{PerspectiveGL, -1, 1},
		{PerspectiveDX, 0, 1},
		{Orthographic, -1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			f := New(tc.kind, 0.5, 20, 1, 1)
			if z := f.Projection.Apply(mathutil.V3(0, 0, 0.5))[2]; math.Abs(z-tc.atNear) > 1e-9 {
				t.Errorf("near maps to %v, want %v", z, tc.atNear)
			}
			if z := f.Projection.Apply(mathutil.V3(0, 0, 20))[2]; math.Abs(z-tc.atFar) > 1e-9 {
				t.Errorf("far maps to %v, want %v", z, tc.atFar)
			}
		})
	}
}

func TestUpdateProjection_FollowsNearFar(t *testing.T) {
	f := New(PerspectiveDX, 1, 10, 1, 1)
	before := f.Projection
	f.Near = 2
	if f.Projection != before {
		t.Fatal("projection must not change until UpdateProjection")
	}
	f.UpdateProjection(1, 1)
	if z := f.Projection.Apply(mathutil.V3(0, 0, 2))[2]; math.Abs(z) > 1e-9 {
		t.Errorf("new near maps to %v, want 0", z)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Orthographic, PerspectiveGL, PerspectiveDX} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("fisheye"); err == nil {
		t.Error("ParseKind(fisheye) should fail")
	}
}

func TestNewDimensions(t *testing.T) {
	d := NewDimensions(800, 600)
	if d.Stride != 800 || d.HalfWidth != 400 || d.HalfHeight != 300 {
		t.Errorf("dims = %+v", d)
	}
	if math.Abs(d.HeightOverWidth-0.75) > 1e-12 || math.Abs(d.WidthOverHeight-4.0/3) > 1e-12 {
		t.Errorf("aspect = %v / %v", d.HeightOverWidth, d.WidthOverHeight)
	}
}
