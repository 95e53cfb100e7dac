package quadric

import (
	"math"
	"testing"

	"quadcheck/pkg/geom"
)

func TestSolveQuadratic(t *testing.T) {
	cases := []struct {
		name      string
		a, b, c   float64
		ok        bool
		near, far float64
	}{
		{"two roots", 1, -4, 3.75, true, 1.5, 2.5},
		{"negative leading coefficient", -1, 0, 1, true, -1, 1},
		{"tangent", 1, -4, 4, true, 2, 2},
		{"no real roots", 1, 0, 1, false, 0, 0},
		{"linear", 0, 2, -3, true, 1.5, 1.5},
		{"nothing to solve", 0, 0, 5, false, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := SolveQuadratic(tc.a, tc.b, tc.c)
			if ok != tc.ok {
				t.Fatalf("ok=%v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if r.Near != tc.near || r.Far != tc.far {
				t.Fatalf("roots %+v, want near=%g far=%g", r, tc.near, tc.far)
			}
			if r.Near > r.Far {
				t.Fatalf("roots not ordered: %+v", r)
			}
		})
	}
}

func TestSolveQuadraticTinyLeadingCoefficient(t *testing.T) {
	// 1e-14 t^2 - t + 2 = 0 has roots near 2 and near 1e14
	r, ok := SolveQuadratic(1e-14, -1, 2)
	if !ok {
		t.Fatal("expected two roots")
	}
	if math.Abs(r.Near-2) > 1e-12 {
		t.Fatalf("near root %.17g, want 2", r.Near)
	}
	if math.Abs(r.Far-1e14)/1e14 > 1e-9 {
		t.Fatalf("far root %.17g, want 1e14", r.Far)
	}
	for _, root := range []float64{r.Near, r.Far} {
		if res := 1e-14*root*root - root + 2; math.Abs(res) > 1e-6*math.Max(1, root) {
			t.Fatalf("root %g leaves residual %g", root, res)
		}
	}
}

func TestSolveQuadraticFarHitsStayOnSurface(t *testing.T) {
	cases := []struct {
		name    string
		surface Surface
		origin  geom.Vector3
		dir     geom.Vector3
		want    float64
	}{
		{
			name:    "long cylinder nearly along its axis",
			surface: Cylinder{Radius: 0.5, ZMin: -1, ZMax: 1e7},
			origin:  geom.V(0.3, 0, -1),
			dir:     geom.V(1e-7, 0, 1),
			want:    2e6,
		},
		{
			name:    "very wide tapered cylinder",
			surface: TaperedCylinder{R1: 1e7, R2: 1e7, Length: 1},
			origin:  geom.V(0, -2e7, 0.5),
			dir:     geom.V(0, 1, 0),
			want:    1e7,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := mustRay(t, tc.origin, tc.dir)
			got, ok := Intersect(r, tc.surface)
			if !ok {
				t.Fatal("expected a hit")
			}
			if math.Abs(got-tc.want)/tc.want > 1e-6 {
				t.Fatalf("t=%.17g, want %g", got, tc.want)
			}
			if res := Residual(tc.surface, r.At(got)); math.Abs(res) > 1e-6 {
				t.Fatalf("hit at t=%g is off the surface: residual %g", got, res)
			}
		})
	}
}
