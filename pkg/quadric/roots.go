package quadric

import "math"

// Roots holds the two real roots of a quadratic, ordered Near <= Far.
// A repeated (tangent) root has Near == Far.
type Roots struct {
	Near float64
	Far  float64
}

// SolveQuadratic solves a*t^2 + b*t + c = 0 for real t.
//
// ok is false when there is no real root. When a is exactly zero the
// equation collapses to b*t + c = 0 and its single root is returned as a
// repeated root; if b is zero as well there is nothing to solve. A tiny
// but nonzero a stays quadratic: c/q is then the accurate finite root and
// q/a the distant one.
func SolveQuadratic(a, b, c float64) (roots Roots, ok bool) {
	if a == 0 {
		if b == 0 {
			return Roots{}, false
		}
		t := -c / b
		return Roots{Near: t, Far: t}, true
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return Roots{}, false
	}
	// q carries the sign of b so the two terms never cancel; the roots
	// are q/a and c/q, the same pair as (-b ± sqrt(disc)) / 2a.
	sq := math.Sqrt(disc)
	q := -0.5 * (b + math.Copysign(sq, b))
	if q == 0 {
		return Roots{}, true
	}
	t1 := q / a
	t2 := c / q
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return Roots{Near: t1, Far: t2}, true
}
