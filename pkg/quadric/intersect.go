package quadric

import (
	"fmt"
	"strings"

	"quadcheck/pkg/geom"
)

// Policy decides which of the two roots may be reported as a hit
type Policy int

const (
	// PolicyNearestValid tries the near root and falls back to the far
	// one, so a ray can hit the back wall of a capped surface.
	PolicyNearestValid Policy = iota
	// PolicyNearOnly only ever considers the near root; if it falls
	// outside the valid range the ray misses even when the far root hits.
	PolicyNearOnly
)

var policyNames = map[Policy]string{
	PolicyNearestValid: "nearest",
	PolicyNearOnly:     "near-only",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts "nearest" (or "") and "near-only"
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest", "nearest-valid":
		return PolicyNearestValid, nil
	case "near-only", "near_only", "nearonly":
		return PolicyNearOnly, nil
	}
	return 0, fmt.Errorf("unknown root policy %q", s)
}

// Intersector runs ray/surface queries under a root selection policy.
// The zero value uses PolicyNearestValid.
type Intersector struct {
	Policy Policy
}

// Intersect returns the distance along ray to the first valid hit on s.
// ok is false on a miss. A reported t is never negative.
func (in Intersector) Intersect(ray geom.Ray, s Surface) (t float64, ok bool) {
	a, b, c := s.coefficients(ray)
	roots, ok := SolveQuadratic(a, b, c)
	if !ok {
		return 0, false
	}
	if accept(ray, s, roots.Near) {
		return roots.Near, true
	}
	if in.Policy == PolicyNearOnly || roots.Far == roots.Near {
		return 0, false
	}
	if accept(ray, s, roots.Far) {
		return roots.Far, true
	}
	return 0, false
}

func accept(ray geom.Ray, s Surface, t float64) bool {
	return t >= 0 && s.inRange(ray.At(t))
}

// Intersect is Intersector{}.Intersect
func Intersect(ray geom.Ray, s Surface) (float64, bool) {
	return Intersector{}.Intersect(ray, s)
}
