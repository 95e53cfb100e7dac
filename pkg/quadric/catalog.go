package quadric

import (
	"fmt"
	"strings"
)

// Named returns the built-in demo surface for kind, sized to sit
// within the [-1, 1] image plane.
func Named(kind Kind) (Surface, error) {
	switch kind {
	case KindSphere:
		return Sphere{Radius: 0.4}, nil
	case KindCylinder:
		return Cylinder{Radius: 0.5, ZMin: -0.5, ZMax: 0.5}, nil
	case KindCone:
		return Cone{Slope: 0.5, ZMin: 0, ZMax: 0.5}, nil
	case KindTaperedCylinder:
		return TaperedCylinder{R1: 0.5, R2: 0, Length: 0.9}, nil
	}
	return nil, fmt.Errorf("%w: unknown surface kind %q", ErrInvalidSurface, kind)
}

// ParseKind maps a name like "tapered-cylinder" onto a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sphere":
		return KindSphere, nil
	case "cylinder":
		return KindCylinder, nil
	case "cone":
		return KindCone, nil
	case "tapered_cylinder", "tapered-cylinder", "tapered":
		return KindTaperedCylinder, nil
	}
	return "", fmt.Errorf("%w: unknown surface kind %q", ErrInvalidSurface, name)
}
