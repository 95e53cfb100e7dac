package config

import (
	"fmt"
	"math"

	"quadcheck/pkg/geom"
	"quadcheck/pkg/quadric"
)

// SurfaceConfig selects a surface and optionally overrides the
// parameters of its demo shape. Unset fields keep the demo values.
type SurfaceConfig struct {
	Kind string `yaml:"kind"`

	Radius       *float64  `yaml:"radius,omitempty"`
	ZMin         *float64  `yaml:"z_min,omitempty"`
	ZMax         *float64  `yaml:"z_max,omitempty"`
	Slope        *float64  `yaml:"slope,omitempty"`
	HalfAngleDeg *float64  `yaml:"half_angle_deg,omitempty"`
	R1           *float64  `yaml:"r1,omitempty"`
	R2           *float64  `yaml:"r2,omitempty"`
	Length       *float64  `yaml:"length,omitempty"`
	Center       []float64 `yaml:"center,flow,omitempty"`

	// Optional placement; both default to the canonical frame.
	Base []float64 `yaml:"base,flow,omitempty"`
	Axis []float64 `yaml:"axis,flow,omitempty"`
}

func pick(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func vec(name string, v []float64) (geom.Vector3, error) {
	if len(v) != 3 {
		return geom.Vector3{}, fmt.Errorf("%s needs 3 coordinates, got %d", name, len(v))
	}
	return geom.V(v[0], v[1], v[2]), nil
}

// Build turns the configuration into a validated surface
func (sc SurfaceConfig) Build() (quadric.Surface, error) {
	kind, err := quadric.ParseKind(sc.Kind)
	if err != nil {
		return nil, err
	}
	demo, err := quadric.Named(kind)
	if err != nil {
		return nil, err
	}

	var s quadric.Surface
	switch d := demo.(type) {
	case quadric.Sphere:
		sp, err := quadric.NewSphere(pick(sc.Radius, d.Radius))
		if err != nil {
			return nil, err
		}
		if sc.Center != nil {
			if sp.Center, err = vec("center", sc.Center); err != nil {
				return nil, fmt.Errorf("%w: %v", quadric.ErrInvalidSurface, err)
			}
		}
		s = sp
	case quadric.Cylinder:
		s, err = quadric.NewCylinder(pick(sc.Radius, d.Radius), pick(sc.ZMin, d.ZMin), pick(sc.ZMax, d.ZMax))
	case quadric.Cone:
		zMin, zMax := pick(sc.ZMin, d.ZMin), pick(sc.ZMax, d.ZMax)
		if sc.HalfAngleDeg != nil {
			if sc.Slope != nil {
				return nil, fmt.Errorf("%w: cone takes slope or half_angle_deg, not both", quadric.ErrInvalidSurface)
			}
			s, err = quadric.NewConeFromAngle(*sc.HalfAngleDeg*math.Pi/180, zMin, zMax)
		} else {
			s, err = quadric.NewCone(pick(sc.Slope, d.Slope), zMin, zMax)
		}
	case quadric.TaperedCylinder:
		s, err = quadric.NewTaperedCylinder(pick(sc.R1, d.R1), pick(sc.R2, d.R2), pick(sc.Length, d.Length))
	default:
		return nil, fmt.Errorf("%w: no builder for %s", quadric.ErrInvalidSurface, kind)
	}
	if err != nil {
		return nil, err
	}

	if sc.Base == nil && sc.Axis == nil {
		return s, nil
	}
	base, axis := geom.Vector3{}, geom.V(0, 0, 1)
	if sc.Base != nil {
		if base, err = vec("base", sc.Base); err != nil {
			return nil, fmt.Errorf("%w: %v", quadric.ErrInvalidSurface, err)
		}
	}
	if sc.Axis != nil {
		if axis, err = vec("axis", sc.Axis); err != nil {
			return nil, fmt.Errorf("%w: %v", quadric.ErrInvalidSurface, err)
		}
	}
	placed, err := quadric.NewPlaced(s, base, axis)
	if err != nil {
		return nil, err
	}
	return placed, nil
}
