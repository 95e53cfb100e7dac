package quadric

import (
	"errors"
	"fmt"
	"math"

	"quadcheck/pkg/geom"
)

// ErrInvalidSurface is wrapped by every constructor validation error
var ErrInvalidSurface = errors.New("invalid surface")

// Kind names a surface variant
type Kind string

const (
	KindSphere          Kind = "sphere"
	KindCylinder        Kind = "cylinder"
	KindCone            Kind = "cone"
	KindTaperedCylinder Kind = "tapered_cylinder"
)

// Kinds lists the variants in a stable order
var Kinds = []Kind{KindSphere, KindCylinder, KindCone, KindTaperedCylinder}

// Surface is one of the closed set of quadric variants in this package.
//
// Each variant knows how to turn a ray into the coefficients of
// A*t^2 + B*t + C = 0, how to evaluate its implicit equation at a point
// and whether a point lies within its truncation bounds.
type Surface interface {
	Kind() Kind
	coefficients(r geom.Ray) (a, b, c float64)
	residual(p geom.Vector3) float64
	inRange(p geom.Vector3) bool
}

// Sphere of radius Radius around Center
type Sphere struct {
	Center geom.Vector3
	Radius float64
}

// NewSphere returns a sphere centred at the origin
func NewSphere(radius float64) (Sphere, error) {
	if !(radius > 0) {
		return Sphere{}, fmt.Errorf("%w: sphere radius must be > 0, got %g", ErrInvalidSurface, radius)
	}
	return Sphere{Radius: radius}, nil
}

func (s Sphere) Kind() Kind { return KindSphere }

func (s Sphere) coefficients(r geom.Ray) (a, b, c float64) {
	l := r.Origin.Sub(s.Center)
	a = r.Direction.Dot(r.Direction)
	b = 2 * r.Direction.Dot(l)
	c = l.Dot(l) - s.Radius*s.Radius
	return a, b, c
}

func (s Sphere) residual(p geom.Vector3) float64 {
	l := p.Sub(s.Center)
	return l.Dot(l) - s.Radius*s.Radius
}

func (s Sphere) inRange(geom.Vector3) bool { return true }

// Cylinder around the Z axis, truncated to ZMin <= z <= ZMax
type Cylinder struct {
	Radius     float64
	ZMin, ZMax float64
}

func NewCylinder(radius, zMin, zMax float64) (Cylinder, error) {
	if !(radius > 0) {
		return Cylinder{}, fmt.Errorf("%w: cylinder radius must be > 0, got %g", ErrInvalidSurface, radius)
	}
	if !(zMin < zMax) {
		return Cylinder{}, fmt.Errorf("%w: cylinder needs zMin < zMax, got [%g, %g]", ErrInvalidSurface, zMin, zMax)
	}
	return Cylinder{Radius: radius, ZMin: zMin, ZMax: zMax}, nil
}

func (cy Cylinder) Kind() Kind { return KindCylinder }

func (cy Cylinder) coefficients(r geom.Ray) (a, b, c float64) {
	o, d := r.Origin, r.Direction
	a = d.X*d.X + d.Y*d.Y
	b = 2 * (d.X*o.X + d.Y*o.Y)
	c = o.X*o.X + o.Y*o.Y - cy.Radius*cy.Radius
	return a, b, c
}

func (cy Cylinder) residual(p geom.Vector3) float64 {
	return p.X*p.X + p.Y*p.Y - cy.Radius*cy.Radius
}

func (cy Cylinder) inRange(p geom.Vector3) bool {
	return p.Z >= cy.ZMin && p.Z <= cy.ZMax
}

// Cone with its apex at the origin opening along Z: x^2 + y^2 = (Slope*z)^2.
// Slope is the tangent of the half angle. Both nappes exist; ZMin and ZMax
// choose which part is kept.
type Cone struct {
	Slope      float64
	ZMin, ZMax float64
}

func NewCone(slope, zMin, zMax float64) (Cone, error) {
	if !(slope > 0) || math.IsInf(slope, 0) {
		return Cone{}, fmt.Errorf("%w: cone slope must be finite and > 0, got %g", ErrInvalidSurface, slope)
	}
	if !(zMin < zMax) {
		return Cone{}, fmt.Errorf("%w: cone needs zMin < zMax, got [%g, %g]", ErrInvalidSurface, zMin, zMax)
	}
	return Cone{Slope: slope, ZMin: zMin, ZMax: zMax}, nil
}

// NewConeFromAngle builds a cone from its half angle in radians
func NewConeFromAngle(halfAngle, zMin, zMax float64) (Cone, error) {
	if !(halfAngle > 0 && halfAngle < math.Pi/2) {
		return Cone{}, fmt.Errorf("%w: cone half angle must be in (0, pi/2), got %g", ErrInvalidSurface, halfAngle)
	}
	return NewCone(math.Tan(halfAngle), zMin, zMax)
}

func (cn Cone) Kind() Kind { return KindCone }

func (cn Cone) coefficients(r geom.Ray) (a, b, c float64) {
	o, d := r.Origin, r.Direction
	k := cn.Slope * cn.Slope
	a = d.X*d.X + d.Y*d.Y - k*d.Z*d.Z
	b = 2 * (d.X*o.X + d.Y*o.Y - k*d.Z*o.Z)
	c = o.X*o.X + o.Y*o.Y - k*o.Z*o.Z
	return a, b, c
}

func (cn Cone) residual(p geom.Vector3) float64 {
	return p.X*p.X + p.Y*p.Y - cn.Slope*cn.Slope*p.Z*p.Z
}

func (cn Cone) inRange(p geom.Vector3) bool {
	return p.Z >= cn.ZMin && p.Z <= cn.ZMax
}

// TaperedCylinder runs along +Z from z=0 (radius R1) to z=Length
// (radius R2), the radius changing linearly in between.
//
// It is the cone (x^2+y^2)/R1^2 = (1 - h*z)^2 with h = (R1-R2)/(R1*Length),
// clipped to 0 <= z <= Length.
type TaperedCylinder struct {
	R1, R2 float64
	Length float64
}

func NewTaperedCylinder(r1, r2, length float64) (TaperedCylinder, error) {
	if !(r1 > 0) {
		return TaperedCylinder{}, fmt.Errorf("%w: tapered cylinder r1 must be > 0, got %g", ErrInvalidSurface, r1)
	}
	if !(r2 >= 0) {
		return TaperedCylinder{}, fmt.Errorf("%w: tapered cylinder r2 must be >= 0, got %g", ErrInvalidSurface, r2)
	}
	if !(length > 0) {
		return TaperedCylinder{}, fmt.Errorf("%w: tapered cylinder length must be > 0, got %g", ErrInvalidSurface, length)
	}
	return TaperedCylinder{R1: r1, R2: r2, Length: length}, nil
}

func (tc TaperedCylinder) Kind() Kind { return KindTaperedCylinder }

func (tc TaperedCylinder) slope() float64 {
	return (tc.R1 - tc.R2) / (tc.R1 * tc.Length)
}

// RadiusAt returns the radius of the cross section at height z
func (tc TaperedCylinder) RadiusAt(z float64) float64 {
	return tc.R1 * (1 - tc.slope()*z)
}

func (tc TaperedCylinder) coefficients(r geom.Ray) (a, b, c float64) {
	o, d := r.Origin, r.Direction
	inv := 1 / (tc.R1 * tc.R1)
	h := tc.slope()
	a = inv*(d.X*d.X+d.Y*d.Y) - h*h*d.Z*d.Z
	b = 2 * (inv*(d.X*o.X+d.Y*o.Y) - h*d.Z*(h*o.Z-1))
	c = inv*(o.X*o.X+o.Y*o.Y) - h*o.Z*(h*o.Z-2) - 1
	return a, b, c
}

func (tc TaperedCylinder) residual(p geom.Vector3) float64 {
	inv := 1 / (tc.R1 * tc.R1)
	w := 1 - tc.slope()*p.Z
	return inv*(p.X*p.X+p.Y*p.Y) - w*w
}

func (tc TaperedCylinder) inRange(p geom.Vector3) bool {
	return p.Z >= 0 && p.Z <= tc.Length
}

// Residual evaluates the implicit equation of s at p; it is zero on the
// untruncated surface.
func Residual(s Surface, p geom.Vector3) float64 {
	return s.residual(p)
}

// Contains reports whether p lies inside the truncation bounds of s.
func Contains(s Surface, p geom.Vector3) bool {
	return s.inRange(p)
}
