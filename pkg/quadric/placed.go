package quadric

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"quadcheck/pkg/geom"
)

// Placed positions a canonical surface in the world: its local origin
// moves to Base and its local +Z axis turns onto Axis. The transform is
// rigid, so hit distances along a ray are the same in both frames.
//
// The fields are fixed at construction; build values with NewPlaced.
type Placed struct {
	surface Surface
	base    geom.Vector3
	axis    geom.Vector3

	toLocal mgl64.Mat3
}

// NewPlaced places s at base with its axis along axis
func NewPlaced(s Surface, base, axis geom.Vector3) (Placed, error) {
	if s == nil {
		return Placed{}, fmt.Errorf("%w: nothing to place", ErrInvalidSurface)
	}
	if _, nested := s.(Placed); nested {
		return Placed{}, fmt.Errorf("%w: placed surfaces cannot be nested", ErrInvalidSurface)
	}
	w, err := axis.Normalize()
	if err != nil {
		return Placed{}, fmt.Errorf("%w: placement axis: %v", ErrInvalidSurface, err)
	}
	return Placed{
		surface: s,
		base:    base,
		axis:    w,
		toLocal: worldToLocal(toVec(w)),
	}, nil
}

// Surface returns the canonical surface being placed
func (p Placed) Surface() Surface { return p.surface }

// Base returns the world position of the surface's local origin
func (p Placed) Base() geom.Vector3 { return p.base }

// Axis returns the unit world direction of the surface's local +Z axis
func (p Placed) Axis() geom.Vector3 { return p.axis }

// worldToLocal builds the rotation taking w onto +Z. Its rows are an
// orthonormal basis (u, v, w) of the local frame.
func worldToLocal(w mgl64.Vec3) mgl64.Mat3 {
	helper := mgl64.Vec3{1, 0, 0}
	if math.Abs(w.X()) > 0.9 {
		helper = mgl64.Vec3{0, 1, 0}
	}
	u := helper.Cross(w).Normalize()
	v := w.Cross(u)
	return mgl64.Mat3FromCols(u, v, w).Transpose()
}

func toVec(v geom.Vector3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromVec(v mgl64.Vec3) geom.Vector3 { return geom.V(v.X(), v.Y(), v.Z()) }

// LocalPoint maps a world point into the surface's own frame
func (p Placed) LocalPoint(q geom.Vector3) geom.Vector3 {
	return fromVec(p.toLocal.Mul3x1(toVec(q.Sub(p.base))))
}

// LocalRay maps a world ray into the surface's own frame
func (p Placed) LocalRay(r geom.Ray) geom.Ray {
	return geom.Ray{
		Origin:    p.LocalPoint(r.Origin),
		Direction: fromVec(p.toLocal.Mul3x1(toVec(r.Direction))),
	}
}

// A zero Placed has no surface; it reports no kind and every ray misses.
func (p Placed) Kind() Kind {
	if p.surface == nil {
		return ""
	}
	return p.surface.Kind()
}

func (p Placed) coefficients(r geom.Ray) (a, b, c float64) {
	if p.surface == nil {
		return 0, 0, 0
	}
	return p.surface.coefficients(p.LocalRay(r))
}

func (p Placed) residual(q geom.Vector3) float64 {
	if p.surface == nil {
		return math.NaN()
	}
	return p.surface.residual(p.LocalPoint(q))
}

func (p Placed) inRange(q geom.Vector3) bool {
	return p.surface != nil && p.surface.inRange(p.LocalPoint(q))
}
