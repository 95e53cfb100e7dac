package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroLengthVector is returned when normalizing a vector of length 0
var ErrZeroLengthVector = errors.New("zero-length vector")

// Vector3 represents a 3D vector
type Vector3 struct {
	X, Y, Z float64
}

// V is shorthand for Vector3{x, y, z}
func V(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add adds two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub subtracts a vector from another
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies a vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Dot calculates the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length returns the length of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector pointing the same way as v.
// A zero vector has no direction and yields ErrZeroLengthVector.
func (v Vector3) Normalize() (Vector3, error) {
	l := v.Length()
	if l == 0 {
		return Vector3{}, ErrZeroLengthVector
	}
	return Vector3{
		X: v.X / l,
		Y: v.Y / l,
		Z: v.Z / l,
	}, nil
}

// MustNormalize is Normalize for vectors known to be non-zero.
func (v Vector3) MustNormalize() Vector3 {
	n, err := v.Normalize()
	if err != nil {
		panic(fmt.Sprintf("geom: normalize %v: %v", v, err))
	}
	return n
}

// ApproxEqual reports whether every component differs by at most eps
func (v Vector3) ApproxEqual(other Vector3, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps &&
		math.Abs(v.Y-other.Y) <= eps &&
		math.Abs(v.Z-other.Z) <= eps
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
