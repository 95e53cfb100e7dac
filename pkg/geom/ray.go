package geom

import "fmt"

// Ray represents a ray in 3D space. Direction is kept at unit length.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay builds a ray from origin along dir, normalizing dir
func NewRay(origin, dir Vector3) (Ray, error) {
	d, err := dir.Normalize()
	if err != nil {
		return Ray{}, fmt.Errorf("ray direction: %w", err)
	}
	return Ray{Origin: origin, Direction: d}, nil
}

// At returns the point origin + t*direction
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
