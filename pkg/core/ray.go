package core

// Ray is a half-line with a unit-length direction, so every t along it is a
// world-space distance.
type Ray struct {
	origin    Vec3
	direction Vec3
}

// NewRay creates a new ray, normalizing direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{origin: origin, direction: direction.Normalize()}
}

// Origin returns the starting point of the ray
func (r Ray) Origin() Vec3 {
	return r.origin
}

// Direction returns the unit direction of the ray
func (r Ray) Direction() Vec3 {
	return r.direction
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.origin.Add(r.direction.Multiply(t))
}
