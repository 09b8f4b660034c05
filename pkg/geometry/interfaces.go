package geometry

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// Hittable is implemented by everything a ray can intersect: primitives,
// composites, and BVH nodes. Implementations are read-only after construction
// so any number of render workers may query them concurrently.
type Hittable interface {
	// Hit returns the intersection with the smallest t in [tMin, tMax], if any
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	// BoundingBox returns a box enclosing the object, or false if it is unbounded
	BoundingBox() (core.AABB, bool)
}
