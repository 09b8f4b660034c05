package geometry

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// DefaultPortalRadius is the radius of each portal opening
const DefaultPortalRadius = 0.5

// Portal is a linked pair of spherical openings. A ray entering either
// opening leaves from the other one with its direction unchanged.
type Portal struct {
	entrance *Sphere
	exit     *Sphere
}

// NewPortal creates a portal pair between positions a and b using DefaultPortalRadius
func NewPortal(a, b core.Vec3) *Portal {
	return NewPortalWithRadius(a, b, DefaultPortalRadius)
}

// NewPortalWithRadius creates a portal pair between positions a and b.
// Each opening points at the other: the sphere at a teleports to b and the
// sphere at b teleports to a.
func NewPortalWithRadius(a, b core.Vec3, radius float64) *Portal {
	// Teleported rays start one diameter from the target center, clear of its sphere
	exitDistance := 2 * radius
	return &Portal{
		entrance: NewSphere(a, radius, material.NewPortalMaterial(b, exitDistance)),
		exit:     NewSphere(b, radius, material.NewPortalMaterial(a, exitDistance)),
	}
}

// Endpoints returns the centers of the two openings
func (p *Portal) Endpoints() (core.Vec3, core.Vec3) {
	return p.entrance.Center, p.exit.Center
}

// Hit returns the closer of the two openings' hits
func (p *Portal) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	closestHit, hitAnything := p.entrance.Hit(ray, tMin, tMax)

	closestSoFar := tMax
	if hitAnything {
		closestSoFar = closestHit.T
	}

	if hit, isHit := p.exit.Hit(ray, tMin, closestSoFar); isHit {
		return hit, true
	}

	return closestHit, hitAnything
}

// BoundingBox returns the box enclosing both openings
func (p *Portal) BoundingBox() (core.AABB, bool) {
	a, _ := p.entrance.BoundingBox()
	b, _ := p.exit.BoundingBox()
	return core.SurroundingBox(a, b), true
}
