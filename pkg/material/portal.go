package material

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
)

// PortalMaterial teleports every ray that hits it to another location in the
// scene, keeping its direction. It is a visual effect, not a physical BRDF.
type PortalMaterial struct {
	Target       core.Vec3 // Center of the paired portal
	ExitDistance float64   // How far from Target the teleported ray starts
}

// NewPortalMaterial creates a portal material that sends rays to target.
// exitDistance should exceed the radius of the portal surface at target, so the
// teleported ray starts outside it instead of immediately re-entering.
func NewPortalMaterial(target core.Vec3, exitDistance float64) *PortalMaterial {
	return &PortalMaterial{Target: target, ExitDistance: exitDistance}
}

// Scatter implements the Material interface for portal teleportation
func (p *PortalMaterial) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// The normal faces against the ray, so stepping along -normal leaves the
	// exit portal on the side the ray is travelling toward.
	origin := p.Target.Subtract(hit.Normal.Multiply(p.ExitDistance))

	return ScatterResult{
		Scattered:   core.NewRay(origin, rayIn.Direction()),
		Attenuation: white,
	}, true
}
