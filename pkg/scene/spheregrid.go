package scene

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/geometry"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// sphereGridHalfExtent is the grid half-width in cells along x and z
const sphereGridHalfExtent = 11

// NewSphereGridScene creates a field of small random spheres around three
// large ones. With several hundred objects it is the scene the BVH is for.
// The layout depends only on seed.
func NewSphereGridScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 3.0 / 2.0,
		VFov:        20.0,
	}

	sampler := core.NewSeededSampler(seed)
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -sphereGridHalfExtent; a < sphereGridHalfExtent; a++ {
		for b := -sphereGridHalfExtent; b < sphereGridHalfExtent; b++ {
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch chooseMat := sampler.Get1D(); {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				mat = material.NewMetal(albedo, sampler.Range(0, 0.5))
			default:
				// Every glass sphere shares one material value
				mat = glass
			}
			objects = append(objects, geometry.NewSphere(center, 0.2, mat))
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return newPresetScene(objects, defaultCameraConfig, SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}, cameraOverrides)
}
