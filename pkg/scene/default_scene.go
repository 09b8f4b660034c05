package scene

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/geometry"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with one sphere of each material on a ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        30.0,
	}

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)
	metalFuzzy := material.NewMetal(core.NewVec3(0.7, 0.7, 0.75), 0.4)

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue),
		// Hollow glass: the negative radius flips the normals of the inner shell
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.35, -0.35, -0.35), 0.15, metalFuzzy),
	}

	return newPresetScene(objects, defaultCameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}, cameraOverrides)
}

// newPresetScene wires a camera and sampling recommendation onto a flat scene
func newPresetScene(objects []geometry.Hittable, cameraConfig geometry.CameraConfig, sampling SamplingConfig, overrides []geometry.CameraConfig) *Scene {
	// Apply any overrides using the reusable merge function
	if len(overrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, overrides[0])
	}

	s := New(objects)
	s.Camera = geometry.NewCamera(cameraConfig)
	s.CameraConfig = cameraConfig
	s.SamplingConfig = sampling
	return s
}
