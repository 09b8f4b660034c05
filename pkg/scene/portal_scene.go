package scene

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/geometry"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// Portal endpoints used by NewPortalScene
var (
	PortalSceneEntrance = core.NewVec3(-0.9, 0.1, -1.2)
	PortalSceneExit     = core.NewVec3(6, 0.6, -6)
)

// NewPortalScene creates a scene where a portal in the foreground opens onto a
// distant cluster of spheres, showing them up close
func NewPortalScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.4, 1.5),
		LookAt:      core.NewVec3(-0.3, 0.1, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	red := material.NewLambertian(core.NewVec3(0.7, 0.15, 0.1))
	teal := material.NewLambertian(core.NewVec3(0.1, 0.5, 0.5))
	mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02)
	glass := material.NewDielectric(1.5)

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000.4, 0), 1000, ground),
		geometry.NewPortal(PortalSceneEntrance, PortalSceneExit),

		// Near side, directly visible
		geometry.NewSphere(core.NewVec3(0.4, 0, -1.5), 0.4, mirror),
		geometry.NewSphere(core.NewVec3(1.2, -0.1, -0.8), 0.3, glass),

		// Far side, seen through the portal: rays leave the exit heading -z
		geometry.NewSphere(core.NewVec3(6, 0.3, -9), 0.7, red),
		geometry.NewSphere(core.NewVec3(7.3, 0.1, -8.5), 0.5, teal),
		geometry.NewSphere(core.NewVec3(4.8, 0.1, -8.2), 0.5, mirror),
	}

	return newPresetScene(objects, defaultCameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}, cameraOverrides)
}
