package scene

import (
	"math"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/geometry"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// ShadowAcneEpsilon is the minimum t accepted for any hit. Bounce rays start
// exactly on a surface, and rounding would otherwise let them hit it again.
const ShadowAcneEpsilon = 0.001

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
	black    = core.Vec3{}
)

// Scene contains all the elements needed for rendering. It is read-only while
// tracing, so one Scene may be shared by any number of render workers.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig

	objects []geometry.Hittable // Top-level objects, in insertion order
	root    geometry.Hittable   // Flat list or BVH over objects
	bvh     *geometry.BVH       // Non-nil once BuildBVH succeeds
}

// SamplingConfig is the render quality a scene recommends
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// New creates a scene that searches objects linearly
func New(objects []geometry.Hittable) *Scene {
	list := geometry.NewHittableList(objects)
	return &Scene{
		objects: list.Objects,
		root:    list,
	}
}

// NewWithBVH creates a scene whose objects are indexed by a BVH
func NewWithBVH(sampler core.Sampler, objects []geometry.Hittable) (*Scene, error) {
	s := New(objects)
	if err := s.BuildBVH(sampler); err != nil {
		return nil, err
	}
	return s, nil
}

// BuildBVH replaces the scene's root with a freshly built BVH over all objects.
// It must not be called while the scene is being traced.
func (s *Scene) BuildBVH(sampler core.Sampler) error {
	bvh, err := geometry.NewBVH(sampler, s.objects)
	if err != nil {
		return xerrors.Errorf("while building scene BVH: %w", err)
	}

	stats := bvh.Stats()
	glog.V(1).Infof("Built BVH over %d objects: %d nodes, max depth %d, avg leaf depth %.2f",
		len(s.objects), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)

	s.bvh = bvh
	s.root = bvh
	return nil
}

// UsesBVH reports whether hits are resolved through a BVH
func (s *Scene) UsesBVH() bool {
	return s.bvh != nil
}

// BVHStats returns the structure of the scene's BVH, or false without one
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	if s.bvh == nil {
		return geometry.BVHStats{}, false
	}
	return s.bvh.Stats(), true
}

// ObjectCount returns the number of top-level objects
func (s *Scene) ObjectCount() int {
	return len(s.objects)
}

// BoundingBox returns the box around every object, for debug overlays
func (s *Scene) BoundingBox() (core.AABB, bool) {
	return s.root.BoundingBox()
}

// Hit returns the closest intersection in [tMin, tMax]
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.root.Hit(ray, tMin, tMax)
}

// TraceColor returns the color seen along ray, following at most depth bounces
func (s *Scene) TraceColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return black
	}

	hit, isHit := s.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return SkyColor(ray.Direction())
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return black // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(s.TraceColor(scatter.Scattered, depth-1, sampler))
}

// SkyColor returns the background gradient for a ray direction: white looking
// straight down, sky blue looking straight up.
func SkyColor(direction core.Vec3) core.Vec3 {
	// Map the y-component from [-1,1] to [0,1]
	t := 0.5 * (direction.Normalize().Y + 1.0)

	// Linear interpolation: (1-t)*white + t*blue
	return skyWhite.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}
