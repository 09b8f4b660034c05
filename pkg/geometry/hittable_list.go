package geometry

import (
	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// HittableList is a flat collection searched linearly for the closest hit
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list over a copy of objects
func NewHittableList(objects []Hittable) *HittableList {
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)
	return &HittableList{Objects: objectsCopy}
}

// Hit tests every object, shrinking the search window to the closest hit so far
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all member boxes. An empty list, or one
// holding any unbounded object, has no bounding box.
func (l *HittableList) BoundingBox() (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, object := range l.Objects {
		objectBox, ok := object.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = core.SurroundingBox(box, objectBox)
		}
	}
	return box, true
}
