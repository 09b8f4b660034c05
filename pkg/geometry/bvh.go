package geometry

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

var (
	// ErrEmptyBVH is returned when a BVH is built over no objects
	ErrEmptyBVH = xerrors.New("cannot build BVH from an empty object list")
	// ErrNoBoundingBox is returned when a BVH member is unbounded
	ErrNoBoundingBox = xerrors.New("object has no bounding box")
)

// BVH is a node of a Bounding Volume Hierarchy. A branch owns two child
// nodes; a leaf owns exactly one object. Every node caches the box around
// everything beneath it. The tree is immutable once built.
type BVH struct {
	box   core.AABB
	left  *BVH
	right *BVH
	leaf  Hittable // non-nil only for leaf nodes
}

// boxedObject pairs an object with its bounding box so sorting never re-queries it
type boxedObject struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a BVH over objects. At every branch the objects are sorted
// along a randomly chosen axis and split at the median index. The input slice
// is not modified.
func NewBVH(sampler core.Sampler, objects []Hittable) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	boxed := make([]boxedObject, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox()
		if !ok {
			return nil, xerrors.Errorf("while adding object %d (%T) to BVH: %w", i, object, ErrNoBoundingBox)
		}
		boxed[i] = boxedObject{object: object, box: box}
	}

	return buildBVH(sampler, boxed), nil
}

// buildBVH recursively builds the tree over a non-empty slice, reordering it in place
func buildBVH(sampler core.Sampler, objects []boxedObject) *BVH {
	if len(objects) == 1 {
		return &BVH{box: objects[0].box, leaf: objects[0].object}
	}

	axis := sampler.Intn(3)
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].box.Min.Axis(axis) < objects[j].box.Min.Axis(axis)
	})

	// Both halves are non-empty for two or more objects
	mid := len(objects) / 2
	left := buildBVH(sampler, objects[:mid])
	right := buildBVH(sampler, objects[mid:])

	return &BVH{
		box:   core.SurroundingBox(left.box, right.box),
		left:  left,
		right: right,
	}
}

// IsLeaf reports whether this node wraps a single object
func (b *BVH) IsLeaf() bool {
	return b.leaf != nil
}

// Hit returns the closest intersection among all objects in the tree
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !b.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if b.leaf != nil {
		return b.leaf.Hit(ray, tMin, tMax)
	}

	leftHit, hitLeft := b.left.Hit(ray, tMin, tMax)

	// Anything on the right farther than the left hit cannot be the closest
	closestSoFar := tMax
	if hitLeft {
		closestSoFar = leftHit.T
	}

	if rightHit, hitRight := b.right.Hit(ray, tMin, closestSoFar); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the cached box around the whole subtree
func (b *BVH) BoundingBox() (core.AABB, bool) {
	return b.box, true
}

// BVHStats describes the shape of a built tree
type BVHStats struct {
	TotalNodes int     // Branches plus leaves
	LeafNodes  int     // Leaves, one per object
	MaxDepth   int     // Depth of the deepest leaf, root at 0
	AvgDepth   float64 // Mean leaf depth
}

// Stats walks the tree and collects structural statistics
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{}
	b.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (b *BVH) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if b.leaf != nil {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	b.left.collectStats(depth+1, stats)
	b.right.collectStats(depth+1, stats)
}
