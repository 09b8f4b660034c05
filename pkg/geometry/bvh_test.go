package geometry

import (
	"math"
	"testing"

	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	bounded     bool
	hitFn       func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m MockShape) BoundingBox() (core.AABB, bool) {
	return m.boundingBox, m.bounded
}

// nonOverlappingSpheres places n spheres on a jittered grid so no two intersect
func nonOverlappingSpheres(sampler core.Sampler, n int) []Hittable {
	spheres := make([]Hittable, 0, n)
	side := int(math.Ceil(math.Cbrt(float64(n))))
	for i := 0; len(spheres) < n; i++ {
		x, y, z := i%side, (i/side)%side, i/(side*side)
		center := core.NewVec3(float64(x)*2, float64(y)*2, float64(z)*2).
			Add(core.RandomVec3(sampler, -0.3, 0.3))
		radius := sampler.Range(0.2, 0.6)
		spheres = append(spheres, NewSphere(center, radius, nil))
	}
	return spheres
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	sampler := core.NewSeededSampler(42)

	for _, n := range []int{1, 2, 3, 7, 16, 100, 257} {
		objects := nonOverlappingSpheres(sampler, n)
		bvh, err := NewBVH(sampler, objects)
		if err != nil {
			t.Fatalf("Unexpected error building BVH over %d spheres: %v", n, err)
		}
		list := NewHittableList(objects)

		box, _ := list.BoundingBox()
		extent := box.Size().Length()

		for i := 0; i < 500; i++ {
			origin := box.Center().Add(core.RandomUnitVector(sampler).Multiply(extent))
			target := core.RandomVec3(sampler, 0, 1).MultiplyVec(box.Size()).Add(box.Min)
			ray := core.NewRay(origin, target.Subtract(origin))

			want, wantHit := list.Hit(ray, 0.001, math.Inf(1))
			got, gotHit := bvh.Hit(ray, 0.001, math.Inf(1))

			if gotHit != wantHit {
				t.Fatalf("n=%d: BVH hit=%t, linear scan hit=%t for ray %v", n, gotHit, wantHit, ray)
			}
			if !wantHit {
				continue
			}
			if got.T != want.T || got.Point != want.Point {
				t.Fatalf("n=%d: BVH closest t=%f, linear scan t=%f", n, got.T, want.T)
			}
		}
	}
}

func TestBVH_RespectsQueryWindow(t *testing.T) {
	sampler := core.NewSeededSampler(3)
	objects := []Hittable{
		NewSphere(core.NewVec3(0, 0, -2), 0.5, nil),
		NewSphere(core.NewVec3(0, 0, -5), 0.5, nil),
		NewSphere(core.NewVec3(0, 0, -8), 0.5, nil),
	}
	bvh, err := NewBVH(sampler, objects)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := bvh.Hit(ray, 0.001, math.Inf(1))
	if !isHit || math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.5, got %v", hit)
	}

	// Skip the first sphere entirely
	hit, isHit = bvh.Hit(ray, 3.0, math.Inf(1))
	if !isHit || math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected hit at t=4.5 when starting past the first sphere, got %v", hit)
	}

	// Window ends before any sphere
	if hit, isHit = bvh.Hit(ray, 0.001, 1.0); isHit {
		t.Errorf("Expected miss inside empty window, got t=%f", hit.T)
	}
}

func TestBVH_EmptyInput(t *testing.T) {
	bvh, err := NewBVH(core.NewSeededSampler(1), nil)
	if !xerrors.Is(err, ErrEmptyBVH) {
		t.Errorf("Expected ErrEmptyBVH, got %v", err)
	}
	if bvh != nil {
		t.Error("Expected nil BVH on error")
	}
}

func TestBVH_UnboundedObject(t *testing.T) {
	unbounded := MockShape{
		bounded: false,
		hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
			return nil, false
		},
	}

	tests := []struct {
		name    string
		objects []Hittable
	}{
		{"single unbounded", []Hittable{unbounded}},
		{"unbounded among spheres", []Hittable{
			NewSphere(core.NewVec3(0, 0, 0), 1, nil),
			unbounded,
			NewSphere(core.NewVec3(3, 0, 0), 1, nil),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBVH(core.NewSeededSampler(1), tt.objects)
			if !xerrors.Is(err, ErrNoBoundingBox) {
				t.Errorf("Expected ErrNoBoundingBox, got %v", err)
			}
		})
	}
}

func TestBVH_SingleObjectIsLeaf(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 1, 1), 1, nil)
	bvh, err := NewBVH(core.NewSeededSampler(1), []Hittable{sphere})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !bvh.IsLeaf() {
		t.Error("Expected single-object BVH to be a leaf")
	}
	box, _ := bvh.BoundingBox()
	sphereBox, _ := sphere.BoundingBox()
	if box != sphereBox {
		t.Errorf("Expected leaf box %v, got %v", sphereBox, box)
	}
}

func TestBVH_Structure(t *testing.T) {
	sampler := core.NewSeededSampler(5)
	objects := nonOverlappingSpheres(sampler, 20)
	bvh, err := NewBVH(sampler, objects)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stats := bvh.Stats()
	if stats.LeafNodes != 20 {
		t.Errorf("Expected one leaf per object (20), got %d", stats.LeafNodes)
	}
	// A full binary tree with n leaves has 2n-1 nodes
	if stats.TotalNodes != 39 {
		t.Errorf("Expected 39 nodes, got %d", stats.TotalNodes)
	}
	// Median splits keep the tree balanced: ceil(log2(20)) = 5
	if stats.MaxDepth != 5 {
		t.Errorf("Expected max depth 5, got %d", stats.MaxDepth)
	}

	// Every node's box must contain its children's boxes
	var check func(node *BVH)
	check = func(node *BVH) {
		if node.IsLeaf() {
			leafBox, _ := node.leaf.BoundingBox()
			if !node.box.Contains(leafBox) {
				t.Errorf("Leaf box %v does not contain object box %v", node.box, leafBox)
			}
			return
		}
		if !node.box.Contains(node.left.box) || !node.box.Contains(node.right.box) {
			t.Errorf("Branch box %v does not contain its children", node.box)
		}
		check(node.left)
		check(node.right)
	}
	check(bvh)
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	sampler := core.NewSeededSampler(9)
	objects := nonOverlappingSpheres(sampler, 10)
	original := make([]Hittable, len(objects))
	copy(original, objects)

	if _, err := NewBVH(sampler, objects); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range objects {
		if objects[i] != original[i] {
			t.Fatalf("Input slice was reordered at index %d", i)
		}
	}
}

func TestBVH_IdenticalBoundingBoxes(t *testing.T) {
	sameBoundingBox := core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))

	makeHitFn := func(tValue float64) func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
		return func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
			if tValue >= tMin && tValue <= tMax {
				return &material.HitRecord{T: tValue}, true
			}
			return nil, false
		}
	}

	objects := make([]Hittable, 5)
	for i := range objects {
		objects[i] = MockShape{
			boundingBox: sameBoundingBox,
			bounded:     true,
			hitFn:       makeHitFn(float64(5 - i)), // Each shape hits at a different t
		}
	}

	bvh, err := NewBVH(core.NewSeededSampler(1), objects)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	hit, isHit := bvh.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.0, got t=%f", hit.T)
	}
}
