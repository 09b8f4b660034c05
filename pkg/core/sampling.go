package core

import (
	"math/rand"
)

// Sampler provides uniform random numbers for rendering algorithms.
// Implementations are not safe for concurrent use; each worker owns its own.
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
	// Range returns a uniform value in [min, max)
	Range(min, max float64) float64
	// Intn returns a uniform integer in [0, n)
	Intn(n int) int
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [min, max)
func (r *RandomSampler) Range(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// Intn returns a random int in [0, n)
func (r *RandomSampler) Intn(n int) int {
	return r.random.Intn(n)
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(sampler.Range(min, max), sampler.Range(min, max), sampler.Range(min, max))
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(sampler, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// Reject points too close to the center to normalize reliably
		if p.LengthSquared() > 1e-16 {
			return p.Normalize()
		}
	}
}

// RandomInHemisphere generates a random point in the unit sphere on the same side as normal
func RandomInHemisphere(sampler Sampler, normal Vec3) Vec3 {
	inUnitSphere := RandomInUnitSphere(sampler)
	if inUnitSphere.Dot(normal) > 0.0 {
		return inUnitSphere
	}
	return inUnitSphere.Negate()
}
