package tracer

import "github.com/Dark565/octaray/types"

// RNG is the random source borrowed by the sampling helpers. *rand.Rand
// satisfies it.
type RNG interface {
	Float64() float64
}

// SampleSphere rejection-samples a point uniformly inside the unit sphere.
// Roughly 6/pi draws are needed per sample.
func SampleSphere(rng RNG) types.Vec3 {
	for {
		v := types.XYZ(
			2*rng.Float64()-1,
			2*rng.Float64()-1,
			2*rng.Float64()-1,
		)
		if v.LenSq() <= 1 && v != (types.Vec3{}) {
			return v
		}
	}
}
