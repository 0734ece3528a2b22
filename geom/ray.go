package geom

import "github.com/Dark565/octaray/types"

// Ray is a start point and a direction. Intersection parameters are signed:
// p = Start + t*Dir with t taking any real value. Forward-only callers filter
// t >= 0 themselves.
type Ray struct {
	Start types.Vec3
	Dir   types.Vec3
}

// Hit is one ray-surface crossing.
type Hit struct {
	T      float64
	Normal types.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) types.Vec3 {
	return r.Start.Add(r.Dir.Mul(t))
}
