package geom

import (
	"math"

	"github.com/Dark565/octaray/types"
)

// Sphere is a center point and a radius.
type Sphere struct {
	Center types.Vec3
	Radius float64
}

// IntersectRay solves the ray-sphere quadratic. It returns the two signed
// crossing parameters ordered near-then-far, or ok == false when the ray
// misses. Tangent rays report the same parameter twice.
func (s Sphere) IntersectRay(r Ray) ([2]float64, bool) {
	oc := r.Start.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return [2]float64{}, false
	}
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return [2]float64{}, false
	}

	sq := math.Sqrt(disc)
	return [2]float64{(-halfB - sq) / a, (-halfB + sq) / a}, true
}

// NormalAt returns the outward unit normal at a surface point.
func (s Sphere) NormalAt(p types.Vec3) types.Vec3 {
	return p.Sub(s.Center).Mul(1 / s.Radius)
}
