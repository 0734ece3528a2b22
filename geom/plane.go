package geom

import (
	"math"

	"github.com/Dark565/octaray/types"
)

// Plane is an infinite plane through Pos with the given normal.
type Plane struct {
	Normal types.Vec3
	Pos    types.Vec3
}

// IntersectRay returns the single crossing of the ray with the plane. A ray
// parallel to the plane yields no hit unless allowInf is set, in which case a
// hit at +Inf is reported. The returned normal is the plane normal.
func (p Plane) IntersectRay(r Ray, allowInf bool) (Hit, bool) {
	denom := r.Dir.Dot(p.Normal)
	if denom == 0 {
		if allowInf {
			return Hit{T: math.Inf(1), Normal: p.Normal}, true
		}
		return Hit{}, false
	}

	t := p.Pos.Sub(r.Start).Dot(p.Normal) / denom
	return Hit{T: t, Normal: p.Normal}, true
}
