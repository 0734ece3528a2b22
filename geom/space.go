package geom

import "github.com/Dark565/octaray/types"

// Space is an axis-aligned box anchored at its smallest vertex. Membership is
// closed-open: a point on the far face of a space belongs to the neighboring
// space, which keeps octant ownership unambiguous on shared faces.
type Space struct {
	Pos  types.Vec3
	Size types.Vec3
}

// CubeSpace builds a space with equal edges.
func CubeSpace(pos types.Vec3, edge float64) Space {
	return Space{Pos: pos, Size: types.XYZ(edge, edge, edge)}
}

// AABB converts the space to its center-plus-size form.
func (s Space) AABB() AABB {
	return AABB{Center: s.Pos.Add(s.Size.Mul(0.5)), Size: s.Size}
}

// ContainsPoint applies the closed-open membership test on every axis.
func (s Space) ContainsPoint(p types.Vec3) bool {
	for a := 0; a < 3; a++ {
		if p[a] < s.Pos[a] || p[a] >= s.Pos[a]+s.Size[a] {
			return false
		}
	}
	return true
}

// Contains reports whether inner lies fully within s. Unlike the point test
// the outer upper bound is closed: a box sharing the far face still fits.
// Tree growth depends on this when an entity box exactly matches a child.
func (s Space) Contains(inner Space) bool {
	for a := 0; a < 3; a++ {
		if inner.Pos[a] < s.Pos[a] || inner.Pos[a]+inner.Size[a] > s.Pos[a]+s.Size[a] {
			return false
		}
	}
	return true
}

// OverlapVolume returns the volume shared by two spaces.
func (s Space) OverlapVolume(s2 Space) float64 {
	vol := 1.0
	for a := 0; a < 3; a++ {
		lo := s.Pos[a]
		if s2.Pos[a] > lo {
			lo = s2.Pos[a]
		}
		hi := s.Pos[a] + s.Size[a]
		if h2 := s2.Pos[a] + s2.Size[a]; h2 < hi {
			hi = h2
		}
		if hi <= lo {
			return 0
		}
		vol *= hi - lo
	}
	return vol
}
