package scene

import (
	"math"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

// Sphere is a spherical entity given by center and diameter.
type Sphere struct {
	Center   types.Vec3
	Diameter float64

	Mat   Material
	Tex   Texture
	Subst *Substance
}

func (s *Sphere) Pos() types.Vec3 {
	return s.Center
}

func (s *Sphere) Bounds() geom.AABB {
	return geom.Cube(s.Center, s.Diameter)
}

func (s *Sphere) Within(p types.Vec3) bool {
	r := s.Diameter / 2
	return p.Sub(s.Center).LenSq() <= r*r
}

func (s *Sphere) Collision(r geom.Ray) (Collision, bool) {
	sp := geom.Sphere{Center: s.Center, Radius: s.Diameter / 2}
	ts, ok := sp.IntersectRay(r)
	if !ok {
		return Collision{}, false
	}

	t := ts[0]
	if t <= collisionEpsilon {
		t = ts[1]
	}
	if t <= collisionEpsilon {
		return Collision{}, false
	}

	p := r.At(t)
	return Collision{
		T:      t,
		Point:  p,
		Normal: orient(sp.NormalAt(p), r.Dir),
	}, true
}

// MapUV uses the usual spherical parametrization: u wraps the equator, v
// runs pole to pole.
func (s *Sphere) MapUV(p types.Vec3) types.Vec2 {
	d := p.Sub(s.Center).Normalize()
	u := 0.5 + math.Atan2(d[2], d[0])/(2*math.Pi)
	v := 0.5 - math.Asin(clampUnit(d[1]))/math.Pi
	if v >= 1 {
		// Keep the south pole at the bottom edge instead of wrapping it
		// to the top.
		v = math.Nextafter(1, 0)
	}
	return types.XY(wrapUV(u), wrapUV(v))
}

func (s *Sphere) Material() Material {
	return s.Mat
}

func (s *Sphere) Texture() Texture {
	return s.Tex
}

func (s *Sphere) Substance() *Substance {
	return s.Subst
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrapUV forces a texture coordinate into [0,1).
func wrapUV(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		v = 0
	}
	return v
}
