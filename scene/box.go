package scene

import (
	"math"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

// Box is an axis-aligned cubic entity given by center and edge length.
type Box struct {
	Center types.Vec3
	Edge   float64

	Mat   Material
	Tex   Texture
	Subst *Substance
}

func (b *Box) Pos() types.Vec3 {
	return b.Center
}

func (b *Box) Bounds() geom.AABB {
	return geom.Cube(b.Center, b.Edge)
}

func (b *Box) Within(p types.Vec3) bool {
	half := b.Edge / 2
	for a := 0; a < 3; a++ {
		if math.Abs(p[a]-b.Center[a]) > half {
			return false
		}
	}
	return true
}

func (b *Box) Collision(r geom.Ray) (Collision, bool) {
	hits := b.Bounds().IntersectRay(r)

	for _, h := range hits {
		if h.T <= collisionEpsilon {
			continue
		}
		return Collision{
			T:      h.T,
			Point:  r.At(h.T),
			Normal: orient(h.Normal, r.Dir),
		}, true
	}
	return Collision{}, false
}

// MapUV projects the point onto the face it sits on: the dominant offset
// axis picks the face, the remaining two axes become u and v.
func (b *Box) MapUV(p types.Vec3) types.Vec2 {
	d := p.Sub(b.Center)
	axis := 0
	for a := 1; a < 3; a++ {
		if math.Abs(d[a]) > math.Abs(d[axis]) {
			axis = a
		}
	}

	ua := (axis + 1) % 3
	va := (axis + 2) % 3
	return types.XY(
		wrapUV(d[ua]/b.Edge+0.5),
		wrapUV(d[va]/b.Edge+0.5),
	)
}

func (b *Box) Material() Material {
	return b.Mat
}

func (b *Box) Texture() Texture {
	return b.Tex
}

func (b *Box) Substance() *Substance {
	return b.Subst
}
