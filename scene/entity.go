package scene

import (
	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/octree"
	"github.com/Dark565/octaray/types"
)

// Collision describes where a ray meets an entity surface. The normal is a
// unit vector oriented against the incoming ray direction.
type Collision struct {
	T      float64
	Point  types.Vec3
	Normal types.Vec3
}

// Entity is anything the tracer can hit. Entities are indexed by their
// bounding box (the octree.Item half of the interface) and interrogated for
// collisions, surface parametrization and the medium behind the surface.
type Entity interface {
	octree.Item

	// Collision returns the nearest forward surface crossing of the ray.
	Collision(r geom.Ray) (Collision, bool)

	// MapUV projects a surface point to texture coordinates in [0,1).
	MapUV(p types.Vec3) types.Vec2

	Material() Material
	Texture() Texture

	// Substance returns the medium filling the entity, nil for hollow
	// surfaces.
	Substance() *Substance
}

// collisionEpsilon keeps freshly reflected rays from re-hitting the surface
// they just left.
const collisionEpsilon = 1e-9

// orient flips n so it faces against dir.
func orient(n, dir types.Vec3) types.Vec3 {
	if dir.Dot(n) > 0 {
		return n.Neg()
	}
	return n
}
