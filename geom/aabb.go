package geom

import (
	"math"

	"github.com/Dark565/octaray/types"
)

// Box face ids and their outward normals. Face 2a is the negative face of
// axis a, face 2a+1 the positive one.
var faceNormals = [6]types.Vec3{
	{-1, 0, 0},
	{+1, 0, 0},
	{0, -1, 0},
	{0, +1, 0},
	{0, 0, -1},
	{0, 0, +1},
}

// FaceNormal returns the outward normal of a box face.
func FaceNormal(face int) types.Vec3 {
	return faceNormals[face]
}

// AABB is an axis-aligned box given as center plus edge-vector, so non-cubic
// boxes are representable.
type AABB struct {
	Center types.Vec3
	Size   types.Vec3
}

// Cube builds an AABB with equal edges.
func Cube(center types.Vec3, edge float64) AABB {
	return AABB{Center: center, Size: types.XYZ(edge, edge, edge)}
}

// Min returns the vertex with the smallest coordinates.
func (b AABB) Min() types.Vec3 {
	return b.Center.Sub(b.Size.Mul(0.5))
}

// Max returns the vertex with the largest coordinates.
func (b AABB) Max() types.Vec3 {
	return b.Center.Add(b.Size.Mul(0.5))
}

// Space converts the box to its origin-plus-size form.
func (b AABB) Space() Space {
	return Space{Pos: b.Min(), Size: b.Size}
}

// IntersectRay runs the slab test. It returns up to two hits carrying the
// outward normals of the crossed faces, entry before exit. When every axis of
// the direction is parallel to its slab the entry plane is undefined and only
// the (infinite) exit would remain, which no caller wants, so the box must be
// crossed on at least one axis to produce hits. A parallel axis whose origin
// coordinate lies outside the slab yields no hits at all.
func (b AABB) IntersectRay(r Ray) []Hit {
	lo := b.Min()
	hi := b.Max()

	tEntry := math.Inf(-1)
	tExit := math.Inf(1)
	entryFace := -1
	exitFace := -1

	for a := 0; a < 3; a++ {
		d := r.Dir[a]
		if d == 0 {
			if r.Start[a] < lo[a] || r.Start[a] > hi[a] {
				return nil
			}
			continue
		}

		t1 := (lo[a] - r.Start[a]) / d
		t2 := (hi[a] - r.Start[a]) / d
		f1 := 2 * a
		f2 := 2*a + 1
		if t1 > t2 {
			t1, t2 = t2, t1
			f1, f2 = f2, f1
		}

		// Strict comparisons keep the lowest axis on ties; the walker
		// relies on this for deterministic corner crossings.
		if t1 > tEntry {
			tEntry = t1
			entryFace = f1
		}
		if t2 < tExit {
			tExit = t2
			exitFace = f2
		}
	}

	if tEntry > tExit || exitFace < 0 {
		return nil
	}

	hits := make([]Hit, 0, 2)
	if entryFace >= 0 {
		hits = append(hits, Hit{T: tEntry, Normal: faceNormals[entryFace]})
	}
	hits = append(hits, Hit{T: tExit, Normal: faceNormals[exitFace]})
	return hits
}
