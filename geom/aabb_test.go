package geom

import (
	"math"
	"testing"

	"github.com/Dark565/octaray/types"
)

func TestAABBIntersectRay(t *testing.T) {
	type spec struct {
		ray        Ray
		expEntry   float64
		expExit    float64
		expEntryN  types.Vec3
		expExitN   types.Vec3
	}
	box := Cube(types.XYZ(0.5, 0.5, 0.5), 1)

	specs := []spec{
		// Straight through along +x
		{Ray{types.XYZ(-1, 0.5, 0.5), types.XYZ(1, 0, 0)}, 1, 2, types.XYZ(-1, 0, 0), types.XYZ(1, 0, 0)},
		// Straight through along -y
		{Ray{types.XYZ(0.5, 2, 0.5), types.XYZ(0, -1, 0)}, 1, 2, types.XYZ(0, 1, 0), types.XYZ(0, -1, 0)},
		// Origin inside: entry parameter is negative
		{Ray{types.XYZ(0.5, 0.5, 0.5), types.XYZ(0, 0, 1)}, -0.5, 0.5, types.XYZ(0, 0, -1), types.XYZ(0, 0, 1)},
		// Unnormalized direction scales the parameters
		{Ray{types.XYZ(-1, 0.5, 0.5), types.XYZ(2, 0, 0)}, 0.5, 1, types.XYZ(-1, 0, 0), types.XYZ(1, 0, 0)},
	}

	for index, s := range specs {
		hits := box.IntersectRay(s.ray)
		if len(hits) != 2 {
			t.Fatalf("[spec %d] expected 2 hits; got %d", index, len(hits))
		}
		if math.Abs(hits[0].T-s.expEntry) > 1e-12 || math.Abs(hits[1].T-s.expExit) > 1e-12 {
			t.Fatalf("[spec %d] expected t (%f, %f); got (%f, %f)", index, s.expEntry, s.expExit, hits[0].T, hits[1].T)
		}
		if hits[0].Normal != s.expEntryN || hits[1].Normal != s.expExitN {
			t.Fatalf("[spec %d] expected normals %v %v; got %v %v", index, s.expEntryN, s.expExitN, hits[0].Normal, hits[1].Normal)
		}
	}
}

func TestAABBIntersectRayMiss(t *testing.T) {
	box := Cube(types.XYZ(0.5, 0.5, 0.5), 1)

	// Parallel ray with origin outside the y slab
	if hits := box.IntersectRay(Ray{types.XYZ(-1, 2, 0.5), types.XYZ(1, 0, 0)}); hits != nil {
		t.Fatalf("expected no hits; got %v", hits)
	}

	// Ray passing beside the box
	if hits := box.IntersectRay(Ray{types.XYZ(-1, 2, 0.5), types.XYZ(1, 0.1, 0)}); hits != nil {
		t.Fatalf("expected no hits; got %v", hits)
	}
}

func TestAABBIntersectRayCornerTieBreak(t *testing.T) {
	// Diagonal exit through a corner: the lowest axis must win the tie so
	// walker stepping stays deterministic.
	box := Cube(types.XYZ(0.25, 0.25, 0.25), 0.5)
	hits := box.IntersectRay(Ray{types.XYZ(0, 0, 0), types.XYZ(1, 1, 1)})
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits; got %d", len(hits))
	}
	if hits[1].Normal != types.XYZ(1, 0, 0) {
		t.Fatalf("expected +x exit on corner tie; got %v", hits[1].Normal)
	}
}

func TestSphereIntersectRay(t *testing.T) {
	s := Sphere{Center: types.XYZ(0, 0, 0), Radius: 1}

	ts, ok := s.IntersectRay(Ray{types.XYZ(-2, 0, 0), types.XYZ(1, 0, 0)})
	if !ok {
		t.Fatal("expected intersection")
	}
	if math.Abs(ts[0]-1) > 1e-12 || math.Abs(ts[1]-3) > 1e-12 {
		t.Fatalf("expected (1, 3); got %v", ts)
	}

	// Near is returned first even when both parameters are negative
	ts, ok = s.IntersectRay(Ray{types.XYZ(2, 0, 0), types.XYZ(1, 0, 0)})
	if !ok || ts[0] >= ts[1] {
		t.Fatalf("expected ordered negative parameters; got %v ok=%t", ts, ok)
	}

	if _, ok = s.IntersectRay(Ray{types.XYZ(-2, 2, 0), types.XYZ(1, 0, 0)}); ok {
		t.Fatal("expected miss")
	}
}

func TestPlaneIntersectRay(t *testing.T) {
	p := Plane{Normal: types.XYZ(0, 1, 0), Pos: types.XYZ(0, 1, 0)}

	hit, ok := p.IntersectRay(Ray{types.XYZ(0, 0, 0), types.XYZ(0, 2, 0)}, false)
	if !ok || math.Abs(hit.T-0.5) > 1e-12 {
		t.Fatalf("expected t=0.5; got %v ok=%t", hit, ok)
	}

	// Parallel ray
	if _, ok = p.IntersectRay(Ray{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)}, false); ok {
		t.Fatal("expected no hit for parallel ray")
	}
	hit, ok = p.IntersectRay(Ray{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)}, true)
	if !ok || !math.IsInf(hit.T, 1) {
		t.Fatalf("expected hit at +Inf; got %v ok=%t", hit, ok)
	}
}
