package scene

import (
	"math"
	"testing"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

func TestSphereCollision(t *testing.T) {
	s := &Sphere{Center: types.XYZ(0, 0, 0), Diameter: 2}

	col, ok := s.Collision(geom.Ray{Start: types.XYZ(-3, 0, 0), Dir: types.XYZ(1, 0, 0)})
	if !ok {
		t.Fatal("expected collision")
	}
	if math.Abs(col.T-2) > 1e-12 {
		t.Fatalf("expected t=2; got %f", col.T)
	}
	if col.Normal != types.XYZ(-1, 0, 0) {
		t.Fatalf("expected normal against the ray; got %v", col.Normal)
	}

	// From inside the sphere the far surface is hit and the normal still
	// faces against the ray.
	col, ok = s.Collision(geom.Ray{Start: types.XYZ(0, 0, 0), Dir: types.XYZ(1, 0, 0)})
	if !ok {
		t.Fatal("expected collision from inside")
	}
	if math.Abs(col.T-1) > 1e-12 || col.Normal != types.XYZ(-1, 0, 0) {
		t.Fatalf("unexpected inside hit %+v", col)
	}

	// Behind the ray
	if _, ok = s.Collision(geom.Ray{Start: types.XYZ(3, 0, 0), Dir: types.XYZ(1, 0, 0)}); ok {
		t.Fatal("expected no collision behind the start")
	}
}

func TestSphereWithin(t *testing.T) {
	s := &Sphere{Center: types.XYZ(1, 1, 1), Diameter: 1}

	if !s.Within(types.XYZ(1, 1.49, 1)) {
		t.Fatal("expected interior point within")
	}
	if s.Within(types.XYZ(1, 1.51, 1)) {
		t.Fatal("expected exterior point outside")
	}
}

func TestSphereMapUV(t *testing.T) {
	s := &Sphere{Center: types.XYZ(0, 0, 0), Diameter: 2}

	for _, p := range []types.Vec3{
		types.XYZ(1, 0, 0),
		types.XYZ(0, 1, 0),
		types.XYZ(0, -1, 0),
		types.XYZ(-1, 0, 0),
		types.XYZ(0, 0, 1),
	} {
		uv := s.MapUV(p)
		if uv[0] < 0 || uv[0] >= 1 || uv[1] < 0 || uv[1] >= 1 {
			t.Fatalf("uv %v for %v out of [0,1)", uv, p)
		}
	}

	// The poles map to the v extremes.
	top := s.MapUV(types.XYZ(0, 1, 0))
	bottom := s.MapUV(types.XYZ(0, -1, 0))
	if top[1] > bottom[1] {
		t.Fatalf("expected top v below bottom v; got %f and %f", top[1], bottom[1])
	}
}

func TestBoxCollision(t *testing.T) {
	b := &Box{Center: types.XYZ(0, 0, 0), Edge: 2}

	col, ok := b.Collision(geom.Ray{Start: types.XYZ(0, 3, 0), Dir: types.XYZ(0, -1, 0)})
	if !ok {
		t.Fatal("expected collision")
	}
	if math.Abs(col.T-2) > 1e-12 || col.Normal != types.XYZ(0, 1, 0) {
		t.Fatalf("unexpected hit %+v", col)
	}

	// From inside the exit face is hit with an inward-facing normal.
	col, ok = b.Collision(geom.Ray{Start: types.XYZ(0, 0, 0), Dir: types.XYZ(0, -1, 0)})
	if !ok || math.Abs(col.T-1) > 1e-12 || col.Normal != types.XYZ(0, 1, 0) {
		t.Fatalf("unexpected inside hit %+v ok=%t", col, ok)
	}
}

func TestBoxMapUV(t *testing.T) {
	b := &Box{Center: types.XYZ(0, 0, 0), Edge: 2}

	for _, p := range []types.Vec3{
		types.XYZ(1, 0.3, -0.2),
		types.XYZ(-0.1, 1, 0.9),
		types.XYZ(0.5, -0.5, -1),
	} {
		uv := b.MapUV(p)
		if uv[0] < 0 || uv[0] >= 1 || uv[1] < 0 || uv[1] >= 1 {
			t.Fatalf("uv %v for %v out of [0,1)", uv, p)
		}
	}
}

func TestEntityBounds(t *testing.T) {
	s := &Sphere{Center: types.XYZ(0.25, 0.25, 0.25), Diameter: 0.5}
	bounds := s.Bounds()
	if bounds.Min() != types.XYZ(0, 0, 0) || bounds.Max() != types.XYZ(0.5, 0.5, 0.5) {
		t.Fatalf("unexpected bounds %v %v", bounds.Min(), bounds.Max())
	}

	b := &Box{Center: types.XYZ(0, 0, 0), Edge: 2}
	if b.Bounds().Size != types.XYZ(2, 2, 2) {
		t.Fatalf("unexpected box bounds %v", b.Bounds().Size)
	}
}
