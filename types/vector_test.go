package types

import (
	"math"
	"testing"
)

func TestReflectRoundTrip(t *testing.T) {
	type spec struct {
		v Vec3
		n Vec3
	}
	specs := []spec{
		{XYZ(1, -1, 0), XYZ(0, 1, 0)},
		{XYZ(0.3, -0.7, 0.2), XYZ(0, 1, 0)},
		{XYZ(-2, 5, 1), XYZ(1, 0, 0)},
	}

	for index, s := range specs {
		got := s.v.Reflect(s.n).Reflect(s.n)
		if got.Sub(s.v).Len() > 1e-12 {
			t.Fatalf("[spec %d] expected double reflection to recover %v; got %v", index, s.v, got)
		}
	}
}

func TestReflect(t *testing.T) {
	got := XYZ(1, -1, 0).Reflect(XYZ(0, 1, 0))
	want := XYZ(1, 1, 0)
	if got.Sub(want).Len() > 1e-12 {
		t.Fatalf("expected %v; got %v", want, got)
	}
}

func TestNormalize(t *testing.T) {
	v := XYZ(3, 4, 0).Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Fatalf("expected unit length; got %f", v.Len())
	}

	// Degenerate input collapses to the zero vector
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Fatalf("expected zero vector; got %v", z)
	}
}

func TestCross(t *testing.T) {
	got := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0))
	if got != XYZ(0, 0, 1) {
		t.Fatalf("expected +z; got %v", got)
	}
}

func TestRotatePair(t *testing.T) {
	u := XYZ(1, 0, 0)
	v := XYZ(0, 1, 0)

	// Quarter turn maps u onto v and v onto -u
	ru, rv := RotatePair(u, v, XY(0, 1))
	if ru.Sub(v).Len() > 1e-12 || rv.Sub(u.Neg()).Len() > 1e-12 {
		t.Fatalf("quarter turn mismatch: %v %v", ru, rv)
	}

	// Rotation preserves orthogonality and length
	ru, rv = RotatePair(u, v, XY(math.Cos(0.3), math.Sin(0.3)))
	if math.Abs(ru.Dot(rv)) > 1e-12 || math.Abs(ru.Len()-1) > 1e-12 {
		t.Fatalf("rotated pair not orthonormal: %v %v", ru, rv)
	}
}

func TestAngle2D(t *testing.T) {
	if a := XY(0, 1).Angle(); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Fatalf("expected pi/2; got %f", a)
	}
}

func TestColorMod(t *testing.T) {
	c := RGB(0.5, 1, 0.25).Mod(RGB(0.5, 0.5, 1))
	want := RGB(0.25, 0.5, 0.25)
	if c != want {
		t.Fatalf("expected %v; got %v", want, c)
	}
}
