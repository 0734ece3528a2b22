package scene

import "github.com/Dark565/octaray/types"

// Sky colors rays that leave the tree without hitting a light source.
type Sky interface {
	Sample(dir types.Vec3) types.Color
}

// GradientSky blends from a horizon color to a zenith color with ray
// elevation.
type GradientSky struct {
	Horizon types.Color
	Zenith  types.Color
}

func (s *GradientSky) Sample(dir types.Vec3) types.Color {
	d := dir.Normalize()
	w := float32(0.5 * (d[1] + 1))
	return s.Horizon.Mix(s.Zenith, w)
}

// UniformSky colors every escaping ray the same.
type UniformSky struct {
	C types.Color
}

func (s *UniformSky) Sample(dir types.Vec3) types.Color {
	return s.C
}
