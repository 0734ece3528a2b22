package scene

import (
	"image"

	"github.com/Dark565/octaray/types"
)

// Texture maps surface coordinates in [0,1) to a color.
type Texture interface {
	Sample(u, v float64) types.Color
}

// UniformTexture is a single flat color.
type UniformTexture struct {
	C types.Color
}

func (t *UniformTexture) Sample(u, v float64) types.Color {
	return t.C
}

// CheckerTexture alternates two colors on a Tiles x Tiles grid.
type CheckerTexture struct {
	A, B  types.Color
	Tiles int
}

func (t *CheckerTexture) Sample(u, v float64) types.Color {
	n := t.Tiles
	if n <= 0 {
		n = 2
	}
	if (int(u*float64(n))+int(v*float64(n)))%2 == 0 {
		return t.A
	}
	return t.B
}

// ImageTexture samples a decoded image, nearest-neighbor.
type ImageTexture struct {
	Img image.Image
}

func (t *ImageTexture) Sample(u, v float64) types.Color {
	b := t.Img.Bounds()
	x := b.Min.X + int(u*float64(b.Dx()))
	y := b.Min.Y + int(v*float64(b.Dy()))
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}

	r, g, bb, a := t.Img.At(x, y).RGBA()
	const scale = 1.0 / 0xffff
	return types.RGBA(float32(r)*scale, float32(g)*scale, float32(bb)*scale, float32(a)*scale)
}
