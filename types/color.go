package types

import "golang.org/x/image/math/f32"

const floatCmpEpsilon = 1e-12

// Color is an RGBA quadruplet. Color math never feeds back into octant
// arithmetic, so float32 components are plenty.
type Color f32.Vec4

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// Define an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Define a color with an alpha channel.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Modulate the color component-wise with another color.
func (c Color) Mod(c2 Color) Color {
	return Color{c[0] * c2[0], c[1] * c2[1], c[2] * c2[2], c[3] * c2[3]}
}

// Scale the color channels. Alpha is left alone.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s, c[3]}
}

// Add two colors channel-wise.
func (c Color) Add(c2 Color) Color {
	return Color{c[0] + c2[0], c[1] + c2[1], c[2] + c2[2], c[3] + c2[3]}
}

// Mix returns c blended towards c2 by weight w in [0,1].
func (c Color) Mix(c2 Color, w float32) Color {
	iw := 1 - w
	return Color{
		c[0]*iw + c2[0]*w,
		c[1]*iw + c2[1]*w,
		c[2]*iw + c2[2]*w,
		c[3]*iw + c2[3]*w,
	}
}
