package scene

import (
	"math"

	"github.com/Dark565/octaray/types"
)

// Pixel is one element of the camera's per-frame stream: the framebuffer
// coordinates plus the primary ray direction. Directions are deliberately
// left unnormalized; the tracer normalizes once when it builds the ray.
type Pixel struct {
	X, Y int
	Dir  types.Vec3
}

// The camera type controls the scene viewpoint. Orientation is kept as an
// orthonormal basis which yaw/pitch rotate in place.
type Camera struct {
	Position types.Vec3
	Forward  types.Vec3
	Right    types.Vec3
	Up       types.Vec3

	// Camera FOV, in degrees.
	FOV float64
}

func NewCamera(fov float64) *Camera {
	return &Camera{
		Position: types.XYZ(0, 0, 0),
		Forward:  types.XYZ(0, 0, -1),
		Right:    types.XYZ(1, 0, 0),
		Up:       types.XYZ(0, 1, 0),
		FOV:      fov,
	}
}

// LookAt re-aims the camera at a target point, rebuilding the basis from the
// given world up direction.
func (c *Camera) LookAt(target, up types.Vec3) {
	c.Forward = target.Sub(c.Position).Normalize()
	c.Right = c.Forward.Cross(up).Normalize()
	c.Up = c.Right.Cross(c.Forward)
}

// Yaw rotates the view around the up axis by an angle in radians.
func (c *Camera) Yaw(angle float64) {
	rot := types.XY(math.Cos(angle), math.Sin(angle))
	c.Forward, c.Right = types.RotatePair(c.Forward, c.Right, rot)
}

// Pitch tilts the view around the right axis by an angle in radians.
func (c *Camera) Pitch(angle float64) {
	rot := types.XY(math.Cos(angle), math.Sin(angle))
	c.Forward, c.Up = types.RotatePair(c.Forward, c.Up, rot)
}

// Move translates the camera in view space: dx along right, dy along up, dz
// along forward.
func (c *Camera) Move(dx, dy, dz float64) {
	c.Position = c.Position.
		Add(c.Right.Mul(dx)).
		Add(c.Up.Mul(dy)).
		Add(c.Forward.Mul(dz))
}

// Pixels returns the primary ray stream for one frame. The stream snapshots
// the camera basis, so moving the camera mid-frame does not shear the image.
func (c *Camera) Pixels(w, h int) *PixelStream {
	tanF := math.Tan(c.FOV * math.Pi / 360)
	aspect := float64(w) / float64(h)

	return &PixelStream{
		forward: c.Forward,
		right:   c.Right.Mul(tanF * aspect),
		up:      c.Up.Mul(tanF),
		w:       w,
		h:       h,
	}
}

// PixelStream is a lazy, finite, non-restartable sequence of frame pixels in
// scanline order.
type PixelStream struct {
	forward types.Vec3
	right   types.Vec3
	up      types.Vec3
	w, h    int
	x, y    int
}

// Next returns the following pixel of the frame, ok == false after the last
// one.
func (s *PixelStream) Next() (Pixel, bool) {
	if s.y >= s.h {
		return Pixel{}, false
	}

	sx := 2*(float64(s.x)+0.5)/float64(s.w) - 1
	sy := 1 - 2*(float64(s.y)+0.5)/float64(s.h)

	px := Pixel{
		X:   s.x,
		Y:   s.y,
		Dir: s.forward.Add(s.right.Mul(sx)).Add(s.up.Mul(sy)),
	}

	s.x++
	if s.x >= s.w {
		s.x = 0
		s.y++
	}
	return px, true
}
