package renderer

import (
	"math"

	"github.com/Dark565/octaray/types"
)

// Accumulator is the exposure buffer frames are integrated into. Each pixel
// keeps a running mean: samples of frame n are mixed in with weight
// 1/(1+n), so the image converges as frames accumulate. The tracer writes
// through the SetColor sink; the renderer advances the frame counter and
// tone-maps the float buffer into displayable bytes.
type Accumulator struct {
	w, h   int
	frames int
	data   []float32
}

func NewAccumulator(w, h int) *Accumulator {
	return &Accumulator{
		w:    w,
		h:    h,
		data: make([]float32, w*h*3),
	}
}

// SetColor mixes one traced sample into the pixel mean.
func (a *Accumulator) SetColor(x, y int, c types.Color) {
	i := (y*a.w + x) * 3
	w := float32(1) / float32(1+a.frames)
	iw := 1 - w
	a.data[i] = a.data[i]*iw + c[0]*w
	a.data[i+1] = a.data[i+1]*iw + c[1]*w
	a.data[i+2] = a.data[i+2]*iw + c[2]*w
}

// EndFrame marks one whole frame as mixed in.
func (a *Accumulator) EndFrame() {
	a.frames++
}

// Frames returns the number of completed frames.
func (a *Accumulator) Frames() int {
	return a.frames
}

// Reset drops all accumulated samples. Called when the camera moves.
func (a *Accumulator) Reset() {
	a.frames = 0
	for i := range a.data {
		a.data[i] = 0
	}
}

// ToneMap writes the accumulated means as 8-bit RGBA into dst, applying
// exposure scaling and gamma compression. dst must hold w*h*4 bytes.
func (a *Accumulator) ToneMap(exposure, gamma float64, dst []uint8) {
	invGamma := 1 / gamma
	for px := 0; px < a.w*a.h; px++ {
		for ch := 0; ch < 3; ch++ {
			v := float64(a.data[px*3+ch]) * exposure
			v = math.Pow(v, invGamma)
			if v > 1 {
				v = 1
			}
			dst[px*4+ch] = uint8(v*255 + 0.5)
		}
		dst[px*4+3] = 0xff
	}
}
