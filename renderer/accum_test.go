package renderer

import (
	"math"
	"testing"

	"github.com/Dark565/octaray/types"
)

func TestAccumulatorMixing(t *testing.T) {
	a := NewAccumulator(1, 1)

	// First frame replaces the empty buffer outright.
	a.SetColor(0, 0, types.RGB(1, 0, 0))
	if a.data[0] != 1 {
		t.Fatalf("expected 1; got %f", a.data[0])
	}
	a.EndFrame()

	// Second frame mixes with weight 1/2.
	a.SetColor(0, 0, types.RGB(0, 0, 0))
	if a.data[0] != 0.5 {
		t.Fatalf("expected 0.5; got %f", a.data[0])
	}
	a.EndFrame()

	// Third frame mixes with weight 1/3.
	a.SetColor(0, 0, types.RGB(0.5, 0, 0))
	exp := float32(0.5*2.0/3.0 + 0.5/3.0)
	if d := a.data[0] - exp; d > 1e-6 || d < -1e-6 {
		t.Fatalf("expected %f; got %f", exp, a.data[0])
	}
}

func TestAccumulatorReset(t *testing.T) {
	a := NewAccumulator(2, 2)
	a.SetColor(1, 1, types.White)
	a.EndFrame()

	a.Reset()
	if a.Frames() != 0 || a.data[(1*2+1)*3] != 0 {
		t.Fatal("expected cleared buffer")
	}
}

func TestToneMap(t *testing.T) {
	a := NewAccumulator(1, 1)
	a.SetColor(0, 0, types.RGB(0.5, 2.0, 0))
	a.EndFrame()

	dst := make([]uint8, 4)
	a.ToneMap(1, 2.2, dst)

	exp := uint8(math.Pow(0.5, 1/2.2)*255 + 0.5)
	if dst[0] != exp {
		t.Fatalf("expected %d; got %d", exp, dst[0])
	}
	// Overbright channels clamp to full
	if dst[1] != 255 {
		t.Fatalf("expected 255; got %d", dst[1])
	}
	if dst[2] != 0 || dst[3] != 255 {
		t.Fatalf("unexpected tail %v", dst)
	}
}
