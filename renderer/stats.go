package renderer

import "time"

type FrameStats struct {
	// Accumulated frames so far.
	Frames int

	// Primary rays traced over all frames.
	Rays uint64

	// Mean bounce count per ray.
	AvgBounces float64

	// Total render time across frames.
	RenderTime time.Duration
}
