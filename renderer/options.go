package renderer

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Max number of ray bounces.
	NumBounces int

	// Number of accumulated frames for still renders.
	Frames int

	// Exposure for tonemapping.
	Exposure float64

	// Gamma for tonemapping.
	Gamma float64

	// Light falloff coefficient handed to the tracer.
	Attenuation float64

	// Image filename for still renders.
	OutFile string
}

// withDefaults fills in the fields callers usually leave zero.
func (o Options) withDefaults() Options {
	if o.FrameW == 0 {
		o.FrameW = 512
	}
	if o.FrameH == 0 {
		o.FrameH = 512
	}
	if o.NumBounces == 0 {
		o.NumBounces = 6
	}
	if o.Frames == 0 {
		o.Frames = 16
	}
	if o.Exposure == 0 {
		o.Exposure = 1
	}
	if o.Gamma == 0 {
		o.Gamma = 2.2
	}
	return o
}
