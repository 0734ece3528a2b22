package renderer

import (
	"image"
	"image/png"
	"os"
	"time"

	"github.com/Dark565/octaray/log"
	"github.com/Dark565/octaray/scene"
	"github.com/Dark565/octaray/tracer"
)

var logger = log.New("renderer")

// stillRenderer accumulates a fixed number of frames and writes the
// tone-mapped result to a png file.
type stillRenderer struct {
	sc    *scene.Scene
	opts  Options
	tr    *tracer.Tracer
	accum *Accumulator
	stats FrameStats
}

// NewStill creates a renderer producing a single output image.
func NewStill(sc *scene.Scene, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	opts = opts.withDefaults()

	return &stillRenderer{
		sc:   sc,
		opts: opts,
		tr: tracer.New(sc, tracer.Options{
			FrameW:      opts.FrameW,
			FrameH:      opts.FrameH,
			RefMax:      opts.NumBounces,
			Attenuation: opts.Attenuation,
		}, time.Now().UnixNano()),
		accum: NewAccumulator(opts.FrameW, opts.FrameH),
	}, nil
}

func (r *stillRenderer) Render() error {
	for i := 0; i < r.opts.Frames; i++ {
		st := r.tr.TraceFrame(r.accum)
		r.accum.EndFrame()
		r.collect(st)
		logger.Infof("accumulated frame %d/%d in %s", i+1, r.opts.Frames, st.RenderTime)
	}

	if r.opts.OutFile == "" {
		return nil
	}
	return r.writeImage()
}

func (r *stillRenderer) collect(st tracer.Stats) {
	r.stats.Frames++
	r.stats.Rays += st.Rays
	r.stats.RenderTime += st.RenderTime
	if r.stats.Rays > 0 {
		total := float64(r.stats.AvgBounces)*float64(r.stats.Rays-st.Rays) + float64(st.Bounces)
		r.stats.AvgBounces = total / float64(r.stats.Rays)
	}
}

func (r *stillRenderer) writeImage() error {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.FrameW, r.opts.FrameH))
	r.accum.ToneMap(r.opts.Exposure, r.opts.Gamma, img.Pix)

	f, err := os.Create(r.opts.OutFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func (r *stillRenderer) Close() {
}

func (r *stillRenderer) Stats() FrameStats {
	return r.stats
}
