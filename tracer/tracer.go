package tracer

import (
	"math"
	"math/rand"
	"time"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/log"
	"github.com/Dark565/octaray/octree"
	"github.com/Dark565/octaray/scene"
	"github.com/Dark565/octaray/types"
)

var logger = log.New("tracer")

const (
	// surfaceNudge pushes a transmitted ray just past the boundary it
	// crossed before the entity index is asked what medium lies behind.
	surfaceNudge = 1e-7

	// attenuationBias is the epsilon of the inverse-square light falloff
	// 1/(eps + (A*d)^2); it bounds the gain for zero-length paths.
	attenuationBias = 1e-3
)

// ExposureBuffer consumes one traced color per pixel. The renderer's
// accumulation buffer implements it.
type ExposureBuffer interface {
	SetColor(x, y int, c types.Color)
}

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Max number of surface interactions before a ray is written off.
	RefMax int

	// Attenuation coefficient of the light falloff.
	Attenuation float64
}

// Tracer statistics for a single frame.
type Stats struct {
	// Primary rays traced.
	Rays uint64

	// Total surface interactions across all rays.
	Bounces uint64

	// Rays that terminated on a light source.
	LightHits uint64

	// Time spent tracing the frame.
	RenderTime time.Duration
}

// Tracer drives rays through a scene, one frame at a time. It owns the
// random source and must not be shared between goroutines; the scene's
// entity index is only ever read while a frame is in flight.
type Tracer struct {
	sc   *scene.Scene
	opts Options
	rng  *rand.Rand

	stats Stats
}

// New creates a tracer for the given scene.
func New(sc *scene.Scene, opts Options, seed int64) *Tracer {
	if opts.Attenuation < 0 {
		opts.Attenuation = 0
	}
	return &Tracer{
		sc:   sc,
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// probe caches the collision test of one entity for the current ray segment,
// so each entity is intersected at most once between bounces.
type probe struct {
	col scene.Collision
	ok  bool
}

// TraceFrame consumes one camera pixel stream and writes one color per pixel
// into the exposure buffer. Per-ray failures terminate the offending ray
// with black; a frame always completes.
func (t *Tracer) TraceFrame(buf ExposureBuffer) Stats {
	start := time.Now()
	t.stats = Stats{}

	walker := octree.NewWalker(t.sc.Root())
	walker.IncludeEmpty = true

	stream := t.sc.Camera.Pixels(t.opts.FrameW, t.opts.FrameH)
	for {
		px, ok := stream.Next()
		if !ok {
			break
		}
		t.stats.Rays++
		buf.SetColor(px.X, px.Y, t.trace(px.Dir, walker))
	}

	t.stats.RenderTime = time.Since(start)
	return t.stats
}

// Stats returns the statistics of the last traced frame.
func (t *Tracer) Stats() Stats {
	return t.stats
}

// trace runs one ray to completion and returns its color.
func (t *Tracer) trace(dir types.Vec3, walker *octree.Walker) types.Color {
	dir = dir.Normalize()
	if dir == (types.Vec3{}) {
		logger.Warning("zero-length pixel direction; dropping ray")
		return types.Black
	}

	r := &Ray{
		walker:    walker,
		pos:       t.sc.Camera.Position,
		dir:       dir,
		color:     types.White,
		refMax:    t.opts.RefMax,
		substance: t.sc.Ambient,
	}
	if err := walker.Reset(r.pos, r.dir, nil); err != nil {
		logger.Warningf("walker rejected ray: %v", err)
		return types.Black
	}

	tested := make(map[scene.Entity]probe)
	for {
		stop, ok := walker.Next()
		if !ok {
			// Left the tree without meeting a light; the sky owns
			// the remaining energy.
			r.color = r.color.Mod(t.sc.Sky.Sample(r.dir))
			break
		}

		col, ent, found := t.nearestHit(stop, geom.Ray{Start: r.pos, Dir: r.dir}, tested)
		if !found {
			continue
		}
		if r.dir.Dot(col.Normal) >= 0 {
			logger.Warningf("degenerate hit normal %v at %v; dropping ray", col.Normal, col.Point)
			return types.Black
		}

		r.refCount++
		t.stats.Bounces++

		mat := ent.Material()
		if !mat.AlterRay(r, ent, ent.Texture(), col.Point) {
			return types.Black
		}
		r.distance += col.Point.Sub(r.pos).Len()
		r.pos = col.Point

		if mat.IsLightSource() {
			r.lightHit = true
			t.stats.LightHits++
			break
		}

		switch mat.ResponseType(col.Point) {
		case scene.Reflection:
			if !mat.IsMirror(col.Point) {
				// Absorbed. Scattering without a mirror term is
				// modelled as termination.
				return types.Black
			}
			r.dir = t.scatter(r.dir.Reflect(col.Normal), col.Normal, mat.Roughness())
		case scene.Transmission:
			t.refract(r, col.Normal)
		}

		if r.refCount >= r.refMax {
			// Bounce budget spent before any light was seen.
			return types.Black
		}

		if err := walker.Reset(r.pos, r.dir, stop.Tree); err != nil {
			logger.Warningf("walker rejected bounced ray: %v", err)
			return types.Black
		}
		tested = make(map[scene.Entity]probe)
	}

	if r.lightHit {
		d := t.opts.Attenuation * r.distance
		r.color = r.color.Scale(float32(1 / (attenuationBias + d*d)))
	}
	return r.color
}

// nearestHit picks the nearest forward collision within the stop's sub-box.
// Only stops over empty or leaf slots accept hits: those tile the crossed
// space completely, and the entity sets of the slot's tree and its ancestors
// are exactly the nodes whose boxes contain the slot, so every entity that
// can be hit inside the box is on that chain. Subtree stops defer to their
// interior stops, which keeps hits ordered along the ray.
func (t *Tracer) nearestHit(stop octree.Stop, ray geom.Ray, tested map[scene.Entity]probe) (scene.Collision, scene.Entity, bool) {
	if stop.Slot().Node != nil {
		return scene.Collision{}, nil, false
	}

	space := stop.Space()
	var best scene.Collision
	var bestEnt scene.Entity
	found := false

	for n := stop.Tree; n != nil; n = n.Parent() {
		for it := range octree.Items(n) {
			ent, ok := it.(scene.Entity)
			if !ok {
				continue
			}
			pr, seen := tested[ent]
			if !seen {
				pr.col, pr.ok = ent.Collision(ray)
				tested[ent] = pr
			}
			if !pr.ok || !space.ContainsPoint(pr.col.Point) {
				continue
			}
			if !found || pr.col.T < best.T {
				best = pr.col
				bestEnt = ent
				found = true
			}
		}
	}
	return best, bestEnt, found
}

// scatter blends the mirror direction with an isotropic sample re-oriented
// into the surface hemisphere, weighted by roughness.
func (t *Tracer) scatter(mirror, normal types.Vec3, rough float64) types.Vec3 {
	if rough <= 0 {
		return mirror
	}
	s := SampleSphere(t.rng)
	if s.Dot(normal) < 0 {
		s = s.Neg()
	}
	return mirror.Mul(1 - rough).Add(s.Mul(rough)).Normalize()
}

// refract bends the ray into the medium behind the surface using Snell's
// law, falling back to reflection on total internal reflection. The next
// substance is resolved by stepping just past the boundary and asking the
// entity index what occupies that point.
func (t *Tracer) refract(r *Ray, normal types.Vec3) {
	probePoint := r.pos.Add(r.dir.Mul(surfaceNudge))

	next := t.sc.Ambient
	if it := octree.ItemAtPos(t.sc.Root(), probePoint); it != nil {
		if ent, ok := it.(scene.Entity); ok && ent.Substance() != nil {
			next = ent.Substance()
		}
	}

	ratio := r.substance.RefractiveIndex / next.RefractiveIndex
	cosI := -r.dir.Dot(normal)
	sin2T := ratio * ratio * (1 - cosI*cosI)
	if sin2T > 1 {
		// Total internal reflection.
		r.dir = r.dir.Reflect(normal)
		return
	}

	r.dir = r.dir.Mul(ratio).Add(normal.Mul(ratio*cosI - math.Sqrt(1-sin2T))).Normalize()
	r.pos = probePoint
	r.substance = next
}
