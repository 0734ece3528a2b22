package tracer

import (
	"github.com/Dark565/octaray/octree"
	"github.com/Dark565/octaray/scene"
	"github.com/Dark565/octaray/types"
)

// Ray is the mutable per-pixel tracing state. One is created per camera
// pixel, driven through the octree by its walker and discarded once traced.
type Ray struct {
	walker *octree.Walker

	pos types.Vec3
	dir types.Vec3

	color     types.Color
	refCount  int
	refMax    int
	distance  float64
	substance *scene.Substance
	lightHit  bool
}

// Color returns the accumulated color modulation.
func (r *Ray) Color() types.Color {
	return r.color
}

// SetColor replaces the accumulated color; materials call this from AlterRay.
func (r *Ray) SetColor(c types.Color) {
	r.color = c
}

// Pos returns the current reflection point.
func (r *Ray) Pos() types.Vec3 {
	return r.pos
}

// Dir returns the current travel direction.
func (r *Ray) Dir() types.Vec3 {
	return r.dir
}

// Distance returns the path length accumulated over all segments so far.
func (r *Ray) Distance() float64 {
	return r.distance
}

// Substance returns the medium the ray currently travels through.
func (r *Ray) Substance() *scene.Substance {
	return r.substance
}

// Bounces returns the number of surface interactions so far.
func (r *Ray) Bounces() int {
	return r.refCount
}
