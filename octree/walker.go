package octree

import (
	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

// Stop is one item of a walk: a visit to a child slot, or to the root itself
// when the ray starts outside the tree (Octant == RootOctant).
type Stop struct {
	Tree   *Node
	Octant int
}

// Node resolves the visited node: the slot's subtree, or the tree itself for
// a root stop. Nil for empty and leaf slots.
func (s Stop) Node() *Node {
	if s.Octant == RootOctant {
		return s.Tree
	}
	return s.Tree.Slot(s.Octant).Node
}

// Slot returns the visited slot content. For a root stop it is a slot holding
// the tree itself.
func (s Stop) Slot() Slot {
	if s.Octant == RootOctant {
		return Slot{Node: s.Tree}
	}
	return s.Tree.Slot(s.Octant)
}

// Space returns the sub-box the stop covers.
func (s Stop) Space() geom.Space {
	if s.Octant == RootOctant {
		return s.Tree.Dim()
	}
	return s.Tree.childSpace(s.Octant)
}

// frame is one level of the depth stack: a slot plus whether it was already
// yielded. Slots entered during initial placement are pushed unreturned and
// yielded on the way back out; slots descended through mid-walk were yielded
// before the descent.
type frame struct {
	tree     *Node
	octant   int
	returned bool
}

// Walker streams the child slots a ray crosses, in the order the ray enters
// them, each at most once. It is a pull-only iterator: all traversal state
// lives in the struct and each Next call advances only as far as the next
// yielded slot, so a caller can abandon the walk at any stop.
type Walker struct {
	root *Node
	ray  geom.Ray

	cur       frame
	stack     []frame
	next      types.Vec3 // boundary point about to be crossed
	steppedIn bool
	started   bool
	done      bool

	// IncludeEmpty makes the walker yield empty child slots as well.
	// Payload-only consumers leave it off.
	IncludeEmpty bool
}

// NewWalker creates a walker over the given tree. Position and direction are
// set per walk via Reset.
func NewWalker(root *Node) *Walker {
	return &Walker{root: root}
}

// Root returns the tree the walker traverses.
func (w *Walker) Root() *Node {
	return w.root
}

// Reset rebinds the walker to a new start point and direction, restarting the
// walk. hint optionally names a subtree known to contain the point so the
// initial descent does not need to start at the root. A zero direction has no
// defined next boundary and is rejected.
func (w *Walker) Reset(pos, dir types.Vec3, hint *Node) error {
	if dir == (types.Vec3{}) {
		return ErrZeroDir
	}

	w.ray = geom.Ray{Start: pos, Dir: dir}
	w.stack = w.stack[:0]
	w.cur = frame{}
	w.steppedIn = false
	w.started = false
	w.done = false

	if hint != nil && hint.Root() == w.root && hint.Dim().ContainsPoint(pos) {
		w.placeInside(hint)
		w.started = true
	}
	return nil
}

// EachStop pulls stops until the walk ends or fn returns false.
func (w *Walker) EachStop(fn func(Stop) bool) {
	for {
		stop, ok := w.Next()
		if !ok || !fn(stop) {
			return
		}
	}
}

// Next advances to the next crossed slot.
func (w *Walker) Next() (Stop, bool) {
	if !w.started {
		w.start()
		w.started = true
	}

	for !w.done {
		if !w.cur.returned {
			w.cur.returned = true
			if w.emittable() {
				return Stop{Tree: w.cur.tree, Octant: w.cur.octant}, true
			}
			continue
		}

		if !w.steppedIn {
			if sub := w.curSubtree(); sub != nil && !sub.IsInvalid() {
				// Enter the subtree at the boundary point and
				// keep walking one level down.
				o := octantAt(sub, w.next)
				w.stack = append(w.stack, w.cur)
				w.cur = frame{tree: sub, octant: o}
				continue
			}
		}

		w.advance()
	}

	return Stop{}, false
}

// start performs initial placement. Inside the tree the current slot becomes
// the deepest slot containing the start point; outside, the ray is clipped
// against the root box and the root itself becomes the first stop.
func (w *Walker) start() {
	if w.root.Dim().ContainsPoint(w.ray.Start) {
		w.placeInside(w.root)
		return
	}

	hits := w.root.Dim().AABB().IntersectRay(w.ray)
	if len(hits) == 0 || hits[len(hits)-1].T <= 0 {
		w.done = true
		return
	}

	entry := hits[0].T
	if entry < 0 {
		entry = 0
	}
	w.next = w.ray.At(entry)
	w.cur = frame{tree: w.root, octant: RootOctant}
}

// placeInside descends from the given subtree to the deepest slot holding the
// start point, recording the partially visited ancestors on the depth stack.
// The ancestors are pushed unreturned: they were entered but not yet yielded.
func (w *Walker) placeInside(from *Node) {
	for n := from; n != w.root; n = n.Parent() {
		// Build the context above the hint so step-back works.
		w.stack = append(w.stack, frame{tree: n.Parent(), octant: n.Index()})
	}
	// Reverse into root-first order.
	for i, j := 0, len(w.stack)-1; i < j; i, j = i+1, j-1 {
		w.stack[i], w.stack[j] = w.stack[j], w.stack[i]
	}

	tree, octant, ok := NodeAtPos(from, w.ray.Start)
	if !ok {
		w.done = true
		return
	}
	for n := tree; n != from; n = n.Parent() {
		w.stack = append(w.stack, frame{tree: n.Parent(), octant: n.Index()})
	}
	// The freshly appended ancestors are in leaf-first order; reverse just
	// that tail.
	base := tree.RelativeLevel(from)
	for i, j := len(w.stack)-base, len(w.stack)-1; i < j; i, j = i+1, j-1 {
		w.stack[i], w.stack[j] = w.stack[j], w.stack[i]
	}

	w.cur = frame{tree: tree, octant: octant}
	w.next = w.ray.Start
}

// emittable applies the visibility filter to the current slot.
func (w *Walker) emittable() bool {
	if w.cur.octant == RootOctant {
		return !w.cur.tree.IsInvalid()
	}
	slot := w.cur.tree.Slot(w.cur.octant)
	if slot.Node != nil {
		return !slot.Node.IsInvalid()
	}
	if slot.Leaf != nil {
		return true
	}
	return w.IncludeEmpty
}

// curSubtree returns the subtree held by the current slot, if any.
func (w *Walker) curSubtree() *Node {
	if w.cur.octant == RootOctant {
		return w.cur.tree
	}
	return w.cur.tree.Slot(w.cur.octant).Node
}

// advance recomputes the boundary of the current sub-box and moves sideways
// to the face-adjacent sibling, or back up to the parent when the exit leaves
// the parent box. The neighbor octant differs from the current one in exactly
// the axis whose slab exit was minimal, which both orders the traversal and
// records the exited face.
func (w *Walker) advance() {
	box := w.curSpace().AABB()
	hits := box.IntersectRay(w.ray)
	if len(hits) == 0 {
		// The ray does not cross the current box at all; numerical
		// drift put us outside the walkable region.
		w.done = true
		return
	}

	exit := hits[len(hits)-1]
	w.next = w.ray.At(exit.T)

	if w.cur.octant == RootOctant {
		w.stepUp()
		return
	}

	axis, sign := exitStep(exit.Normal)
	bx, by, bz := octantBits(w.cur.octant)
	bits := [3]int{bx, by, bz}
	bits[axis] += sign

	if bits[axis] >= 0 && bits[axis] <= 1 {
		w.cur = frame{tree: w.cur.tree, octant: octantIndex(bits[0], bits[1], bits[2])}
		w.steppedIn = false
		return
	}

	w.stepUp()
}

// stepUp pops the parent context. The popped slot keeps its own returned
// flag, so a parent slot that was descended through during initial placement
// still gets yielded on the way out, while one yielded before a mid-walk
// descent is not yielded twice.
func (w *Walker) stepUp() {
	if len(w.stack) == 0 {
		w.done = true
		return
	}
	w.cur = w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.steppedIn = true
}

func (w *Walker) curSpace() geom.Space {
	if w.cur.octant == RootOctant {
		return w.cur.tree.Dim()
	}
	return w.cur.tree.childSpace(w.cur.octant)
}

// exitStep converts an outward face normal into the axis and direction of the
// neighboring octant.
func exitStep(n types.Vec3) (axis, sign int) {
	for a := 0; a < 3; a++ {
		if n[a] > 0 {
			return a, 1
		}
		if n[a] < 0 {
			return a, -1
		}
	}
	return 0, 0
}
