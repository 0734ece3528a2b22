package octree

import (
	"math"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

// Item is what the entity index stores: anything with a position, an
// axis-aligned bounding box and a point containment test.
type Item interface {
	Pos() types.Vec3
	Bounds() geom.AABB
	Within(p types.Vec3) bool
}

// ItemSet is the per-node entity set. An item belongs to the set of the
// deepest node that wholly contains its bounding box, and to no other.
type ItemSet map[Item]struct{}

func (s ItemSet) Add(it Item) {
	s[it] = struct{}{}
}

func (s ItemSet) Remove(it Item) {
	delete(s, it)
}

func (s ItemSet) Has(it Item) bool {
	_, ok := s[it]
	return ok
}

// GrowBudget bounds how far AddItem may grow the tree in either direction.
type GrowBudget struct {
	MaxInDepth  int
	MaxOutDepth int
}

// NewItemTree creates a rooted octree whose payload at every node is an
// entity set.
func NewItemTree(dim geom.Space) *Node {
	root := NewRoot(dim)
	root.Value = ItemSet{}
	return root
}

// itemSet returns the node's entity set, attaching an empty one to nodes that
// were grown without one.
func itemSet(n *Node) ItemSet {
	if set, ok := n.Value.(ItemSet); ok {
		return set
	}
	set := ItemSet{}
	n.Value = set
	return set
}

// Items returns the entity set attached to a node, or nil.
func Items(n *Node) ItemSet {
	set, _ := n.Value.(ItemSet)
	return set
}

// CoveringNode returns the deepest existing node whose sub-box wholly
// contains the given bounds, climbing upward from the node at the bounds
// origin. Nil when the bounds escape the tree.
func CoveringNode(root *Node, bounds geom.Space) *Node {
	n, _, ok := NodeAtPos(root, bounds.Pos)
	if !ok {
		return nil
	}
	for ; n != nil; n = n.Parent() {
		if n.Dim().Contains(bounds) {
			return n
		}
	}
	return nil
}

// AddItem indexes an item, growing the tree as needed: outward by wrapping
// the absolute root into twice-as-large parents until the item's box fits,
// then inward by subdividing while a single child sub-box still contains the
// whole box. The item lands in the entity set of the final node, which is
// returned. After an insert the absolute root may have changed; callers
// re-resolve it through Node.Root.
func AddItem(tree *Node, it Item, budget GrowBudget) (*Node, error) {
	root := tree.Root()
	bounds := it.Bounds().Space()

	n := CoveringNode(root, bounds)
	for out := 0; n == nil; out++ {
		if out >= budget.MaxOutDepth {
			return nil, &OutsideGrowError{Root: root}
		}
		root = growOutside(root, it.Pos())
		n = CoveringNode(root, bounds)
	}

	for depth := 0; depth < budget.MaxInDepth; depth++ {
		sub, ok := fitChild(n, bounds)
		if !ok {
			break
		}
		n = sub
	}

	itemSet(n).Add(it)
	return n, nil
}

// RemoveItem drops an item from a node's entity set.
func RemoveItem(n *Node, it Item) {
	itemSet(n).Remove(it)
}

// ItemAtPos finds the first indexed item containing the point, scanning the
// entity sets from the deepest node holding the point up to the root.
func ItemAtPos(root *Node, p types.Vec3) Item {
	n, _, ok := NodeAtPos(root, p)
	if !ok {
		return nil
	}
	for ; n != nil; n = n.Parent() {
		for it := range itemSet(n) {
			if it.Within(p) {
				return it
			}
		}
	}
	return nil
}

// growOutside wraps the absolute root in a new parent of twice the size. The
// wrapper is positioned so the target position moves toward the interior:
// each axis of clamp(round((pos-root.pos)/root.size), -1, 0) picks the
// wrapper origin, and its sign fixes the octant the old root occupies inside
// the wrapper.
func growOutside(root *Node, pos types.Vec3) *Node {
	dim := root.Dim()

	var bits [3]int
	var origin types.Vec3
	for a := 0; a < 3; a++ {
		b := int(math.Round((pos[a] - dim.Pos[a]) / dim.Size[a]))
		if b < -1 {
			b = -1
		} else if b > 0 {
			b = 0
		}
		bits[a] = b
		origin[a] = dim.Pos[a] + float64(b)*dim.Size[a]
	}

	parent := NewRoot(geom.Space{Pos: origin, Size: dim.Size.Mul(2)})
	parent.Value = ItemSet{}
	parent.adopt(octantIndex(-bits[0], -bits[1], -bits[2]), root)
	return parent
}

// fitChild descends one level when a single child sub-box still contains the
// whole bounds, creating the subtree if the slot is empty. ok is false when
// subdivision would straddle the bounds or the slot holds a foreign leaf.
func fitChild(n *Node, bounds geom.Space) (*Node, bool) {
	octant := 0
	for a := 0; a < 3; a++ {
		ind := int(math.Floor((bounds.Pos[a] - n.Dim().Pos[a]) * 2 / n.Dim().Size[a]))
		if ind < 0 {
			ind = 0
		} else if ind > 1 {
			ind = 1
		}
		octant |= ind << a
	}

	if !n.childSpace(octant).Contains(bounds) {
		return nil, false
	}

	slot := n.Slot(octant)
	switch {
	case slot.Node != nil:
		return slot.Node, true
	case slot.Leaf != nil:
		return nil, false
	}

	sub, err := n.NewSubtree(octant, false)
	if err != nil {
		return nil, false
	}
	sub.Value = ItemSet{}
	return sub, true
}
