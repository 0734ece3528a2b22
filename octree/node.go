package octree

import (
	"fmt"
	"math"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

// RootOctant marks positions that refer to a node itself rather than one of
// its child slots.
const RootOctant = -1

// Slot is the content of one child position: a subtree, a leaf payload or
// nothing.
type Slot struct {
	Node *Node
	Leaf interface{}
}

// Empty reports whether the slot holds neither a subtree nor a payload.
func (s Slot) Empty() bool {
	return s.Node == nil && s.Leaf == nil
}

// Node is one octree cell. Children are owned through the slot array; parent
// is a non-owning back reference, nil only for the absolute root. Octant i
// occupies the offset ((i&1), (i>>1)&1, (i>>2)&1) * size/2 from the node
// origin; this is the only bit mapping between octant index and spatial
// direction in the whole engine.
type Node struct {
	dim       geom.Space
	parent    *Node
	parentIdx int
	children  [8]Slot

	// Value is the payload attached to the node itself; the entity index
	// keeps its per-node entity set here.
	Value interface{}

	invalid bool
}

// NewRoot creates a parentless node covering the given space.
func NewRoot(dim geom.Space) *Node {
	return &Node{dim: dim, parentIdx: RootOctant}
}

// Dim returns the node's space: the vertex adjacent to child 0 plus the edge
// lengths.
func (n *Node) Dim() geom.Space {
	return n.dim
}

// Parent returns the owning node, nil for the absolute root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Index returns the node's octant within its parent, RootOctant for the
// absolute root.
func (n *Node) Index() int {
	return n.parentIdx
}

// Root walks the parent chain up to the absolute root. Safe on orphaned
// subtrees: it simply returns the highest reachable node.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Level returns the node's distance from the absolute root.
func (n *Node) Level() int {
	level := 0
	for n.parent != nil {
		n = n.parent
		level++
	}
	return level
}

// RelativeLevel returns the node's distance from the given ancestor, or -1
// when root is not on the node's parent chain.
func (n *Node) RelativeLevel(root *Node) int {
	level := 0
	for ; n != nil; n = n.parent {
		if n == root {
			return level
		}
		level++
	}
	return -1
}

// Invalidate schedules the node for removal: walkers skip it but may still
// observe it structurally. With recursive set the whole subtree is flagged.
func (n *Node) Invalidate(recursive bool) {
	n.invalid = true
	if !recursive {
		return
	}
	for i := range n.children {
		if c := n.children[i].Node; c != nil {
			c.Invalidate(true)
		}
	}
}

// IsInvalid reports whether the node was invalidated.
func (n *Node) IsInvalid() bool {
	return n.invalid
}

// Slot returns the content of a child position.
func (n *Node) Slot(i int) Slot {
	return n.children[checkOctant(i)]
}

// Set stores a leaf payload in a child slot and returns the previous slot
// content. A subtree previously living there is invalidated unless preserve
// is set.
func (n *Node) Set(i int, v interface{}, preserve bool) Slot {
	i = checkOctant(i)
	old := n.children[i]
	if old.Node != nil && !preserve {
		old.Node.Invalidate(true)
		old.Node.parent = nil
	}
	n.children[i] = Slot{Leaf: v}
	return old
}

// Subtree returns the child subtree at the given octant.
func (n *Node) Subtree(i int) (*Node, error) {
	c := n.children[checkOctant(i)]
	if c.Node == nil {
		return nil, ErrNotSubtree
	}
	return c.Node, nil
}

// NewSubtree grows a child subtree with the canonical sub-dimension: half the
// parent edge, anchored at the octant offset. Occupied slots are an error
// unless replace is set, in which case an existing subtree is invalidated
// and a leaf payload is discarded.
func (n *Node) NewSubtree(i int, replace bool) (*Node, error) {
	i = checkOctant(i)
	old := n.children[i]
	if !old.Empty() {
		if !replace {
			return nil, ErrSlotOccupied
		}
		if old.Node != nil {
			old.Node.Invalidate(true)
			old.Node.parent = nil
		}
	}

	sub := &Node{
		dim:       n.childSpace(i),
		parent:    n,
		parentIdx: i,
	}
	n.children[i] = Slot{Node: sub}
	return sub, nil
}

// adopt hangs an existing parentless node into a child slot. Used by outside
// growth, where the old absolute root becomes a child of the freshly made
// wrapper.
func (n *Node) adopt(i int, sub *Node) {
	i = checkOctant(i)
	if !n.children[i].Empty() {
		panic("octree: adopting into an occupied slot")
	}
	sub.parent = n
	sub.parentIdx = i
	n.children[i] = Slot{Node: sub}
}

// childSpace returns the sub-box of an octant.
func (n *Node) childSpace(i int) geom.Space {
	half := n.dim.Size.Mul(0.5)
	bx, by, bz := octantBits(i)
	return geom.Space{
		Pos: types.XYZ(
			n.dim.Pos[0]+float64(bx)*half[0],
			n.dim.Pos[1]+float64(by)*half[1],
			n.dim.Pos[2]+float64(bz)*half[2],
		),
		Size: half,
	}
}

func octantBits(i int) (bx, by, bz int) {
	return i & 1, (i >> 1) & 1, (i >> 2) & 1
}

func octantIndex(bx, by, bz int) int {
	return bz<<2 | by<<1 | bx
}

func checkOctant(i int) int {
	if i < 0 || i > 7 {
		panic(fmt.Sprintf("octree: octant index %d out of range", i))
	}
	return i
}

// NodeAtPos descends from root to the deepest subtree containing the point
// and returns that subtree together with the octant the point falls in. ok is
// false when the point lies outside the root under the closed-open rule.
func NodeAtPos(root *Node, p types.Vec3) (tree *Node, octant int, ok bool) {
	tree = root
	for {
		octant = 0
		for a := 0; a < 3; a++ {
			ind := int(math.Floor((p[a] - tree.dim.Pos[a]) * 2 / tree.dim.Size[a]))
			if ind < 0 || ind > 1 {
				return nil, 0, false
			}
			octant |= ind << a
		}

		sub := tree.children[octant].Node
		if sub == nil {
			return tree, octant, true
		}
		tree = sub
	}
}

// octantAt places a boundary point into one of the node's octants, clamping
// towards the interior so entry points sitting on the node's own faces (which
// the closed-open rule would push outside) still resolve.
func octantAt(n *Node, p types.Vec3) int {
	octant := 0
	for a := 0; a < 3; a++ {
		ind := int(math.Floor((p[a] - n.dim.Pos[a]) * 2 / n.dim.Size[a]))
		if ind < 0 {
			ind = 0
		} else if ind > 1 {
			ind = 1
		}
		octant |= ind << a
	}
	return octant
}
