package octree

import (
	"errors"
	"testing"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/types"
)

// ball is a minimal indexable item: a sphere given by center and diameter.
type ball struct {
	center types.Vec3
	diam   float64
}

func (b *ball) Pos() types.Vec3 {
	return b.center
}

func (b *ball) Bounds() geom.AABB {
	return geom.Cube(b.center, b.diam)
}

func (b *ball) Within(p types.Vec3) bool {
	r := b.diam / 2
	return p.Sub(b.center).LenSq() <= r*r
}

func itemTree() *Node {
	return NewItemTree(geom.CubeSpace(types.XYZ(0, 0, 0), 1))
}

func TestAddItemInsideGrowth(t *testing.T) {
	tree := itemTree()
	budget := GrowBudget{MaxInDepth: 10, MaxOutDepth: 10}

	// A ball whose box exactly matches the depth-1 octant 0 sub-box lives
	// at that child, not at the root.
	b := &ball{center: types.XYZ(0.25, 0.25, 0.25), diam: 0.5}
	n, err := AddItem(tree, b, budget)
	if err != nil {
		t.Fatal(err)
	}
	if n.Level() != 1 || n.Index() != 0 {
		t.Fatalf("expected depth-1 octant 0; got level %d index %d", n.Level(), n.Index())
	}
	if !Items(n).Has(b) {
		t.Fatal("expected ball in the fitting node's set")
	}
	if Items(tree).Has(b) {
		t.Fatal("expected ball in exactly one set")
	}

	// A ball straddling the midplane stays at the root.
	b2 := &ball{center: types.XYZ(0.5, 0.25, 0.5), diam: 0.25}
	n2, err := AddItem(tree, b2, budget)
	if err != nil {
		t.Fatal(err)
	}
	if n2 != tree {
		t.Fatalf("expected root; got level %d", n2.Level())
	}
}

func TestAddItemCoversBounds(t *testing.T) {
	tree := itemTree()
	budget := GrowBudget{MaxInDepth: 10, MaxOutDepth: 10}

	specs := []*ball{
		{types.XYZ(0.1, 0.1, 0.1), 0.05},
		{types.XYZ(0.9, 0.2, 0.7), 0.1},
		{types.XYZ(0.5, 0.5, 0.5), 0.8},
	}

	for index, b := range specs {
		n, err := AddItem(tree, b, budget)
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}
		if !n.Dim().Contains(b.Bounds().Space()) {
			t.Fatalf("[spec %d] fitting node %v does not cover %v", index, n.Dim(), b.Bounds())
		}
	}
}

func TestAddItemDepthBudget(t *testing.T) {
	tree := itemTree()

	b := &ball{center: types.XYZ(0.01, 0.01, 0.01), diam: 0.001}
	n, err := AddItem(tree, b, GrowBudget{MaxInDepth: 3, MaxOutDepth: 0})
	if err != nil {
		t.Fatal(err)
	}
	if n.Level() != 3 {
		t.Fatalf("expected inside growth to stop at depth 3; got %d", n.Level())
	}
}

func TestAddItemOutsideGrowth(t *testing.T) {
	tree := itemTree()
	budget := GrowBudget{MaxInDepth: 4, MaxOutDepth: 8}

	b := &ball{center: types.XYZ(-2.5, -2.5, -2.5), diam: 0.5}
	n, err := AddItem(tree, b, budget)
	if err != nil {
		t.Fatal(err)
	}

	root := tree.Root()
	if root == tree {
		t.Fatal("expected a new absolute root above the old one")
	}
	if !root.Dim().Contains(b.Bounds().Space()) {
		t.Fatalf("expected grown root %v to cover the ball", root.Dim())
	}
	if !n.Dim().Contains(b.Bounds().Space()) {
		t.Fatalf("fitting node %v does not cover the ball", n.Dim())
	}
	// The old root keeps its canonical child relationship.
	if tree.Parent() == nil || tree.Dim().Size[0]*2 != tree.Parent().Dim().Size[0] {
		t.Fatal("expected old root to be a half-size child of its wrapper")
	}
}

func TestAddItemRootEscape(t *testing.T) {
	tree := itemTree()

	b := &ball{center: types.XYZ(100, 100, 100), diam: 1}
	_, err := AddItem(tree, b, GrowBudget{MaxInDepth: 4, MaxOutDepth: 2})
	var growErr *OutsideGrowError
	if !errors.As(err, &growErr) {
		t.Fatalf("expected OutsideGrowError; got %v", err)
	}
	if growErr.Root == nil || growErr.Root != tree.Root() {
		t.Fatal("expected error to reference the last grown absolute root")
	}
}

func TestItemAtPos(t *testing.T) {
	tree := itemTree()
	budget := GrowBudget{MaxInDepth: 10, MaxOutDepth: 10}

	b := &ball{center: types.XYZ(0.25, 0.25, 0.25), diam: 0.5}
	if _, err := AddItem(tree, b, budget); err != nil {
		t.Fatal(err)
	}

	if got := ItemAtPos(tree.Root(), types.XYZ(0.25, 0.25, 0.3)); got != b {
		t.Fatalf("expected ball; got %v", got)
	}
	if got := ItemAtPos(tree.Root(), types.XYZ(0.9, 0.9, 0.9)); got != nil {
		t.Fatalf("expected nil; got %v", got)
	}
}

func TestCoveringNode(t *testing.T) {
	tree := itemTree()
	budget := GrowBudget{MaxInDepth: 10, MaxOutDepth: 10}
	if _, err := AddItem(tree, &ball{types.XYZ(0.25, 0.25, 0.25), 0.5}, budget); err != nil {
		t.Fatal(err)
	}

	// The depth-1 node exists now; a smaller box in the same corner is
	// covered by it.
	n := CoveringNode(tree, geom.CubeSpace(types.XYZ(0.1, 0.1, 0.1), 0.1))
	if n == nil || n.Level() != 1 {
		t.Fatalf("expected the depth-1 node; got %v", n)
	}

	if n := CoveringNode(tree, geom.CubeSpace(types.XYZ(0.9, 0.9, 0.9), 0.5)); n != nil {
		t.Fatalf("expected nil for escaping bounds; got %v", n.Dim())
	}
}
