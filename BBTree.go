package phys2d

import (
	"github.com/vova616/phys2d/vect"
)

// BBTree is a dynamic bounding box tree broadphase. Leaves hold a fattened
// box around their shape and are only reinserted once the shape leaves it.
type BBTree struct {
	leaves map[HashValue]*Node
	// leaves in insertion order, so pairs come out in a stable order.
	order []*Node
	root  *Node
}

type Children struct {
	A, B *Node
}

type Node struct {
	shape  *Shape
	bb     AABB
	parent *Node

	Children
}

func (node *Node) IsLeaf() bool {
	return node.shape != nil
}

func (node *Node) NodeSetA(value *Node) {
	node.A = value
	value.parent = node
}

func (node *Node) NodeSetB(value *Node) {
	node.B = value
	value.parent = node
}

func (node *Node) NodeOther(child *Node) *Node {
	if node.A == child {
		return node.B
	}
	return node.A
}

func NewBBTree() *BBTree {
	return &BBTree{leaves: make(map[HashValue]*Node)}
}

func (tree *BBTree) Count() int {
	return len(tree.leaves)
}

func (tree *BBTree) NewLeaf(shape *Shape) *Node {
	return &Node{shape: shape, bb: tree.GetBB(shape)}
}

func (tree *BBTree) NodeNew(a, b *Node) *Node {
	node := &Node{bb: Combine(a.bb, b.bb)}
	node.NodeSetA(a)
	node.NodeSetB(b)
	return node
}

// GetBB returns the box a leaf is filed under: the shape's box grown by a
// tenth of its size, and towards where the body is moving.
func (tree *BBTree) GetBB(shape *Shape) AABB {
	bb := shape.AABB()

	body := shape.Body
	if body == nil || body.IsStatic() {
		return bb
	}

	coef := vect.Float(0.1)

	l := bb.Lower.X
	b := bb.Lower.Y
	r := bb.Upper.X
	t := bb.Upper.Y

	x := (r - l) * coef
	y := (t - b) * coef

	v := vect.Mult(body.v, 0.1)

	return NewAABB(l+vect.FMin(-x, v.X), b+vect.FMin(-y, v.Y), r+vect.FMax(x, v.X), t+vect.FMax(y, v.Y))
}

func (tree *BBTree) SubtreeInsert(subtree, leaf *Node) *Node {
	if subtree == nil {
		return leaf
	} else if subtree.IsLeaf() {
		return tree.NodeNew(leaf, subtree)
	}

	cost_a := subtree.B.bb.Area() + MergedArea(subtree.A.bb, leaf.bb)
	cost_b := subtree.A.bb.Area() + MergedArea(subtree.B.bb, leaf.bb)

	if cost_a == cost_b {
		cost_a = Proximity(subtree.A.bb, leaf.bb)
		cost_b = Proximity(subtree.B.bb, leaf.bb)
	}

	if cost_b < cost_a {
		subtree.NodeSetB(tree.SubtreeInsert(subtree.B, leaf))
	} else {
		subtree.NodeSetA(tree.SubtreeInsert(subtree.A, leaf))
	}

	subtree.bb = Combine(subtree.bb, leaf.bb)

	return subtree
}

func (tree *BBTree) Insert(shape *Shape) {
	if _, ok := tree.leaves[shape.Hash()]; ok {
		return
	}

	leaf := tree.NewLeaf(shape)
	tree.leaves[shape.Hash()] = leaf
	tree.order = append(tree.order, leaf)

	tree.root = tree.SubtreeInsert(tree.root, leaf)
	tree.root.parent = nil
}

func (tree *BBTree) NodeReplaceChild(parent, child, value *Node) {
	if parent.IsLeaf() {
		panic("Internal Error: Cannot replace child of a leaf.")
	}

	if !(child == parent.A || child == parent.B) {
		panic("Internal Error: Node is not a child of parent.")
	}

	if parent.A == child {
		parent.NodeSetA(value)
	} else {
		parent.NodeSetB(value)
	}

	for node := parent; node != nil; node = node.parent {
		node.bb = Combine(node.A.bb, node.B.bb)
	}
}

func (tree *BBTree) Remove(shape *Shape) {
	leaf, ok := tree.leaves[shape.Hash()]
	if !ok {
		return
	}
	delete(tree.leaves, shape.Hash())

	for i, node := range tree.order {
		if node == leaf {
			tree.order = append(tree.order[:i], tree.order[i+1:]...)
			break
		}
	}

	tree.root = tree.SubtreeRemove(tree.root, leaf)
	leaf.parent = nil
}

func (tree *BBTree) SubtreeRemove(subtree, leaf *Node) *Node {
	if leaf == subtree {
		return nil
	}

	parent := leaf.parent
	if parent == subtree {
		other := subtree.NodeOther(leaf)
		other.parent = subtree.parent
		return other
	}

	tree.NodeReplaceChild(parent.parent, parent, parent.NodeOther(leaf))
	return subtree
}

// LeafUpdate refiles the leaf when its shape moved out of the fattened
// box and reports whether it did.
func (tree *BBTree) LeafUpdate(leaf *Node) bool {
	bb := leaf.shape.AABB()

	if !leaf.bb.Contains(bb) {
		leaf.bb = tree.GetBB(leaf.shape)

		root := tree.SubtreeRemove(tree.root, leaf)
		leaf.parent = nil
		tree.root = tree.SubtreeInsert(root, leaf)
		tree.root.parent = nil

		return true
	}

	return false
}

// Reindex refiles every leaf whose shape moved.
func (tree *BBTree) Reindex() {
	// LeafUpdate may replace tree.root, so it is not cached here.
	for _, leaf := range tree.order {
		tree.LeafUpdate(leaf)
	}
}

// Query calls fn for each shape whose box overlaps bb. Returning true from
// fn stops the query.
func (tree *BBTree) Query(bb AABB, fn func(shape *Shape) bool) {
	if tree.root != nil {
		SubtreeQuery(tree.root, bb, fn)
	}
}

func SubtreeQuery(subtree *Node, bb AABB, fn func(shape *Shape) bool) bool {
	if !TestOverlap(subtree.bb, bb) {
		return false
	}
	if subtree.IsLeaf() {
		if !TestOverlap(subtree.shape.BB, bb) {
			return false
		}
		return fn(subtree.shape)
	}
	return SubtreeQuery(subtree.A, bb, fn) || SubtreeQuery(subtree.B, bb, fn)
}

// Pairs calls fn once for every pair of shapes with overlapping boxes.
// Each leaf is tested against the right hand siblings on its way to the
// root, so a pair is only found at its lowest common ancestor.
func (tree *BBTree) Pairs(fn func(a, b *Shape)) {
	for _, leaf := range tree.order {
		for node := leaf; node.parent != nil; node = node.parent {
			if node == node.parent.A {
				markLeafQuery(node.parent.B, leaf, fn)
			}
		}
	}
}

func markLeafQuery(subtree, leaf *Node, fn func(a, b *Shape)) {
	if !TestOverlap(leaf.bb, subtree.bb) {
		return
	}
	if subtree.IsLeaf() {
		if TestOverlap(leaf.shape.BB, subtree.shape.BB) {
			pair := newPair(leaf.shape, subtree.shape)
			fn(pair.A, pair.B)
		}
		return
	}
	markLeafQuery(subtree.A, leaf, fn)
	markLeafQuery(subtree.B, leaf, fn)
}
