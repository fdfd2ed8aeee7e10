package interval

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no stored interval overlaps a query.
var ErrNotFound = errors.New("no overlapping interval found")

// Comparator decides on which side of an already stored interval b a new
// interval a descends during insertion.
type Comparator func(a, b Interval) Direction

// ByStart orders intervals by start. Equal starts go right, so intervals
// sharing a start keep their insertion order.
func ByStart(a, b Interval) Direction {
	if a.Start < b.Start {
		return Left
	}
	return Right
}

// Tree is a red-black tree of intervals augmented with the maximum end of
// every subtree. Nodes live in an arena and refer to each other by handle.
//
// Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
	root  NodeRef
	cmp   Comparator
}

// NewIntervalTree returns an empty tree ordered by start.
func NewIntervalTree() *Tree {
	return NewTree(ByStart)
}

// NewTree returns an empty tree ordered by cmp.
func NewTree(cmp Comparator) *Tree {
	if cmp == nil {
		cmp = ByStart
	}
	return &Tree{root: NoNode, cmp: cmp}
}

// Size returns the number of stored intervals.
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Root returns the root node, or false if the tree is empty.
func (t *Tree) Root() (NodeRef, bool) {
	return t.root, t.root != NoNode
}

// Insert stores iv and returns its node. Duplicates are allowed.
func (t *Tree) Insert(iv Interval) NodeRef {
	z := NodeRef(len(t.nodes))
	t.nodes = append(t.nodes, node{
		key:    iv,
		color:  red,
		parent: NoNode,
		child:  [2]NodeRef{NoNode, NoNode},
		max:    iv.End,
	})

	parent, dir := NoNode, Left
	for x := t.root; x != NoNode; x = t.nodes[x].child[dir] {
		parent = x
		dir = t.cmp(iv, t.nodes[x].key)
	}

	if parent == NoNode {
		t.root = z
	} else {
		t.setChild(parent, dir, z)
		for a := parent; a != NoNode && t.nodes[a].max < iv.End; a = t.nodes[a].parent {
			t.setMax(a, iv.End)
		}
	}

	t.insertFixup(z)
	return z
}

func (t *Tree) insertFixup(z NodeRef) {
	for z != t.root && t.IsRed(t.nodes[z].parent) {
		p := t.nodes[z].parent
		g, _ := t.Grandparent(z) // a red parent is never the root
		side := t.side(p)

		uncle := t.nodes[g].child[side.Opposite()]
		if t.IsRed(uncle) {
			t.setColor(p, black)
			t.setColor(uncle, black)
			t.setColor(g, red)
			z = g
			continue
		}

		if t.side(z) != side {
			z = p
			t.rotate(z, side)
			p = t.nodes[z].parent
		}
		t.setColor(p, black)
		t.setColor(g, red)
		t.rotate(g, side.Opposite())
	}
	t.setColor(t.root, black)
}

// rotate moves x down toward d and lifts its child on the opposite side
// into its place.
func (t *Tree) rotate(x NodeRef, d Direction) {
	o := d.Opposite()
	y := t.nodes[x].child[o]
	if y == NoNode {
		panic(&InvariantError{Op: "rotate " + d.String(), Node: x, Reason: "no " + o.String() + " child to lift"})
	}

	t.setChild(x, o, t.nodes[y].child[d])

	px := t.nodes[x].parent
	if px == NoNode {
		t.root = y
		t.setParent(y, NoNode)
	} else {
		t.setChild(px, t.side(x), y)
	}
	t.setChild(y, d, x)

	// y now covers exactly the subtree x covered before.
	t.setMax(y, t.nodes[x].max)
	t.recomputeMax(x)
}

// Minimum returns the leftmost node under n, or NoNode if n is NoNode.
func (t *Tree) Minimum(n NodeRef) NodeRef {
	return t.extreme(n, Left)
}

// Maximum returns the rightmost node under n, or NoNode if n is NoNode.
func (t *Tree) Maximum(n NodeRef) NodeRef {
	return t.extreme(n, Right)
}

func (t *Tree) extreme(n NodeRef, d Direction) NodeRef {
	if n == NoNode {
		return NoNode
	}
	for t.nodes[n].child[d] != NoNode {
		n = t.nodes[n].child[d]
	}
	return n
}

// Min returns the interval with the smallest start.
func (t *Tree) Min() (Interval, bool) {
	n := t.Minimum(t.root)
	if n == NoNode {
		return Interval{}, false
	}
	return t.nodes[n].key, true
}

// Max returns the interval with the largest start.
func (t *Tree) Max() (Interval, bool) {
	n := t.Maximum(t.root)
	if n == NoNode {
		return Interval{}, false
	}
	return t.nodes[n].key, true
}

// Successor returns the next node in order, or NoNode after the last one.
func (t *Tree) Successor(n NodeRef) NodeRef {
	return t.step(n, Right)
}

// Predecessor returns the previous node in order, or NoNode before the
// first one.
func (t *Tree) Predecessor(n NodeRef) NodeRef {
	return t.step(n, Left)
}

func (t *Tree) step(n NodeRef, d Direction) NodeRef {
	if c := t.nodes[n].child[d]; c != NoNode {
		return t.extreme(c, d.Opposite())
	}
	p := t.nodes[n].parent
	for p != NoNode && t.nodes[p].child[d] == n {
		n, p = p, t.nodes[p].parent
	}
	return p
}

// Ordered returns the nodes of the subtree rooted at n in ascending order.
// Pass the root for the whole tree.
func (t *Tree) Ordered(n NodeRef) []NodeRef {
	return t.walk(n, Right)
}

// ReverseOrdered returns the nodes of the subtree rooted at n in
// descending order.
func (t *Tree) ReverseOrdered(n NodeRef) []NodeRef {
	return t.walk(n, Left)
}

func (t *Tree) walk(n NodeRef, d Direction) []NodeRef {
	if n == NoNode {
		return nil
	}
	out := make([]NodeRef, 0, len(t.nodes))
	last := t.extreme(n, d)
	for x := t.extreme(n, d.Opposite()); ; x = t.step(x, d) {
		out = append(out, x)
		if x == last {
			return out
		}
	}
}

// OrderedData returns every stored interval in ascending order of start.
// Each call takes a fresh snapshot.
func (t *Tree) OrderedData() []Interval {
	return t.data(t.Ordered(t.root))
}

// ReverseOrderedData returns every stored interval in descending order of
// start.
func (t *Tree) ReverseOrderedData() []Interval {
	return t.data(t.ReverseOrdered(t.root))
}

func (t *Tree) data(refs []NodeRef) []Interval {
	out := make([]Interval, len(refs))
	for i, n := range refs {
		out[i] = t.nodes[n].key
	}
	return out
}

// SearchOverlapping returns all stored intervals overlapping q. The result
// follows tree order but callers should not rely on it.
func (t *Tree) SearchOverlapping(q Interval) []Interval {
	return t.SearchOverlappingFrom(t.root, q)
}

// SearchOverlappingFrom restricts SearchOverlapping to the subtree at n.
func (t *Tree) SearchOverlappingFrom(n NodeRef, q Interval) []Interval {
	if n == NoNode {
		return nil
	}
	return t.searchOverlapping(n, q, nil)
}

func (t *Tree) searchOverlapping(n NodeRef, q Interval, out []Interval) []Interval {
	x := &t.nodes[n]
	if l := x.child[Left]; l != NoNode && t.nodes[l].max >= q.Start {
		out = t.searchOverlapping(l, q, out)
	}
	if x.key.Overlaps(q) {
		out = append(out, x.key)
	}
	if r := x.child[Right]; r != NoNode && x.key.Start <= q.End {
		out = t.searchOverlapping(r, q, out)
	}
	return out
}

// FindFirstOverlapping returns one stored interval overlapping q, or
// ErrNotFound.
func (t *Tree) FindFirstOverlapping(q Interval) (Interval, error) {
	x := t.root
	for x != NoNode && !t.nodes[x].key.Overlaps(q) {
		if l := t.nodes[x].child[Left]; l != NoNode && t.nodes[l].max >= q.Start {
			x = l
		} else {
			x = t.nodes[x].child[Right]
		}
	}
	if x == NoNode {
		return Interval{}, errors.Wrapf(ErrNotFound, "query %s", q)
	}
	return t.nodes[x].key, nil
}

// BlackHeight counts the black nodes on the path from the root down its
// left spine.
func (t *Tree) BlackHeight() int {
	h := 0
	for x := t.root; x != NoNode; x = t.nodes[x].child[Left] {
		if !t.IsRed(x) {
			h++
		}
	}
	return h
}

// Height returns the number of levels in the tree.
func (t *Tree) Height() int {
	return t.height(t.root)
}

func (t *Tree) height(n NodeRef) int {
	if n == NoNode {
		return 0
	}
	l, r := t.height(t.nodes[n].child[Left]), t.height(t.nodes[n].child[Right])
	if l > r {
		return l + 1
	}
	return r + 1
}

// Verify walks the whole tree and returns an *InvariantError describing the
// first violated red-black, augmentation, linkage or ordering invariant.
func (t *Tree) Verify() error {
	if t.root == NoNode {
		return nil
	}
	if t.IsRed(t.root) {
		return &InvariantError{Op: "verify", Node: t.root, Reason: "root is red"}
	}
	if p := t.nodes[t.root].parent; p != NoNode {
		return &InvariantError{Op: "verify", Node: t.root, Reason: fmt.Sprintf("root has parent %d", p)}
	}
	if _, _, err := t.verify(t.root); err != nil {
		return err
	}

	var prev NodeRef = NoNode
	for _, n := range t.Ordered(t.root) {
		if prev != NoNode && t.cmp(t.nodes[n].key, t.nodes[prev].key) == Left {
			return &InvariantError{Op: "verify", Node: n, Reason: "out of order with its predecessor"}
		}
		prev = n
	}
	return nil
}

// verify returns the black height and the true maximum end of the subtree
// at n.
func (t *Tree) verify(n NodeRef) (int, int64, error) {
	x := t.nodes[n]
	max := x.key.End
	heights := [2]int{}
	for d, c := range x.child {
		if c == NoNode {
			continue
		}
		if t.nodes[c].parent != n {
			return 0, 0, &InvariantError{Op: "verify", Node: c, Reason: fmt.Sprintf("parent link is %d, want %d", t.nodes[c].parent, n)}
		}
		if x.color == red && t.IsRed(c) {
			return 0, 0, &InvariantError{Op: "verify", Node: c, Reason: "red node has a red parent"}
		}
		h, m, err := t.verify(c)
		if err != nil {
			return 0, 0, err
		}
		heights[d] = h
		if m > max {
			max = m
		}
	}
	if heights[Left] != heights[Right] {
		return 0, 0, &InvariantError{Op: "verify", Node: n, Reason: fmt.Sprintf("black heights differ: %d left, %d right", heights[Left], heights[Right])}
	}
	if x.max != max {
		return 0, 0, &InvariantError{Op: "verify", Node: n, Reason: fmt.Sprintf("cached max %d, subtree max %d", x.max, max)}
	}
	if x.color == black {
		heights[Left]++
	}
	return heights[Left], max, nil
}
