package interval

import "fmt"

// Direction selects one of the two children of a node.
type Direction uint8

const (
	Left Direction = iota
	Right
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	return 1 - d
}

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

type color bool

const (
	black color = false
	red   color = true
)

// NodeRef is a stable handle to a node stored in a Tree. A node keeps its
// handle for the lifetime of the tree; rotations only relink it.
type NodeRef int32

// NoNode is the handle of an absent node.
const NoNode NodeRef = -1

type node struct {
	key    Interval
	color  color
	parent NodeRef
	child  [2]NodeRef
	max    int64
}

// InvariantError reports a broken red-black or augmentation invariant. It
// is raised as a panic by mutating operations and returned by Verify.
type InvariantError struct {
	Op     string
	Node   NodeRef
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("interval tree invariant violated in %s at node %d: %s", e.Op, e.Node, e.Reason)
}

// Interval returns the interval stored at n.
func (t *Tree) Interval(n NodeRef) Interval {
	return t.nodes[n].key
}

// IsRed reports whether n is red. Absent nodes are black.
func (t *Tree) IsRed(n NodeRef) bool {
	return n != NoNode && t.nodes[n].color == red
}

func (t *Tree) setColor(n NodeRef, c color) {
	t.nodes[n].color = c
}

// Parent returns the parent of n, or false at the root.
func (t *Tree) Parent(n NodeRef) (NodeRef, bool) {
	p := t.nodes[n].parent
	return p, p != NoNode
}

func (t *Tree) setParent(n, p NodeRef) {
	t.nodes[n].parent = p
}

// Child returns the child of n on side d, or false if there is none.
func (t *Tree) Child(n NodeRef, d Direction) (NodeRef, bool) {
	c := t.nodes[n].child[d]
	return c, c != NoNode
}

func (t *Tree) setChild(n NodeRef, d Direction, c NodeRef) {
	t.nodes[n].child[d] = c
	if c != NoNode {
		t.nodes[c].parent = n
	}
}

// Grandparent returns the parent of the parent of n, or false if either
// hop is missing.
func (t *Tree) Grandparent(n NodeRef) (NodeRef, bool) {
	p, ok := t.Parent(n)
	if !ok {
		return NoNode, false
	}
	return t.Parent(p)
}

// MaxEnd returns the largest End in the subtree rooted at n.
func (t *Tree) MaxEnd(n NodeRef) int64 {
	return t.nodes[n].max
}

func (t *Tree) setMax(n NodeRef, max int64) {
	t.nodes[n].max = max
}

// side returns which child of its parent n is. n must not be the root.
func (t *Tree) side(n NodeRef) Direction {
	if t.nodes[t.nodes[n].parent].child[Left] == n {
		return Left
	}
	return Right
}

// recomputeMax derives the cached max of n from its own end and its children.
func (t *Tree) recomputeMax(n NodeRef) {
	max := t.nodes[n].key.End
	for _, c := range t.nodes[n].child {
		if c != NoNode && t.nodes[c].max > max {
			max = t.nodes[c].max
		}
	}
	t.setMax(n, max)
}
