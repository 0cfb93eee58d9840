package dom

import "fmt"

// Point is a boundary point within the DOM. For text nodes, Offset counts
// characters (runes); for elements it counts children.
type Point struct {
	Node   *Node
	Offset int
}

func (p Point) String() string {
	return fmt.Sprintf("(%v,%d)", p.Node, p.Offset)
}

// IsValid is true if the point refers to a node.
func (p Point) IsValid() bool {
	return p.Node != nil
}

// Before returns the boundary point immediately before n.
func Before(n *Node) Point {
	p := n.Parent()
	return Point{Node: p, Offset: p.IndexOfChild(n)}
}

// After returns the boundary point immediately after n.
func After(n *Node) Point {
	p := n.Parent()
	return Point{Node: p, Offset: p.IndexOfChild(n) + 1}
}

// ComparePoints returns -1, 0 or 1, depending on whether a is before, equal
// to, or after b in document order. Both points have to be located within
// the same tree.
func ComparePoints(a, b Point) int {
	if a.Node == b.Node {
		return compareInts(a.Offset, b.Offset)
	}
	if a.Node.Contains(b.Node) {
		ch := childContaining(a.Node, b.Node)
		if a.Node.IndexOfChild(ch) < a.Offset {
			return 1
		}
		return -1
	}
	if b.Node.Contains(a.Node) {
		return -ComparePoints(b, a)
	}
	return CompareDocumentOrder(a.Node, b.Node)
}

// CompareDocumentOrder compares two nodes by their pre-order position.
// An ancestor precedes its descendents.
func CompareDocumentOrder(a, b *Node) int {
	if a == b {
		return 0
	}
	pa, pb := a.Node.Path(), b.Node.Path()
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return compareInts(pa[i], pb[i])
		}
	}
	return compareInts(len(pa), len(pb))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// childContaining returns the child of ancestor which contains n.
func childContaining(ancestor, n *Node) *Node {
	it := n
	for it != nil && it.Parent() != ancestor {
		it = it.Parent()
	}
	return it
}

// CommonAncestor returns the deepest node containing both a and b, or nil.
func CommonAncestor(a, b *Node) *Node {
	for it := a; it != nil; it = it.Parent() {
		if it.Contains(b) {
			return it
		}
	}
	return nil
}

// --- Ranges ----------------------------------------------------------------

// Range is a pair of boundary points with Start never after End.
type Range struct {
	Start, End Point
}

// NewRange creates a range from two boundary points, ordering them if necessary.
func NewRange(a, b Point) Range {
	if ComparePoints(a, b) > 0 {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

func (r Range) String() string {
	return fmt.Sprintf("[%v…%v]", r.Start, r.End)
}

// Collapsed is true if start and end of the range coincide.
func (r Range) Collapsed() bool {
	return ComparePoints(r.Start, r.End) == 0
}

// Intersects is true if node n is partially or fully selected by r,
// or if a collapsed r is located within n.
func (r Range) Intersects(n *Node) bool {
	if n.Parent() == nil {
		return n.Contains(r.Start.Node) || n.Contains(r.End.Node)
	}
	return ComparePoints(Before(n), r.End) < 0 && ComparePoints(After(n), r.Start) > 0
}

// CommonAncestor returns the deepest node containing both boundary points.
func (r Range) CommonAncestor() *Node {
	return CommonAncestor(r.Start.Node, r.End.Node)
}
