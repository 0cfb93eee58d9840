package dom

// MergeIntoParent moves all children of n into n's parent, at the position
// of n, and removes n. It returns the former parent of n.
func MergeIntoParent(n *Node) *Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	for _, ch := range n.Children() {
		parent.InsertBefore(ch, n)
	}
	parent.RemoveChild(n)
	return parent
}

// RemoveUnwantedNodes walks the subtree rooted at target bottom-up and
// unwraps every node for which unwanted returns true, i.e. its children are
// merged into its parent. unwanted is called for every node of the subtree,
// including target. RemoveUnwantedNodes returns the parent of target.
func RemoveUnwantedNodes(target *Node, unwanted func(*Node) bool) *Node {
	parent := target.Parent()
	for _, ch := range target.Children() {
		RemoveUnwantedNodes(ch, unwanted)
	}
	if parent != nil && unwanted(target) {
		MergeIntoParent(target)
	}
	return parent
}

// ExtractRange removes the content selected by r from the tree and returns
// it as a sequence of top-level fragment nodes. Ancestors partially selected
// by r are cloned shallowly into the fragment, so that the extracted content
// keeps its nesting. Boundary points of r have to refer to elements.
func ExtractRange(r Range) []*Node {
	if r.Collapsed() {
		return nil
	}
	return extract(r.Start.Node, r.Start.Offset, r.End.Node, r.End.Offset)
}

func extract(sc *Node, so int, ec *Node, eo int) []*Node {
	var fragment []*Node
	if sc == ec {
		children := sc.Children()
		for i := so; i < eo && i < len(children); i++ {
			fragment = append(fragment, sc.RemoveChild(children[i]))
		}
		return fragment
	}
	ca := CommonAncestor(sc, ec)
	var first, last *Node // partially contained children of ca
	from, to := so, eo
	if sc != ca {
		first = childContaining(ca, sc)
		from = ca.IndexOfChild(first) + 1
	}
	if ec != ca {
		last = childContaining(ca, ec)
		to = ca.IndexOfChild(last)
	}
	if first != nil {
		clone := first.CloneShallow()
		var inner []*Node
		if sc == first {
			inner = extract(sc, so, sc, sc.ChildCount())
		} else {
			inner = extract(sc, so, first, first.ChildCount())
		}
		for _, n := range inner {
			clone.AppendChild(n)
		}
		fragment = append(fragment, clone)
	}
	children := ca.Children()
	for i := from; i < to && i < len(children); i++ {
		fragment = append(fragment, ca.RemoveChild(children[i]))
	}
	if last != nil {
		clone := last.CloneShallow()
		var inner []*Node
		if ec == last {
			inner = extract(ec, 0, ec, eo)
		} else {
			inner = extract(last, 0, ec, eo)
		}
		for _, n := range inner {
			clone.AppendChild(n)
		}
		fragment = append(fragment, clone)
	}
	return fragment
}

// --- Collapsing ------------------------------------------------------------

// CollapsingRules removes container elements which have been left without
// content by a structural operation. The document root is never collapsed.
type CollapsingRules struct {
	root *Node
}

// NewCollapsingRules creates collapsing rules for a document root.
func NewCollapsingRules(root *Node) CollapsingRules {
	return CollapsingRules{root: root}
}

func (cr CollapsingRules) isCollapsibleContainer(n *Node) bool {
	return n.IsElement() && !IsParagraph(n) && n != cr.root && !n.Contains(cr.root) &&
		HasNoODFContent(n)
}

// MergeChildrenIntoParent removes empty containers within target (including
// target itself) and then continues upwards as long as the parent has become
// an empty container. It returns the node where collapsing stopped.
func (cr CollapsingRules) MergeChildrenIntoParent(target *Node) *Node {
	var parent *Node
	if target.IsText() {
		parent = target.Parent()
		parent.RemoveChild(target)
	} else {
		parent = RemoveUnwantedNodes(target, cr.isCollapsibleContainer)
	}
	if parent != nil && cr.isCollapsibleContainer(parent) {
		return cr.MergeChildrenIntoParent(parent)
	}
	return parent
}
