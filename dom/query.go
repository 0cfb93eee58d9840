package dom

import (
	"errors"

	"github.com/npillmayer/odfops/tree"
)

// GetParagraphElement returns the paragraph containing n (or n itself),
// or nil if n is not located within a paragraph.
func GetParagraphElement(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.ClosestAncestor(IsParagraph, nil)
}

// errReachedRoot ends an ancestor search at the root of a document.
var errReachedRoot = errors.New("ancestor search reached root")

// GetTopLevelListElement returns the outermost text:list element containing n
// (or n itself), not looking beyond root. It returns nil if n is not part of a list.
func GetTopLevelListElement(n *Node, root *Node) *Node {
	if n == nil || n == root {
		return nil
	}
	if IsTopLevelList(n) {
		return n
	}
	found, _ := tree.NewWalker(n.TreeNode()).AncestorWith(func(test, _ *tree.Node[*Node]) (
		*tree.Node[*Node], error) {
		//
		switch {
		case test.Payload == root:
			return nil, errReachedRoot
		case IsTopLevelList(test.Payload):
			return test, nil
		}
		return nil, nil
	}).Promise()()
	if len(found) == 0 {
		return nil
	}
	return found[0].Payload
}

// IsTopLevelList is true for list elements not nested within a list item.
func IsTopLevelList(n *Node) bool {
	return IsListElement(n) && !IsListItemOrListHeader(n.Parent())
}

// ListLevel counts the list elements from n up to root, both inclusive.
func ListLevel(n *Node, root *Node) int {
	level := 0
	for it := n; it != nil; it = it.Parent() {
		if IsListElement(it) {
			level++
		}
		if it == root {
			break
		}
	}
	return level
}

// GetNodesInRange collects all nodes intersecting r, in document order,
// which the classifier accepts. Nodes not intersecting r are rejected
// together with their subtrees, without consulting the classifier.
func GetNodesInRange(r Range, classifier tree.Classifier[*Node]) []*Node {
	root := r.CommonAncestor()
	if root == nil {
		return nil
	}
	// Walk from the parent so that the common ancestor itself is classified.
	start := root
	if root.Parent() != nil {
		start = root.Parent()
	}
	nodes := tree.Classify(start.TreeNode(), func(tn *tree.Node[*Node]) tree.Verdict {
		n := tn.Payload
		if !r.Intersects(n) {
			return tree.Reject
		}
		return classifier(tn)
	})
	result := make([]*Node, len(nodes))
	for i, tn := range nodes {
		result[i] = tn.Payload
	}
	return result
}

// GetParagraphElements returns the paragraphs intersecting r, in document
// order. Paragraphs within annotations are only considered if the range is
// located inside the annotation.
func GetParagraphElements(r Range) []*Node {
	paragraphs := GetNodesInRange(r, func(tn *tree.Node[*Node]) tree.Verdict {
		n := tn.Payload
		switch {
		case IsAnnotation(n):
			return tree.Reject
		case IsParagraph(n):
			return tree.Accept
		}
		return tree.Skip
	})
	if len(paragraphs) == 0 {
		if p := GetParagraphElement(r.Start.Node); p != nil {
			paragraphs = append(paragraphs, p)
		}
	}
	tracer().Debugf("paragraphs in range %v: %v", r, paragraphs)
	return paragraphs
}

// HasNoODFContent is true if n contains neither paragraphs nor
// non-whitespace character data.
func HasNoODFContent(n *Node) bool {
	if IsParagraph(n) {
		return false
	}
	if n.IsText() {
		return isWhitespace(n.Data)
	}
	found, _ := tree.NewWalker(n.TreeNode()).DescendentsWith(NodeHasODFContent).Promise()()
	return len(found) == 0
}

func isWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
