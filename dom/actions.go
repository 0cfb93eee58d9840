package dom

import (
	"github.com/npillmayer/odfops/tree"
)

// NodeIsParagraph is a predicate to match paragraph elements (text:p, text:h).
// It is intended to be used in a tree.Walker.
var NodeIsParagraph = func(n *tree.Node[*Node], unused *tree.Node[*Node]) (
	match *tree.Node[*Node], err error) {
	//
	if IsParagraph(n.Payload) {
		return n, nil
	}
	return nil, nil
}

// NodeHasODFContent is a predicate to match paragraphs and text-nodes carrying
// non-whitespace characters.
// It is intended to be used in a tree.Walker.
var NodeHasODFContent = func(n *tree.Node[*Node], unused *tree.Node[*Node]) (
	match *tree.Node[*Node], err error) {
	//
	dn := n.Payload
	if IsParagraph(dn) || (dn.IsText() && !isWhitespace(dn.Data)) {
		return n, nil
	}
	return nil, nil
}

// Paragraphs returns all paragraph elements below root, in document order.
func Paragraphs(root *Node) []*Node {
	found, err := tree.NewWalker(root.TreeNode()).DescendentsWith(NodeIsParagraph).Promise()()
	if err != nil {
		tracer().Errorf("collecting paragraphs: %v", err)
		return nil
	}
	paragraphs := make([]*Node, len(found))
	for i, tn := range found {
		paragraphs[i] = tn.Payload
	}
	return paragraphs
}
