package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/odfops/tree"
	"golang.org/x/net/html"
)

// Node is a node of the document object model. It is either an element,
// a text node, or a document node (the root of a parsed document).
//
// Node embeds a generic tree node, with the tree node's payload pointing
// back to the DOM node.
type Node struct {
	tree.Node[*Node]
	Type  html.NodeType    // ElementNode, TextNode or DocumentNode
	Name  string           // qualified element name, "#text" or "#document"
	Data  string           // character data of text nodes
	attrs []html.Attribute // ordered attributes of elements
}

// NewElement creates a new element node with a qualified name, e.g. "text:p".
func NewElement(qname string) *Node {
	n := &Node{Type: html.ElementNode, Name: qname}
	n.Payload = n
	return n
}

// NewText creates a new text node.
func NewText(data string) *Node {
	n := &Node{Type: html.TextNode, Name: "#text", Data: data}
	n.Payload = n
	return n
}

// NewDocument creates an empty document node.
func NewDocument() *Node {
	n := &Node{Type: html.DocumentNode, Name: "#document"}
	n.Payload = n
	return n
}

// TreeNode returns the underlying tree node of a DOM node.
func (n *Node) TreeNode() *tree.Node[*Node] {
	if n == nil {
		return nil
	}
	return &n.Node
}

// NodeFromTreeNode returns the DOM node for a tree node.
func NodeFromTreeNode(tn *tree.Node[*Node]) *Node {
	if tn == nil {
		return nil
	}
	return tn.Payload
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case html.TextNode:
		return fmt.Sprintf("%q", shorten(n.Data, 20))
	case html.ElementNode:
		if id, ok := n.Attr(AttrXMLID); ok {
			return fmt.Sprintf("<%s #%s>", n.Name, id)
		}
		return "<" + n.Name + ">"
	}
	return n.Name
}

func shorten(s string, l int) string {
	if len(s) > l {
		return s[:l] + "…"
	}
	return s
}

// IsElement is true for element nodes.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == html.ElementNode
}

// IsText is true for text nodes.
func (n *Node) IsText() bool {
	return n != nil && n.Type == html.TextNode
}

// Is checks if n is an element with qualified name qname.
func (n *Node) Is(qname string) bool {
	return n.IsElement() && n.Name == qname
}

// Prefix returns the namespace prefix of an element, e.g. "text" for "text:p".
func (n *Node) Prefix() string {
	if i := strings.IndexByte(n.Name, ':'); i > 0 && n.IsElement() {
		return n.Name[:i]
	}
	return ""
}

// LocalName returns the local part of an element name, e.g. "p" for "text:p".
func (n *Node) LocalName() string {
	if i := strings.IndexByte(n.Name, ':'); i >= 0 && n.IsElement() {
		return n.Name[i+1:]
	}
	return n.Name
}

// --- Navigation ------------------------------------------------------------

// Parent returns the parent node, or nil for root nodes.
func (n *Node) Parent() *Node {
	return NodeFromTreeNode(n.Node.Parent())
}

// FirstChild returns the first child of n, or nil.
func (n *Node) FirstChild() *Node {
	return NodeFromTreeNode(n.Node.FirstChild())
}

// LastChild returns the last child of n, or nil.
func (n *Node) LastChild() *Node {
	return NodeFromTreeNode(n.Node.LastChild())
}

// NextSibling returns the node following n, or nil.
func (n *Node) NextSibling() *Node {
	return NodeFromTreeNode(n.Node.NextSibling())
}

// PrevSibling returns the node preceding n, or nil.
func (n *Node) PrevSibling() *Node {
	return NodeFromTreeNode(n.Node.PrevSibling())
}

// FirstElementChild returns the first child which is an element, or nil.
func (n *Node) FirstElementChild() *Node {
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if ch.IsElement() {
			return ch
		}
	}
	return nil
}

// LastElementChild returns the last child which is an element, or nil.
func (n *Node) LastElementChild() *Node {
	for ch := n.LastChild(); ch != nil; ch = ch.PrevSibling() {
		if ch.IsElement() {
			return ch
		}
	}
	return nil
}

// NextElementSibling returns the next sibling which is an element, or nil.
func (n *Node) NextElementSibling() *Node {
	for sib := n.NextSibling(); sib != nil; sib = sib.NextSibling() {
		if sib.IsElement() {
			return sib
		}
	}
	return nil
}

// Children returns the child nodes of n.
func (n *Node) Children() []*Node {
	tch := n.Node.Children()
	children := make([]*Node, len(tch))
	for i, ch := range tch {
		children[i] = ch.Payload
	}
	return children
}

// ChildAt returns the child at position i, or nil.
func (n *Node) ChildAt(i int) *Node {
	ch, _ := n.Node.Child(i)
	return NodeFromTreeNode(ch)
}

// IndexOfChild returns the position of ch within the children of n, or -1.
func (n *Node) IndexOfChild(ch *Node) int {
	return n.Node.IndexOfChild(ch.TreeNode())
}

// Contains is true if other is n or a descendent of n.
func (n *Node) Contains(other *Node) bool {
	if n == nil || other == nil {
		return false
	}
	return n.Node.Contains(other.TreeNode())
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	r := n
	for p := r.Parent(); p != nil; p = r.Parent() {
		r = p
	}
	return r
}

// ClosestAncestor returns the nearest ancestor-or-self of n satisfying
// pred, not looking beyond root. It returns nil if no such node exists.
func (n *Node) ClosestAncestor(pred func(*Node) bool, root *Node) *Node {
	for it := n; it != nil; it = it.Parent() {
		if pred(it) {
			return it
		}
		if it == root {
			break
		}
	}
	return nil
}

// --- Mutation --------------------------------------------------------------

// AppendChild appends ch as the last child of n, moving it from its
// current position if it is already linked into a tree. It returns ch.
func (n *Node) AppendChild(ch *Node) *Node {
	n.Node.AddChild(ch.TreeNode())
	return ch
}

// InsertBefore inserts ch as a child of n immediately before ref. If ref is nil,
// ch is appended. It returns ch.
func (n *Node) InsertBefore(ch *Node, ref *Node) *Node {
	n.Node.InsertBefore(ch.TreeNode(), ref.TreeNode())
	return ch
}

// RemoveChild unlinks ch from n. It returns ch.
func (n *Node) RemoveChild(ch *Node) *Node {
	if ch.Parent() == n {
		ch.Node.Isolate()
	}
	return ch
}

// Remove unlinks n from its parent. It returns n.
func (n *Node) Remove() *Node {
	n.Node.Isolate()
	return n
}

// CloneShallow creates a copy of n without children.
func (n *Node) CloneShallow() *Node {
	c := &Node{Type: n.Type, Name: n.Name, Data: n.Data}
	c.Payload = c
	if len(n.attrs) > 0 {
		c.attrs = make([]html.Attribute, len(n.attrs))
		copy(c.attrs, n.attrs)
	}
	return c
}

// CloneDeep creates a copy of the subtree rooted at n.
func (n *Node) CloneDeep() *Node {
	c := n.CloneShallow()
	for _, ch := range n.Children() {
		c.AppendChild(ch.CloneDeep())
	}
	return c
}

// --- Attributes ------------------------------------------------------------

// Attr returns the value of an attribute, given its qualified name.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOrEmpty returns the value of an attribute, or the empty string.
func (n *Node) AttrOrEmpty(key string) string {
	v, _ := n.Attr(key)
	return v
}

// SetAttr sets an attribute, overwriting an existing value.
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes an attribute, if present.
func (n *Node) RemoveAttr(key string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the ordered attributes of n.
func (n *Node) Attributes() []html.Attribute {
	attrs := make([]html.Attribute, len(n.attrs))
	copy(attrs, n.attrs)
	return attrs
}

// TextContent concatenates the character data of all text nodes below n.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Data
	}
	var b strings.Builder
	for _, ch := range n.Children() {
		b.WriteString(ch.TextContent())
	}
	return b.String()
}
