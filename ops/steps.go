package ops

import (
	"unicode/utf8"

	"github.com/npillmayer/odfops/dom"
)

// Direction is the rounding direction when converting DOM points to steps.
type Direction int8

// Rounding directions
const (
	Previous Direction = -1
	Next     Direction = 1
)

// step is a valid cursor position. Character steps are located within text
// nodes, end-of-paragraph steps after the last child of a paragraph.
type step struct {
	paragraph *dom.Node
	point     dom.Point
}

// collectSteps enumerates the steps below root in document order.
// Character data of metadata elements (dc:creator, dc:date) does not
// contribute steps.
func collectSteps(root *dom.Node) []step {
	var steps []step
	var walk func(n *dom.Node, paragraph *dom.Node)
	walk = func(n *dom.Node, paragraph *dom.Node) {
		switch {
		case n.IsText():
			if paragraph != nil {
				cnt := utf8.RuneCountInString(n.Data)
				for i := 0; i < cnt; i++ {
					steps = append(steps, step{paragraph, dom.Point{Node: n, Offset: i}})
				}
			}
			return
		case dom.IsMetadataElement(n):
			return
		case dom.IsParagraph(n):
			paragraph = n
		}
		for _, ch := range n.Children() {
			walk(ch, paragraph)
		}
		if dom.IsParagraph(n) {
			steps = append(steps, step{n, dom.Point{Node: n, Offset: n.ChildCount()}})
		}
	}
	if root != nil {
		walk(root, dom.GetParagraphElement(root.Parent()))
	}
	return steps
}
