package gui

import (
	"strconv"

	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/style"
)

// StyleLookup resolves the styles applied to document nodes.
// *style.Formatting implements it.
type StyleLookup interface {
	GetAppliedStyles(n *dom.Node) []style.AppliedStyle
	GetStyleElement(name, family string) *dom.Node
}

// ListStyleSummary tells whether a node is part of a numbered or a bulleted
// list. Both are false for nodes outside of lists.
type ListStyleSummary struct {
	IsNumberedList bool
	IsBulletedList bool
}

// NewListStyleSummary determines the kind of list a node is part of.
// The list level of node is matched against the level styles of the list
// style applied to node. node may be nil.
func NewListStyleSummary(node, root *dom.Node, styles StyleLookup) ListStyleSummary {
	var summary ListStyleSummary
	if node == nil {
		return summary
	}
	level := dom.ListLevel(node, root)
	listStyle := listStyleElementAt(node, styles)
	if listStyle == nil {
		return summary
	}
	for ls := listStyle.FirstElementChild(); ls != nil; ls = ls.NextElementSibling() {
		lvl, err := strconv.Atoi(ls.AttrOrEmpty(dom.AttrTextLevel))
		if err != nil || lvl != level {
			continue
		}
		summary.IsBulletedList = ls.Is(dom.TextListLevelStyleBullet)
		summary.IsNumberedList = ls.Is(dom.TextListLevelStyleNumber)
	}
	return summary
}

func listStyleElementAt(node *dom.Node, styles StyleLookup) *dom.Node {
	for _, applied := range styles.GetAppliedStyles(node) {
		if applied.Family == style.FamilyListStyle {
			return styles.GetStyleElement(applied.Name, style.FamilyListStyle)
		}
	}
	return nil
}
