package dom

// Qualified names of ODF elements used throughout the module.
const (
	OfficeDocument        = "office:document"
	OfficeStyles          = "office:styles"
	OfficeAutomaticStyles = "office:automatic-styles"
	OfficeBody            = "office:body"
	OfficeText            = "office:text"
	OfficeAnnotation      = "office:annotation"
	OfficeAnnotationEnd   = "office:annotation-end"

	TextP          = "text:p"
	TextH          = "text:h"
	TextSpan       = "text:span"
	TextA          = "text:a"
	TextMeta       = "text:meta"
	TextSection    = "text:section"
	TextList       = "text:list"
	TextListItem   = "text:list-item"
	TextListHeader = "text:list-header"
	TextListStyle  = "text:list-style"

	TextListLevelStyleNumber = "text:list-level-style-number"
	TextListLevelStyleBullet = "text:list-level-style-bullet"

	StyleStyle        = "style:style"
	StyleDefaultStyle = "style:default-style"

	DCCreator = "dc:creator"
	DCDate    = "dc:date"

	TableTable     = "table:table"
	TableTableRow  = "table:table-row"
	TableTableCell = "table:table-cell"
	DrawFrame      = "draw:frame"
	DrawTextBox    = "draw:text-box"
)

// Qualified names of ODF attributes.
const (
	AttrXMLID           = "xml:id"
	AttrTextStyleName   = "text:style-name"
	AttrTextLevel       = "text:level"
	AttrStyleName       = "style:name"
	AttrStyleFamily     = "style:family"
	AttrParentStyleName = "style:parent-style-name"
	AttrListStyleName   = "style:list-style-name"
)

// IsParagraph is true for text:p and text:h elements.
func IsParagraph(n *Node) bool {
	return n.Is(TextP) || n.Is(TextH)
}

// IsListElement is true for text:list elements.
func IsListElement(n *Node) bool {
	return n.Is(TextList)
}

// IsListItemOrListHeader is true for text:list-item and text:list-header elements.
func IsListItemOrListHeader(n *Node) bool {
	return n.Is(TextListItem) || n.Is(TextListHeader)
}

// IsGroupingElement is true for inline elements grouping character content.
func IsGroupingElement(n *Node) bool {
	return n.Is(TextSpan) || n.Is(TextA) || n.Is(TextMeta)
}

// IsTextContentContainingNode is true for block-level containers which may
// hold paragraphs, directly or nested.
func IsTextContentContainingNode(n *Node) bool {
	if !n.IsElement() {
		return false
	}
	switch n.Name {
	case TextP, TextH, TextList, TextListItem, TextListHeader, TextSection,
		OfficeText, OfficeAnnotation, TableTable, TableTableRow, TableTableCell,
		DrawFrame, DrawTextBox:
		return true
	}
	return false
}

// IsAnnotation is true for office:annotation elements.
func IsAnnotation(n *Node) bool {
	return n.Is(OfficeAnnotation)
}

// IsMetadataElement is true for Dublin Core metadata, e.g. the creator of
// an annotation.
func IsMetadataElement(n *Node) bool {
	return n.IsElement() && n.Prefix() == "dc"
}

// IsListLevelStyle is true for the level descriptors of a list style.
func IsListLevelStyle(n *Node) bool {
	return n.Is(TextListLevelStyleNumber) || n.Is(TextListLevelStyleBullet)
}
