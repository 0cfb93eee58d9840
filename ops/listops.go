package ops

import (
	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/event"
)

// AddList wraps a range of sibling paragraphs into a new list. Both
// positions have to be the first step of their paragraph.
type AddList struct {
	Header
	StartParagraphPosition int    `json:"startParagraphPosition"`
	EndParagraphPosition   int    `json:"endParagraphPosition"`
	StyleName              string `json:"styleName,omitempty"`
}

// NewAddList creates an AddList operation. styleName may be empty.
func NewAddList(memberID string, start, end int, styleName string) *AddList {
	return &AddList{
		Header:                 Header{OpType: OpAddList, MemberID: memberID},
		StartParagraphPosition: start,
		EndParagraphPosition:   end,
		StyleName:              styleName,
	}
}

func (op *AddList) Spec() Spec    { return *op }
func (op *AddList) IsEdit() bool  { return true }
func (op *AddList) Group() string { return "" }

// Execute returns false if there is no paragraph in the range.
func (op *AddList) Execute(doc Document) bool {
	start, end := op.StartParagraphPosition, op.EndParagraphPosition
	Assert(start <= end, OpAddList,
		"First paragraph in range (%d) must be before last paragraph in range (%d)", start, end)
	r := doc.ConvertCursorToDOMRange(start, end-start)
	if !r.Start.IsValid() {
		return false
	}
	paragraphs := dom.GetParagraphElements(r)
	if len(paragraphs) == 0 {
		return false
	}
	op.verifyParagraphPositions(doc, paragraphs)
	//
	parent := paragraphs[0].Parent()
	list := dom.NewElement(dom.TextList)
	parent.InsertBefore(list, paragraphs[0])
	for _, p := range paragraphs {
		item := dom.NewElement(dom.TextListItem)
		item.AppendChild(p)
		list.AppendChild(item)
	}
	if op.StyleName != "" {
		list.SetAttr(dom.AttrTextStyleName, op.StyleName)
	}
	doc.Canvas().RefreshCSS()
	doc.Canvas().RerenderAnnotations()
	for _, p := range paragraphs {
		doc.Emit(event.ParagraphChanged{Element: p, TimeStamp: op.Timestamp, MemberID: op.MemberID})
	}
	tracer().Debugf("added list with %d paragraph(s)", len(paragraphs))
	return true
}

// verifyParagraphPositions makes sure that the positions of the operation
// are the first steps of their paragraphs and that all paragraphs share
// a common parent.
func (op *AddList) verifyParagraphPositions(doc Document, paragraphs []*dom.Node) {
	first, last := paragraphs[0], paragraphs[len(paragraphs)-1]
	if prev := doc.ConvertCursorStepToDOMPoint(op.StartParagraphPosition - 1); prev.IsValid() {
		Assert(!first.Contains(prev.Node), OpAddList,
			"First paragraph position (%d) is not the first step in the paragraph", op.StartParagraphPosition)
	}
	if prev := doc.ConvertCursorStepToDOMPoint(op.EndParagraphPosition - 1); prev.IsValid() {
		Assert(!last.Contains(prev.Node), OpAddList,
			"Last paragraph position (%d) is not the first step in the paragraph", op.EndParagraphPosition)
	}
	parent := first.Parent()
	for _, p := range paragraphs {
		Assert(p.Parent() == parent, OpAddList,
			"All the paragraphs in the range do not have the same parent node")
	}
}

// --- RemoveList ------------------------------------------------------------

// RemoveList dissolves the top-level list starting with the paragraph at
// a position. All nested lists are dissolved as well.
type RemoveList struct {
	Header
	FirstParagraphPosition int `json:"firstParagraphPosition"`
}

// NewRemoveList creates a RemoveList operation.
func NewRemoveList(memberID string, firstParagraphPosition int) *RemoveList {
	return &RemoveList{
		Header:                 Header{OpType: OpRemoveList, MemberID: memberID},
		FirstParagraphPosition: firstParagraphPosition,
	}
}

func (op *RemoveList) Spec() Spec    { return *op }
func (op *RemoveList) IsEdit() bool  { return true }
func (op *RemoveList) Group() string { return "" }

// Execute returns false if the position does not resolve to a paragraph.
func (op *RemoveList) Execute(doc Document) bool {
	pos := op.FirstParagraphPosition
	firstParagraph := paragraphOfStep(doc, pos)
	if firstParagraph == nil {
		return false
	}
	Assert(dom.IsListItemOrListHeader(firstParagraph.Parent()), OpRemoveList,
		"First paragraph at %d is not within a list", pos)
	list := dom.GetTopLevelListElement(firstParagraph, doc.RootNode())
	op.verifyParagraphPositions(doc, list, firstParagraph)
	//
	var affected []*dom.Node
	dom.RemoveUnwantedNodes(list, func(n *dom.Node) bool {
		if dom.IsParagraph(n) {
			affected = append(affected, n)
		}
		return dom.IsListElement(n) || dom.IsListItemOrListHeader(n)
	})
	doc.Canvas().RerenderAnnotations()
	for _, p := range affected {
		doc.Emit(event.ParagraphChanged{Element: p, TimeStamp: op.Timestamp, MemberID: op.MemberID})
	}
	tracer().Debugf("removed list, %d paragraph(s) affected", len(affected))
	return true
}

// verifyParagraphPositions makes sure that the position of the operation is
// the first step of the list.
func (op *RemoveList) verifyParagraphPositions(doc Document, list, firstParagraph *dom.Node) {
	first, ok := doc.FirstStepIn(list)
	Assert(ok && firstParagraph.Contains(doc.ConvertCursorStepToDOMPoint(first).Node), OpRemoveList,
		"Paragraph at %d is not the first paragraph in the list", op.FirstParagraphPosition)
	Assert(first == op.FirstParagraphPosition, OpRemoveList,
		"First paragraph position (%d) is not the first step in the paragraph", op.FirstParagraphPosition)
}

// --- SplitList -------------------------------------------------------------

// SplitList splits a top-level list before the list item of the paragraph
// at a split position. The list items following the split are moved to a
// new top-level list, inserted right after the source list.
type SplitList struct {
	Header
	SourceStartPosition int `json:"sourceStartPosition"`
	SplitPosition       int `json:"splitPosition"`
}

// NewSplitList creates a SplitList operation.
func NewSplitList(memberID string, sourceStart, split int) *SplitList {
	return &SplitList{
		Header:              Header{OpType: OpSplitList, MemberID: memberID},
		SourceStartPosition: sourceStart,
		SplitPosition:       split,
	}
}

func (op *SplitList) Spec() Spec    { return *op }
func (op *SplitList) IsEdit() bool  { return true }
func (op *SplitList) Group() string { return "" }

// Execute returns false if there is no list at the source position or no
// list paragraph within it at the split position. It returns false as well
// if no paragraph of the source list precedes the list item at the split
// position, as the source list would be left without content.
func (op *SplitList) Execute(doc Document) bool {
	root := doc.RootNode()
	sourceParagraph := paragraphOfStep(doc, op.SourceStartPosition)
	splitParagraph := paragraphOfStep(doc, op.SplitPosition)
	sourceList := dom.GetTopLevelListElement(sourceParagraph, root)
	if sourceList == nil || splitParagraph == nil {
		return false
	}
	if !sourceList.Contains(splitParagraph) || !dom.IsListItemOrListHeader(splitParagraph.Parent()) {
		return false
	}
	if first := dom.Paragraphs(sourceList); len(first) == 0 || splitParagraph.Parent().Contains(first[0]) {
		tracer().Debugf("split position %d is not preceded by list content", op.SplitPosition)
		return false
	}
	destinationList := sourceList.CloneShallow()
	destinationList.RemoveAttr(dom.AttrXMLID)
	r := dom.Range{
		Start: dom.Before(splitParagraph.Parent()),
		End:   dom.After(sourceList.LastElementChild()),
	}
	splitPositionParentList := splitParagraph.Parent().Parent()
	fragment := dom.ExtractRange(r)
	if splitPositionParentList != sourceList {
		dom.NewCollapsingRules(root).MergeChildrenIntoParent(splitPositionParentList)
	}
	for _, n := range fragment {
		destinationList.AppendChild(n)
	}
	sourceList.Parent().InsertBefore(destinationList, sourceList.NextElementSibling())
	tracer().Debugf("split list into %d + %d item(s)", sourceList.ChildCount(), destinationList.ChildCount())
	return true
}

// --- MergeList -------------------------------------------------------------

// MergeList appends the items of a top-level list to another top-level
// list and removes the emptied list.
type MergeList struct {
	Header
	SourceStartPosition      int `json:"sourceStartPosition"`
	DestinationStartPosition int `json:"destinationStartPosition"`
}

// NewMergeList creates a MergeList operation.
func NewMergeList(memberID string, sourceStart, destinationStart int) *MergeList {
	return &MergeList{
		Header:                   Header{OpType: OpMergeList, MemberID: memberID},
		SourceStartPosition:      sourceStart,
		DestinationStartPosition: destinationStart,
	}
}

func (op *MergeList) Spec() Spec    { return *op }
func (op *MergeList) IsEdit() bool  { return true }
func (op *MergeList) Group() string { return "" }

// Execute returns false if one of the positions is not within a list.
func (op *MergeList) Execute(doc Document) bool {
	root := doc.RootNode()
	src := doc.ConvertCursorStepToDOMPoint(op.SourceStartPosition)
	dest := doc.ConvertCursorStepToDOMPoint(op.DestinationStartPosition)
	if !src.IsValid() || !dest.IsValid() {
		return false
	}
	sourceList := dom.GetTopLevelListElement(src.Node, root)
	destinationList := dom.GetTopLevelListElement(dest.Node, root)
	if sourceList == nil || destinationList == nil {
		return false
	}
	Assert(sourceList != destinationList, OpMergeList,
		"Source (%d) and destination (%d) are within the same list",
		op.SourceStartPosition, op.DestinationStartPosition)
	for item := sourceList.FirstElementChild(); item != nil; item = sourceList.FirstElementChild() {
		destinationList.AppendChild(item)
	}
	sourceList.Remove()
	return true
}
