package ops

import (
	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/odfops/event"
)

// AddListStyle adds a named list style to a document, either as an
// automatic style or as a common style.
type AddListStyle struct {
	Header
	StyleName        string          `json:"styleName"`
	IsAutomaticStyle bool            `json:"isAutomaticStyle"`
	ListStyle        style.ListStyle `json:"listStyle"`
}

// NewAddListStyle creates an AddListStyle operation.
func NewAddListStyle(memberID, styleName string, automatic bool, ls style.ListStyle) *AddListStyle {
	return &AddListStyle{
		Header:           Header{OpType: OpAddListStyle, MemberID: memberID},
		StyleName:        styleName,
		IsAutomaticStyle: automatic,
		ListStyle:        ls,
	}
}

// Validate checks the level descriptors of the list style.
func (op *AddListStyle) Validate() error {
	return op.ListStyle.Validate()
}

func (op *AddListStyle) Spec() Spec    { return *op }
func (op *AddListStyle) IsEdit() bool  { return true }
func (op *AddListStyle) Group() string { return "" }

// Execute returns false if the style name is empty or if a list style of
// that name already exists in the target section.
func (op *AddListStyle) Execute(doc Document) bool {
	formatting := doc.Formatting()
	if op.StyleName == "" || formatting.HasStyle(op.StyleName, style.FamilyListStyle, op.IsAutomaticStyle) {
		return false
	}
	styleNode := dom.NewElement(dom.TextListStyle)
	for _, level := range op.ListStyle {
		levelNode := dom.NewElement(level.StyleType)
		formatting.UpdateStyle(levelNode, level.StyleProperties)
		styleNode.AppendChild(levelNode)
	}
	styleNode.SetAttr(dom.AttrStyleName, op.StyleName)
	formatting.AppendStyle(styleNode, op.IsAutomaticStyle)
	doc.Canvas().RefreshCSS()
	if !op.IsAutomaticStyle {
		doc.Emit(event.CommonStyleCreated{Name: op.StyleName, Family: style.FamilyListStyle})
	}
	return true
}
