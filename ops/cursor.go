package ops

import (
	"fmt"

	"github.com/npillmayer/odfops/dom"
)

// Cursor is the selection of a session member. The selection is a step
// position plus a length, which is negative for backward selections.
type Cursor struct {
	memberID string
	position int
	length   int
}

// NewCursor creates a collapsed cursor at step 0.
func NewCursor(memberID string) *Cursor {
	return &Cursor{memberID: memberID}
}

func (c *Cursor) String() string {
	return fmt.Sprintf("cursor[%s@%d%+d]", c.memberID, c.position, c.length)
}

// MemberID returns the id of the member owning the cursor.
func (c *Cursor) MemberID() string {
	return c.memberID
}

// Position returns the anchor step of the selection.
func (c *Cursor) Position() int {
	return c.position
}

// Length returns the signed length of the selection in steps.
func (c *Cursor) Length() int {
	return c.length
}

// SetSelection moves the cursor.
func (c *Cursor) SetSelection(position, length int) {
	c.position, c.length = position, length
}

// SelectedRange returns the DOM range of the selection, in forward direction.
func (c *Cursor) SelectedRange(doc Document) dom.Range {
	return doc.ConvertCursorToDOMRange(c.position, c.length)
}

// Node returns the DOM node at the focus of the cursor, or nil if the
// cursor does not point to a step.
func (c *Cursor) Node(doc Document) *dom.Node {
	return doc.ConvertCursorStepToDOMPoint(c.position + c.length).Node
}
