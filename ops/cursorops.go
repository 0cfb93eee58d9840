package ops

import "github.com/npillmayer/odfops/event"

// AddCursor adds a cursor for a member at step 0.
type AddCursor struct {
	Header
}

// NewAddCursor creates an AddCursor operation.
func NewAddCursor(memberID string) *AddCursor {
	return &AddCursor{Header{OpType: OpAddCursor, MemberID: memberID}}
}

func (op *AddCursor) Spec() Spec    { return *op }
func (op *AddCursor) IsEdit() bool  { return false }
func (op *AddCursor) Group() string { return "" }

// Execute returns false if the member already has a cursor.
func (op *AddCursor) Execute(doc Document) bool {
	if doc.Cursor(op.MemberID) != nil {
		return false
	}
	doc.AddCursor(NewCursor(op.MemberID))
	doc.Emit(event.CursorAdded{MemberID: op.MemberID})
	return true
}

// RemoveCursor removes the cursor of a member.
type RemoveCursor struct {
	Header
}

// NewRemoveCursor creates a RemoveCursor operation.
func NewRemoveCursor(memberID string) *RemoveCursor {
	return &RemoveCursor{Header{OpType: OpRemoveCursor, MemberID: memberID}}
}

func (op *RemoveCursor) Spec() Spec    { return *op }
func (op *RemoveCursor) IsEdit() bool  { return false }
func (op *RemoveCursor) Group() string { return "" }

// Execute returns false if the member has no cursor.
func (op *RemoveCursor) Execute(doc Document) bool {
	if !doc.RemoveCursor(op.MemberID) {
		return false
	}
	doc.Emit(event.CursorRemoved{MemberID: op.MemberID})
	return true
}

// MoveCursor sets the selection of a member's cursor.
type MoveCursor struct {
	Header
	Position int `json:"position"`
	Length   int `json:"length"`
}

// NewMoveCursor creates a MoveCursor operation.
func NewMoveCursor(memberID string, position, length int) *MoveCursor {
	return &MoveCursor{
		Header:   Header{OpType: OpMoveCursor, MemberID: memberID},
		Position: position,
		Length:   length,
	}
}

func (op *MoveCursor) Spec() Spec    { return *op }
func (op *MoveCursor) IsEdit() bool  { return false }
func (op *MoveCursor) Group() string { return "" }

// Execute returns false if the member has no cursor or if the selection
// is not within the steps of the document.
func (op *MoveCursor) Execute(doc Document) bool {
	c := doc.Cursor(op.MemberID)
	if c == nil {
		return false
	}
	n := doc.StepCount()
	if op.Position < 0 || op.Position >= n || op.Position+op.Length < 0 || op.Position+op.Length >= n {
		return false
	}
	c.SetSelection(op.Position, op.Length)
	doc.Emit(event.CursorMoved{MemberID: op.MemberID, Position: op.Position, Length: op.Length})
	return true
}
