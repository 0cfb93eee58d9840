package ops

// Operation types
const (
	OpAddCursor    = "AddCursor"
	OpRemoveCursor = "RemoveCursor"
	OpMoveCursor   = "MoveCursor"
	OpAddList      = "AddList"
	OpRemoveList   = "RemoveList"
	OpSplitList    = "SplitList"
	OpMergeList    = "MergeList"
	OpAddListStyle = "AddListStyle"
)

// Header holds the fields common to all operation specs.
type Header struct {
	OpType    string `json:"optype"`
	MemberID  string `json:"memberid"`
	Timestamp int64  `json:"timestamp"`
}

// Head returns the header of a spec.
func (h Header) Head() Header {
	return h
}

func (h *Header) header() *Header {
	return h
}

// Spec is the serializable description of an operation. Every spec is a
// struct embedding Header and encodes to a flat JSON object.
type Spec interface {
	Head() Header
}

// Operation is a mutation of a document.
//
// Operations are immutable. Execute either applies the operation completely
// and returns true, or returns false without having touched the document.
// Violated invariants panic with an *AssertionError.
type Operation interface {
	Spec() Spec
	Execute(doc Document) bool
	IsEdit() bool
	Group() string
	header() *Header
}
