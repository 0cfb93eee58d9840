package gui

import (
	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/event"
	"github.com/npillmayer/odfops/ops"
)

// ReviewMode is the name of the editing constraint restricting members to
// edit only within their own annotations.
const ReviewMode = "edit.reviewMode"

// SessionConstraints holds named boolean states constraining the editing
// capabilities of a session. Unknown constraints are false.
type SessionConstraints struct {
	states map[string]bool
	bus    *event.Bus
}

// NewSessionConstraints creates a set of constraints, all of them false.
func NewSessionConstraints() *SessionConstraints {
	return &SessionConstraints{
		states: make(map[string]bool),
		bus:    event.NewBus(),
	}
}

// State returns the state of a constraint.
func (sc *SessionConstraints) State(name string) bool {
	return sc.states[name]
}

// Set sets the state of a constraint. Subscribers of the constraint are
// notified if the state changes.
func (sc *SessionConstraints) Set(name string, state bool) {
	if sc.states[name] == state {
		return
	}
	sc.states[name] = state
	tracer().Infof("constraint %s = %v", name, state)
	sc.bus.Emit(event.ConstraintChanged{Name: name, State: state})
}

// Subscribe registers a callback for state changes of a constraint.
func (sc *SessionConstraints) Subscribe(name string, f func(state bool)) event.Subscription {
	return event.On(sc.bus, func(e event.ConstraintChanged) {
		if e.Name == name {
			f(e.State)
		}
	})
}

// Unsubscribe removes a callback registered with Subscribe.
func (sc *SessionConstraints) Unsubscribe(sub event.Subscription) {
	sc.bus.Unsubscribe(sub)
}

// --- Session context -------------------------------------------------------

// SessionContext answers questions about the local member of a session.
type SessionContext struct {
	doc      ops.Document
	memberID string
	fullName string
}

// NewSessionContext creates a context for the local member of a session.
// fullName is the name a member signs annotations with.
func NewSessionContext(doc ops.Document, memberID, fullName string) *SessionContext {
	return &SessionContext{doc: doc, memberID: memberID, fullName: fullName}
}

// IsLocalCursorWithinOwnAnnotation is true if the complete selection of the
// local member lies within a single annotation created by that member.
func (ctx *SessionContext) IsLocalCursorWithinOwnAnnotation() bool {
	cursor := ctx.doc.Cursor(ctx.memberID)
	if cursor == nil {
		return false
	}
	r := cursor.SelectedRange(ctx.doc)
	if !r.Start.IsValid() {
		return false
	}
	root := ctx.doc.RootNode()
	annotation := r.Start.Node.ClosestAncestor(dom.IsAnnotation, root)
	if annotation == nil || r.End.Node.ClosestAncestor(dom.IsAnnotation, root) != annotation {
		return false
	}
	return annotationCreator(annotation) == ctx.fullName
}

func annotationCreator(annotation *dom.Node) string {
	for ch := annotation.FirstElementChild(); ch != nil; ch = ch.NextElementSibling() {
		if ch.Is(dom.DCCreator) {
			return ch.TextContent()
		}
	}
	return ""
}
