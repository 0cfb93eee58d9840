/*
Package event implements a typed publish/subscribe bus for document events.

Event kinds form a closed set. Each kind has exactly one payload type,
which reports its kind through method Kind. Clients subscribe either by
kind, receiving payloads as interface Event, or with the generic helper On,
receiving concrete payloads:

    sub := event.On(bus, func(e event.ParagraphChanged) {
        ...
    })
    defer bus.Unsubscribe(sub)

Handlers are called synchronously, in order of subscription.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package event

import (
	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'odf.event'
func tracer() tracing.Trace {
	return tracing.Select("odf.event")
}

// Kind enumerates the kinds of events.
type Kind int8

// Kinds of events
const (
	NoEvent Kind = iota
	KindCursorAdded
	KindCursorRemoved
	KindCursorMoved
	KindParagraphChanged
	KindParagraphStyleModified
	KindCommonStyleCreated
	KindOperationEnd
	KindProcessingBatchEnd
	KindConstraintChanged
	KindListStylingChanged
	KindEnabledChanged
	numberOfKinds
)

var kindNames = [...]string{
	"NoEvent", "CursorAdded", "CursorRemoved", "CursorMoved", "ParagraphChanged",
	"ParagraphStyleModified", "CommonStyleCreated", "OperationEnd",
	"ProcessingBatchEnd", "ConstraintChanged", "ListStylingChanged", "EnabledChanged",
}

func (k Kind) String() string {
	if k < 0 || k >= numberOfKinds {
		return "<unknown event kind>"
	}
	return kindNames[k]
}

// Event is implemented by all event payloads.
type Event interface {
	Kind() Kind
}

// --- Payloads --------------------------------------------------------------

// CursorAdded is emitted after a member's cursor has been added to a document.
type CursorAdded struct {
	MemberID string
}

// CursorRemoved is emitted after a member's cursor has been removed.
type CursorRemoved struct {
	MemberID string
}

// CursorMoved is emitted after a member's cursor has changed its selection.
type CursorMoved struct {
	MemberID string
	Position int
	Length   int
}

// ParagraphChanged is emitted for a paragraph whose content or ancestry
// has changed.
type ParagraphChanged struct {
	Element   *dom.Node
	TimeStamp int64
	MemberID  string
}

// ParagraphStyleModified is emitted after a paragraph style has changed.
type ParagraphStyleModified struct {
	StyleName string
}

// CommonStyleCreated is emitted after a common (non-automatic) style has
// been added to a document.
type CommonStyleCreated struct {
	Name   string
	Family string
}

// OperationEnd is emitted by a session after an operation has been executed
// successfully.
type OperationEnd struct {
	OpType    string
	MemberID  string
	Timestamp int64
}

// ProcessingBatchEnd is emitted by a session after a batch of operations has
// been executed.
type ProcessingBatchEnd struct{}

// ConstraintChanged is emitted when a session constraint changes its state.
type ConstraintChanged struct {
	Name  string
	State bool
}

// ListStylingChanged is emitted when the list styling at a member's cursor
// changes.
type ListStylingChanged struct {
	IsNumberedList bool
	IsBulletedList bool
}

// EnabledChanged is emitted when a controller changes its enabled state.
type EnabledChanged struct {
	Enabled bool
}

func (CursorAdded) Kind() Kind            { return KindCursorAdded }
func (CursorRemoved) Kind() Kind          { return KindCursorRemoved }
func (CursorMoved) Kind() Kind            { return KindCursorMoved }
func (ParagraphChanged) Kind() Kind       { return KindParagraphChanged }
func (ParagraphStyleModified) Kind() Kind { return KindParagraphStyleModified }
func (CommonStyleCreated) Kind() Kind     { return KindCommonStyleCreated }
func (OperationEnd) Kind() Kind           { return KindOperationEnd }
func (ProcessingBatchEnd) Kind() Kind     { return KindProcessingBatchEnd }
func (ConstraintChanged) Kind() Kind      { return KindConstraintChanged }
func (ListStylingChanged) Kind() Kind     { return KindListStylingChanged }
func (EnabledChanged) Kind() Kind         { return KindEnabledChanged }

// --- Bus -------------------------------------------------------------------

// Handler is a callback for events.
type Handler func(Event)

// Subscription identifies a handler registered with a bus.
type Subscription struct {
	kind Kind
	id   int
}

type registration struct {
	id      int
	handler Handler
}

// Bus dispatches events to subscribed handlers. The zero value is not
// usable, clients have to call NewBus.
type Bus struct {
	handlers map[Kind][]registration
	lastID   int
}

// NewBus creates an event bus without subscribers.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]registration)}
}

// Subscribe registers a handler for events of a kind.
func (bus *Bus) Subscribe(kind Kind, h Handler) Subscription {
	if h == nil {
		panic("event handler must not be nil")
	}
	bus.lastID++
	bus.handlers[kind] = append(bus.handlers[kind], registration{id: bus.lastID, handler: h})
	return Subscription{kind: kind, id: bus.lastID}
}

// Unsubscribe removes a handler. Unsubscribing twice is a no-op.
func (bus *Bus) Unsubscribe(sub Subscription) {
	regs := bus.handlers[sub.kind]
	for i, r := range regs {
		if r.id == sub.id {
			bus.handlers[sub.kind] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of handlers registered for a kind.
func (bus *Bus) Subscribers(kind Kind) int {
	return len(bus.handlers[kind])
}

// Emit calls all handlers subscribed to the kind of e. Handlers subscribing
// or unsubscribing during dispatch do not affect the current dispatch.
func (bus *Bus) Emit(e Event) {
	regs := bus.handlers[e.Kind()]
	if len(regs) == 0 {
		return
	}
	tracer().Debugf("emit %s to %d handler(s)", e.Kind(), len(regs))
	snapshot := make([]registration, len(regs))
	copy(snapshot, regs)
	for _, r := range snapshot {
		r.handler(e)
	}
}

// On subscribes a handler for events of type E.
func On[E Event](bus *Bus, f func(E)) Subscription {
	var zero E
	return bus.Subscribe(zero.Kind(), func(e Event) {
		if payload, ok := e.(E); ok {
			f(payload)
		}
	})
}
