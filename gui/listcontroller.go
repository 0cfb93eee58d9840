package gui

import (
	"errors"
	"fmt"

	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/odfops/event"
	"github.com/npillmayer/odfops/lazy"
	"github.com/npillmayer/odfops/ops"
	"github.com/npillmayer/odfops/tree"
	"github.com/npillmayer/schuko/tracing"
)

// ErrUnsupportedEvent is returned when subscribing to an event kind a
// ListController does not emit.
var ErrUnsupportedEvent = errors.New("event kind not emitted by list controller")

// SelectionInfo describes the selection of a member with respect to lists.
type SelectionInfo struct {
	Enabled bool             // may lists be edited?
	Summary ListStyleSummary // list styling at the cursor
}

// ListController creates and removes lists for the selection of a member.
//
// The selection info is computed lazily and cached. The cache is reset on
// document events possibly changing it. At the end of every batch of
// operations, and when review mode is toggled, the controller compares the
// selection info with the one it signalled last and emits events for the
// parts which changed.
type ListController struct {
	session     *ops.Session
	doc         ops.Document
	constraints *SessionConstraints
	context     *SessionContext
	memberID    string
	numbering   string // style name for numbered lists
	bullets     string // style name for bulleted lists
	cache       *lazy.Value[SelectionInfo]
	signalled   *SelectionInfo
	notifier    *event.Bus
	docSubs     []event.Subscription
	reviewSub   event.Subscription
}

// Option configures a ListController.
type Option func(*ListController)

// WithListStyles sets the style names applied by SetNumberedList and
// SetBulletedList. Empty names leave the defaults in place.
func WithListStyles(numbering, bullets string) Option {
	return func(c *ListController) {
		if numbering != "" {
			c.numbering = numbering
		}
		if bullets != "" {
			c.bullets = bullets
		}
	}
}

// NewListController creates a controller for the selection of memberID.
// Clients must call Destroy when done with the controller.
func NewListController(session *ops.Session, constraints *SessionConstraints,
	context *SessionContext, memberID string, opts ...Option) *ListController {
	//
	c := &ListController{
		session:     session,
		doc:         session.Document(),
		constraints: constraints,
		context:     context,
		memberID:    memberID,
		numbering:   style.DefaultNumberingStyleName,
		bullets:     style.DefaultBulletedStyleName,
		notifier:    event.NewBus(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = lazy.New(c.selectionInfo)
	bus := c.doc.Bus()
	c.docSubs = []event.Subscription{
		event.On(bus, func(e event.CursorAdded) { c.onCursorEvent(e.MemberID) }),
		event.On(bus, func(e event.CursorRemoved) { c.onCursorEvent(e.MemberID) }),
		event.On(bus, func(e event.CursorMoved) { c.onCursorEvent(e.MemberID) }),
		event.On(bus, c.onParagraphChanged),
		event.On(bus, func(event.ParagraphStyleModified) { c.cache.Reset() }),
		event.On(bus, func(event.ProcessingBatchEnd) { c.emitSelectionChanges() }),
	}
	c.reviewSub = constraints.Subscribe(ReviewMode, func(bool) { c.forceSelectionInfoRefresh() })
	return c
}

// Destroy detaches the controller from the document and the constraints.
func (c *ListController) Destroy() {
	bus := c.doc.Bus()
	for _, sub := range c.docSubs {
		bus.Unsubscribe(sub)
	}
	c.docSubs = nil
	c.constraints.Unsubscribe(c.reviewSub)
}

// Subscribe registers a handler for event.KindListStylingChanged or
// event.KindEnabledChanged.
func (c *ListController) Subscribe(kind event.Kind, h event.Handler) (event.Subscription, error) {
	if kind != event.KindListStylingChanged && kind != event.KindEnabledChanged {
		return event.Subscription{}, fmt.Errorf("%w: %s", ErrUnsupportedEvent, kind)
	}
	return c.notifier.Subscribe(kind, h), nil
}

// Unsubscribe removes a handler registered with Subscribe.
func (c *ListController) Unsubscribe(sub event.Subscription) {
	c.notifier.Unsubscribe(sub)
}

// IsEnabled is true if lists may currently be edited.
func (c *ListController) IsEnabled() bool {
	return c.cache.Get().Enabled
}

// SelectionInfo returns the (cached) selection info.
func (c *ListController) SelectionInfo() SelectionInfo {
	return c.cache.Get()
}

// SetNumberedList numbers the paragraphs of the selection if checked is
// true, and removes the lists in the selection otherwise. It returns false
// if no operation has been enqueued. Clients toggling a UI element then have
// to revert it.
func (c *ListController) SetNumberedList(checked bool) (bool, error) {
	if checked {
		return c.makeList(c.numbering)
	}
	return c.RemoveList()
}

// SetBulletedList bullets the paragraphs of the selection if checked is
// true, and removes the lists in the selection otherwise. See
// SetNumberedList.
func (c *ListController) SetBulletedList(checked bool) (bool, error) {
	if checked {
		return c.makeList(c.bullets)
	}
	return c.RemoveList()
}

// RemoveList removes all top-level lists intersecting the selection.
func (c *ListController) RemoveList() (bool, error) {
	return c.executeListOperations(c.determineOpsForRemovingLists)
}

// --- Event handling --------------------------------------------------------

func (c *ListController) onCursorEvent(memberID string) {
	if memberID == c.memberID {
		c.cache.Reset()
	}
}

func (c *ListController) onParagraphChanged(e event.ParagraphChanged) {
	if !c.cache.IsFresh() {
		return
	}
	cursor := c.doc.Cursor(c.memberID)
	if cursor != nil && dom.GetParagraphElement(cursor.Node(c.doc)) == e.Element {
		c.cache.Reset()
	}
}

func (c *ListController) selectionInfo() SelectionInfo {
	var node *dom.Node
	if cursor := c.doc.Cursor(c.memberID); cursor != nil {
		node = cursor.Node(c.doc)
	}
	info := SelectionInfo{
		Enabled: true,
		Summary: NewListStyleSummary(node, c.doc.RootNode(), c.doc.Formatting()),
	}
	if c.constraints.State(ReviewMode) {
		info.Enabled = c.context.IsLocalCursorWithinOwnAnnotation()
	}
	tracing.With(tracer()).Dump("selection info", info)
	return info
}

func (c *ListController) emitSelectionChanges() {
	info := c.cache.Get()
	styleChanged, enabledChanged := true, true
	if last := c.signalled; last != nil {
		styleChanged = last.Summary != info.Summary
		enabledChanged = last.Enabled != info.Enabled
	}
	c.signalled = &info
	if styleChanged {
		c.notifier.Emit(event.ListStylingChanged{
			IsNumberedList: info.Summary.IsNumberedList,
			IsBulletedList: info.Summary.IsBulletedList,
		})
	}
	if enabledChanged {
		c.notifier.Emit(event.EnabledChanged{Enabled: info.Enabled})
	}
}

func (c *ListController) forceSelectionInfoRefresh() {
	c.cache.Reset()
	c.emitSelectionChanges()
}

// --- Creating operations ---------------------------------------------------

func (c *ListController) executeListOperations(determine func() []ops.Operation) (ok bool, err error) {
	if !c.cache.Get().Enabled {
		return false, nil
	}
	defer ops.RecoverAssertion(&err)
	newOps := determine()
	if len(newOps) == 0 {
		return false, nil
	}
	if err = c.session.Enqueue(newOps...); err != nil {
		return false, err
	}
	return true, nil
}

// makeList returns false if styleName neither names an existing list style
// nor a built-in one. An empty styleName creates lists without a style.
func (c *ListController) makeList(styleName string) (bool, error) {
	var isExisting, isDefault bool
	if styleName != "" {
		isExisting = c.doc.Formatting().GetStyleElement(styleName, style.FamilyListStyle) != nil
		isDefault = style.IsDefaultListStyle(styleName)
		if !isExisting && !isDefault {
			tracer().Infof("cannot create list: no list style %q in document", styleName)
			return false, nil
		}
	}
	return c.executeListOperations(func() []ops.Operation {
		newOps := c.determineOpsForAddingLists(styleName)
		if len(newOps) > 0 && isDefault && !isExisting {
			newOps = append([]ops.Operation{c.defaultListStyleOp(styleName)}, newOps...)
		}
		return newOps
	})
}

func (c *ListController) defaultListStyleOp(styleName string) ops.Operation {
	ls, _ := style.DefaultListStyle(styleName)
	return ops.NewAddListStyle(c.memberID, styleName, true, ls)
}

type paragraphGroup struct {
	start, end *dom.Node
}

// determineOpsForAddingLists creates an AddList operation for every run of
// selected paragraphs sharing a parent. If any of the paragraphs already is
// part of a list, no operations are created.
func (c *ListController) determineOpsForAddingLists(styleName string) []ops.Operation {
	cursor := c.doc.Cursor(c.memberID)
	if cursor == nil {
		return nil
	}
	var groups []paragraphGroup
	var commonParent *dom.Node
	for _, p := range dom.GetParagraphElements(cursor.SelectedRange(c.doc)) {
		parent := p.Parent()
		if dom.IsListItemOrListHeader(parent) {
			// TODO: convert between numbered and bulleted lists, preserving the list structure
			tracer().Infof("selection intersects with an existing list, which is not supported")
			return nil
		}
		if parent == commonParent {
			groups[len(groups)-1].end = p
		} else {
			commonParent = parent
			groups = append(groups, paragraphGroup{start: p, end: p})
		}
	}
	newOps := make([]ops.Operation, len(groups))
	for i, g := range groups {
		newOps[i] = ops.NewAddList(c.memberID,
			c.doc.ConvertDOMPointToCursorStep(g.start, 0, ops.Next),
			c.doc.ConvertDOMPointToCursorStep(g.end, 0, ops.Next),
			styleName)
	}
	return newOps
}

// determineOpsForRemovingLists creates a RemoveList operation for every
// top-level list in the selection.
func (c *ListController) determineOpsForRemovingLists() []ops.Operation {
	cursor := c.doc.Cursor(c.memberID)
	if cursor == nil {
		return nil
	}
	lists := c.topLevelListElementsInRange(cursor.SelectedRange(c.doc))
	newOps := make([]ops.Operation, len(lists))
	for i, list := range lists {
		first, ok := c.doc.FirstStepIn(list)
		ops.Assert(ok, ops.OpRemoveList, "Top level list element contains no steps")
		newOps[i] = ops.NewRemoveList(c.memberID, first)
	}
	return newOps
}

// topLevelListElementsInRange finds the top-level lists intersecting r,
// including the lists containing the start or the end of r.
func (c *ListController) topLevelListElementsInRange(r dom.Range) []*dom.Node {
	if !r.Start.IsValid() {
		return nil
	}
	lists := dom.GetNodesInRange(r, func(tn *tree.Node[*dom.Node]) tree.Verdict {
		n := tn.Payload
		switch {
		case dom.IsTopLevelList(n):
			return tree.Accept
		case dom.IsTextContentContainingNode(n) || dom.IsGroupingElement(n):
			return tree.Skip
		}
		return tree.Reject
	})
	root := c.doc.RootNode()
	if list := dom.GetTopLevelListElement(r.Start.Node, root); list != nil {
		if len(lists) == 0 || lists[0] != list {
			lists = append([]*dom.Node{list}, lists...)
		}
	}
	if list := dom.GetTopLevelListElement(r.End.Node, root); list != nil {
		if len(lists) == 0 || lists[len(lists)-1] != list {
			lists = append(lists, list)
		}
	}
	return lists
}
