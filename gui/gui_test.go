package gui

import (
	"fmt"
	"testing"

	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/odfops/event"
	"github.com/npillmayer/odfops/ops"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentTmpl = `<office:document><office:styles></office:styles>` +
	`<office:automatic-styles>%s</office:automatic-styles>` +
	`<office:body><office:text>%s</office:text></office:body></office:document>`

type fixture struct {
	doc         *ops.OdtDocument
	session     *ops.Session
	constraints *SessionConstraints
	ctrl        *ListController
	styling     []event.ListStylingChanged
	enabled     []event.EnabledChanged
}

// setup creates a document and a list controller for member "alice", whose
// cursor is placed at step 0.
func setup(t *testing.T, styles, text string, opts ...Option) *fixture {
	doc, err := ops.NewOdtDocument(dom.MustParse(fmt.Sprintf(documentTmpl, styles, text)))
	require.NoError(t, err)
	f := &fixture{
		doc:         doc,
		session:     ops.NewSession(doc, nil),
		constraints: NewSessionConstraints(),
	}
	f.ctrl = NewListController(f.session, f.constraints, NewSessionContext(doc, "alice", "Alice"), "alice", opts...)
	_, err = f.ctrl.Subscribe(event.KindListStylingChanged, func(e event.Event) {
		f.styling = append(f.styling, e.(event.ListStylingChanged))
	})
	require.NoError(t, err)
	_, err = f.ctrl.Subscribe(event.KindEnabledChanged, func(e event.Event) {
		f.enabled = append(f.enabled, e.(event.EnabledChanged))
	})
	require.NoError(t, err)
	require.NoError(t, f.session.Enqueue(ops.NewAddCursor("alice")))
	return f
}

func (f *fixture) selectSteps(t *testing.T, position, length int) {
	require.NoError(t, f.session.Enqueue(ops.NewMoveCursor("alice", position, length)))
}

func (f *fixture) body() string {
	var s string
	for _, ch := range f.doc.RootNode().Children() {
		s += dom.Markup(ch)
	}
	return s
}

const twoParents = `<text:p>A1</text:p><text:p>A2</text:p>` +
	`<text:section><text:p>B1</text:p><text:p>B2</text:p><text:p>B3</text:p></text:section>`

func TestGroupingByParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", twoParents)
	f.selectSteps(t, 0, 14)
	newOps := f.ctrl.determineOpsForAddingLists(style.DefaultNumberingStyleName)
	require.Len(t, newOps, 2)
	first, second := newOps[0].(*ops.AddList), newOps[1].(*ops.AddList)
	assert.Equal(t, 0, first.StartParagraphPosition)
	assert.Equal(t, 3, first.EndParagraphPosition)
	assert.Equal(t, 6, second.StartParagraphPosition)
	assert.Equal(t, 12, second.EndParagraphPosition)
	assert.Equal(t, style.DefaultNumberingStyleName, second.StyleName)
}

func TestNumberAndRemoveLists(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", twoParents)
	require.Len(t, f.styling, 1, "first emission signals styling")
	require.Len(t, f.enabled, 1, "first emission signals enablement")
	assert.True(t, f.enabled[0].Enabled)
	f.selectSteps(t, 0, 14)
	//
	ok, err := f.ctrl.SetNumberedList(true)
	require.NoError(t, err)
	require.True(t, ok)
	specs := f.session.Operations()
	require.Len(t, specs, 5)
	assert.Equal(t, ops.OpAddListStyle, specs[2].Head().OpType)
	assert.Equal(t, ops.OpAddList, specs[3].Head().OpType)
	assert.Equal(t, ops.OpAddList, specs[4].Head().OpType)
	item := func(p string) string {
		return `<text:list-item><text:p>` + p + `</text:p></text:list-item>`
	}
	list := `<text:list text:style-name="WebODF-Numbering">`
	assert.Equal(t, list+item("A1")+item("A2")+`</text:list>`+
		`<text:section>`+list+item("B1")+item("B2")+item("B3")+`</text:list></text:section>`, f.body())
	require.Len(t, f.styling, 2)
	assert.Equal(t, event.ListStylingChanged{IsNumberedList: true}, f.styling[1])
	assert.Len(t, f.enabled, 1)
	assert.True(t, f.ctrl.SelectionInfo().Summary.IsNumberedList)
	//
	ok, err = f.ctrl.SetBulletedList(true)
	require.NoError(t, err)
	assert.False(t, ok, "selection intersects with existing lists")
	assert.Len(t, f.session.Operations(), 5)
	//
	ok, err = f.ctrl.SetNumberedList(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, twoParents, f.body())
	require.Len(t, f.styling, 3)
	assert.Equal(t, event.ListStylingChanged{}, f.styling[2])
	//
	ok, err = f.ctrl.RemoveList()
	require.NoError(t, err)
	assert.False(t, ok, "no lists left to remove")
}

func TestNotificationMinimality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", twoParents)
	f.selectSteps(t, 3, 0)
	f.selectSteps(t, 4, 1)
	for i := 0; i < 3; i++ {
		assert.True(t, f.ctrl.IsEnabled())
		assert.False(t, f.ctrl.SelectionInfo().Summary.IsBulletedList)
	}
	require.NoError(t, f.session.Enqueue())
	assert.Len(t, f.styling, 1)
	assert.Len(t, f.enabled, 1)
}

func TestUnknownListStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", twoParents)
	f.selectSteps(t, 0, 3)
	ok, err := f.ctrl.makeList("Fancy")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, f.session.Operations(), 2)
	assert.Equal(t, twoParents, f.body())
}

const bulletsL1 = `<text:list-style style:name="L1">` +
	`<text:list-level-style-bullet text:level="1"></text:list-level-style-bullet>` +
	`<text:list-level-style-number text:level="2"></text:list-level-style-number>` +
	`</text:list-style>`

func TestExistingListStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, bulletsL1, twoParents, WithListStyles("", "L1"))
	f.selectSteps(t, 0, 3)
	ok, err := f.ctrl.SetBulletedList(true)
	require.NoError(t, err)
	require.True(t, ok)
	specs := f.session.Operations()
	require.Len(t, specs, 3, "no list style added for existing style")
	assert.Equal(t, ops.OpAddList, specs[2].Head().OpType)
	assert.True(t, f.ctrl.SelectionInfo().Summary.IsBulletedList)
	assert.False(t, f.ctrl.SelectionInfo().Summary.IsNumberedList)
	assert.Equal(t, 1, f.doc.Formatting().AutomaticStyles().ChildCount())
}

const annotated = `<text:p>x<office:annotation><dc:creator>Alice</dc:creator>` +
	`<text:p>n</text:p></office:annotation></text:p><text:p>y</text:p>`

func TestReviewMode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", annotated)
	require.Len(t, f.enabled, 1)
	f.constraints.Set(ReviewMode, true)
	require.Len(t, f.enabled, 2)
	assert.False(t, f.enabled[1].Enabled)
	assert.False(t, f.ctrl.IsEnabled())
	ok, err := f.ctrl.SetNumberedList(true)
	require.NoError(t, err)
	assert.False(t, ok)
	//
	f.selectSteps(t, 1, 0)
	require.Len(t, f.enabled, 3)
	assert.True(t, f.enabled[2].Enabled)
	f.selectSteps(t, 1, 3)
	assert.False(t, f.ctrl.IsEnabled(), "selection extends beyond the annotation")
	f.constraints.Set(ReviewMode, false)
	assert.True(t, f.ctrl.IsEnabled())
	assert.Len(t, f.enabled, 5)
}

func TestSessionContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", annotated)
	alice := NewSessionContext(f.doc, "alice", "Alice")
	bob := NewSessionContext(f.doc, "alice", "Bob")
	nobody := NewSessionContext(f.doc, "carol", "Carol")
	assert.False(t, alice.IsLocalCursorWithinOwnAnnotation())
	f.selectSteps(t, 1, 0)
	assert.True(t, alice.IsLocalCursorWithinOwnAnnotation())
	assert.False(t, bob.IsLocalCursorWithinOwnAnnotation())
	assert.False(t, nobody.IsLocalCursorWithinOwnAnnotation())
}

func TestSessionConstraints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	sc := NewSessionConstraints()
	var states []bool
	sub := sc.Subscribe(ReviewMode, func(state bool) { states = append(states, state) })
	sc.Subscribe("other", func(bool) { t.Error("unexpected notification") })
	assert.False(t, sc.State(ReviewMode))
	sc.Set(ReviewMode, true)
	sc.Set(ReviewMode, true)
	sc.Set(ReviewMode, false)
	sc.Unsubscribe(sub)
	sc.Set(ReviewMode, true)
	assert.Equal(t, []bool{true, false}, states)
	assert.True(t, sc.State(ReviewMode))
}

func TestDestroy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	f := setup(t, "", twoParents)
	_, err := f.ctrl.Subscribe(event.KindCursorMoved, func(event.Event) {})
	assert.ErrorIs(t, err, ErrUnsupportedEvent)
	assert.Equal(t, 1, f.doc.Bus().Subscribers(event.KindProcessingBatchEnd))
	f.ctrl.Destroy()
	for _, kind := range []event.Kind{event.KindCursorAdded, event.KindCursorRemoved,
		event.KindCursorMoved, event.KindParagraphChanged, event.KindParagraphStyleModified,
		event.KindProcessingBatchEnd} {
		assert.Zero(t, f.doc.Bus().Subscribers(kind), "%s", kind)
	}
	f.constraints.Set(ReviewMode, true)
	f.selectSteps(t, 6, 0)
	assert.Len(t, f.enabled, 1)
}

func TestCacheInvalidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	styles := bulletsL1 +
		`<style:style style:name="P1" style:family="paragraph" style:list-style-name="L2"></style:style>` +
		`<text:list-style style:name="L2">` +
		`<text:list-level-style-number text:level="1"></text:list-level-style-number>` +
		`</text:list-style>`
	text := `<text:list><text:list-item><text:p text:style-name="P1">d</text:p></text:list-item></text:list>` +
		`<text:p>other</text:p>`
	f := setup(t, styles, text)
	numbered, bulleted := ListStyleSummary{IsNumberedList: true}, ListStyleSummary{IsBulletedList: true}
	require.Equal(t, numbered, f.ctrl.SelectionInfo().Summary)
	p1 := f.doc.Formatting().GetStyleElement("P1", style.FamilyParagraph)
	require.NotNil(t, p1)
	paragraphs := dom.Paragraphs(f.doc.RootNode())
	require.Len(t, paragraphs, 2)
	//
	p1.SetAttr("style:list-style-name", "L1")
	assert.Equal(t, numbered, f.ctrl.SelectionInfo().Summary, "cached until notified")
	f.doc.Emit(event.ParagraphStyleModified{StyleName: "P1"})
	assert.Equal(t, bulleted, f.ctrl.SelectionInfo().Summary)
	//
	p1.SetAttr("style:list-style-name", "L2")
	f.doc.Emit(event.ParagraphStyleModified{StyleName: "Unrelated"})
	assert.Equal(t, numbered, f.ctrl.SelectionInfo().Summary, "style modifications always invalidate")
	//
	p1.SetAttr("style:list-style-name", "L1")
	f.doc.Emit(event.ParagraphChanged{Element: paragraphs[1], MemberID: "bob"})
	assert.Equal(t, numbered, f.ctrl.SelectionInfo().Summary, "paragraph not under cursor")
	f.doc.Emit(event.ParagraphChanged{Element: paragraphs[0], MemberID: "bob"})
	assert.Equal(t, bulleted, f.ctrl.SelectionInfo().Summary, "paragraph under cursor")
	assert.Len(t, f.styling, 1, "no batch has ended since setup")
}

// --- List style summary ----------------------------------------------------

func TestListStyleSummary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.gui")
	defer teardown()
	//
	styles := bulletsL1 +
		`<style:style style:name="P1" style:family="paragraph" style:list-style-name="L2"></style:style>` +
		`<text:list-style style:name="L2">` +
		`<text:list-level-style-number text:level="1"></text:list-level-style-number>` +
		`</text:list-style>`
	text := `<text:list text:style-name="L1"><text:list-item><text:p>a</text:p>` +
		`<text:list><text:list-item><text:p>b</text:p></text:list-item></text:list>` +
		`</text:list-item></text:list><text:p>c</text:p>` +
		`<text:list><text:list-item><text:p text:style-name="P1">d</text:p></text:list-item></text:list>` +
		`<text:list text:style-name="L9"><text:list-item><text:p>e</text:p></text:list-item></text:list>`
	f := setup(t, styles, text)
	root, formatting := f.doc.RootNode(), f.doc.Formatting()
	paragraphs := dom.Paragraphs(root)
	require.Len(t, paragraphs, 5)
	summary := func(i int) ListStyleSummary {
		return NewListStyleSummary(paragraphs[i].FirstChild(), root, formatting)
	}
	assert.Equal(t, ListStyleSummary{IsBulletedList: true}, summary(0))
	assert.Equal(t, ListStyleSummary{IsNumberedList: true}, summary(1))
	assert.Equal(t, ListStyleSummary{}, summary(2))
	assert.Equal(t, ListStyleSummary{IsNumberedList: true}, summary(3))
	assert.Equal(t, ListStyleSummary{}, summary(4), "unknown list style")
	assert.Equal(t, ListStyleSummary{}, NewListStyleSummary(nil, root, formatting))
}
