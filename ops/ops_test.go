package ops

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/domdbg"
	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/odfops/event"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentTmpl = `<office:document><office:styles></office:styles>` +
	`<office:automatic-styles></office:automatic-styles>` +
	`<office:body><office:text>%s</office:text></office:body></office:document>`

func loadText(t *testing.T, text string) (*OdtDocument, *HeadlessCanvas) {
	canvas := &HeadlessCanvas{}
	doc, err := NewOdtDocument(dom.MustParse(fmt.Sprintf(documentTmpl, text)), WithCanvas(canvas))
	require.NoError(t, err)
	return doc, canvas
}

func body(doc *OdtDocument) string {
	var s string
	for _, ch := range doc.RootNode().Children() {
		s += dom.Markup(ch)
	}
	return s
}

// fivePs has paragraphs P1…P5 with 3 steps each: P1 = 0…2, P2 = 3…5, etc.
const fivePs = `<text:p>P1</text:p><text:p>P2</text:p><text:p>P3</text:p><text:p>P4</text:p><text:p>P5</text:p>`

func collectParagraphChanges(doc *OdtDocument) *[]string {
	var changed []string
	event.On(doc.Bus(), func(e event.ParagraphChanged) {
		changed = append(changed, e.Element.TextContent())
	})
	return &changed
}

func assertionOf(t *testing.T, f func()) (aerr *AssertionError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected an assertion to fail")
		var ok bool
		aerr, ok = r.(*AssertionError)
		require.True(t, ok, "expected panic with *AssertionError, have %v", r)
		t.Logf("assertion: %v", aerr)
	}()
	f()
	return nil
}

func TestNewOdtDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	_, err := NewOdtDocument(dom.MustParse(`<office:text></office:text>`))
	assert.ErrorIs(t, err, ErrNoDocument)
	doc, _ := loadText(t, fivePs)
	assert.Equal(t, dom.OfficeText, doc.RootNode().Name)
	assert.Equal(t, 15, doc.StepCount())
}

func TestStepConversions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, `<text:p>ab</text:p><text:p></text:p><text:p>c<text:span>d</text:span></text:p>`)
	require.Equal(t, 7, doc.StepCount())
	paragraphs := dom.Paragraphs(doc.RootNode())
	p2, p3 := paragraphs[1], paragraphs[2]
	assert.Equal(t, dom.Point{Node: p2, Offset: 0}, doc.ConvertCursorStepToDOMPoint(3))
	assert.Equal(t, dom.Point{Node: p3, Offset: 2}, doc.ConvertCursorStepToDOMPoint(6))
	assert.False(t, doc.ConvertCursorStepToDOMPoint(7).IsValid())
	assert.Equal(t, 3, doc.ConvertDOMPointToCursorStep(p2, 0, Next))
	assert.Equal(t, 4, doc.ConvertDOMPointToCursorStep(p3, 0, Next))
	assert.Equal(t, 3, doc.ConvertDOMPointToCursorStep(p3, 0, Previous))
	first, ok := doc.FirstStepIn(p3)
	assert.True(t, ok)
	assert.Equal(t, 4, first)
	r := doc.ConvertCursorToDOMRange(5, -4)
	assert.Equal(t, "ab", r.Start.Node.Data)
	assert.Equal(t, 1, r.Start.Offset)
	assert.Equal(t, "d", r.End.Node.Data)
}

func TestStepsSkipMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, `<text:p>x<office:annotation><dc:creator>Al</dc:creator>`+
		`<text:p>n</text:p></office:annotation></text:p>`)
	assert.Equal(t, 4, doc.StepCount())
	assert.Equal(t, "n", doc.ConvertCursorStepToDOMPoint(1).Node.Data)
}

func TestAddCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, fivePs)
	added := 0
	event.On(doc.Bus(), func(e event.CursorAdded) {
		assert.Equal(t, "alice", e.MemberID)
		added++
	})
	assert.True(t, NewAddCursor("alice").Execute(doc))
	assert.False(t, NewAddCursor("alice").Execute(doc))
	assert.Equal(t, 1, added)
	assert.Len(t, doc.Cursors(), 1)
	assert.Equal(t, 0, doc.Cursor("alice").Position())
	//
	assert.False(t, NewMoveCursor("bob", 0, 0).Execute(doc))
	assert.False(t, NewMoveCursor("alice", 3, 20).Execute(doc))
	assert.True(t, NewMoveCursor("alice", 3, 4).Execute(doc))
	assert.Equal(t, "P3", dom.GetParagraphElement(doc.Cursor("alice").Node(doc)).TextContent())
	//
	assert.True(t, NewRemoveCursor("alice").Execute(doc))
	assert.False(t, NewRemoveCursor("alice").Execute(doc))
	assert.Nil(t, doc.Cursor("alice"))
}

func TestAddList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, canvas := loadText(t, `<text:p>P1</text:p><text:p>P2</text:p><text:p>P3</text:p>`)
	changed := collectParagraphChanges(doc)
	op := NewAddList("alice", 0, 6, "L1")
	require.True(t, op.Execute(doc))
	expected := `<text:list text:style-name="L1">` +
		`<text:list-item><text:p>P1</text:p></text:list-item>` +
		`<text:list-item><text:p>P2</text:p></text:list-item>` +
		`<text:list-item><text:p>P3</text:p></text:list-item>` +
		`</text:list>`
	assert.Equal(t, expected, body(doc))
	assert.Equal(t, []string{"P1", "P2", "P3"}, *changed)
	assert.Equal(t, 1, canvas.CSSRefreshs)
	assert.Equal(t, 1, canvas.AnnotationRenders)
	t.Logf("DOM =\n%s", domdbg.Print(doc.RootNode()))
}

func TestAddListSingleParagraphWithoutStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, fivePs)
	require.True(t, NewAddList("alice", 3, 3, "").Execute(doc))
	assert.Equal(t, `<text:p>P1</text:p><text:list><text:list-item><text:p>P2</text:p></text:list-item></text:list>`+
		`<text:p>P3</text:p><text:p>P4</text:p><text:p>P5</text:p>`, body(doc))
	assert.False(t, NewAddList("alice", 100, 100, "").Execute(doc))
}

func TestAddListAssertions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, `<text:p>P1</text:p><text:section><text:p>P2</text:p></text:section>`)
	before := body(doc)
	aerr := assertionOf(t, func() { NewAddList("alice", 3, 0, "").Execute(doc) })
	assert.Equal(t, OpAddList, aerr.OpType)
	assertionOf(t, func() { NewAddList("alice", 1, 1, "").Execute(doc) })
	assertionOf(t, func() { NewAddList("alice", 0, 4, "").Execute(doc) })
	aerr = assertionOf(t, func() { NewAddList("alice", 0, 3, "").Execute(doc) })
	assert.Contains(t, aerr.Msg, "same parent")
	assert.True(t, errors.Is(aerr, ErrAssertion))
	assert.Equal(t, before, body(doc), "failed operations must not modify the document")
}

const listOfTwo = `<text:list text:style-name="L1"><text:list-item><text:p>P1</text:p></text:list-item>` +
	`<text:list-item><text:p>P2</text:p><text:list><text:list-item><text:p>P3</text:p></text:list-item></text:list>` +
	`</text:list-item></text:list><text:p>P4</text:p>`

func TestRemoveList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, listOfTwo)
	changed := collectParagraphChanges(doc)
	assertionOf(t, func() { NewRemoveList("alice", 3).Execute(doc) })
	assertionOf(t, func() { NewRemoveList("alice", 1).Execute(doc) })
	assertionOf(t, func() { NewRemoveList("alice", 9).Execute(doc) })
	assert.False(t, NewRemoveList("alice", 99).Execute(doc))
	require.True(t, NewRemoveList("alice", 0).Execute(doc))
	assert.Equal(t, fivePs[:len(fivePs)-len(`<text:p>P5</text:p>`)], body(doc))
	assert.Equal(t, []string{"P1", "P2", "P3"}, *changed)
}

func TestSplitMergeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, fivePs)
	require.True(t, NewAddList("alice", 0, 12, "L1").Execute(doc))
	doc.RootNode().FirstChild().SetAttr(dom.AttrXMLID, "list1")
	original := body(doc)
	//
	require.True(t, NewSplitList("alice", 0, 9).Execute(doc))
	lists := doc.RootNode().Children()
	require.Len(t, lists, 2)
	assert.Equal(t, 3, lists[0].ChildCount())
	assert.Equal(t, 2, lists[1].ChildCount())
	assert.Equal(t, "L1", lists[1].AttrOrEmpty(dom.AttrTextStyleName))
	_, hasID := lists[1].Attr(dom.AttrXMLID)
	assert.False(t, hasID, "split-off list must not duplicate xml:id")
	//
	assertionOf(t, func() { NewMergeList("alice", 9, 12).Execute(doc) })
	require.True(t, NewMergeList("alice", 9, 0).Execute(doc))
	assert.Equal(t, original, body(doc))
	//
	assert.False(t, NewSplitList("alice", 99, 0).Execute(doc))
	assert.False(t, NewMergeList("alice", 0, 99).Execute(doc))
}

func TestSplitNestedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, `<text:list><text:list-item><text:p>P1</text:p></text:list-item>`+
		`<text:list-item><text:p>P2</text:p><text:list>`+
		`<text:list-item><text:p>P3</text:p></text:list-item><text:list-item><text:p>P4</text:p></text:list-item>`+
		`</text:list></text:list-item><text:list-item><text:p>P5</text:p></text:list-item></text:list>`)
	require.True(t, NewSplitList("alice", 0, 9).Execute(doc))
	expected := `<text:list><text:list-item><text:p>P1</text:p></text:list-item>` +
		`<text:list-item><text:p>P2</text:p><text:list><text:list-item><text:p>P3</text:p></text:list-item></text:list></text:list-item>` +
		`</text:list>` +
		`<text:list><text:list-item><text:list><text:list-item><text:p>P4</text:p></text:list-item></text:list></text:list-item>` +
		`<text:list-item><text:p>P5</text:p></text:list-item></text:list>`
	assert.Equal(t, expected, body(doc))
}

func TestSplitCollapsesEmptyNestedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, `<text:list><text:list-item><text:p>P1</text:p><text:list>`+
		`<text:list-item><text:p>P2</text:p></text:list-item></text:list></text:list-item></text:list>`)
	require.True(t, NewSplitList("alice", 0, 3).Execute(doc))
	expected := `<text:list><text:list-item><text:p>P1</text:p></text:list-item></text:list>` +
		`<text:list><text:list-item><text:list><text:list-item><text:p>P2</text:p></text:list-item></text:list></text:list-item></text:list>`
	assert.Equal(t, expected, body(doc))
}

func TestSplitAtFirstListItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, _ := loadText(t, `<text:p>X</text:p><text:list><text:list-item><text:p>P1</text:p></text:list-item>`+
		`<text:list-item><text:p>P2</text:p></text:list-item></text:list>`)
	original := body(doc)
	session := NewSession(doc, nil)
	require.NoError(t, session.Enqueue(NewSplitList("alice", 2, 2)))
	assert.Empty(t, session.Operations())
	assert.Equal(t, original, body(doc))
	//
	doc, _ = loadText(t, `<text:list><text:list-item><text:p>P1</text:p><text:p>P2</text:p></text:list-item>`+
		`<text:list-item><text:p>P3</text:p></text:list-item></text:list>`)
	assert.False(t, NewSplitList("alice", 0, 3).Execute(doc), "second paragraph of first item")
	assert.True(t, NewSplitList("alice", 0, 6).Execute(doc))
	//
	doc, _ = loadText(t, `<text:list><text:list-item><text:list>`+
		`<text:list-item><text:p>P1</text:p></text:list-item><text:list-item><text:p>P2</text:p></text:list-item>`+
		`</text:list></text:list-item></text:list>`)
	assert.False(t, NewSplitList("alice", 0, 0).Execute(doc), "first item of nested list")
	assert.True(t, NewSplitList("alice", 0, 3).Execute(doc))
	assert.Len(t, doc.RootNode().Children(), 2)
}

func TestAddListStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.ops")
	defer teardown()
	//
	doc, canvas := loadText(t, fivePs)
	var created []event.CommonStyleCreated
	event.On(doc.Bus(), func(e event.CommonStyleCreated) {
		created = append(created, e)
	})
	auto := NewAddListStyle("alice", style.DefaultNumberingStyleName, true, style.DefaultNumberedListStyle())
	require.True(t, auto.Execute(doc))
	assert.Empty(t, created)
	assert.Equal(t, 1, canvas.CSSRefreshs)
	el := doc.Formatting().GetStyleElement(style.DefaultNumberingStyleName, style.FamilyListStyle)
	require.NotNil(t, el)
	assert.Equal(t, dom.OfficeAutomaticStyles, el.Parent().Name)
	assert.Equal(t, style.DefaultListLevels, el.ChildCount())
	level3 := style.FromElement(el.ChildAt(2))
	margin, _ := level3.Property("fo:margin-left")
	assert.Equal(t, style.Property("2.54cm"), margin)
	//
	assert.False(t, auto.Execute(doc), "style exists already")
	assert.False(t, NewAddListStyle("alice", "", false, nil).Execute(doc))
	common := NewAddListStyle("alice", style.DefaultNumberingStyleName, false, style.DefaultNumberedListStyle())
	require.True(t, common.Execute(doc))
	assert.Equal(t, []event.CommonStyleCreated{{Name: style.DefaultNumberingStyleName, Family: "list-style"}}, created)
}
