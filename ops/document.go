package ops

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/odfops/dom"
	"github.com/npillmayer/odfops/dom/style"
	"github.com/npillmayer/odfops/event"
)

// Document is the view of a text document that operations work on.
type Document interface {
	// RootNode returns the office:text element.
	RootNode() *dom.Node
	Formatting() *style.Formatting
	Canvas() Canvas
	Bus() *event.Bus
	Emit(e event.Event)

	Cursor(memberID string) *Cursor
	Cursors() []*Cursor
	AddCursor(c *Cursor)
	RemoveCursor(memberID string) bool

	StepCount() int
	ConvertCursorStepToDOMPoint(step int) dom.Point
	ConvertDOMPointToCursorStep(node *dom.Node, offset int, dir Direction) int
	ConvertCursorToDOMRange(position, length int) dom.Range
	FirstStepIn(n *dom.Node) (int, bool)
}

// Canvas is the presentation of a document. Operations notify the canvas
// about changes which affect derived presentation state.
type Canvas interface {
	RefreshCSS()
	RerenderAnnotations()
}

// HeadlessCanvas is a canvas without presentation. It counts notifications.
type HeadlessCanvas struct {
	CSSRefreshs       int
	AnnotationRenders int
}

func (c *HeadlessCanvas) RefreshCSS() {
	c.CSSRefreshs++
}

func (c *HeadlessCanvas) RerenderAnnotations() {
	c.AnnotationRenders++
}

var _ Canvas = &HeadlessCanvas{}

// --- ODF text document -----------------------------------------------------

// OdtDocument is an in-memory ODF text document.
type OdtDocument struct {
	document   *dom.Node // office:document
	root       *dom.Node // office:text
	formatting *style.Formatting
	canvas     Canvas
	bus        *event.Bus
	cursors    map[string]*Cursor
}

var _ Document = &OdtDocument{}

// Option configures an OdtDocument.
type Option func(*OdtDocument)

// WithCanvas sets the canvas of a document. The default is a HeadlessCanvas.
func WithCanvas(c Canvas) Option {
	return func(doc *OdtDocument) {
		doc.canvas = c
	}
}

// WithBus sets the event bus of a document.
func WithBus(bus *event.Bus) Option {
	return func(doc *OdtDocument) {
		doc.bus = bus
	}
}

// NewOdtDocument creates a document from a DOM, which has to contain an
// office:document element with an office:body/office:text element.
func NewOdtDocument(d *dom.Node, opts ...Option) (*OdtDocument, error) {
	if d == nil {
		return nil, ErrNoDocument
	}
	if !d.Is(dom.OfficeDocument) {
		d = childNamed(d, dom.OfficeDocument)
		if d == nil {
			return nil, fmt.Errorf("%w: missing %s", ErrNoDocument, dom.OfficeDocument)
		}
	}
	text := childNamed(childNamed(d, dom.OfficeBody), dom.OfficeText)
	if text == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrNoDocument, dom.OfficeText)
	}
	doc := &OdtDocument{
		document:   d,
		root:       text,
		formatting: style.NewFormatting(d),
		cursors:    make(map[string]*Cursor),
	}
	for _, opt := range opts {
		opt(doc)
	}
	if doc.canvas == nil {
		doc.canvas = &HeadlessCanvas{}
	}
	if doc.bus == nil {
		doc.bus = event.NewBus()
	}
	return doc, nil
}

// LoadDocument parses ODF markup and creates a document from it.
func LoadDocument(r io.Reader, opts ...Option) (*OdtDocument, error) {
	d, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewOdtDocument(d, opts...)
}

func childNamed(n *dom.Node, qname string) *dom.Node {
	if n == nil {
		return nil
	}
	for ch := n.FirstElementChild(); ch != nil; ch = ch.NextElementSibling() {
		if ch.Is(qname) {
			return ch
		}
	}
	return nil
}

// DOM returns the office:document element.
func (doc *OdtDocument) DOM() *dom.Node {
	return doc.document
}

// RootNode returns the office:text element.
func (doc *OdtDocument) RootNode() *dom.Node {
	return doc.root
}

func (doc *OdtDocument) Formatting() *style.Formatting {
	return doc.formatting
}

func (doc *OdtDocument) Canvas() Canvas {
	return doc.canvas
}

func (doc *OdtDocument) Bus() *event.Bus {
	return doc.bus
}

// Emit dispatches an event to the subscribers of the document's bus.
func (doc *OdtDocument) Emit(e event.Event) {
	doc.bus.Emit(e)
}

// --- Cursors ---------------------------------------------------------------

// Cursor returns the cursor of a member, or nil.
func (doc *OdtDocument) Cursor(memberID string) *Cursor {
	return doc.cursors[memberID]
}

// Cursors returns all cursors, ordered by member id.
func (doc *OdtDocument) Cursors() []*Cursor {
	cursors := make([]*Cursor, 0, len(doc.cursors))
	for _, c := range doc.cursors {
		cursors = append(cursors, c)
	}
	sort.Slice(cursors, func(i, j int) bool {
		return cursors[i].MemberID() < cursors[j].MemberID()
	})
	return cursors
}

// AddCursor registers a cursor, replacing an existing cursor of the same member.
func (doc *OdtDocument) AddCursor(c *Cursor) {
	doc.cursors[c.MemberID()] = c
}

// RemoveCursor unregisters the cursor of a member. It returns false if
// the member has no cursor.
func (doc *OdtDocument) RemoveCursor(memberID string) bool {
	if _, ok := doc.cursors[memberID]; !ok {
		return false
	}
	delete(doc.cursors, memberID)
	return true
}

// --- Steps -----------------------------------------------------------------

func (doc *OdtDocument) steps() []step {
	return collectSteps(doc.root)
}

// StepCount returns the number of steps of the document.
func (doc *OdtDocument) StepCount() int {
	return len(doc.steps())
}

// ConvertCursorStepToDOMPoint returns the DOM point of a step. For steps
// out of range, an invalid point is returned.
func (doc *OdtDocument) ConvertCursorStepToDOMPoint(s int) dom.Point {
	steps := doc.steps()
	if s < 0 || s >= len(steps) {
		tracer().Debugf("step %d out of range [0…%d)", s, len(steps))
		return dom.Point{}
	}
	return steps[s].point
}

// ConvertDOMPointToCursorStep returns the step at a DOM point. If the point
// is not a step, it is rounded to the next or previous step, depending on
// dir. Points beyond the first or last step are clamped. For documents
// without steps, -1 is returned.
func (doc *OdtDocument) ConvertDOMPointToCursorStep(node *dom.Node, offset int, dir Direction) int {
	steps := doc.steps()
	if len(steps) == 0 {
		return -1
	}
	p := dom.Point{Node: node, Offset: offset}
	if dir == Previous {
		for i := len(steps) - 1; i >= 0; i-- {
			if dom.ComparePoints(steps[i].point, p) <= 0 {
				return i
			}
		}
		return 0
	}
	for i, s := range steps {
		if dom.ComparePoints(s.point, p) >= 0 {
			return i
		}
	}
	return len(steps) - 1
}

// ConvertCursorToDOMRange returns the DOM range between two steps. length
// may be negative. For positions out of range, the zero range is returned.
func (doc *OdtDocument) ConvertCursorToDOMRange(position, length int) dom.Range {
	a := doc.ConvertCursorStepToDOMPoint(position)
	b := doc.ConvertCursorStepToDOMPoint(position + length)
	if !a.IsValid() || !b.IsValid() {
		return dom.Range{}
	}
	return dom.NewRange(a, b)
}

// FirstStepIn returns the first step located within n.
func (doc *OdtDocument) FirstStepIn(n *dom.Node) (int, bool) {
	for i, s := range doc.steps() {
		if n.Contains(s.point.Node) {
			return i, true
		}
	}
	return -1, false
}

// paragraphOfStep returns the paragraph a step belongs to.
func paragraphOfStep(doc Document, s int) *dom.Node {
	p := doc.ConvertCursorStepToDOMPoint(s)
	if !p.IsValid() {
		return nil
	}
	return dom.GetParagraphElement(p.Node)
}
