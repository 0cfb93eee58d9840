package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrMalformedMarkup is returned by Parse for unbalanced tags.
var ErrMalformedMarkup = errors.New("malformed ODF markup")

// Parse reads ODF markup and returns a document node holding the top-level
// elements of the input.
//
// The markup is tokenized with an HTML5 tokenizer, but the tree is built
// following XML rules: self-closing tags denote empty elements, and every
// start tag has to be matched by an end tag of the same name. Element and
// attribute names are folded to lower case, which matches the naming
// conventions of ODF. Whitespace-only character data, comments and
// processing instructions are dropped.
func Parse(r io.Reader) (*Node, error) {
	doc := NewDocument()
	open := []*Node{doc}
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("parsing ODF markup: %w", err)
			}
			if len(open) > 1 {
				return nil, fmt.Errorf("%w: element %s not closed", ErrMalformedMarkup, open[len(open)-1].Name)
			}
			return doc, nil
		case html.TextToken:
			if text := string(z.Text()); !isWhitespace(text) {
				open[len(open)-1].AppendChild(NewText(text))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			n := fromToken(z.Token())
			open[len(open)-1].AppendChild(n)
			if tt == html.StartTagToken {
				open = append(open, n)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(open) == 1 || open[len(open)-1].Name != string(name) {
				return nil, fmt.Errorf("%w: unexpected end tag %s", ErrMalformedMarkup, name)
			}
			open = open[:len(open)-1]
		}
	}
}

func fromToken(t html.Token) *Node {
	n := NewElement(t.Data)
	for _, a := range t.Attr {
		n.SetAttr(a.Key, a.Val)
	}
	return n
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Node, error) {
	return Parse(strings.NewReader(markup))
}

// MustParse parses markup and panics on error. It is intended for fixtures.
func MustParse(markup string) *Node {
	doc, err := ParseString(markup)
	if err != nil {
		panic(err)
	}
	return doc
}

func toHTML(n *Node) *html.Node {
	h := &html.Node{Type: n.Type, Data: n.Data}
	if n.IsElement() {
		h.Data = n.Name
		h.Attr = n.Attributes()
	}
	for _, ch := range n.Children() {
		h.AppendChild(toHTML(ch))
	}
	return h
}

// Render writes the markup of the subtree rooted at n. For document nodes,
// the children are rendered in sequence.
func Render(w io.Writer, n *Node) error {
	if n.Type == html.DocumentNode {
		for _, ch := range n.Children() {
			if err := html.Render(w, toHTML(ch)); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, toHTML(n))
}

// Markup returns the rendered markup of n as a string.
func Markup(n *Node) string {
	var b bytes.Buffer
	if err := Render(&b, n); err != nil {
		tracer().Errorf("rendering markup: %v", err)
	}
	return b.String()
}
