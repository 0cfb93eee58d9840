package style

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/npillmayer/odfops/dom"
)

// Style families as used for lookup of style elements.
const (
	FamilyParagraph = "paragraph"
	FamilyText      = "text"
	FamilyListStyle = "list-style"
)

// AppliedStyle names a style applied to a node, either directly or through
// an ancestor or a parent style.
type AppliedStyle struct {
	Name   string
	Family string
}

// Formatting is the style engine of a document. It operates on the style
// sections of an office:document element.
type Formatting struct {
	root *dom.Node
}

// NewFormatting creates a formatting engine for a document. root is either
// the office:document element or a document node containing it.
func NewFormatting(root *dom.Node) *Formatting {
	if root != nil && !root.Is(dom.OfficeDocument) {
		for _, ch := range root.Children() {
			if ch.Is(dom.OfficeDocument) {
				root = ch
				break
			}
		}
	}
	return &Formatting{root: root}
}

// Root returns the office:document element the engine operates on.
func (f *Formatting) Root() *dom.Node {
	return f.root
}

func (f *Formatting) section(qname string, create bool) *dom.Node {
	if f.root == nil {
		return nil
	}
	for _, ch := range f.root.Children() {
		if ch.Is(qname) {
			return ch
		}
	}
	if !create {
		return nil
	}
	sec := dom.NewElement(qname)
	if qname == dom.OfficeStyles {
		f.root.InsertBefore(sec, f.root.FirstChild())
	} else {
		f.root.InsertBefore(sec, f.section(dom.OfficeBody, false))
	}
	return sec
}

// AutomaticStyles returns the office:automatic-styles section, creating it
// if necessary.
func (f *Formatting) AutomaticStyles() *dom.Node {
	return f.section(dom.OfficeAutomaticStyles, true)
}

// CommonStyles returns the office:styles section, creating it if necessary.
func (f *Formatting) CommonStyles() *dom.Node {
	return f.section(dom.OfficeStyles, true)
}

func isStyleElement(el *dom.Node, name, family string) bool {
	if el.AttrOrEmpty(dom.AttrStyleName) != name {
		return false
	}
	if family == FamilyListStyle {
		return el.Is(dom.TextListStyle)
	}
	return el.Is(dom.StyleStyle) && el.AttrOrEmpty(dom.AttrStyleFamily) == family
}

func findStyle(sec *dom.Node, name, family string) *dom.Node {
	if sec == nil {
		return nil
	}
	for el := sec.FirstElementChild(); el != nil; el = el.NextElementSibling() {
		if isStyleElement(el, name, family) {
			return el
		}
	}
	return nil
}

// GetStyleElement returns the style element for a style name and family.
// Automatic styles take precedence over common styles. It returns nil
// if no such style exists.
func (f *Formatting) GetStyleElement(name, family string) *dom.Node {
	if el := findStyle(f.section(dom.OfficeAutomaticStyles, false), name, family); el != nil {
		return el
	}
	return findStyle(f.section(dom.OfficeStyles, false), name, family)
}

// HasStyle checks if a style exists in the automatic or common section.
func (f *Formatting) HasStyle(name, family string, automatic bool) bool {
	qname := dom.OfficeStyles
	if automatic {
		qname = dom.OfficeAutomaticStyles
	}
	return findStyle(f.section(qname, false), name, family) != nil
}

// GetAppliedStyles returns the styles applied to a node, innermost first.
// Paragraph styles are followed through their parent styles; a paragraph
// style referencing a list style contributes that list style.
func (f *Formatting) GetAppliedStyles(n *dom.Node) []AppliedStyle {
	var applied []AppliedStyle
	for it := n; it != nil; it = it.Parent() {
		if !it.IsElement() {
			continue
		}
		name, ok := it.Attr(dom.AttrTextStyleName)
		if !ok || name == "" {
			continue
		}
		switch {
		case it.Is(dom.TextSpan):
			applied = append(applied, AppliedStyle{name, FamilyText})
		case dom.IsParagraph(it):
			applied = append(applied, f.paragraphStyleChain(name)...)
		case dom.IsListElement(it):
			applied = append(applied, AppliedStyle{name, FamilyListStyle})
		}
	}
	tracer().Debugf("applied styles for %v: %v", n, applied)
	return applied
}

func (f *Formatting) paragraphStyleChain(name string) []AppliedStyle {
	var chain []AppliedStyle
	visited := make(map[string]bool)
	for name != "" && !visited[name] {
		visited[name] = true
		chain = append(chain, AppliedStyle{name, FamilyParagraph})
		el := f.GetStyleElement(name, FamilyParagraph)
		if el == nil {
			break
		}
		if ls := el.AttrOrEmpty(dom.AttrListStyleName); ls != "" {
			chain = append(chain, AppliedStyle{ls, FamilyListStyle})
		}
		name = el.AttrOrEmpty(dom.AttrParentStyleName)
	}
	return chain
}

// UpdateStyle merges nested properties into a style element. String values
// are set as attributes; nested properties are merged into the property
// element of the same name, which is created if missing. Keys are
// processed in lexical order.
func (f *Formatting) UpdateStyle(el *dom.Node, props Properties) {
	for _, k := range props.SortedKeys() {
		v := props[k]
		if sub, ok := asProperties(v); ok {
			child := childElement(el, k)
			if child == nil {
				child = el.AppendChild(dom.NewElement(k))
			}
			f.UpdateStyle(child, sub)
		} else if s, ok := asValue(v); ok {
			el.SetAttr(k, s)
		} else {
			tracer().Errorf("cannot set style property %s of type %T", k, v)
		}
	}
}

func childElement(el *dom.Node, qname string) *dom.Node {
	for ch := el.FirstElementChild(); ch != nil; ch = ch.NextElementSibling() {
		if ch.Is(qname) {
			return ch
		}
	}
	return nil
}

// AppendStyle appends a style element to the automatic or common styles.
func (f *Formatting) AppendStyle(el *dom.Node, automatic bool) {
	if automatic {
		f.AutomaticStyles().AppendChild(el)
	} else {
		f.CommonStyles().AppendChild(el)
	}
}

// StyleNames returns the names of all styles of a family, automatic styles
// first, each group in document order.
func (f *Formatting) StyleNames(family string) []string {
	var names []string
	for _, qname := range []string{dom.OfficeAutomaticStyles, dom.OfficeStyles} {
		sec := f.section(qname, false)
		if sec == nil {
			continue
		}
		for el := sec.FirstElementChild(); el != nil; el = el.NextElementSibling() {
			name := el.AttrOrEmpty(dom.AttrStyleName)
			if name != "" && isStyleElement(el, name, family) {
				names = append(names, name)
			}
		}
	}
	return names
}

// SuggestStyleNames returns names of existing styles of a family which are
// similar to name, best match first. It is intended for error messages on
// misspelled style names.
func (f *Formatting) SuggestStyleNames(name, family string) []string {
	candidates := f.StyleNames(family)
	if family == FamilyListStyle {
		candidates = append(candidates, DefaultNumberingStyleName, DefaultBulletedStyleName)
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		for i, c := range candidates {
			if d := fuzzy.LevenshteinDistance(name, c); d <= 3 {
				ranks = append(ranks, fuzzy.Rank{Source: name, Target: c, Distance: d, OriginalIndex: i})
			}
		}
	}
	sort.Stable(ranks)
	suggestions := make([]string, 0, len(ranks))
	seen := make(map[string]bool)
	for _, r := range ranks {
		if !seen[r.Target] {
			seen[r.Target] = true
			suggestions = append(suggestions, r.Target)
		}
	}
	return suggestions
}
