package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/odfops/dom"
)

// Property is a raw value for an ODF style property. For example, with
//
//     fo:margin-left="1.27cm"
//
// a property value of "1.27cm" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
//
// Values are kept verbatim: ODF property values are case sensitive
// (style:num-format="A" is different from "a").
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// Properties is the nested representation of style properties, as used in
// operation specs. Values are either strings (attributes) or nested
// Properties (property elements).
type Properties map[string]interface{}

// asProperties converts a nested value to Properties. Specs decoded from
// JSON carry plain map[string]interface{} values.
func asProperties(v interface{}) (Properties, bool) {
	switch m := v.(type) {
	case Properties:
		return m, true
	case map[string]interface{}:
		return Properties(m), true
	}
	return nil, false
}

// asValue converts a scalar value to its attribute string.
func asValue(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case Property:
		return string(x), true
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", x), true
	}
	return "", false
}

// SortedKeys returns the keys of props in lexical order.
func (props Properties) SortedKeys() []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Property Groups --------------------------------------------------
//
// Caching is currently not implemented.

// PropertyGroup is a collection of propertes sharing a common topic.
// ODF already groups properties into property elements; we use these
// as groups, plus a group for the attributes of a list level style itself.
//
// The mapping of property into groups is documented with
// GroupNameFromPropertyKey[...].
type PropertyGroup struct {
	name      string
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	pg := &PropertyGroup{}
	pg.name = groupname
	return pg
}

// Name returns the name of the property group. Once named (during
// construction, property groups may not be renamed.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	s := "[" + pg.name + "] =\n"
	for _, kv := range pg.Properties() {
		s += fmt.Sprintf("  %s = %s\n", kv.Key, kv.Value)
	}
	return s
}

// Properties returns all properties of a group, ordered by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// IsSet is a predicated wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg.propsDict == nil {
		return false
	}
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
func (pg *PropertyGroup) Set(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add a property's value. Does not overwrite an existing value, i.e., does nothing
// if a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	_, exists := pg.propsDict[key]
	if !exists {
		pg.propsDict[key] = p
	}
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//    GroupNameFromPropertyKey("fo:margin-left") => "style:list-level-label-alignment"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = PGX
	}
	return groupname
}

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGLevel               = "level"
	PGListLevelProperties = "style:list-level-properties"
	PGLabelAlignment      = "style:list-level-label-alignment"
	PGText                = "style:text-properties"
	PGParagraph           = "style:paragraph-properties"
	PGX                   = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"text:level":                              PGLevel, // Level
	"text:display-levels":                     PGLevel,
	"text:bullet-char":                        PGLevel,
	"text:style-name":                         PGLevel,
	"style:num-format":                        PGLevel,
	"style:num-prefix":                        PGLevel,
	"style:num-suffix":                        PGLevel,
	"text:start-value":                        PGLevel,
	"text:list-level-position-and-space-mode": PGListLevelProperties, // Level properties
	"text:space-before":                       PGListLevelProperties,
	"text:min-label-width":                    PGListLevelProperties,
	"fo:text-align":                           PGListLevelProperties,
	"text:label-followed-by":                  PGLabelAlignment, // Label alignment
	"text:list-tab-stop-position":             PGLabelAlignment,
	"fo:text-indent":                          PGLabelAlignment,
	"fo:margin-left":                          PGLabelAlignment,
	"fo:font-family":                          PGText, // Text
	"fo:font-size":                            PGText,
	"fo:font-weight":                          PGText,
	"fo:color":                                PGText,
	"fo:margin-top":                           PGParagraph, // Paragraph
	"fo:margin-bottom":                        PGParagraph,
	"fo:line-height":                          PGParagraph,
}

// --- Property Map -----------------------------------------------------

// PropertyMap holds ODF style properties. nil is a legal (empty) property map.
// A property map flattens the nested property elements of a style element,
// which contains zero or more property groups.
type PropertyMap struct {
	m map[string]*PropertyGroup // into struct to make it opaque for clients
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: make(map[string]*PropertyGroup)}
}

// FromProperties creates a property map from nested style properties.
// Properties at any nesting level are assigned to the group their key
// belongs to.
func FromProperties(props Properties) *PropertyMap {
	pmap := NewPropertyMap()
	pmap.addNested(props)
	return pmap
}

func (pmap *PropertyMap) addNested(props Properties) {
	for _, k := range props.SortedKeys() {
		if sub, ok := asProperties(props[k]); ok {
			pmap.addNested(sub)
		} else if v, ok := asValue(props[k]); ok {
			pmap.Add(k, Property(v))
		}
	}
}

// FromElement creates a property map from the attributes of a style element
// and its property elements.
func FromElement(el *dom.Node) *PropertyMap {
	pmap := NewPropertyMap()
	var collect func(n *dom.Node)
	collect = func(n *dom.Node) {
		for _, a := range n.Attributes() {
			pmap.Add(a.Key, Property(a.Val))
		}
		for ch := n.FirstElementChild(); ch != nil; ch = ch.NextElementSibling() {
			collect(ch)
		}
	}
	if el != nil {
		collect(el)
	}
	return pmap
}

func (pmap *PropertyMap) String() string {
	s := "Property Map = {\n"
	if pmap != nil {
		names := make([]string, 0, len(pmap.m))
		for k := range pmap.m {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			s += pmap.m[k].String()
		}
	}
	s += "}"
	return s
}

// Size returns the number of property groups.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Group returns the property group for a group name or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	group := pmap.m[groupname]
	return group
}

// Property returns a style property value, together with an indicator
// wether it has been found in the properties map.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	groupname := GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// Add adds a property to this property map, e.g.,
//
//    pm.Add("fo:margin-left", "1.27cm")
//
// Namespace declarations are ignored.
func (pmap *PropertyMap) Add(key string, value Property) {
	if pmap == nil || strings.HasPrefix(key, "xmlns") {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group, found := pmap.m[groupname]
	if !found {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.Set(key, value)
}
