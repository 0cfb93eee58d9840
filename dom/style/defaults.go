package style

import "strconv"

// Names of the built-in list styles. These styles may be applied without
// prior declaration; they are added to a document's automatic styles on
// first use.
const (
	DefaultNumberingStyleName = "WebODF-Numbering"
	DefaultBulletedStyleName  = "WebODF-Bulleted"
)

// ListLevelStyle describes one level of a list style: the element type
// of the level style and its nested properties.
type ListLevelStyle struct {
	StyleType       string     `json:"styleType"`
	StyleProperties Properties `json:"styleProperties"`
}

// ListStyle is an ordered sequence of level descriptors.
type ListStyle []ListLevelStyle

// Level returns the level descriptor for ODF level n (1-based), or false.
func (ls ListStyle) Level(n int) (ListLevelStyle, bool) {
	for _, l := range ls {
		if lvl, ok := asValue(l.StyleProperties["text:level"]); ok && lvl == strconv.Itoa(n) {
			return l, true
		}
	}
	return ListLevelStyle{}, false
}

// DefaultListLevels is the number of levels of the built-in list styles.
const DefaultListLevels = 10

// Left margins of the built-in list levels. Levels are indented by
// 0.635cm each, and the label hangs into the margin by the same amount.
var defaultMarginsLeft = [DefaultListLevels]string{
	"1.27cm", "1.905cm", "2.54cm", "3.175cm", "3.81cm",
	"4.445cm", "5.08cm", "5.715cm", "6.35cm", "6.985cm",
}

const defaultTextIndent = "-0.635cm"

// BulletChar is the bullet character of the built-in bulleted list style.
const BulletChar = "•"

func defaultListLevelProperties(level int) Properties {
	return Properties{
		"text:list-level-position-and-space-mode": "label-alignment",
		"style:list-level-label-alignment": Properties{
			"text:label-followed-by": "space",
			"fo:text-indent":         defaultTextIndent,
			"fo:margin-left":         defaultMarginsLeft[level-1],
		},
	}
}

// DefaultNumberedListStyle returns a fresh copy of the built-in numbered
// list style. All levels are numbered arabic with a trailing period.
// Numbers of outer levels are displayed as well (text:display-levels),
// except for the first level, which has no outer levels.
func DefaultNumberedListStyle() ListStyle {
	ls := make(ListStyle, DefaultListLevels)
	for i := 1; i <= DefaultListLevels; i++ {
		props := Properties{
			"text:level":                  strconv.Itoa(i),
			"style:num-format":            "1",
			"style:num-suffix":            ".",
			"style:list-level-properties": defaultListLevelProperties(i),
		}
		if i > 1 {
			props["text:display-levels"] = strconv.Itoa(i)
		}
		ls[i-1] = ListLevelStyle{
			StyleType:       "text:list-level-style-number",
			StyleProperties: props,
		}
	}
	return ls
}

// DefaultBulletedListStyle returns a fresh copy of the built-in bulleted
// list style.
func DefaultBulletedListStyle() ListStyle {
	ls := make(ListStyle, DefaultListLevels)
	for i := 1; i <= DefaultListLevels; i++ {
		ls[i-1] = ListLevelStyle{
			StyleType: "text:list-level-style-bullet",
			StyleProperties: Properties{
				"text:level":                  strconv.Itoa(i),
				"text:bullet-char":            BulletChar,
				"style:list-level-properties": defaultListLevelProperties(i),
			},
		}
	}
	return ls
}

// DefaultListStyle returns the built-in list style of a given name, or false
// if name does not denote a built-in style.
func DefaultListStyle(name string) (ListStyle, bool) {
	switch name {
	case DefaultNumberingStyleName:
		return DefaultNumberedListStyle(), true
	case DefaultBulletedStyleName:
		return DefaultBulletedListStyle(), true
	}
	return nil, false
}

// IsDefaultListStyle is true for the names of the built-in list styles.
func IsDefaultListStyle(name string) bool {
	return name == DefaultNumberingStyleName || name == DefaultBulletedStyleName
}
