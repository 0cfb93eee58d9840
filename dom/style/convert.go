package style

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/odfops/css"
	"github.com/npillmayer/odfops/dom"
)

// Length interprets a property as a dimension, e.g. "-0.635cm".
func (p Property) Length() (css.DimenT, error) {
	d, err := css.ParseDimen(string(p))
	if err != nil {
		return d, fmt.Errorf("style property %q: %w", p, err)
	}
	return d, nil
}

// Int interprets a property as an integer, e.g. the value of text:level.
// It returns 0 and false for non-numeric values.
func (p Property) Int() (int, bool) {
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ErrInvalidListStyle is returned by ListStyle.Validate.
var ErrInvalidListStyle = errors.New("invalid list style")

// Length-valued properties of list level styles. Paragraph margins may be
// given as a percentage, all others have to be fixed lengths.
var listLengthKeys = []struct {
	key      string
	relative bool
}{
	{"text:space-before", false},
	{"text:min-label-width", false},
	{"text:list-tab-stop-position", false},
	{"fo:text-indent", false},
	{"fo:margin-left", false},
	{"fo:margin-top", true},
	{"fo:margin-bottom", true},
}

func checkLength(p Property, relative bool) error {
	d, err := p.Length()
	if err != nil {
		return err
	}
	fixed := css.DimenPattern[bool](d).OneOf(css.DimenPatterns[bool]{Just: true})
	if fixed || (relative && d.Match().Percentage(nil) != nil) {
		return nil
	}
	return fmt.Errorf("%v is not a fixed length", d)
}

// Validate checks the level descriptors of a list style. Every level has to
// be a number or bullet level style with a distinct text:level in 1…10, and
// length properties must be fixed lengths (or percentages, for paragraph
// margins).
func (ls ListStyle) Validate() error {
	seen := make(map[int]bool, len(ls))
	for i, l := range ls {
		if l.StyleType != dom.TextListLevelStyleNumber && l.StyleType != dom.TextListLevelStyleBullet {
			return fmt.Errorf("%w: level #%d has style type %q", ErrInvalidListStyle, i, l.StyleType)
		}
		pmap := FromProperties(l.StyleProperties)
		p, ok := pmap.Property("text:level")
		if !ok {
			return fmt.Errorf("%w: level #%d without text:level", ErrInvalidListStyle, i)
		}
		level, ok := p.Int()
		if !ok || level < 1 || level > DefaultListLevels {
			return fmt.Errorf("%w: level #%d: text:level=%q", ErrInvalidListStyle, i, p)
		}
		if seen[level] {
			return fmt.Errorf("%w: duplicate text:level %d", ErrInvalidListStyle, level)
		}
		seen[level] = true
		for _, l := range listLengthKeys {
			if p, ok := pmap.Property(l.key); ok {
				if err := checkLength(p, l.relative); err != nil {
					return fmt.Errorf("%w: level %d: %s: %v", ErrInvalidListStyle, level, l.key, err)
				}
			}
		}
	}
	return nil
}
