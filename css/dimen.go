/*
Package css handles dimensions as they occur in ODF style properties.

ODF borrows its length notation from XSL-FO and CSS: a decimal number
followed by a unit, e.g. "1.27cm" or "-0.635cm". Lengths are converted to
design units (dimen.DU, scaled big points), which are exact for all
measurements in the default list styles: the 0.635cm list indent is
a quarter inch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// Percent is a relative value, 100 representing 100%. ODF percentages may
// be fractional and exceed 100, e.g. a line height of "115%".
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%g%%", float64(p))
}

// DimenT is an option type for ODF/CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent Percent
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
	| FontRel unit
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// IsAbsolute is true for fixed dimensions.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

func (d DimenT) String() string {
	switch {
	case d.flags&kindMask == dimenAbsolute:
		return d.d.String()
	case d.flags&kindMask == dimenAuto:
		return "auto"
	case d.flags&kindMask == dimenInherit:
		return "inherit"
	case d.flags&kindMask == dimenInitial:
		return "initial"
	case d.flags&relativeMask == dimenPercent:
		return d.percent.String()
	case d.flags&relativeMask == dimenEM:
		return fmt.Sprintf("%gem", float64(d.percent)/100)
	}
	return "none"
}

// ---------------------------------------------------------------------------

// ErrDimenFormat is returned for strings which are not a valid length.
var ErrDimenFormat = errors.New("illegal dimension format")

// Units of ODF lengths in design units. ODF points are DTP points (big
// points); dimen.PT is a printer's point.
const (
	unitPT = dimen.BP
	unitPC = 12 * dimen.BP
	unitPX = dimen.IN / 96
)

// Metric units are not an integral multiple of dimen.SP. They are derived
// from the inch, which makes 1.27cm exactly half an inch.
const (
	unitCM = float64(dimen.IN) / 2.54
	unitMM = float64(dimen.IN) / 25.4
)

// ParseDimen parses a length as used in ODF style properties, e.g. "1.27cm",
// "-0.635cm", "12pt" or "80%". The keywords auto, inherit and initial are
// recognized as well.
func ParseDimen(s string) (DimenT, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "":
		return DimenT{flags: dimenNone}, fmt.Errorf("%w: empty string", ErrDimenFormat)
	}
	num, unit := splitUnit(s)
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return DimenT{}, fmt.Errorf("%w: %q", ErrDimenFormat, s)
	}
	var scale float64
	switch unit {
	case "cm":
		scale = unitCM
	case "mm":
		scale = unitMM
	case "in":
		scale = float64(dimen.IN)
	case "pt":
		scale = float64(unitPT)
	case "pc":
		scale = float64(unitPC)
	case "px":
		scale = float64(unitPX)
	case "%":
		return Percentage(Percent(x)), nil
	case "em":
		return DimenT{percent: Percent(x * 100), flags: dimenEM}, nil
	case "":
		if x == 0 {
			return JustDimen(dimen.Zero), nil
		}
		return DimenT{}, fmt.Errorf("%w: missing unit in %q", ErrDimenFormat, s)
	default:
		return DimenT{}, fmt.Errorf("%w: unknown unit in %q", ErrDimenFormat, s)
	}
	sp := math.Round(x * scale)
	if math.Abs(sp) >= dimen.Infinity {
		return DimenT{}, fmt.Errorf("%w: %q out of range", ErrDimenFormat, s)
	}
	return JustDimen(dimen.DU(sp)), nil
}

func splitUnit(s string) (string, string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

type DimenPatterns[T any] struct {
	Auto    T
	Inherit T
	Initial T
	Just    T
	Default T
}

func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

type MatchExpr[T any] struct {
	dimen DimenT
}

func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch m.dimen.flags & kindMask {
	case dimenAuto:
		return patterns.Auto
	case dimenAbsolute:
		return patterns.Just
	case dimenInitial:
		return patterns.Initial
	case dimenInherit:
		return patterns.Inherit
	}
	return patterns.Default
}
