package compare

import (
	"cmp"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/uax/grapheme"
	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

// Natural orders strings the way people expect in listings: letters compare
// case-insensitively and without accents, and runs of decimal digits compare
// by numeric value ("file2" < "file10"). Numbers sort before text. Strings
// which are equal under these rules are ordered byte-wise, so Compare is a
// total order and returns 0 only for identical strings.
//
// The fingerprint packs the first 10 letters, case and accent folded, and is
// order-preserving.
type Natural struct{}

var setupGraphemes sync.Once

// nonspacing marks are dropped when folding accents.
var nonspacing = runes.In(unicode.Mn)

// unit is a comparison unit of a string: a run of digits or a single folded
// grapheme.
type unit struct {
	number bool
	text   string // digits without leading zeros, or folded grapheme
}

func naturalUnits(s string) []unit {
	if s == "" {
		return nil
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	units := make([]unit, 0, gstr.Len())
	var digits strings.Builder
	flush := func() {
		if digits.Len() == 0 {
			return
		}
		d := strings.TrimLeft(digits.String(), "0")
		units = append(units, unit{number: true, text: d})
		digits.Reset()
	}
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		if len(g) == 1 && g[0] >= '0' && g[0] <= '9' {
			digits.WriteByte(g[0])
			continue
		}
		flush()
		units = append(units, unit{text: fold(g)})
	}
	flush()
	return units
}

// fold removes accents and case from a grapheme.
func fold(g string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(g) {
		if nonspacing.Contains(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	if b.Len() == 0 {
		return g
	}
	return b.String()
}

func compareUnits(a, b unit) int {
	switch {
	case a.number && b.number:
		if c := cmp.Compare(len(a.text), len(b.text)); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	case a.number:
		return -1
	case b.number:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

// Compare implements Comparator.
func (Natural) Compare(a, b string) int {
	if a == b {
		return 0
	}
	ua, ub := naturalUnits(a), naturalUnits(b)
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if c := compareUnits(ua[i], ub[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(ua), len(ub)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

const (
	naturalBits  = 6
	naturalSlots = 64 / naturalBits
)

// unitCode maps a unit to a 6 bit code of the same order: numbers 0, text
// below "a" 1, a single letter c 2+2c, longer text starting with letter c
// 3+2c, and text from "{" on 54. Only single letters let the fingerprint
// continue.
func unitCode(u unit) (code uint64, letter bool) {
	switch {
	case u.number:
		return 0, false
	case u.text < "a":
		return 1, false
	case u.text[0] <= 'z':
		c := uint64(u.text[0]-'a') * 2
		if len(u.text) == 1 {
			return c + 2, true
		}
		return c + 3, false
	}
	return 54, false
}

// Fingerprint implements Comparator.
func (Natural) Fingerprint(s string) uint64 {
	var fp uint64
	n := 0
	for _, u := range naturalUnits(s) {
		if n == naturalSlots {
			break
		}
		code, letter := unitCode(u)
		fp = fp<<naturalBits | code
		n++
		if !letter {
			break
		}
	}
	return fp << (naturalBits * (naturalSlots - n))
}
