package layout

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Direction is the reading direction of a glyph, chunk, or line.
type Direction int

const (
	// LTR is left-to-right, the default.
	LTR Direction = iota
	// RTL is right-to-left (Arabic, Hebrew, and related scripts).
	RTL
)

// String returns the name of the direction.
func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// arabicPresentationForms covers U+FB50-FDFF and U+FE70-FEFF, the Arabic
// Presentation Forms-A/B blocks. unicode.Scripts["Arabic"] does not include
// these (they are block-level, not script-level, assignments), so they are
// listed here as an explicit range table and merged in below.
var arabicPresentationForms = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

// rtlTable is the merged range table of every Unicode block the direction
// predicate treats as right-to-left: Arabic, Hebrew, Syriac, Thaana, N'Ko,
// and their presentation forms. unicode.Scripts already carries Arabic,
// Hebrew, Syriac, Thaana and Nko as script range tables; only the
// presentation-forms blocks need to be supplied by hand.
var rtlTable = rangetable.Merge(
	unicode.Scripts["Arabic"],
	unicode.Scripts["Hebrew"],
	unicode.Scripts["Syriac"],
	unicode.Scripts["Thaana"],
	unicode.Scripts["Nko"],
	arabicPresentationForms,
)

// DirectionOf returns the reading direction implied by a glyph's text: RTL
// if its first rune belongs to one of the RTL blocks in rtlTable, LTR
// otherwise (including the empty string).
func DirectionOf(text string) Direction {
	for _, r := range text {
		if unicode.Is(rtlTable, r) {
			return RTL
		}
		return LTR
	}
	return LTR
}

// Majority returns the majority direction across a non-empty slice of
// directions, with LTR winning ties.
func Majority(dirs []Direction) Direction {
	rtl := 0
	for _, d := range dirs {
		if d == RTL {
			rtl++
		}
	}
	if rtl*2 > len(dirs) {
		return RTL
	}
	return LTR
}
