package layout

import (
	"fmt"

	"github.com/coregx/pdftab/internal/geometry"
)

// Glyph is a single positioned character, projected into top-left page
// coordinates by the graphics-stream receiver.
type Glyph struct {
	Text         string
	Rect         geometry.Rectangle
	FontName     string
	FontSize     float64
	WidthOfSpace float64
	Direction    Direction
}

// NewGlyph creates a Glyph, deriving its Direction from Text.
func NewGlyph(text string, rect geometry.Rectangle, fontName string, fontSize, widthOfSpace float64) Glyph {
	return Glyph{
		Text:         text,
		Rect:         rect,
		FontName:     fontName,
		FontSize:     fontSize,
		WidthOfSpace: widthOfSpace,
		Direction:    DirectionOf(text),
	}
}

// IsWhitespace reports whether the glyph's text is empty or all-whitespace.
func (g Glyph) IsWhitespace() bool {
	for _, r := range g.Text {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// String returns a debug representation of the glyph.
func (g Glyph) String() string {
	return fmt.Sprintf("Glyph{%q, %s, dir=%s}", g.Text, g.Rect, g.Direction)
}
