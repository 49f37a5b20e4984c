package page

import (
	"testing"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGlyph(text string, top, left float64) layout.Glyph {
	return layout.NewGlyph(text, geometry.NewRectangle(top, left, 8, 10), "Helvetica", 10, 4)
}

func testPage(glyphs []layout.Glyph, rulings []geometry.Ruling) *Page {
	return New(0, geometry.NewRectangle(0, 0, 612, 792), 0, glyphs, rulings)
}

func TestPage_ProcessedRulingsCollapsesAndMemoizes(t *testing.T) {
	rulings := []geometry.Ruling{
		geometry.NewRuling(0, 10, 40, 10, 1.0),
		geometry.NewRuling(50, 10.5, 100, 10.5, 1.0),
		geometry.NewRuling(0, 0, 30, 30, 1.0), // oblique
	}
	p := testPage(nil, rulings)

	processed := p.ProcessedRulings(1.0)
	require.Len(t, processed, 1)
	assert.Equal(t, 0.0, processed[0].Start())
	assert.Equal(t, 100.0, processed[0].End())

	// memoized: same slice back without recomputation
	again := p.ProcessedRulings(1.0)
	assert.Equal(t, processed, again)
}

func TestPage_AddRulingInvalidatesCache(t *testing.T) {
	p := testPage(nil, []geometry.Ruling{geometry.NewRuling(0, 10, 100, 10, 1.0)})

	require.Len(t, p.ProcessedRulings(1.0), 1)

	p.AddRuling(geometry.NewRuling(0, 50, 100, 50, 1.0))
	assert.Len(t, p.ProcessedRulings(1.0), 2)
}

func TestPage_GlyphsIn(t *testing.T) {
	glyphs := []layout.Glyph{
		testGlyph("a", 5, 5),
		testGlyph("b", 5, 60),
		testGlyph("c", 80, 5),
	}
	p := testPage(glyphs, nil)

	got := p.GlyphsIn(geometry.NewRectangle(0, 0, 50, 50))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Text)

	// origin on the half-open far edge is excluded
	got = p.GlyphsIn(geometry.NewRectangle(0, 0, 5, 5))
	assert.Empty(t, got)
}

func TestPage_MinCharDims(t *testing.T) {
	glyphs := []layout.Glyph{
		layout.NewGlyph("a", geometry.NewRectangle(0, 0, 8, 12), "F", 10, 4),
		layout.NewGlyph("b", geometry.NewRectangle(0, 10, 6, 14), "F", 10, 4),
		layout.NewGlyph(" ", geometry.NewRectangle(0, 20, 1, 1), "F", 10, 4), // whitespace ignored
	}
	p := testPage(glyphs, nil)

	assert.Equal(t, 6.0, p.MinCharWidth())
	assert.Equal(t, 12.0, p.MinCharHeight())
}

func TestPage_GetArea(t *testing.T) {
	glyphs := []layout.Glyph{
		testGlyph("in", 5, 5),
		testGlyph("out", 100, 100),
	}
	rulings := []geometry.Ruling{
		geometry.NewRuling(-10, 5, 50, 5, 1.0),     // clipped to [0, 40]
		geometry.NewRuling(-10, -10, -5, -10, 1.0), // fully outside, dropped
	}
	p := testPage(glyphs, rulings)

	area := geometry.NewRectangle(0, 0, 40, 20)
	sub := p.GetArea(area)

	require.Len(t, sub.Glyphs(), 1)
	assert.Equal(t, "in", sub.Glyphs()[0].Text)

	require.Len(t, sub.Rulings(), 1)
	r := sub.Rulings()[0]
	assert.Equal(t, 0.0, r.X1)
	assert.Equal(t, 40.0, r.X2)
	assert.Equal(t, 5.0, r.Y1)

	// source page unaffected
	assert.Len(t, p.Glyphs(), 2)
	assert.Len(t, p.Rulings(), 2)
	assert.Equal(t, area, sub.Bounds)
}
