// Package page implements the page model: an immutable holder
// of a page's glyphs and rulings, with a memoized processed-ruling cache and
// a spatial index over glyphs for cell assignment.
package page

import (
	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
)

// Page is immutable once built, except for AddRuling: bounds,
// page number, rotation, raw rulings, glyph list, minimum observed
// character width/height, a spatial index over glyphs, and a memoized
// processed-ruling list.
type Page struct {
	Bounds   geometry.Rectangle
	Number   int
	Rotation int

	glyphs  []layout.Glyph
	rulings []geometry.Ruling

	minCharWidth, minCharHeight float64

	glyphIndex   *geometry.SpatialIndex
	glyphsByRect map[geometry.Rectangle][]int

	processed      []geometry.Ruling
	processedValid bool
	processedTol   float64
}

// New builds a Page from its glyphs and raw rulings.
func New(number int, bounds geometry.Rectangle, rotation int, glyphs []layout.Glyph, rulings []geometry.Ruling) *Page {
	p := &Page{
		Bounds:   bounds,
		Number:   number,
		Rotation: rotation,
		glyphs:   glyphs,
		rulings:  append([]geometry.Ruling(nil), rulings...),
	}
	p.minCharWidth, p.minCharHeight = minCharDims(glyphs)
	p.buildGlyphIndex()
	return p
}

func minCharDims(glyphs []layout.Glyph) (minW, minH float64) {
	first := true
	for _, g := range glyphs {
		if g.IsWhitespace() {
			continue
		}
		if first || g.Rect.Width < minW {
			minW = g.Rect.Width
		}
		if first || g.Rect.Height < minH {
			minH = g.Rect.Height
		}
		first = false
	}
	return minW, minH
}

func (p *Page) buildGlyphIndex() {
	p.glyphIndex = geometry.NewSpatialIndex()
	p.glyphsByRect = make(map[geometry.Rectangle][]int, len(p.glyphs))
	for i, g := range p.glyphs {
		p.glyphIndex.Insert(g.Rect)
		p.glyphsByRect[g.Rect] = append(p.glyphsByRect[g.Rect], i)
	}
}

// Glyphs returns the page's glyph list.
func (p *Page) Glyphs() []layout.Glyph { return p.glyphs }

// Rulings returns the page's raw, unprocessed rulings.
func (p *Page) Rulings() []geometry.Ruling { return p.rulings }

// MinCharWidth returns the minimum observed non-whitespace glyph width.
func (p *Page) MinCharWidth() float64 { return p.minCharWidth }

// MinCharHeight returns the minimum observed non-whitespace glyph height.
func (p *Page) MinCharHeight() float64 { return p.minCharHeight }

// AddRuling appends a ruling and invalidates the processed-ruling cache.
func (p *Page) AddRuling(r geometry.Ruling) {
	p.rulings = append(p.rulings, r)
	p.processedValid = false
}

// ProcessedRulings returns the page's rulings with oblique segments dropped
// and colinear fragments collapsed, memoized against
// colinearTolerance until the next AddRuling.
func (p *Page) ProcessedRulings(colinearTolerance float64) []geometry.Ruling {
	if p.processedValid && p.processedTol == colinearTolerance {
		return p.processed
	}
	p.processed = geometry.CollapseOrientedRulings(p.rulings, colinearTolerance)
	p.processedTol = colinearTolerance
	p.processedValid = true
	return p.processed
}

// GlyphsIn returns the glyphs whose origin (top-left corner) lies in the
// half-open rectangle area, accelerated by the page's spatial index.
func (p *Page) GlyphsIn(area geometry.Rectangle) []layout.Glyph {
	var out []layout.Glyph
	for _, r := range p.glyphIndex.Intersects(area) {
		for _, idx := range p.glyphsByRect[r] {
			g := p.glyphs[idx]
			if area.ContainsOrigin(geometry.Point{X: g.Rect.Left, Y: g.Rect.Top}) {
				out = append(out, g)
			}
		}
	}
	return out
}

// GetArea returns a new Page whose glyphs are the subset with origin
// inside area and whose rulings are clipped by Cohen-Sutherland against
// area; the source page is unaffected.
func (p *Page) GetArea(area geometry.Rectangle) *Page {
	var glyphs []layout.Glyph
	for _, g := range p.glyphs {
		if area.ContainsOrigin(geometry.Point{X: g.Rect.Left, Y: g.Rect.Top}) {
			glyphs = append(glyphs, g)
		}
	}

	var rulings []geometry.Ruling
	for _, r := range p.rulings {
		if clipped, ok := geometry.ClipRuling(r, area); ok {
			rulings = append(rulings, clipped)
		}
	}

	return New(p.Number, area, p.Rotation, glyphs, rulings)
}
