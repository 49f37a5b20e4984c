package layout

import (
	"sort"
	"strings"

	"github.com/coregx/pdftab/internal/geometry"
)

// TextChunk is a merged run of glyphs representing one word.
type TextChunk struct {
	Glyphs    []Glyph
	Rect      geometry.Rectangle
	Direction Direction
}

// NewTextChunk builds a chunk from its member glyphs, computing the union
// bounding rectangle and majority direction.
func NewTextChunk(glyphs []Glyph) *TextChunk {
	c := &TextChunk{Glyphs: glyphs}
	c.recompute()
	return c
}

// Add appends a glyph to the chunk and recomputes bounds/direction.
func (c *TextChunk) Add(g Glyph) {
	c.Glyphs = append(c.Glyphs, g)
	c.recompute()
}

func (c *TextChunk) recompute() {
	if len(c.Glyphs) == 0 {
		return
	}
	rect := c.Glyphs[0].Rect
	dirs := make([]Direction, len(c.Glyphs))
	for i, g := range c.Glyphs {
		if i > 0 {
			rect = rect.Union(g.Rect)
		}
		dirs[i] = g.Direction
	}
	c.Rect = rect
	c.Direction = Majority(dirs)
}

// sortedGlyphs returns the chunk's glyphs in assembly order: ascending
// Left when LTR-dominant, descending Left when RTL-dominant.
func (c *TextChunk) sortedGlyphs() []Glyph {
	out := make([]Glyph, len(c.Glyphs))
	copy(out, c.Glyphs)
	if c.Direction == RTL {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rect.Left > out[j].Rect.Left })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rect.Left < out[j].Rect.Left })
	}
	return out
}

// Text returns the chunk's assembled text in direction-aware glyph order.
func (c *TextChunk) Text() string {
	var b strings.Builder
	for _, g := range c.sortedGlyphs() {
		b.WriteString(g.Text)
	}
	return b.String()
}

// WidthOfSpace returns the representative space width for the chunk: the
// first member glyph's, used by the word-merge gap test.
func (c *TextChunk) WidthOfSpace() float64 {
	if len(c.Glyphs) == 0 {
		return 0
	}
	return c.Glyphs[0].WidthOfSpace
}

// AverageCharWidth returns the mean glyph width in the chunk.
func (c *TextChunk) AverageCharWidth() float64 {
	if len(c.Glyphs) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range c.Glyphs {
		sum += g.Rect.Width
	}
	return sum / float64(len(c.Glyphs))
}
