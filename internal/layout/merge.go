package layout

import (
	"sort"

	"github.com/coregx/pdftab/internal/geometry"
)

// MergeGlyphsToChunks scans non-whitespace glyphs in reading order and folds
// them into the current chunk while three conditions hold:
// vertical overlap at the default threshold, no separating vertical ruling,
// and a horizontal gap no wider than wordGapMultiplier times the largest of
// the chunk's space width, the glyph's space width and the glyph's own
// width. verticals should be the page's
// processed vertical rulings.
func MergeGlyphsToChunks(glyphs []Glyph, verticals []geometry.Ruling, wordGapMultiplier float64) []*TextChunk {
	return MergeGlyphsToChunksOverlap(glyphs, verticals, wordGapMultiplier, geometry.VerticalOverlapThreshold)
}

// MergeGlyphsToChunksOverlap is MergeGlyphsToChunks with the vertical
// overlap threshold supplied by the caller's configuration.
func MergeGlyphsToChunksOverlap(glyphs []Glyph, verticals []geometry.Ruling, wordGapMultiplier, verticalOverlap float64) []*TextChunk {
	ordered := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if !g.IsWhitespace() {
			ordered = append(ordered, g)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rect.Less(ordered[j].Rect) })

	var chunks []*TextChunk
	var current *TextChunk
	for _, g := range ordered {
		if current != nil && canMergeGlyph(current, g, verticals, wordGapMultiplier, verticalOverlap) {
			current.Add(g)
			continue
		}
		current = NewTextChunk([]Glyph{g})
		chunks = append(chunks, current)
	}
	return chunks
}

func canMergeGlyph(chunk *TextChunk, g Glyph, verticals []geometry.Ruling, wordGapMultiplier, verticalOverlap float64) bool {
	if !chunk.Rect.VerticallyOverlapsBy(g.Rect, verticalOverlap) {
		return false
	}

	gapLeft, gapRight := chunk.Rect.Right(), g.Rect.Left
	if gapRight < gapLeft {
		gapLeft, gapRight = gapRight, gapLeft
	}
	yTop, yBottom := minF(chunk.Rect.Top, g.Rect.Top), maxF(chunk.Rect.Bottom(), g.Rect.Bottom())
	if verticalRulingSeparates(verticals, gapLeft, gapRight, yTop, yBottom) {
		return false
	}

	maxGap := wordGapMultiplier * maxF(maxF(chunk.WidthOfSpace(), g.WidthOfSpace), g.Rect.Width)
	gap := g.Rect.Left - chunk.Rect.Right()
	return gap <= maxGap
}

// verticalRulingSeparates reports whether a vertical ruling lies in
// [gapLeft, gapRight] with a y-extent covering [yTop, yBottom], i.e. it sits
// between two candidates for merging and spans both of them.
func verticalRulingSeparates(verticals []geometry.Ruling, gapLeft, gapRight, yTop, yBottom float64) bool {
	for _, v := range verticals {
		if !v.IsVertical() {
			continue
		}
		x := v.Position()
		if x < gapLeft || x > gapRight {
			continue
		}
		if v.CoversRange(yTop, yBottom, 0) {
			return true
		}
	}
	return false
}

// MergeChunksToLines scans chunks in reading order and folds them into the
// current line while the candidate vertically overlaps it at the default
// threshold.
func MergeChunksToLines(chunks []*TextChunk) []*Line {
	return MergeChunksToLinesOverlap(chunks, geometry.VerticalOverlapThreshold)
}

// MergeChunksToLinesOverlap is MergeChunksToLines with the vertical overlap
// threshold supplied by the caller's configuration.
func MergeChunksToLinesOverlap(chunks []*TextChunk, verticalOverlap float64) []*Line {
	ordered := make([]*TextChunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rect.Less(ordered[j].Rect) })

	var lines []*Line
	var current *Line
	for _, c := range ordered {
		if current != nil && current.Rect.VerticallyOverlapsBy(c.Rect, verticalOverlap) {
			current.Add(c)
			continue
		}
		current = NewLine([]*TextChunk{c})
		lines = append(lines, current)
	}
	return lines
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
