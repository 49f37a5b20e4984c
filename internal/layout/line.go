package layout

import (
	"sort"
	"strings"

	"github.com/coregx/pdftab/internal/geometry"
)

// Line is an ordered collection of chunks whose bounding boxes vertically
// overlap.
type Line struct {
	Chunks    []*TextChunk
	Rect      geometry.Rectangle
	Direction Direction
}

// NewLine builds a line from its member chunks.
func NewLine(chunks []*TextChunk) *Line {
	l := &Line{Chunks: chunks}
	l.recompute()
	return l
}

// Add appends a chunk to the line and recomputes bounds/direction.
func (l *Line) Add(c *TextChunk) {
	l.Chunks = append(l.Chunks, c)
	l.recompute()
}

func (l *Line) recompute() {
	if len(l.Chunks) == 0 {
		return
	}
	rect := l.Chunks[0].Rect
	dirs := make([]Direction, len(l.Chunks))
	for i, c := range l.Chunks {
		if i > 0 {
			rect = rect.Union(c.Rect)
		}
		dirs[i] = c.Direction
	}
	l.Rect = rect
	l.Direction = Majority(dirs)
}

// SortedChunks returns the line's chunks in line-direction order: ascending
// Left for LTR, descending Left for RTL.
func (l *Line) SortedChunks() []*TextChunk {
	out := make([]*TextChunk, len(l.Chunks))
	copy(out, l.Chunks)
	if l.Direction == RTL {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rect.Left > out[j].Rect.Left })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rect.Left < out[j].Rect.Left })
	}
	return out
}

// Text returns the line's chunk texts joined by separator, in line order.
func (l *Line) Text(separator string) string {
	sorted := l.SortedChunks()
	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = c.Text()
	}
	return strings.Join(parts, separator)
}

// AverageCharWidth returns the mean glyph width across every chunk in the
// line, used as the unit for gap-width comparisons.
func (l *Line) AverageCharWidth() float64 {
	sum, n := 0.0, 0
	for _, c := range l.Chunks {
		for _, g := range c.Glyphs {
			sum += g.Rect.Width
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Gap is a contiguous horizontal space between two reading-order-adjacent
// chunks in a line.
type Gap struct {
	Left, Right float64
}

// Midpoint returns the gap's horizontal center.
func (g Gap) Midpoint() float64 { return (g.Left + g.Right) / 2 }

// Width returns the gap's horizontal extent.
func (g Gap) Width() float64 { return g.Right - g.Left }

// Gaps returns the inter-chunk gaps whose width is at least
// 2*AverageCharWidth, in left-to-right reading order regardless of the
// line's text direction (gap geometry, unlike glyph assembly, is purely
// spatial).
func (l *Line) Gaps() []Gap {
	if len(l.Chunks) < 2 {
		return nil
	}
	byLeft := make([]*TextChunk, len(l.Chunks))
	copy(byLeft, l.Chunks)
	sort.Slice(byLeft, func(i, j int) bool { return byLeft[i].Rect.Left < byLeft[j].Rect.Left })

	minWidth := 2 * l.AverageCharWidth()
	var gaps []Gap
	for i := 1; i < len(byLeft); i++ {
		left := byLeft[i-1].Rect.Right()
		right := byLeft[i].Rect.Left
		if right-left >= minWidth {
			gaps = append(gaps, Gap{Left: left, Right: right})
		}
	}
	return gaps
}

// GapPositions returns the midpoints of Gaps().
func (l *Line) GapPositions() []float64 {
	gaps := l.Gaps()
	positions := make([]float64, len(gaps))
	for i, g := range gaps {
		positions[i] = g.Midpoint()
	}
	return positions
}
