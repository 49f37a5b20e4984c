// Package table implements the sparse table data model produced by both the
// lattice and stream extractors: a row/column-addressed grid of cells, each
// owning the text of the glyphs/chunks assigned to it.
package table

import (
	"fmt"

	"github.com/coregx/pdftab/internal/geometry"
)

// Alignment is the horizontal text alignment hint attached to a cell for
// formats that render it (Excel). The core extractors never infer anything
// but AlignLeft; callers may set it downstream.
type Alignment int

const (
	// AlignLeft is the default alignment.
	AlignLeft Alignment = iota
	// AlignCenter centers the cell text.
	AlignCenter
	// AlignRight right-aligns the cell text.
	AlignRight
)

// String returns the name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Cell is a rectangular region of a table carrying the text of the elements
// assigned to it. RowSpan/ColSpan are always 1: the lattice and stream
// extractors never merge cells, but the fields are kept so formatters that
// know how to render a span (Excel) have a stable shape to read.
type Cell struct {
	Rect geometry.Rectangle

	Text      string
	Row       int
	Column    int
	RowSpan   int
	ColSpan   int
	TextAlign Alignment

	// Placeholder distinguishes "no cell was ever assigned here" from a
	// genuinely empty cell that the extractor did produce.
	Placeholder bool

	fragments []string
}

// NewCell creates a cell at (row, col) with the given bounds. Text is built
// incrementally via AddText.
func NewCell(row, col int, rect geometry.Rectangle) *Cell {
	return &Cell{
		Rect:    rect,
		Row:     row,
		Column:  col,
		RowSpan: 1,
		ColSpan: 1,
	}
}

// NewPlaceholderCell creates an empty, placeholder cell at (row, col).
// Table.GetCell returns one of these for coordinates that were never set.
func NewPlaceholderCell(row, col int) *Cell {
	c := NewCell(row, col, geometry.Rectangle{})
	c.Placeholder = true
	return c
}

// AddText appends a text fragment (one glyph's or chunk's text) to the
// cell's reading-order content and recomputes Text as their space-joined
// concatenation.
func (c *Cell) AddText(fragment string) {
	if fragment == "" {
		return
	}
	c.fragments = append(c.fragments, fragment)
	c.Text = joinFragments(c.fragments)
}

func joinFragments(fragments []string) string {
	switch len(fragments) {
	case 0:
		return ""
	case 1:
		return fragments[0]
	}
	total := len(fragments) - 1
	for _, f := range fragments {
		total += len(f)
	}
	buf := make([]byte, 0, total)
	for i, f := range fragments {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, f...)
	}
	return string(buf)
}

// IsMerged reports whether the cell spans more than one row or column.
func (c *Cell) IsMerged() bool {
	return c.RowSpan > 1 || c.ColSpan > 1
}

// IsEmpty reports whether the cell has no text content.
func (c *Cell) IsEmpty() bool {
	return c.Text == ""
}

// String returns a debug representation of the cell.
func (c *Cell) String() string {
	return fmt.Sprintf("Cell{row=%d, col=%d, text=%q, placeholder=%t}", c.Row, c.Column, c.Text, c.Placeholder)
}
