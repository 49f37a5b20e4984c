package table

import (
	"fmt"
	"strings"

	"github.com/coregx/pdftab/internal/geometry"
)

// Method tags which extraction algorithm produced a table.
type Method string

const (
	// MethodLattice tags a table produced by ruling-driven extraction.
	MethodLattice Method = "Lattice"
	// MethodStream tags a table produced by gap-driven extraction.
	MethodStream Method = "Stream"
)

// Bounds is the exported, flat shape of a table's bounding rectangle
// (top-left origin: X is left, Y is top), kept distinct from
// geometry.Rectangle so export/ doesn't need to import internal/geometry.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func boundsOf(r geometry.Rectangle) Bounds {
	return Bounds{X: r.Left, Y: r.Top, Width: r.Width, Height: r.Height}
}

// Table is a sparse, row/col-addressed grid of cells: a
// map from (row, col) to cell, plus row/col counts (maxima + 1), an
// extraction-method tag, a page number, and a bounding rectangle maintained
// by union over inserted cells. Missing coordinates read back as an empty
// placeholder cell.
type Table struct {
	RowCount int
	ColCount int
	PageNum  int
	Method   Method
	Bounds   Bounds

	cells     map[[2]int]*Cell
	hasBounds bool
}

// NewTable creates an empty table tagged with the given method and page
// number (0-based, matching Page.Index).
func NewTable(method Method, pageNum int) *Table {
	return &Table{
		Method:  method,
		PageNum: pageNum,
		cells:   make(map[[2]int]*Cell),
	}
}

// SetCell inserts or replaces the cell at (row, col), extending RowCount/
// ColCount and the bounding-box union as needed.
func (t *Table) SetCell(row, col int, cell *Cell) {
	if cell == nil {
		return
	}
	cell.Row, cell.Column = row, col
	t.cells[[2]int{row, col}] = cell

	if row+1 > t.RowCount {
		t.RowCount = row + 1
	}
	if col+1 > t.ColCount {
		t.ColCount = col + 1
	}

	if !cell.Placeholder {
		if !t.hasBounds {
			t.Bounds = boundsOf(cell.Rect)
			t.hasBounds = true
		} else {
			t.Bounds = boundsOf(unionBounds(t.Bounds, cell.Rect))
		}
	}
}

func unionBounds(b Bounds, r geometry.Rectangle) geometry.Rectangle {
	existing := geometry.NewRectangle(b.X, b.Y, b.Width, b.Height)
	return existing.Union(r)
}

// GetCell returns the cell at (row, col), or an empty placeholder cell if
// that coordinate was never set.
func (t *Table) GetCell(row, col int) *Cell {
	if cell, ok := t.cells[[2]int{row, col}]; ok {
		return cell
	}
	return NewPlaceholderCell(row, col)
}

// IsEmpty reports whether every cell in the table is empty.
func (t *Table) IsEmpty() bool {
	for _, cell := range t.cells {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants exporters rely on: a table must
// carry non-negative dimensions. Per core §7, an empty table (RowCount==0)
// is a valid, successful result, not an error.
func (t *Table) Validate() error {
	if t.RowCount < 0 || t.ColCount < 0 {
		return fmt.Errorf("table: negative dimensions (rows=%d, cols=%d)", t.RowCount, t.ColCount)
	}
	return nil
}

// ToStringGrid renders the table as a row-major 2-D slice of cell texts.
func (t *Table) ToStringGrid() [][]string {
	grid := make([][]string, t.RowCount)
	for r := 0; r < t.RowCount; r++ {
		row := make([]string, t.ColCount)
		for c := 0; c < t.ColCount; c++ {
			row[c] = t.GetCell(r, c).Text
		}
		grid[r] = row
	}
	return grid
}

// String returns a debug representation of the table.
func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table{method=%s, page=%d, rows=%d, cols=%d}\n", t.Method, t.PageNum, t.RowCount, t.ColCount)
	for _, row := range t.ToStringGrid() {
		b.WriteString(strings.Join(row, " | "))
		b.WriteByte('\n')
	}
	return b.String()
}
