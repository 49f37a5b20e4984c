package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/coregx/pdftab/internal/models/table"
	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes a table to an .xlsx workbook with a single sheet.
// Row 0 is styled as a header; per-cell alignment hints carry over; with
// PreserveSpans set, cells whose RowSpan/ColSpan exceed one become merged
// regions, the one format here that can express them.
type ExcelExporter struct {
	options   *ExportOptions
	sheetName string
}

// NewExcelExporter creates an Excel exporter writing to a sheet named
// "Table".
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{options: DefaultExportOptions(), sheetName: "Table"}
}

// WithSheetName returns a copy of the exporter writing to the named sheet.
func (e *ExcelExporter) WithSheetName(name string) *ExcelExporter {
	return &ExcelExporter{options: e.options, sheetName: name}
}

// WithMergedCells returns a copy of the exporter that renders (or ignores)
// row/column spans as merged regions.
func (e *ExcelExporter) WithMergedCells(preserve bool) *ExcelExporter {
	opts := *e.options
	opts.PreserveSpans = preserve
	return &ExcelExporter{options: &opts, sheetName: e.sheetName}
}

// Export writes tbl to w as an .xlsx workbook.
func (e *ExcelExporter) Export(tbl *table.Table, w io.Writer) error {
	if tbl == nil {
		return fmt.Errorf("table is nil")
	}
	if err := tbl.Validate(); err != nil {
		return fmt.Errorf("invalid table: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(e.sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if e.sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	styles, err := buildStyles(f)
	if err != nil {
		return err
	}

	for r := 0; r < tbl.RowCount; r++ {
		for c := 0; c < tbl.ColCount; c++ {
			if err := e.writeCell(f, tbl.GetCell(r, c), r, c, styles); err != nil {
				return err
			}
		}
	}

	e.fitColumns(f, tbl)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetStyles holds the style IDs registered once per workbook.
type sheetStyles struct {
	header, center, right int
}

func buildStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}
	s.center, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return s, fmt.Errorf("center style: %w", err)
	}
	s.right, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top"},
	})
	if err != nil {
		return s, fmt.Errorf("right style: %w", err)
	}
	return s, nil
}

func (e *ExcelExporter) writeCell(f *excelize.File, cell *table.Cell, r, c int, styles sheetStyles) error {
	// excelize coordinates are 1-based
	name, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", r, c, err)
	}

	if err := f.SetCellValue(e.sheetName, name, cell.Text); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	if id := styleFor(r, cell, styles); id > 0 {
		if err := f.SetCellStyle(e.sheetName, name, name, id); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}

	if e.options.PreserveSpans && cell.IsMerged() {
		end, err := excelize.CoordinatesToCellName(c+cell.ColSpan, r+cell.RowSpan)
		if err != nil {
			return fmt.Errorf("merge end (%d,%d): %w", r, c, err)
		}
		if err := f.MergeCell(e.sheetName, name, end); err != nil {
			return fmt.Errorf("merge %s:%s: %w", name, end, err)
		}
	}
	return nil
}

func styleFor(row int, cell *table.Cell, styles sheetStyles) int {
	if row == 0 {
		return styles.header
	}
	switch cell.TextAlign {
	case table.AlignCenter:
		return styles.center
	case table.AlignRight:
		return styles.right
	default:
		return 0
	}
}

// fitColumns sizes each column to its longest cell text, clamped so one
// giant cell can't blow the sheet out. Sizing failures are cosmetic and
// ignored.
func (e *ExcelExporter) fitColumns(f *excelize.File, tbl *table.Table) {
	const minWidth, maxWidth = 10.0, 50.0

	for c := 0; c < tbl.ColCount; c++ {
		width := minWidth
		for r := 0; r < tbl.RowCount; r++ {
			if w := float64(len(tbl.GetCell(r, c).Text)) * 1.2; w > width {
				width = w
			}
		}
		if width > maxWidth {
			width = maxWidth
		}
		if name, err := excelize.ColumnNumberToName(c + 1); err == nil {
			_ = f.SetColWidth(e.sheetName, name, name, width)
		}
	}
}

// ExportToString fails: the workbook format is binary. Use Export with a
// bytes.Buffer, or ExportToBytes.
func (e *ExcelExporter) ExportToString(tbl *table.Table) (string, error) {
	return "", fmt.Errorf("xlsx is binary; use Export or ExportToBytes")
}

// ExportToBytes renders tbl as .xlsx bytes.
func (e *ExcelExporter) ExportToBytes(tbl *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(tbl, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the xlsx MIME type.
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns ".xlsx".
func (e *ExcelExporter) FileExtension() string { return ".xlsx" }
