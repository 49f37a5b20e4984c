package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/coregx/pdftab/internal/models/table"
)

// JSONExporter renders a table as a single JSON object: row/column counts,
// a dense row-major cell grid, and (optionally) extraction metadata.
// Coordinates the extractors never filled appear as cells with
// "placeholder": true, preserving the sparse/empty distinction the table
// model tracks.
type JSONExporter struct {
	options *ExportOptions
}

// NewJSONExporter creates a JSON exporter with compact output and no
// metadata block.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{options: DefaultExportOptions()}
}

// WithPrettyPrint returns a copy of the exporter with indented output
// enabled or disabled.
func (e *JSONExporter) WithPrettyPrint(pretty bool) *JSONExporter {
	opts := *e.options
	opts.PrettyPrint = pretty
	return &JSONExporter{options: &opts}
}

// WithMetadata returns a copy of the exporter that includes (or omits) the
// metadata block.
func (e *JSONExporter) WithMetadata(include bool) *JSONExporter {
	opts := *e.options
	opts.IncludeMetadata = include
	return &JSONExporter{options: &opts}
}

type tableJSON struct {
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	Data     [][]cellJSON  `json:"data"`
	Metadata *metadataJSON `json:"metadata,omitempty"`
}

type cellJSON struct {
	Text        string `json:"text"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	RowSpan     int    `json:"rowSpan,omitempty"`
	ColSpan     int    `json:"colSpan,omitempty"`
	Alignment   string `json:"alignment,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type metadataJSON struct {
	Page   int        `json:"page"`
	Method string     `json:"method"`
	Bounds boundsJSON `json:"bounds"`
}

type boundsJSON struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Export writes tbl to w as one JSON document.
func (e *JSONExporter) Export(tbl *table.Table, w io.Writer) error {
	if tbl == nil {
		return fmt.Errorf("table is nil")
	}
	if err := tbl.Validate(); err != nil {
		return fmt.Errorf("invalid table: %w", err)
	}

	enc := json.NewEncoder(w)
	if e.options.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(e.build(tbl)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (e *JSONExporter) build(tbl *table.Table) tableJSON {
	out := tableJSON{
		Rows:    tbl.RowCount,
		Columns: tbl.ColCount,
		Data:    make([][]cellJSON, tbl.RowCount),
	}

	for r := 0; r < tbl.RowCount; r++ {
		out.Data[r] = make([]cellJSON, tbl.ColCount)
		for c := 0; c < tbl.ColCount; c++ {
			out.Data[r][c] = encodeCell(tbl.GetCell(r, c), r, c)
		}
	}

	if e.options.IncludeMetadata {
		out.Metadata = &metadataJSON{
			Page:   tbl.PageNum,
			Method: string(tbl.Method),
			Bounds: boundsJSON{
				X:      tbl.Bounds.X,
				Y:      tbl.Bounds.Y,
				Width:  tbl.Bounds.Width,
				Height: tbl.Bounds.Height,
			},
		}
	}
	return out
}

func encodeCell(cell *table.Cell, row, col int) cellJSON {
	out := cellJSON{
		Text:        cell.Text,
		Row:         row,
		Column:      col,
		Placeholder: cell.Placeholder,
	}
	if cell.RowSpan > 1 {
		out.RowSpan = cell.RowSpan
	}
	if cell.ColSpan > 1 {
		out.ColSpan = cell.ColSpan
	}
	if cell.TextAlign != table.AlignLeft {
		out.Alignment = cell.TextAlign.String()
	}
	return out
}

// ExportToString renders tbl as a JSON string.
func (e *JSONExporter) ExportToString(tbl *table.Table) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(tbl, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentType returns the JSON MIME type.
func (e *JSONExporter) ContentType() string { return "application/json" }

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }
