// Package export serializes extracted tables. Each format lives behind the
// same TableExporter interface: CSV (a tab delimiter yields TSV), JSON,
// Excel via excelize, and GitHub-flavored Markdown.
//
// Exporters read tables through Table.GetCell/ToStringGrid, so sparse
// tables serialize with their placeholder coordinates rendered as empty
// fields rather than holes.
package export

import (
	"io"

	"github.com/coregx/pdftab/internal/models/table"
)

// TableExporter serializes one table to one format.
type TableExporter interface {
	// Export writes tbl to w in the exporter's format.
	Export(tbl *table.Table, w io.Writer) error

	// ExportToString renders tbl as a string, for formats that are text.
	ExportToString(tbl *table.Table) (string, error)

	// ContentType returns the MIME type of the format.
	ContentType() string

	// FileExtension returns the conventional extension, dot included.
	FileExtension() string
}

// ExportOptions carries the per-exporter tunables. Zero value is usable;
// DefaultExportOptions fills in the CSV delimiter.
type ExportOptions struct {
	// Delimiter separates CSV fields. "\t" turns the CSV exporter into a
	// TSV exporter, extension included.
	Delimiter string

	// PreserveSpans renders RowSpan/ColSpan > 1 as merged regions in
	// formats that can express them (Excel). CSV and Markdown cannot.
	PreserveSpans bool

	// IncludeMetadata adds page number, extraction method, and bounds to
	// metadata-capable formats (JSON).
	IncludeMetadata bool

	// PrettyPrint indents JSON output.
	PrettyPrint bool
}

// DefaultExportOptions returns the options every exporter constructor
// starts from.
func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{Delimiter: ","}
}
