package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/pdftab/internal/models/table"
)

// MarkdownExporter exports tables to GitHub-flavored Markdown.
//
// The first table row is rendered as the header row, followed by the
// alignment separator and the remaining rows. Pipe characters inside cell
// text are escaped; newlines are replaced with <br> so multi-line cells
// survive rendering.
//
// Example usage:
//
//	exporter := export.NewMarkdownExporter()
//	err := exporter.Export(table, file)
type MarkdownExporter struct {
	options *ExportOptions
}

// NewMarkdownExporter creates a new Markdown exporter with default options.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{
		options: DefaultExportOptions(),
	}
}

// Export writes the table to the writer in Markdown format.
func (e *MarkdownExporter) Export(tbl *table.Table, w io.Writer) error {
	if tbl == nil {
		return fmt.Errorf("table is nil")
	}

	if err := tbl.Validate(); err != nil {
		return fmt.Errorf("invalid table: %w", err)
	}

	if tbl.RowCount == 0 || tbl.ColCount == 0 {
		return nil
	}

	grid := tbl.ToStringGrid()

	if err := writeMarkdownRow(w, grid[0]); err != nil {
		return err
	}

	sep := make([]string, tbl.ColCount)
	for c := range sep {
		sep[c] = "---"
	}
	if err := writeMarkdownRow(w, sep); err != nil {
		return err
	}

	for _, row := range grid[1:] {
		if err := writeMarkdownRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string) error {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeMarkdownCell(c)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
	return err
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}

// ExportToString exports the table to a Markdown string.
func (e *MarkdownExporter) ExportToString(tbl *table.Table) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(tbl, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentType returns the MIME content type for Markdown.
func (e *MarkdownExporter) ContentType() string {
	return "text/markdown"
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
