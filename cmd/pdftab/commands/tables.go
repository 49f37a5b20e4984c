package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coregx/pdftab"
	"github.com/spf13/cobra"
)

var (
	tablesPage     int
	tablesOutput   string
	tablesMethod   string
	tablesGuess    bool
	tablesColumns  []float64
	tablesArea     []float64
	tablesPassword string
)

var tablesCmd = &cobra.Command{
	Use:   "tables FILE",
	Short: "Extract tables from PDF",
	Long: `Extract tables from PDF files.

Two extraction algorithms are available:
  - lattice: reconstructs tables from ruling lines (cell borders)
  - stream:  reconstructs tables from text positions and whitespace gaps
  - auto:    tries lattice first, falls back to stream (default)

Output formats:
  - text:     Human-readable table format (default)
  - csv:      Comma-separated values
  - tsv:      Tab-separated values
  - json:     JSON array of tables with rows and cells
  - markdown: GitHub-flavored Markdown tables

Examples:
  pdftab tables invoice.pdf
  pdftab tables statement.pdf --format csv > out.csv
  pdftab tables report.pdf --page 2 --method stream --format json
  pdftab tables scanned_layout.pdf --guess
  pdftab tables report.pdf --area 100,50,400,550
  pdftab tables fixed_layout.pdf --method stream --columns 60,140,300`,
	Args: cobra.ExactArgs(1),
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().IntVarP(&tablesPage, "page", "p", 0, "Extract from specific page (0 = all pages)")
	tablesCmd.Flags().StringVarP(&tablesOutput, "output", "o", "", "Output file (default: stdout)")
	tablesCmd.Flags().StringVarP(&tablesMethod, "method", "m", "auto", "Extraction method: auto, lattice, or stream")
	tablesCmd.Flags().BoolVarP(&tablesGuess, "guess", "g", false, "Detect table regions first, then extract each region")
	tablesCmd.Flags().Float64SliceVar(&tablesColumns, "columns", nil, "Explicit column x-positions for stream extraction")
	tablesCmd.Flags().Float64SliceVar(&tablesArea, "area", nil, "Restrict extraction to top,left,bottom,right")
	tablesCmd.Flags().StringVar(&tablesPassword, "password", "", "Password for encrypted PDFs")
}

func runTables(_ *cobra.Command, args []string) error {
	filePath := args[0]

	printVerbosef("Opening PDF: %s", filePath)

	doc, err := openDocument(filePath, tablesPassword)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	printVerbosef("PDF opened: %d pages", doc.PageCount())

	opts, err := buildExtractionOptions(doc)
	if err != nil {
		return err
	}

	tables, err := doc.ExtractTablesWithOptions(opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	allTables := wrapTables(tables)
	if len(allTables) == 0 {
		printVerbosef("No tables found")
		return nil
	}

	printVerbosef("Found %d table(s)", len(allTables))

	return outputTables(allTables)
}

func openDocument(path, password string) (*pdftab.Document, error) {
	if password != "" {
		doc, err := pdftab.OpenWithPassword(path, password)
		if err != nil {
			return nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		return doc, nil
	}
	doc, err := pdftab.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return doc, nil
}

func buildExtractionOptions(doc *pdftab.Document) (*pdftab.ExtractionOptions, error) {
	opts := pdftab.DefaultExtractionOptions()

	switch tablesMethod {
	case "auto", "":
		opts.Method = pdftab.MethodAuto
	case "lattice":
		opts.Method = pdftab.MethodLattice
	case "stream":
		opts.Method = pdftab.MethodStream
	default:
		return nil, fmt.Errorf("unknown method %q (want auto, lattice, or stream)", tablesMethod)
	}

	if tablesPage > 0 {
		if tablesPage > doc.PageCount() {
			return nil, fmt.Errorf("page %d does not exist (document has %d pages)", tablesPage, doc.PageCount())
		}
		opts.Pages = []int{tablesPage - 1}
	}

	if len(tablesArea) > 0 {
		if len(tablesArea) != 4 {
			return nil, fmt.Errorf("--area wants exactly 4 values: top,left,bottom,right")
		}
		opts.WithArea(tablesArea[0], tablesArea[1], tablesArea[2], tablesArea[3])
	}

	opts.Columns = tablesColumns
	opts.Guess = tablesGuess
	return opts, nil
}

func wrapTables(tables []*pdftab.Table) []extractedTable {
	var out []extractedTable
	for i, t := range tables {
		out = append(out, extractedTable{
			Page:    t.PageNumber() + 1,
			Index:   i + 1,
			Method:  t.Method(),
			Rows:    t.RowCount(),
			Columns: t.ColumnCount(),
			Data:    t.Rows(),
		})
	}
	return out
}

func outputTables(allTables []extractedTable) error {
	out, cleanup, err := getOutput()
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	switch outputFormat {
	case "json":
		return outputTablesJSON(out, allTables)
	case "csv":
		return outputTablesCSV(out, allTables, ',')
	case "tsv":
		return outputTablesCSV(out, allTables, '\t')
	case "markdown":
		return outputTablesMarkdown(out, allTables)
	default:
		return outputTablesText(out, allTables)
	}
}

func getOutput() (*os.File, func(), error) {
	if tablesOutput != "" {
		f, err := os.Create(tablesOutput) //nolint:gosec // G304: User-specified output file
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	return os.Stdout, nil, nil
}

type extractedTable struct {
	Page    int        `json:"page"`
	Index   int        `json:"index"`
	Method  string     `json:"method"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Data    [][]string `json:"data"`
}

func outputTablesJSON(out *os.File, tables []extractedTable) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tables)
}

func outputTablesCSV(out *os.File, tables []extractedTable, delimiter rune) error {
	writer := csv.NewWriter(out)
	writer.Comma = delimiter
	defer writer.Flush()

	for _, t := range tables {
		// Write table header comment.
		if len(tables) > 1 {
			if err := writer.Write([]string{fmt.Sprintf("# Table %d (Page %d)", t.Index, t.Page)}); err != nil {
				return err
			}
		}
		// Write data rows.
		for _, row := range t.Data {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func outputTablesMarkdown(out *os.File, tables []extractedTable) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if len(t.Data) == 0 {
			continue
		}
		if err := writeMarkdownTableRow(out, t.Data[0]); err != nil {
			return err
		}
		sep := make([]string, t.Columns)
		for c := range sep {
			sep[c] = "---"
		}
		if err := writeMarkdownTableRow(out, sep); err != nil {
			return err
		}
		for _, row := range t.Data[1:] {
			if err := writeMarkdownTableRow(out, row); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMarkdownTableRow(out *os.File, cells []string) error {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(c, "|", "\\|"), "\n", "<br>")
	}
	_, err := fmt.Fprintf(out, "| %s |\n", strings.Join(escaped, " | "))
	return err
}

//nolint:unparam // Returns nil for consistency with other output functions.
func outputTablesText(out *os.File, tables []extractedTable) error {
	for i, t := range tables {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "=== Table %d (Page %d, %s, %d rows x %d columns) ===\n",
			t.Index, t.Page, t.Method, t.Rows, t.Columns)

		colWidths := calculateColumnWidths(t)
		printTableRows(out, t.Data, colWidths)
	}
	return nil
}

func calculateColumnWidths(t extractedTable) []int {
	colWidths := make([]int, t.Columns)
	for _, row := range t.Data {
		for j, cell := range row {
			if j < len(colWidths) && len(cell) > colWidths[j] {
				colWidths[j] = len(cell)
			}
		}
	}
	return colWidths
}

func printTableRows(out *os.File, data [][]string, colWidths []int) {
	for _, row := range data {
		cells := make([]string, 0, len(row))
		for j, cell := range row {
			width := 10
			if j < len(colWidths) {
				width = colWidths[j]
			}
			cells = append(cells, fmt.Sprintf("%-*s", width, cell))
		}
		_, _ = fmt.Fprintln(out, strings.Join(cells, " | "))
	}
}
