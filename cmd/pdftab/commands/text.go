package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	textPage     int
	textOutput   string
	textPassword string
)

var textCmd = &cobra.Command{
	Use:   "text FILE",
	Short: "Extract text from PDF",
	Long: `Extract text content in reading order, from one page or the whole
document.

Examples:
  pdftab text document.pdf
  pdftab text report.pdf --page 1
  pdftab text book.pdf -o extracted.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	textCmd.Flags().IntVarP(&textPage, "page", "p", 0, "Extract from specific page (0 = all)")
	textCmd.Flags().StringVarP(&textOutput, "output", "o", "", "Output file (default: stdout)")
	textCmd.Flags().StringVar(&textPassword, "password", "", "Password for encrypted PDFs")
}

func runText(_ *cobra.Command, args []string) error {
	doc, err := openDocument(args[0], textPassword)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	out := os.Stdout
	if textOutput != "" {
		f, err := os.Create(textOutput) //nolint:gosec // G304: user-chosen output path
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	first, last := 1, doc.PageCount()
	if textPage > 0 {
		if textPage > last {
			return fmt.Errorf("page %d does not exist (document has %d pages)", textPage, last)
		}
		first, last = textPage, textPage
	}

	for pageNum := first; pageNum <= last; pageNum++ {
		text, err := doc.ExtractTextFromPage(pageNum)
		if err != nil {
			printVerbosef("Warning: page %d: %v", pageNum, err)
			continue
		}
		if pageNum > first {
			_, _ = fmt.Fprintf(out, "\n--- Page %d ---\n", pageNum)
		}
		_, _ = fmt.Fprintln(out, text)
	}
	return nil
}
