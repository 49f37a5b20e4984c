// Package pdftab extracts tables from PDF documents.
//
// pdftab is built for table-heavy documents,
// offering simple API for common tasks while providing full power for advanced use cases.
//
// # Quick Start
//
// Open a PDF and extract tables:
//
//	doc, err := pdftab.Open("invoice.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	tables := doc.ExtractTables()
//	for _, table := range tables {
//	    fmt.Println(table.Rows())
//	}
//
// # Architecture
//
// The library follows modern Go best practices (2025+):
//   - Root package for core API (pdftab.Open, pdftab.Document, pdftab.Table)
//   - Subpackages for specialized functionality (export/)
//   - Internal packages for implementation details
//
// # Features
//
//   - PDF reading and parsing
//   - Table extraction via lattice (ruling-driven) and stream (whitespace-driven) algorithms
//   - Text extraction with position information
//   - Export to CSV, TSV, JSON, Excel, Markdown
//
// # Thread Safety
//
// Document instances are safe for concurrent read operations.
// Pages are processed independently; callers may extract distinct pages
// on separate goroutines as long as each goroutine owns its page objects.
package pdftab

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coregx/pdftab/internal/parser"
)

// Version is the current version of the pdftab library.
const Version = "0.1.0-alpha"

// Open opens a PDF file and returns a Document for reading.
//
// This is the main entry point for reading PDF files.
// The returned Document must be closed after use.
//
// Example:
//
//	doc, err := pdftab.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	fmt.Printf("Pages: %d\n", doc.PageCount())
func Open(path string) (*Document, error) {
	return OpenWithContext(context.Background(), path)
}

// OpenWithContext opens a PDF file with a custom context.
//
// The context can be used for cancellation and timeouts.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	doc, err := pdftab.OpenWithContext(ctx, "large-document.pdf")
func OpenWithContext(ctx context.Context, path string) (*Document, error) {
	reader, err := parser.OpenPDF(path)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
			return nil, NewExtractionError(FileNotFound, err)
		}
		return nil, NewExtractionError(InvalidPDF, fmt.Errorf("%s: %w", path, err))
	}

	if reader.IsEncrypted() && !reader.Authenticate("") {
		return nil, NewExtractionError(PasswordRequired, ErrEncrypted)
	}

	return &Document{
		reader: reader,
		ctx:    ctx,
		path:   path,
	}, nil
}

// OpenWithPassword opens a password-protected PDF file, authenticating
// with password before returning the Document.
func OpenWithPassword(path, password string) (*Document, error) {
	reader, err := parser.OpenPDF(path)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
			return nil, NewExtractionError(FileNotFound, err)
		}
		return nil, NewExtractionError(InvalidPDF, fmt.Errorf("%s: %w", path, err))
	}
	if reader.IsEncrypted() && !reader.Authenticate(password) {
		if password == "" {
			return nil, NewExtractionError(PasswordRequired, ErrEncrypted)
		}
		return nil, NewExtractionError(PasswordRequired, ErrWrongPassword)
	}
	return &Document{reader: reader, ctx: context.Background(), path: path}, nil
}

// MustOpen opens a PDF file and panics on error.
//
// This is useful for initialization in tests or when the file is known to exist.
//
// Example:
//
//	doc := pdftab.MustOpen("known-good.pdf")
//	defer doc.Close()
func MustOpen(path string) *Document {
	doc, err := Open(path)
	if err != nil {
		panic(err)
	}
	return doc
}
