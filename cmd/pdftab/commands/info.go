package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var infoPassword string

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Display PDF metadata and information",
	Long: `Print a document's page count, PDF version, encryption status, and
the metadata recorded in its /Info dictionary.

Examples:
  pdftab info document.pdf
  pdftab info report.pdf --format json
  pdftab info locked.pdf --password hunter2`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoPassword, "password", "", "Password for encrypted PDFs")
}

type documentSummary struct {
	File      string `json:"file"`
	FileSize  int64  `json:"file_size"`
	PageCount int    `json:"page_count"`
	Version   string `json:"version"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Keywords  string `json:"keywords,omitempty"`
	Creator   string `json:"creator,omitempty"`
	Producer  string `json:"producer,omitempty"`
	Encrypted bool   `json:"encrypted"`
}

func runInfo(_ *cobra.Command, args []string) error {
	filePath := args[0]

	stat, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	doc, err := openDocument(filePath, infoPassword)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	meta := doc.Info()
	summary := documentSummary{
		File:      filePath,
		FileSize:  stat.Size(),
		PageCount: meta.PageCount,
		Version:   meta.Version,
		Title:     meta.Title,
		Author:    meta.Author,
		Subject:   meta.Subject,
		Keywords:  meta.Keywords,
		Creator:   meta.Creator,
		Producer:  meta.Producer,
		Encrypted: meta.Encrypted,
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary(summary)
	return nil
}

func printSummary(s documentSummary) {
	fmt.Printf("File:       %s\n", s.File)
	fmt.Printf("Size:       %s\n", humanSize(s.FileSize))
	fmt.Printf("Pages:      %d\n", s.PageCount)
	fmt.Printf("Version:    PDF %s\n", s.Version)
	fmt.Printf("Encrypted:  %v\n", s.Encrypted)

	optional := []struct{ label, value string }{
		{"Title", s.Title},
		{"Author", s.Author},
		{"Subject", s.Subject},
		{"Keywords", s.Keywords},
		{"Creator", s.Creator},
		{"Producer", s.Producer},
	}
	for _, field := range optional {
		if field.value != "" {
			fmt.Printf("%-11s %s\n", field.label+":", field.value)
		}
	}
}

func humanSize(n int64) string {
	const kb = 1024
	switch {
	case n >= kb*kb*kb:
		return fmt.Sprintf("%.2f GB", float64(n)/(kb*kb*kb))
	case n >= kb*kb:
		return fmt.Sprintf("%.2f MB", float64(n)/(kb*kb))
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
