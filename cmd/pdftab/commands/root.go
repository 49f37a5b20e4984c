// Package commands implements the pdftab CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is the application version (set at build time).
	Version = "dev"
	// GitCommit is the git commit hash (set at build time).
	GitCommit = "unknown"
	// BuildDate is the build date (set at build time).
	BuildDate = "unknown"

	// Global flags.
	outputFormat string
	verbose      bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "pdftab",
	Short: "pdftab - Enterprise-grade PDF processing tool",
	Long: `pdftab is a powerful PDF table and text extraction tool for Go.

Features:
  - Table extraction via lattice and stream detection
  - Text extraction with position information
  - Encrypted document support (AES-256, RC4)

Examples:
  pdftab tables invoice.pdf --format csv
  pdftab info document.pdf
  pdftab text document.pdf

Documentation: https://github.com/coregx/pdftab`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags.
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, csv, tsv, markdown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Add subcommands.
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(textCmd)
}

// printVerbosef prints a message if verbose mode is enabled.
func printVerbosef(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}
