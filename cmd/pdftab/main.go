// Package main provides the pdftab command-line interface.
//
// pdftab is a PDF processing tool that provides table extraction, text
// extraction, and document information.
//
// Usage:
//
//	pdftab [command] [flags]
//
// Available Commands:
//
//	tables      Extract tables from PDF
//	text        Extract text from PDF
//	info        Display PDF metadata and information
//	version     Print version information
//
// Use "pdftab [command] --help" for more information about a command.
package main

import (
	"os"

	"github.com/coregx/pdftab/cmd/pdftab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
