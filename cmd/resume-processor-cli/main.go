// Package main is the entry point for the resume-processor-cli application.
// It registers the document and maintenance sub-commands and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sai-Prashanth123/resume-processor/cmd/resume-processor-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "resume-processor-cli",
		Short: "Resume processing operator tool",
		Long: `resume-processor-cli runs the resume processor's building blocks locally.
It extracts text from PDF and DOCX files, renders resume JSON to PDF and writes the sample PDF.

The fix-blob-urls command connects to the configured stores. It reads the same
configuration as the API (CONFIG_PATH, .env and environment variables).`,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitDocumentCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize document commands: %w", err)
	}

	if err := commands.InitMaintenanceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize maintenance commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
