package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/extraction"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/rendering"
	extractionInfra "github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/extraction"
	renderingInfra "github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// DocumentCommandHandler runs text extraction and PDF rendering on local files.
type DocumentCommandHandler struct {
	extractor extraction.TextExtractor
	renderer  rendering.Renderer
	logger    logger.Logger
}

// NewDocumentCommandHandler initializes a DocumentCommandHandler with a console logger.
func NewDocumentCommandHandler() (*DocumentCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DocumentCommandHandler{
		extractor: extractionInfra.NewTextExtractor(loggerInstance),
		renderer:  renderingInfra.NewPDFRenderer(loggerInstance),
		logger:    loggerInstance,
	}, nil
}

// ExtractCmd prints the text of a PDF or DOCX file
func (commandHandler *DocumentCommandHandler) ExtractCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input")
	if err != nil {
		commandHandler.logger.Error("invalid input flag", "error", err)
		return
	}

	content, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error("failed to read input file", "path", inputFilePath, "error", err)
		return
	}

	text, err := commandHandler.extractor.Extract(cmd.Context(), filepath.Base(inputFilePath), content)
	if err != nil {
		commandHandler.logger.Error("failed to extract text", "path", inputFilePath, "error", err)
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
}

// RenderCmd renders a resume JSON document to PDF
func (commandHandler *DocumentCommandHandler) RenderCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input")
	if err != nil {
		commandHandler.logger.Error("invalid input flag", "error", err)
		return
	}
	outputFilePath, err := cmd.Flags().GetString("output")
	if err != nil {
		commandHandler.logger.Error("invalid output flag", "error", err)
		return
	}

	raw, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error("failed to read input file", "path", inputFilePath, "error", err)
		return
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		commandHandler.logger.Error("input is not a JSON object", "path", inputFilePath, "error", err)
		return
	}

	pdf, err := commandHandler.renderer.Render(data)
	if err != nil {
		commandHandler.logger.Error("failed to render resume", "error", err)
		return
	}

	commandHandler.writeOutput(outputFilePath, pdf)
}

// SampleCmd writes the sample PDF
func (commandHandler *DocumentCommandHandler) SampleCmd(cmd *cobra.Command, _ []string) {
	outputFilePath, err := cmd.Flags().GetString("output")
	if err != nil {
		commandHandler.logger.Error("invalid output flag", "error", err)
		return
	}

	pdf, err := commandHandler.renderer.Sample(time.Now())
	if err != nil {
		commandHandler.logger.Error("failed to render sample", "error", err)
		return
	}

	commandHandler.writeOutput(outputFilePath, pdf)
}

func (commandHandler *DocumentCommandHandler) writeOutput(path string, content []byte) {
	if err := os.WriteFile(path, content, 0600); err != nil {
		commandHandler.logger.Error("failed to write output file", "path", path, "error", err)
		return
	}
	commandHandler.logger.Info("PDF written", "path", path, "bytes", len(content))
}

// InitDocumentCommands registers the extract, render and sample commands
func InitDocumentCommands(rootCmd *cobra.Command) error {
	handler, err := NewDocumentCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create document command handler: %w", err)
	}

	var extractCmd = &cobra.Command{
		Use:   "extract",
		Short: "Print the text of a PDF or DOCX file",
		Run:   handler.ExtractCmd,
	}
	extractCmd.Flags().StringP("input", "", "", "Path to the PDF or DOCX file")
	_ = extractCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(extractCmd)

	var renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a resume JSON document to PDF",
		Run:   handler.RenderCmd,
	}
	renderCmd.Flags().StringP("input", "", "", "Path to the resume JSON document")
	renderCmd.Flags().StringP("output", "", "resume.pdf", "Path to the PDF to write")
	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)

	var sampleCmd = &cobra.Command{
		Use:   "sample",
		Short: "Write the sample PDF",
		Run:   handler.SampleCmd,
	}
	sampleCmd.Flags().StringP("output", "", "sample.pdf", "Path to the PDF to write")
	rootCmd.AddCommand(sampleCmd)

	return nil
}
