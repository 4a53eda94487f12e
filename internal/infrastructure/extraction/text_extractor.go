package extraction

import (
	"context"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/extraction"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type textExtractor struct {
	logger logger.Logger
}

// NewTextExtractor creates a TextExtractor for PDF and DOCX uploads
func NewTextExtractor(logger logger.Logger) extraction.TextExtractor {
	return &textExtractor{logger: logger}
}

func (e *textExtractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch ext := extraction.Ext(filename); ext {
	case extraction.ExtPDF:
		text, err := extractPDF(content)
		if err != nil {
			e.logger.Error("Error extracting text from PDF", "filename", filename, "error", err)
			return "", fmt.Errorf("failed to extract text from PDF: %w", err)
		}
		return text, nil
	case extraction.ExtDOCX, extraction.ExtDOC:
		text, err := extractDOCX(content)
		if err != nil {
			e.logger.Error("Error extracting text from DOCX", "filename", filename, "error", err)
			return "", fmt.Errorf("failed to extract text from DOCX: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", extraction.ErrUnsupportedFormat, ext)
	}
}
