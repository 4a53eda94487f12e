package rendering

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

func sampleLines(now time.Time) []string {
	return []string{
		"This is a sample PDF file for testing Azure Blob Storage.",
		"If you can see this file, the SAS token is working correctly.",
		"Created at: " + now.Format("2006-01-02T15:04:05.000000"),
		"Using SAS token with 'srt=sco' parameter for service, container, and object level access.",
	}
}

type pdfRenderer struct {
	logger logger.Logger
}

// NewPDFRenderer creates a Renderer producing A4 resumes
func NewPDFRenderer(logger logger.Logger) rendering.Renderer {
	return &pdfRenderer{logger: logger}
}

func (r *pdfRenderer) Render(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{"name": "Error Processing Resume", "summary": "Invalid resume data format"}
	}

	p := newPage(marginX, marginY, marginX, marginY)
	p.pdf.SetTitle("Resume", true)
	p.pdf.SetAuthor("Resume Generator", true)
	p.pdf.SetSubject("Resume", true)
	p.pdf.SetKeywords("Resume, CV, Job Application", true)

	writeHeader(p, data)

	for _, key := range sectionOrder {
		content, ok := data[key]
		if !ok || !truthy(content) {
			continue
		}
		if key == "education" {
			content = normalizeEducation(content)
		}
		writeSection(p, key, content)
	}

	for _, key := range remainingSections(data) {
		writeSection(p, key, data[key])
	}

	out, err := output(p)
	if err != nil {
		r.logger.Error("Error generating PDF", "error", err)
		return nil, err
	}
	r.logger.Info("Resume PDF generated successfully", "bytes", len(out))
	return out, nil
}

func (r *pdfRenderer) Sample(now time.Time) ([]byte, error) {
	p := newPage(sampleMargin, sampleMargin, sampleMargin, sampleMargin)
	p.pdf.SetTitle("Sample Resume PDF", true)

	p.paragraph(styleTitle, plain("Sample Resume PDF"))
	for _, line := range sampleLines(now) {
		p.paragraph(styleNormal, plain(line))
	}

	return output(p)
}

func output(p *page) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
