//go:build unit
// +build unit

package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/extraction"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p/>
    <w:p><w:r><w:t>Go</w:t><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<Types/>`))
	require.NoError(t, err)

	if documentXML != "" {
		w, err = zw.Create(documentPart)
		require.NoError(t, err)
		_, err = w.Write([]byte(documentXML))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(10)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestExtract_DOCX(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	text, err := e.Extract(context.Background(), "resume.DOCX", buildDOCX(t, testDocumentXML))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer\n\nGo\tKubernetes", text)
	assert.NotContains(t, text, "cell", "table paragraphs are not part of the body text")
}

func TestExtract_DOCXMissingDocument(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	_, err := e.Extract(context.Background(), "resume.docx", buildDOCX(t, ""))
	assert.Error(t, err)
}

func TestExtract_LegacyDocIsNotOOXML(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	_, err := e.Extract(context.Background(), "resume.doc", []byte{0xD0, 0xCF, 0x11, 0xE0})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, extraction.ErrUnsupportedFormat)
}

func TestExtract_PDF(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	text, err := e.Extract(context.Background(), "resume.pdf", buildPDF(t, "Curriculum", "Vitae"))
	require.NoError(t, err)
	assert.Contains(t, text, "Curriculum")
	assert.Contains(t, text, "Vitae")
}

func TestExtract_InvalidPDF(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	_, err := e.Extract(context.Background(), "resume.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}

func TestExtract_Unsupported(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	_, err := e.Extract(context.Background(), "resume.txt", []byte("plain"))
	assert.ErrorIs(t, err, extraction.ErrUnsupportedFormat)
}

func TestExtract_CanceledContext(t *testing.T) {
	e := NewTextExtractor(testutil.SetupTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, "resume.pdf", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
