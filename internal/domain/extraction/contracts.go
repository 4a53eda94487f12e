// Package extraction defines plain-text extraction from uploaded resume files.
package extraction

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files that are neither PDF nor Word documents
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Supported extensions
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
	ExtDOC  = ".doc"
)

// TextExtractor reads the text of an uploaded file
type TextExtractor interface {
	// Extract dispatches on the extension of filename
	Extract(ctx context.Context, filename string, content []byte) (string, error)
}

// Ext returns the lower-cased extension of filename
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsSupported reports whether ext can be extracted. The legacy .doc extension is only
// accepted when allowDoc is set.
func IsSupported(ext string, allowDoc bool) bool {
	switch strings.ToLower(ext) {
	case ExtPDF, ExtDOCX:
		return true
	case ExtDOC:
		return allowDoc
	default:
		return false
	}
}
