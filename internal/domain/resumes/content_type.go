package resumes

import (
	"path/filepath"
	"strings"
)

// Content types resume files are served with
const (
	ContentTypePDF   = "application/pdf"
	ContentTypeWord  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeOctet = "application/octet-stream"
)

// ContentType maps a file name to the content type it is served with. Unknown extensions
// return an empty string so callers can choose their own default.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".doc", ".docx":
		return ContentTypeWord
	default:
		return ""
	}
}
