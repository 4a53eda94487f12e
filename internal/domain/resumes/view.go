package resumes

import (
	"fmt"
	"strings"
	"time"
)

const displayLayout = "January 02, 2006 03:04 PM"

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// BlobCheck is the result of probing a record's blob URL
type BlobCheck struct {
	Accessible bool
	StatusCode int
	Err        string
}

// View is a Resume decorated for the front-end
type View struct {
	Resume *Resume
	Check  *BlobCheck
}

// NewView wraps r with its download links and display fields
func NewView(r *Resume, check *BlobCheck) *View {
	return &View{Resume: r, Check: check}
}

// ToMap renders the view as the flat JSON object served to clients
func (v *View) ToMap() map[string]any {
	out := v.Resume.ToMap()

	out["download_url"] = fmt.Sprintf("/download-resume/%s?user_id=%s", v.Resume.ID, v.Resume.UserID)
	out["direct_download_url"] = fmt.Sprintf("/direct-download/%s?user_id=%s", v.Resume.ID, v.Resume.UserID)

	if v.Resume.Filename != "" {
		out["file_type"] = FileType(v.Resume.Filename)
	}
	if v.Resume.CreatedAt != "" {
		out["created_at_formatted"] = FormatCreatedAt(v.Resume.CreatedAt)
	}

	if v.Check != nil {
		out["blob_accessible"] = v.Check.Accessible
		if v.Check.StatusCode != 0 && !v.Check.Accessible {
			out["blob_status_code"] = v.Check.StatusCode
		}
		if v.Check.Err != "" {
			out["blob_error"] = v.Check.Err
		}
	}

	return out
}

// FileType is the extension of filename without the dot, or "unknown"
func FileType(filename string) string {
	r := Resume{Filename: filename}
	ext := strings.TrimPrefix(r.FileExtension(), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// FormatCreatedAt renders an ISO timestamp as "March 10, 2025 04:44 PM".
// Values that cannot be parsed are returned unchanged.
func FormatCreatedAt(raw string) string {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayLayout)
		}
	}
	return raw
}
