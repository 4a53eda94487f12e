//go:build unit
// +build unit

package resumes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_JSONFlattensFields(t *testing.T) {
	r := &Resume{
		ID:        "r1",
		UserID:    "u1",
		Filename:  "cv.pdf",
		Type:      "resume",
		CreatedAt: "2025-03-10T16:44:11Z",
		Fields: map[string]any{
			"summary": "Backend engineer",
			"skills":  []any{"Go", "SQL"},
		},
	}

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "r1", flat["id"])
	assert.Equal(t, "u1", flat["user_id"])
	assert.Equal(t, "Backend engineer", flat["summary"])
	assert.NotContains(t, flat, "blob_url")
	assert.NotContains(t, flat, "Fields")
}

func TestResume_UnmarshalDropsSystemProperties(t *testing.T) {
	raw := []byte(`{"id":"r1","user_id":"u1","blob_url":"https://x/new/a.pdf","_rid":"abc","_etag":"\"0\"","summary":"s"}`)

	var r Resume
	require.NoError(t, json.Unmarshal(raw, &r))

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "https://x/new/a.pdf", r.BlobURL)
	assert.Equal(t, map[string]any{"summary": "s"}, r.Fields)
}

func TestResume_Validate(t *testing.T) {
	assert.NoError(t, (&Resume{ID: "r1", UserID: "u1"}).Validate())
	assert.Error(t, (&Resume{ID: "r1"}).Validate())
	assert.Error(t, (&Resume{UserID: "u1"}).Validate())
}

func TestResume_HasFields(t *testing.T) {
	r := &Resume{Fields: map[string]any{"summary": "", "skills": nil}}
	assert.True(t, r.HasFields("summary", "skills"))
	assert.False(t, r.HasFields("summary", "education"))
}

func TestView_ToMap(t *testing.T) {
	r := &Resume{ID: "r1", UserID: "u1", Filename: "CV.DOCX", CreatedAt: "2025-03-10T16:44:11"}

	out := NewView(r, &BlobCheck{Accessible: false, StatusCode: 403}).ToMap()

	assert.Equal(t, "/download-resume/r1?user_id=u1", out["download_url"])
	assert.Equal(t, "/direct-download/r1?user_id=u1", out["direct_download_url"])
	assert.Equal(t, "docx", out["file_type"])
	assert.Equal(t, "March 10, 2025 04:44 PM", out["created_at_formatted"])
	assert.Equal(t, false, out["blob_accessible"])
	assert.Equal(t, 403, out["blob_status_code"])
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "pdf", FileType("resume.pdf"))
	assert.Equal(t, "unknown", FileType("resume"))
}

func TestFormatCreatedAt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-10T16:44:11Z", "March 10, 2025 04:44 PM"},
		{"2025-03-10T16:44:11.123456", "March 10, 2025 04:44 PM"},
		{"2025-03-10T09:05:00+02:00", "March 10, 2025 09:05 AM"},
		{"yesterday", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCreatedAt(tt.in))
		})
	}
}
