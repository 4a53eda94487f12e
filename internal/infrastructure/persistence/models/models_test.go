//go:build unit
// +build unit

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

func TestResumeModel_ToDomain(t *testing.T) {
	model := &ResumeModel{
		ID:        "r1",
		UserID:    "u1",
		Filename:  "cv.pdf",
		Type:      "resume",
		CreatedAt: "2025-03-10T16:44:11Z",
		BlobURL:   "https://pdf1.blob.core.windows.net/new/resume_20250310_164411_b75f956f.pdf",
	}

	r := model.ToDomain()

	assert.Equal(t, model.ID, r.ID)
	assert.Equal(t, model.UserID, r.UserID)
	assert.Equal(t, model.Filename, r.Filename)
	assert.Equal(t, model.BlobURL, r.BlobURL)
	assert.NotNil(t, r.Fields)
}

func TestResumeModel_FromDomain(t *testing.T) {
	r := &resumes.Resume{
		ID:      "r1",
		UserID:  "u1",
		FixedAt: "2025-03-11T10:00:00Z",
		Fields:  map[string]any{"summary": "Engineer"},
	}

	model := &ResumeModel{}
	model.FromDomain(r)

	assert.Equal(t, r.ID, model.ID)
	assert.Equal(t, r.UserID, model.UserID)
	assert.Equal(t, r.FixedAt, model.FixedAt)
	assert.Equal(t, "Engineer", model.Fields["summary"])
}

func TestDocumentModel_RoundTrip(t *testing.T) {
	d := &documents.Document{ID: "jane_doe", Kind: documents.KindResume, Data: map[string]any{"name": "Jane"}}

	model := &DocumentModel{}
	model.FromDomain(d)

	assert.Equal(t, "resume", model.Kind)
	assert.Equal(t, d, model.ToDomain())
}
