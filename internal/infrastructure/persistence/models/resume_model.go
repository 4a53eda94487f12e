package models

import (
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

// ResumeModel is the GORM database model for user resume records (infrastructure concern)
type ResumeModel struct {
	ID         string         `gorm:"primaryKey;type:varchar(255)"`
	UserID     string         `gorm:"not null;index;type:varchar(255)"`
	Filename   string         `gorm:"type:varchar(255)"`
	Type       string         `gorm:"type:varchar(50)"`
	CreatedAt  string         `gorm:"type:varchar(64)"`
	UpdatedAt  string         `gorm:"type:varchar(64)"`
	FixedAt    string         `gorm:"type:varchar(64)"`
	BlobURL    string         `gorm:"type:text"`
	PDFContent string         `gorm:"type:text"`
	Fields     map[string]any `gorm:"serializer:json;type:text"`
}

// TableName specifies the table name for GORM
func (ResumeModel) TableName() string {
	return "resumes"
}

// ToDomain converts GORM model to domain entity
func (m *ResumeModel) ToDomain() *resumes.Resume {
	fields := m.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return &resumes.Resume{
		ID:         m.ID,
		UserID:     m.UserID,
		Filename:   m.Filename,
		Type:       m.Type,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		FixedAt:    m.FixedAt,
		BlobURL:    m.BlobURL,
		PDFContent: m.PDFContent,
		Fields:     fields,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ResumeModel) FromDomain(r *resumes.Resume) {
	m.ID = r.ID
	m.UserID = r.UserID
	m.Filename = r.Filename
	m.Type = r.Type
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.FixedAt = r.FixedAt
	m.BlobURL = r.BlobURL
	m.PDFContent = r.PDFContent
	m.Fields = r.Fields
}
