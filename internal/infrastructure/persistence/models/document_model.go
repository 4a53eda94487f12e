package models

import (
	"time"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
)

// DocumentModel is the GORM database model for pipeline documents (infrastructure concern)
type DocumentModel struct {
	Kind      string         `gorm:"primaryKey;type:varchar(20)"`
	ID        string         `gorm:"primaryKey;type:varchar(255)"`
	Data      map[string]any `gorm:"serializer:json;type:text"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts GORM model to domain entity
func (m *DocumentModel) ToDomain() *documents.Document {
	return &documents.Document{
		ID:   m.ID,
		Kind: documents.Kind(m.Kind),
		Data: m.Data,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DocumentModel) FromDomain(d *documents.Document) {
	m.ID = d.ID
	m.Kind = string(d.Kind)
	m.Data = d.Data
}
