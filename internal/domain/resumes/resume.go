// Package resumes models the per-user resume records and the services that manage them.
package resumes

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a resume does not exist or belongs to another user
var ErrNotFound = errors.New("resume not found")

// Record field names shared by every store
const (
	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldFilename   = "filename"
	FieldType       = "type"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
	FieldFixedAt    = "fixed_at"
	FieldBlobURL    = "blob_url"
	FieldPDFContent = "pdf_content"
)

var knownFields = []string{
	FieldID, FieldUserID, FieldFilename, FieldType, FieldCreatedAt,
	FieldUpdatedAt, FieldFixedAt, FieldBlobURL, FieldPDFContent,
}

// Resume is a user's uploaded resume. Fields holds whatever the parser extracted
// (personal_info, summary, experience, ...); JSON encoding flattens it next to the
// record fields.
type Resume struct {
	ID         string `validate:"required,max=255"`
	UserID     string `validate:"required,max=255"`
	Filename   string
	Type       string
	CreatedAt  string
	UpdatedAt  string
	FixedAt    string
	BlobURL    string
	PDFContent string
	Fields     map[string]any
}

// Validate for validating Resume struct
func (r *Resume) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// ToMap flattens the record into a single JSON object
func (r *Resume) ToMap() map[string]any {
	out := make(map[string]any, len(r.Fields)+len(knownFields))
	for k, v := range r.Fields {
		out[k] = v
	}

	out[FieldID] = r.ID
	out[FieldUserID] = r.UserID
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set(FieldFilename, r.Filename)
	set(FieldType, r.Type)
	set(FieldCreatedAt, r.CreatedAt)
	set(FieldUpdatedAt, r.UpdatedAt)
	set(FieldFixedAt, r.FixedAt)
	set(FieldBlobURL, r.BlobURL)
	set(FieldPDFContent, r.PDFContent)

	return out
}

// FromMap is the inverse of ToMap. Store system properties (keys starting with "_")
// are dropped.
func FromMap(m map[string]any) *Resume {
	r := &Resume{Fields: map[string]any{}}
	str := func(key string) string {
		if s, ok := m[key].(string); ok {
			return s
		}
		return ""
	}

	r.ID = str(FieldID)
	r.UserID = str(FieldUserID)
	r.Filename = str(FieldFilename)
	r.Type = str(FieldType)
	r.CreatedAt = str(FieldCreatedAt)
	r.UpdatedAt = str(FieldUpdatedAt)
	r.FixedAt = str(FieldFixedAt)
	r.BlobURL = str(FieldBlobURL)
	r.PDFContent = str(FieldPDFContent)

	for k, v := range m {
		if isKnownField(k) || strings.HasPrefix(k, "_") {
			continue
		}
		r.Fields[k] = v
	}
	return r
}

func (r Resume) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

func (r *Resume) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = *FromMap(m)
	return nil
}

// HasFields reports whether every key is present among the parsed resume fields
func (r *Resume) HasFields(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r.Fields[k]; !ok {
			return false
		}
	}
	return true
}

// FileExtension returns the lower-cased extension of Filename, including the dot
func (r *Resume) FileExtension() string {
	return strings.ToLower(filepath.Ext(r.Filename))
}

// Now returns the timestamp format records are written with
func Now() string {
	return time.Now().Format(time.RFC3339)
}

func isKnownField(k string) bool {
	for _, f := range knownFields {
		if f == k {
			return true
		}
	}
	return false
}
