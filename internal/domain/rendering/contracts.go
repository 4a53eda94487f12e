// Package rendering defines how resume data is turned into PDF documents.
package rendering

import "time"

// Renderer produces PDF documents
type Renderer interface {
	// Render lays out resume data as a styled A4 resume
	Render(data map[string]any) ([]byte, error)

	// Sample produces the placeholder document used to seed new users and test storage
	Sample(now time.Time) ([]byte, error)
}
