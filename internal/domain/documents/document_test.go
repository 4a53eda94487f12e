//go:build unit
// +build unit

package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{"valid resume", Document{ID: "jane_doe", Kind: KindResume, Data: map[string]any{"name": "Jane"}}, false},
		{"valid tailored without data", Document{ID: "jane_for_dev", Kind: KindTailored}, false},
		{"missing id", Document{Kind: KindJob}, true},
		{"unknown kind", Document{ID: "x", Kind: "invoice"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
