package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/validators"
)

// DefaultBlobBaseURL is the storage account endpoint resumes are served from
const DefaultBlobBaseURL = "https://pdf1.blob.core.windows.net"

// DefaultBlobContainer is the container generated and uploaded resumes are kept in
const DefaultBlobContainer = "new"

// BlobSettings holds the Azure Blob Storage connection and SAS configuration
type BlobSettings struct {
	ConnectionString        string `mapstructure:"connection_string"`
	ConnectionStringWithSAS string `mapstructure:"connection_string_with_sas"`
	ContainerName           string `mapstructure:"container_name" validate:"required"`
	SASToken                string `mapstructure:"sas_token" validate:"omitempty,sas_token"`
	BaseURL                 string `mapstructure:"base_url" validate:"required,url"`
	SASURL                  string `mapstructure:"sas_url"`
}

// Validate checks that all fields in BlobSettings are valid
func (s *BlobSettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation(validators.SASTokenTag, validators.SASTokenValidation); err != nil {
		return fmt.Errorf("failed to register sas token validator: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BlobSettings: %w", err)
	}

	return nil
}

// Token returns the SAS token without its leading question mark
func (s *BlobSettings) Token() string {
	return strings.TrimPrefix(s.SASToken, "?")
}
