package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LLM API flavours
const (
	LLMTypeAzure  = "azure"
	LLMTypeOpenAI = "openai"
)

// LLMSettings configures the chat completion endpoint
type LLMSettings struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	APIType    string `mapstructure:"api_type" validate:"required,oneof=azure openai"`
	APIVersion string `mapstructure:"api_version"`
	Deployment string `mapstructure:"deployment"`
	MaxRetries uint   `mapstructure:"max_retries" validate:"gte=1,lte=10"`
}

// Validate checks that all fields in LLMSettings are valid
func (s *LLMSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LLMSettings: %w", err)
	}

	return nil
}
