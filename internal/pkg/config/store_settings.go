package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Document store backends
const (
	StoreTypeCosmos   = "cosmos"
	StoreTypeSqlite   = "sqlite"
	StoreTypePostgres = "postgres"
)

// StoreSettings selects where resume, job and tailored documents live.
// Cosmos is used in production, the gorm backed stores locally and in tests.
type StoreSettings struct {
	Type string `mapstructure:"type" validate:"required,oneof=cosmos sqlite postgres"`
	DSN  string `mapstructure:"dsn"`
}

// Validate checks that all fields in StoreSettings are valid
func (s *StoreSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StoreSettings: %w", err)
	}

	if s.Type != StoreTypeCosmos && s.DSN == "" {
		return fmt.Errorf("dsn is required for %s store", s.Type)
	}

	return nil
}

// CosmosSettings holds the Cosmos DB account and the database/container layout
type CosmosSettings struct {
	Endpoint          string `mapstructure:"endpoint"`
	Key               string `mapstructure:"key"`
	ResumeDatabase    string `mapstructure:"resume_database"`
	ResumeContainer   string `mapstructure:"resume_container"`
	JobDatabase       string `mapstructure:"job_database"`
	JobContainer      string `mapstructure:"job_container"`
	TailoredContainer string `mapstructure:"tailored_container"`
	PartitionKeyPath  string `mapstructure:"partition_key_path" validate:"required,startswith=/"`
}

// Validate checks the Cosmos settings. The database and container ids are only required
// when Cosmos is the selected store; missing credentials are reported by MissingCritical.
func (s *CosmosSettings) Validate(required bool) error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for CosmosSettings: %w", err)
	}

	if !required {
		return nil
	}

	if s.ResumeDatabase == "" || s.ResumeContainer == "" {
		return fmt.Errorf("resume database and container are required")
	}
	if s.JobDatabase == "" || s.JobContainer == "" || s.TailoredContainer == "" {
		return fmt.Errorf("job database, job container and tailored container are required")
	}

	return nil
}
