package persistence

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/persistence/models"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
)

// NewDBConnection opens the relational store selected by settings and migrates its schema
func NewDBConnection(settings config.StoreSettings) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch settings.Type {
	case config.StoreTypePostgres:
		dialector = postgres.Open(settings.DSN)
	case config.StoreTypeSqlite:
		dsn := settings.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", settings.Type, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the documents and resumes tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.DocumentModel{}, &models.ResumeModel{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
