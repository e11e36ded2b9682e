package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
)

// NewSQLiteService opens a file-backed (or in-memory) SQLite database for
// local development and tests. Paragraph search degrades to substring
// matching on this driver.
func NewSQLiteService(logg *logger.Logger, path string) (*Service, error) {
	serviceLog := logg.With("service", "SQLiteService")

	if path == "" {
		path = "fictiverse.db"
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	return &Service{db: gdb, log: serviceLog}, nil
}
