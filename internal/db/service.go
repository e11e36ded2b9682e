package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

// Service wraps the GORM handle for whichever driver was configured.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	if err := s.db.AutoMigrate(
		&types.Universe{},
		&types.Article{},
		&types.Paragraph{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if s.db.Dialector.Name() == "postgres" {
		// Relevance search over paragraph text needs the GIN index; without it
		// plainto_tsquery falls back to sequential scans.
		if err := s.db.Exec(
			`CREATE INDEX IF NOT EXISTS paragraphs_text_search_idx
			 ON paragraphs USING GIN (to_tsvector('english', text));`,
		).Error; err != nil {
			return fmt.Errorf("create paragraph search index: %w", err)
		}
	}
	return nil
}
