package app

import (
	"gorm.io/gorm"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/repos"
)

type Repos struct {
	Universe  repos.UniverseRepo
	Article   repos.ArticleRepo
	Paragraph repos.ParagraphRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Universe:  repos.NewUniverseRepo(db, log),
		Article:   repos.NewArticleRepo(db, log),
		Paragraph: repos.NewParagraphRepo(db, log),
	}
}
