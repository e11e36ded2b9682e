package app

import (
	aiclient "github.com/fictiverse/fictiverse-backend/internal/clients/openai"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/services"
)

type Services struct {
	Search   services.SearchService
	Weaver   services.WeaverService
	Universe services.UniverseService
	Article  services.ArticleService
}

func wireServices(log *logger.Logger, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	openaiClient, err := aiclient.NewClient(log)
	if err != nil {
		return Services{}, err
	}

	search := services.NewSearchService(log, reposet.Paragraph)
	weaver := services.NewWeaverService(log, openaiClient, search)
	universe := services.NewUniverseService(log, reposet.Universe, reposet.Article, weaver)
	article := services.NewArticleService(log, reposet.Universe, reposet.Article, weaver, search)

	return Services{
		Search:   search,
		Weaver:   weaver,
		Universe: universe,
		Article:  article,
	}, nil
}
