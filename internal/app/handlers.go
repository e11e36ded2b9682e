package app

import (
	"github.com/fictiverse/fictiverse-backend/internal/handlers"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
)

type Handlers struct {
	Universe *handlers.UniverseHandler
	Article  *handlers.ArticleHandler
	Search   *handlers.SearchHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Universe: handlers.NewUniverseHandler(services.Universe),
		Article:  handlers.NewArticleHandler(log, services.Article),
		Search:   handlers.NewSearchHandler(services.Universe, services.Search),
	}
}
