package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fictiverse/fictiverse-backend/internal/server"
)

func wireRouter(handlers Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		UniverseHandler: handlers.Universe,
		ArticleHandler:  handlers.Article,
		SearchHandler:   handlers.Search,
	})
}
