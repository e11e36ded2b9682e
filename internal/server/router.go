package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/fictiverse/fictiverse-backend/internal/handlers"
)

type RouterConfig struct {
	UniverseHandler *handlers.UniverseHandler
	ArticleHandler  *handlers.ArticleHandler
	SearchHandler   *handlers.SearchHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("fictiverse-backend"))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/universes", cfg.UniverseHandler.Create)
		api.GET("/universes", cfg.UniverseHandler.List)
		api.GET("/universes/:universeSlug", cfg.UniverseHandler.Get)
		api.GET("/universes/:universeSlug/entry", cfg.UniverseHandler.Entry)
		api.GET("/universes/:universeSlug/search", cfg.SearchHandler.Search)
		api.GET("/universes/:universeSlug/wiki/:articleSlug", cfg.ArticleHandler.Get)
	}

	return router
}
