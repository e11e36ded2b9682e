package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/services"
)

type ArticleHandler struct {
	log *logger.Logger
	svc services.ArticleService
}

func NewArticleHandler(log *logger.Logger, svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{log: log.With("handler", "ArticleHandler"), svc: svc}
}

// GET /api/universes/:universeSlug/wiki/:articleSlug
//
// A stored article is returned as JSON. A fresh one streams as SSE: "chunk"
// events carry body fragments in generation order, a final "done" event ends
// the stream. Body text contains [[Title]] spans; each denotes a
// same-universe article whose slug is the slugified title, and turning them
// into links is the client's job.
func (h *ArticleHandler) Get(c *gin.Context) {
	m, err := h.svc.Materialize(c.Request.Context(), c.Param("universeSlug"), c.Param("articleSlug"))
	if err != nil {
		RespondMappedError(c, err)
		return
	}

	if m.Article != nil {
		RespondOK(c, gin.H{"article": m.Article})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("title", m.Title)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		chunk, err := m.Stream.Next(ctx)
		if err == io.EOF {
			c.SSEvent("done", gin.H{"title": m.Title})
			c.Writer.Flush()
			return
		}
		if err != nil {
			// Viewer went away or generation failed mid-stream; the detached
			// persistence task is unaffected either way.
			h.log.Warn("Article stream ended early", "slug", c.Param("articleSlug"), "error", err)
			c.SSEvent("error", gin.H{"message": err.Error()})
			c.Writer.Flush()
			return
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	}
}
