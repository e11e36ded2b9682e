package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fictiverse/fictiverse-backend/internal/services"
)

type SearchHandler struct {
	universes services.UniverseService
	search    services.SearchService
}

func NewSearchHandler(universes services.UniverseService, search services.SearchService) *SearchHandler {
	return &SearchHandler{universes: universes, search: search}
}

// GET /api/universes/:universeSlug/search?q=
func (h *SearchHandler) Search(c *gin.Context) {
	verse, err := h.universes.GetBySlug(c.Request.Context(), c.Param("universeSlug"))
	if err != nil {
		RespondMappedError(c, err)
		return
	}

	results, err := h.search.SearchArticles(c.Request.Context(), verse.ID, c.Query("q"))
	if err != nil {
		RespondMappedError(c, err)
		return
	}
	RespondOK(c, gin.H{"results": results})
}
