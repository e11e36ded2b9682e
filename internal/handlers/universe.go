package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fictiverse/fictiverse-backend/internal/services"
)

type UniverseHandler struct {
	svc services.UniverseService
}

func NewUniverseHandler(svc services.UniverseService) *UniverseHandler {
	return &UniverseHandler{svc: svc}
}

type createUniverseRequest struct {
	Prompt string `json:"prompt" binding:"required,min=10,max=300"`
}

// POST /api/universes
func (h *UniverseHandler) Create(c *gin.Context) {
	var req createUniverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	verse, err := h.svc.Create(c.Request.Context(), req.Prompt)
	if err != nil {
		RespondMappedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"universe": verse})
}

// GET /api/universes
func (h *UniverseHandler) List(c *gin.Context) {
	universes, err := h.svc.ListRecent(c.Request.Context(), 10)
	if err != nil {
		RespondMappedError(c, err)
		return
	}
	RespondOK(c, gin.H{"universes": universes})
}

// GET /api/universes/:universeSlug
func (h *UniverseHandler) Get(c *gin.Context) {
	verse, err := h.svc.GetBySlug(c.Request.Context(), c.Param("universeSlug"))
	if err != nil {
		RespondMappedError(c, err)
		return
	}
	RespondOK(c, gin.H{"universe": verse})
}

// GET /api/universes/:universeSlug/entry
//
// Returns the article slug a fresh visitor should be redirected to.
func (h *UniverseHandler) Entry(c *gin.Context) {
	articleSlug, err := h.svc.EntryArticleSlug(c.Request.Context(), c.Param("universeSlug"))
	if err != nil {
		RespondMappedError(c, err)
		return
	}
	RespondOK(c, gin.H{"article_slug": articleSlug})
}
