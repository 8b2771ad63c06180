package handlers

import (
	"net/http"

	"creatormatch/internal/services"
	"creatormatch/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
	creators services.CreatorService
}

func NewCreatorHandler(base *BaseHandler, creators services.CreatorService) *CreatorHandler {
	return &CreatorHandler{
		BaseHandler: base,
		creators:    creators,
	}
}

// Upsert ingests or replaces a creator profile. Admin only.
// POST /api/v1/admin/creators
func (h *CreatorHandler) Upsert(c *gin.Context) {
	var req dto.UpsertCreatorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	creator, err := h.creators.UpsertCreator(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}

// Get returns one creator profile.
// GET /api/v1/creators/:id
func (h *CreatorHandler) Get(c *gin.Context) {
	creator, err := h.creators.GetCreator(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}
