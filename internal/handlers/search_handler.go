package handlers

import (
	"net/http"

	"creatormatch/internal/services"
	"creatormatch/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	search services.SearchService
}

func NewSearchHandler(base *BaseHandler, search services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler: base,
		search:      search,
	}
}

// SearchCreators resolves category criteria to a ranked creator list.
// POST /api/v1/search/creators
func (h *SearchHandler) SearchCreators(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.SearchCreatorsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// Direct searches are always eligible for fallback augmentation; only
	// the onboarding flow carries a suitability verdict to gate it.
	creators, err := h.search.ResolveCreators(c.Request.Context(), req.Categories, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchCreatorsResponse{
		Creators: creators,
		Total:    len(creators),
	})
}
