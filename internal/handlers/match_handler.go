package handlers

import (
	"net/http"

	"creatormatch/internal/services"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	*BaseHandler
	matches services.MatchService
}

func NewMatchHandler(base *BaseHandler, matches services.MatchService) *MatchHandler {
	return &MatchHandler{
		BaseHandler: base,
		matches:     matches,
	}
}

// RecordMatch persists a search result set for the authenticated user.
// Idempotent per onboarding answer.
// POST /api/v1/matches
func (h *MatchHandler) RecordMatch(c *gin.Context) {
	sessionUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RecordMatchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.matches.RecordMatch(c.Request.Context(), sessionUserID, req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecordMatchResponse{Success: true})
}

// LatestMatch returns the most recent persisted match, hydrated with
// creator profiles and display scores. A user with no matches yet gets
// {match: null}, not a 404.
// GET /api/v1/matches/latest
func (h *MatchHandler) LatestMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	match, err := h.matches.LatestMatch(c.Request.Context(), userID)
	if err != nil {
		if appErr, isApp := apperrors.AsAppError(err); isApp && appErr.Code == apperrors.CodeNotFound {
			c.JSON(http.StatusOK, dto.LatestMatchResponse{Match: nil})
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LatestMatchResponse{Match: match})
}
