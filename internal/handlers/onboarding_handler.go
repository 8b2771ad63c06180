package handlers

import (
	"net/http"

	"creatormatch/internal/services"
	"creatormatch/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	onboarding services.OnboardingService
}

func NewOnboardingHandler(base *BaseHandler, onboarding services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler: base,
		onboarding:  onboarding,
	}
}

// Submit runs the intake flow: classification, creator resolution, match
// recording.
// POST /api/v1/onboarding
func (h *OnboardingHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitOnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.onboarding.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LatestAnswer returns the user's most recent onboarding submission.
// GET /api/v1/onboarding/latest
func (h *OnboardingHandler) LatestAnswer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	answer, err := h.onboarding.LatestAnswer(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}
