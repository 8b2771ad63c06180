package handlers

import (
	"crypto/subtle"
	"net/http"

	"creatormatch/internal/logger"
	"creatormatch/internal/services"
	"creatormatch/internal/services/dto"
	"creatormatch/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptions services.SubscriptionService
	webhookSecret string
}

func NewSubscriptionHandler(base *BaseHandler, subscriptions services.SubscriptionService, webhookSecret string) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:   base,
		subscriptions: subscriptions,
		webhookSecret: webhookSecret,
	}
}

// GetCurrent returns the authenticated user's subscription state.
// GET /api/v1/subscription
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.subscriptions.GetCurrent(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ProviderWebhook receives payment-provider events. Authenticated by a
// shared secret header, not a user session.
// POST /api/v1/subscription/webhook
func (h *SubscriptionHandler) ProviderWebhook(c *gin.Context) {
	got := c.GetHeader("X-Webhook-Secret")
	if h.webhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
		logger.CtxWarn(c.Request.Context(), "webhook rejected: bad secret", "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid webhook secret"))
		return
	}

	var event dto.ProviderEvent
	if !h.BindAndValidate_JSON(c, &event) {
		return
	}

	if err := h.subscriptions.ApplyProviderEvent(c.Request.Context(), event); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
