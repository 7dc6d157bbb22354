package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"newsletter-api/internal/service"
)

// SubscriptionHandler expone el alta y la confirmación de suscripciones.
type SubscriptionHandler struct {
	logger        *zap.Logger
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(logger *zap.Logger, subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:        logger,
		subscriptions: subscriptions,
	}
}

// Subscribe maneja POST /subscriptions.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req struct {
		Name  string `form:"name" binding:"required"`
		Email string `form:"email" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid subscription request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sub, err := h.subscriptions.Signup(c.Request.Context(), service.SignupInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubscriber) {
			h.logger.Warn("subscription rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		// Incluye duplicados y fallos de envío del correo de confirmación.
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": sub.Status})
}

// Confirm maneja GET /subscriptions/confirm.
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	token := c.Query("subscription_token")

	err := h.subscriptions.Confirm(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
	case errors.Is(err, service.ErrTokenMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "subscription_token is required"})
	case errors.Is(err, service.ErrTokenUnknown):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown subscription token"})
	default:
		h.logger.Error("confirm subscription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not confirm subscription"})
	}
}
