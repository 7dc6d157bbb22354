package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"newsletter-api/internal/service"
)

// NewsletterHandler expone la publicación de ediciones del boletín.
type NewsletterHandler struct {
	logger      *zap.Logger
	newsletters *service.NewsletterService
}

func NewNewsletterHandler(logger *zap.Logger, newsletters *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		logger:      logger,
		newsletters: newsletters,
	}
}

// Publish maneja POST /newsletters. Requiere Basic Auth (middleware).
func (h *NewsletterHandler) Publish(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content struct {
			HTML string `json:"html" binding:"required"`
			Text string `json:"text" binding:"required"`
		} `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid newsletter request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, _ := GetAuthenticatedUser(c)

	delivered, err := h.newsletters.Publish(c.Request.Context(), service.Issue{
		Title: req.Title,
		HTML:  req.Content.HTML,
		Text:  req.Content.Text,
	})
	if err != nil {
		h.logger.Error("publish newsletter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not publish newsletter"})
		return
	}

	h.logger.Info("newsletter published",
		zap.String("username", user.Username),
		zap.Int("delivered", delivered),
	)
	c.JSON(http.StatusOK, gin.H{"delivered": delivered})
}
