// internal/interfaces/http/handlers/support.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/support"
	"github.com/your-org/storefront-api/internal/pkg/email"
	"gorm.io/gorm"
)

// SupportHandler handles contact and FAQ endpoints
type SupportHandler struct {
	supportService *support.Service
	config         *config.Config
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(db *gorm.DB, cfg *config.Config) *SupportHandler {
	return &SupportHandler{
		supportService: support.NewService(db, cfg, email.NewService(cfg), nil),
		config:         cfg,
	}
}

// SubmitContact handles POST /contact
func (h *SupportHandler) SubmitContact(c *gin.Context) {
	var req support.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	msg, err := h.supportService.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message received. We'll get back to you soon.",
		"data":    gin.H{"id": msg.ID},
	})
}

// ListFAQ handles GET /faq
func (h *SupportHandler) ListFAQ(c *gin.Context) {
	entries, err := h.supportService.ListFAQ(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": entries,
	})
}
