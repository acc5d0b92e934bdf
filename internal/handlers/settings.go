package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"direct-chat-service/internal/middleware"
	"direct-chat-service/internal/models"
)

// FeatureService is the settings surface the handler depends on.
type FeatureService interface {
	GetFlag(ctx context.Context) (models.FeatureFlag, error)
	SetFeatureStatus(ctx context.Context, enabled bool, updatedBy uuid.UUID) (models.FeatureFlag, error)
}

// SettingsHandler exposes the feature flag administration endpoints.
type SettingsHandler struct {
	features FeatureService
}

// NewSettingsHandler builds a SettingsHandler.
func NewSettingsHandler(features FeatureService) *SettingsHandler {
	return &SettingsHandler{features: features}
}

// GetSettings returns the current feature flag.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	flag, err := h.features.GetFlag(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flag)
}

// UpdateSettings overwrites the feature flag (admin only).
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		IsEnabled *bool `json:"is_enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	flag, err := h.features.SetFeatureStatus(c.Request.Context(), *req.IsEnabled, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flag)
}
