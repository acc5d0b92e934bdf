package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"direct-chat-service/internal/apperrors"
	"direct-chat-service/internal/observability"
)

// FeatureChecker answers whether the direct-chat feature is enabled.
type FeatureChecker interface {
	IsFeatureActive(ctx context.Context) (bool, error)
}

// FeatureGate rejects every request while the feature flag is off. It runs
// before any chat or message handler, so no state is touched on rejection.
func FeatureGate(checker FeatureChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		active, err := checker.IsFeatureActive(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read feature flag"})
			return
		}
		if !active {
			observability.IncFeatureGateRejection()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":  string(apperrors.KindFeatureDisabled),
				"error": "direct chat feature is disabled",
			})
			return
		}
		c.Next()
	}
}
