package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"direct-chat-service/internal/apperrors"
)

// writeError maps a service error onto the HTTP response. Errors outside the
// taxonomy never leak details to the caller.
func writeError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if kind, ok := apperrors.KindOf(err); ok {
		c.JSON(status, gin.H{"code": string(kind), "error": err.Error()})
		return
	}
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
