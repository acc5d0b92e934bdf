package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"direct-chat-service/internal/middleware"
	"direct-chat-service/internal/models"
	"direct-chat-service/internal/ws"
)

// MessageService is the messaging surface the handler depends on.
type MessageService interface {
	CreateMessage(ctx context.Context, userID uuid.UUID, userName string, chatID uuid.UUID, content string, imageURL *string) (models.Message, error)
	GetMessages(ctx context.Context, userID, chatID uuid.UUID) ([]models.MessageView, error)
	UpdateMessage(ctx context.Context, userID, chatID, messageID uuid.UUID, content string, imageURL *string) (models.Message, error)
	DeleteMessage(ctx context.Context, userID, chatID, messageID uuid.UUID) error
	UpdateReaction(ctx context.Context, userID, chatID, messageID uuid.UUID, reactionType string) (models.Message, error)
}

// MessageHandler manages message endpoints under a chat.
type MessageHandler struct {
	messages MessageService
	hub      *ws.Hub
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages MessageService, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{messages: messages, hub: hub}
}

type messageBody struct {
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url"`
}

// CreateMessage stores a message in an active chat and broadcasts it.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}

	var req messageBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	userName := c.GetString(middleware.ContextUserName)

	msg, err := h.messages.CreateMessage(c.Request.Context(), userID, userName, chatID, req.Content, req.ImageURL)
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(chatID, models.ChatEvent{Type: models.EventMessageCreated, ChatID: chatID, Message: &msg})
	c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the ordered message list for the viewer.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	msgs, err := h.messages.GetMessages(c.Request.Context(), userID, chatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// UpdateMessage edits a message's content (sender only).
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}
	messageID, ok := parseUUIDParam(c, "message_id")
	if !ok {
		return
	}

	var req messageBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	msg, err := h.messages.UpdateMessage(c.Request.Context(), userID, chatID, messageID, req.Content, req.ImageURL)
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(chatID, models.ChatEvent{Type: models.EventMessageUpdated, ChatID: chatID, Message: &msg})
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage removes a message (sender only).
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}
	messageID, ok := parseUUIDParam(c, "message_id")
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	if err := h.messages.DeleteMessage(c.Request.Context(), userID, chatID, messageID); err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(chatID, models.ChatEvent{Type: models.EventMessageDeleted, ChatID: chatID, MessageID: &messageID})
	c.Status(http.StatusNoContent)
}

// UpdateReaction toggles the caller's reaction on a message.
func (h *MessageHandler) UpdateReaction(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}
	messageID, ok := parseUUIDParam(c, "message_id")
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	msg, err := h.messages.UpdateReaction(c.Request.Context(), userID, chatID, messageID, req.Type)
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(chatID, models.ChatEvent{Type: models.EventReactionUpdated, ChatID: chatID, Message: &msg})
	c.JSON(http.StatusOK, msg)
}
