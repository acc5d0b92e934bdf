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

// ChatService is the chat lifecycle surface the handler depends on.
type ChatService interface {
	CreateChat(ctx context.Context, requesterID, invitedUserID uuid.UUID) (models.Chat, error)
	GetChatsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatSummary, error)
	GetPendingChatsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatSummary, error)
	GetChatByID(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error)
	ConfirmChat(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error)
	DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error
}

// ChatHandler manages the chat lifecycle endpoints.
type ChatHandler struct {
	chats ChatService
	hub   *ws.Hub
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chats ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{chats: chats, hub: hub}
}

// CreateChat creates a pending chat with the invited user.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req struct {
		InvitedUserID uuid.UUID `json:"invited_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	chat, err := h.chats.CreateChat(c.Request.Context(), userID, req.InvitedUserID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, chat)
}

// ListChats returns the chats the authenticated user participates in.
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	chats, err := h.chats.GetChatsForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// ListPendingChats returns invitations awaiting the caller's confirmation.
func (h *ChatHandler) ListPendingChats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	chats, err := h.chats.GetPendingChatsForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetChat returns a single chat, participant-only.
func (h *ChatHandler) GetChat(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	chat, err := h.chats.GetChatByID(c.Request.Context(), userID, chatID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// ConfirmChat accepts a pending invitation.
func (h *ChatHandler) ConfirmChat(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	chat, err := h.chats.ConfirmChat(c.Request.Context(), userID, chatID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(chatID, models.ChatEvent{Type: models.EventChatConfirmed, ChatID: chatID})
	c.JSON(http.StatusOK, chat)
}

// DeleteChat removes the chat and cascades to its messages.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	chatID, ok := parseUUIDParam(c, "chat_id")
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(c)
	if err := h.chats.DeleteChat(c.Request.Context(), userID, chatID); err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(chatID, models.ChatEvent{Type: models.EventChatDeleted, ChatID: chatID})
	c.Status(http.StatusNoContent)
}
