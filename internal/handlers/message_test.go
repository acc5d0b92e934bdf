package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"direct-chat-service/internal/apperrors"
	"direct-chat-service/internal/middleware"
	"direct-chat-service/internal/mocks"
	"direct-chat-service/internal/models"
	"direct-chat-service/internal/ws"
)

func setupMessageRouter(handler *MessageHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserName, "alice")
		c.Set(middleware.ContextIsAdmin, false)
		c.Next()
	})
	r.POST("/direct-chats/:chat_id/messages", handler.CreateMessage)
	r.GET("/direct-chats/:chat_id/messages", handler.GetMessages)
	r.PATCH("/direct-chats/:chat_id/messages/:message_id", handler.UpdateMessage)
	r.DELETE("/direct-chats/:chat_id/messages/:message_id", handler.DeleteMessage)
	r.PATCH("/direct-chats/:chat_id/messages/:message_id/reactions", handler.UpdateReaction)
	return r
}

func TestCreateMessageEndpointSuccess(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("CreateMessage", mock.Anything, userID, "alice", chatID, "hello", (*string)(nil)).
		Return(models.Message{ID: uuid.New(), ChatID: chatID, SenderID: userID, Content: "hello"}, nil).Once()

	body := bytes.NewBufferString(`{"content":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/direct-chats/"+chatID.String()+"/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "hello", resp.Content)
	msgSvc.AssertExpectations(t)
}

func TestCreateMessageEndpointMissingContent(t *testing.T) {
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/direct-chats/"+uuid.NewString()+"/messages", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgSvc.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMessageEndpointPendingChat(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("CreateMessage", mock.Anything, userID, "alice", chatID, "hi", (*string)(nil)).
		Return(models.Message{}, apperrors.InvalidOperation("cannot message a chat that has not been confirmed")).Once()

	req := httptest.NewRequest(http.MethodPost, "/direct-chats/"+chatID.String()+"/messages", bytes.NewBufferString(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, string(apperrors.KindInvalidOperation), resp["code"])
}

func TestGetMessagesEndpoint(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("GetMessages", mock.Anything, userID, chatID).Return([]models.MessageView{
		{Message: models.Message{ID: uuid.New(), ChatID: chatID, SenderID: userID, Content: "mine"}, IsEditable: true},
		{Message: models.Message{ID: uuid.New(), ChatID: chatID, SenderID: uuid.New(), Content: "theirs"}, IsEditable: false},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/direct-chats/"+chatID.String()+"/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Messages []models.MessageView `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Messages, 2)
	assert.True(t, resp.Messages[0].IsEditable)
	assert.False(t, resp.Messages[1].IsEditable)
}

func TestGetMessagesEndpointForbidden(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("GetMessages", mock.Anything, userID, chatID).
		Return(([]models.MessageView)(nil), apperrors.Forbidden("not a chat participant")).Once()

	req := httptest.NewRequest(http.MethodGet, "/direct-chats/"+chatID.String()+"/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateMessageEndpoint(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	messageID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("UpdateMessage", mock.Anything, userID, chatID, messageID, "edited", (*string)(nil)).
		Return(models.Message{ID: messageID, ChatID: chatID, SenderID: userID, Content: "edited"}, nil).Once()

	body := bytes.NewBufferString(`{"content":"edited"}`)
	req := httptest.NewRequest(http.MethodPatch, "/direct-chats/"+chatID.String()+"/messages/"+messageID.String(), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	msgSvc.AssertExpectations(t)
}

func TestUpdateMessageEndpointNotSender(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	messageID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("UpdateMessage", mock.Anything, userID, chatID, messageID, "edited", (*string)(nil)).
		Return(models.Message{}, apperrors.Forbidden("only the sender can edit a message")).Once()

	body := bytes.NewBufferString(`{"content":"edited"}`)
	req := httptest.NewRequest(http.MethodPatch, "/direct-chats/"+chatID.String()+"/messages/"+messageID.String(), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteMessageEndpoint(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	messageID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("DeleteMessage", mock.Anything, userID, chatID, messageID).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/direct-chats/"+chatID.String()+"/messages/"+messageID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	msgSvc.AssertExpectations(t)
}

func TestUpdateReactionEndpoint(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	messageID := uuid.New()
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, userID)

	msgSvc.On("UpdateReaction", mock.Anything, userID, chatID, messageID, "like").
		Return(models.Message{
			ID:        messageID,
			ChatID:    chatID,
			Reactions: models.ReactionList{{UserID: userID, Type: "like"}},
		}, nil).Once()

	body := bytes.NewBufferString(`{"type":"like"}`)
	req := httptest.NewRequest(http.MethodPatch, "/direct-chats/"+chatID.String()+"/messages/"+messageID.String()+"/reactions", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Reactions, 1)
	assert.Equal(t, "like", resp.Reactions[0].Type)
	msgSvc.AssertExpectations(t)
}

func TestUpdateReactionEndpointMissingType(t *testing.T) {
	msgSvc := new(mocks.MessageServiceMock)
	handler := NewMessageHandler(msgSvc, ws.NewHub())
	router := setupMessageRouter(handler, uuid.New())

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPatch, "/direct-chats/"+uuid.NewString()+"/messages/"+uuid.NewString()+"/reactions", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgSvc.AssertNotCalled(t, "UpdateReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
