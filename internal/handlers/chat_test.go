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

func setupChatRouter(handler *ChatHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserName, "alice")
		c.Set(middleware.ContextIsAdmin, false)
		c.Next()
	})
	r.POST("/direct-chats", handler.CreateChat)
	r.GET("/direct-chats", handler.ListChats)
	r.GET("/direct-chats/pending", handler.ListPendingChats)
	r.GET("/direct-chats/:chat_id", handler.GetChat)
	r.PATCH("/direct-chats/:chat_id/confirm", handler.ConfirmChat)
	r.DELETE("/direct-chats/:chat_id", handler.DeleteChat)
	return r
}

func TestCreateChatEndpointSuccess(t *testing.T) {
	userID := uuid.New()
	invited := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("CreateChat", mock.Anything, userID, invited).
		Return(models.Chat{ID: uuid.New(), CreatorID: userID, InvitedUserID: invited, Status: models.ChatStatusPending}, nil).Once()

	body := bytes.NewBufferString(`{"invited_user_id":"` + invited.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/direct-chats", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.Chat
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.ChatStatusPending, resp.Status)
	chatSvc.AssertExpectations(t)
}

func TestCreateChatEndpointMissingBody(t *testing.T) {
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/direct-chats", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	chatSvc.AssertNotCalled(t, "CreateChat", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateChatEndpointBlocked(t *testing.T) {
	userID := uuid.New()
	invited := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("CreateChat", mock.Anything, userID, invited).
		Return(models.Chat{}, apperrors.Forbidden("you are blocked by this user")).Once()

	body := bytes.NewBufferString(`{"invited_user_id":"` + invited.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/direct-chats", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, string(apperrors.KindForbidden), resp["code"])
}

func TestCreateChatEndpointDuplicateConflict(t *testing.T) {
	userID := uuid.New()
	invited := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("CreateChat", mock.Anything, userID, invited).
		Return(models.Chat{}, apperrors.InvalidOperation("chat already exists for these users")).Once()

	body := bytes.NewBufferString(`{"invited_user_id":"` + invited.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/direct-chats", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestListChatsEndpoint(t *testing.T) {
	userID := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("GetChatsForUser", mock.Anything, userID).
		Return([]models.ChatSummary{{ChatID: uuid.New(), PartnerName: "bob", Status: models.ChatStatusActive}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/direct-chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Chats []models.ChatSummary `json:"chats"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Chats, 1)
	assert.Equal(t, "bob", resp.Chats[0].PartnerName)
	chatSvc.AssertExpectations(t)
}

func TestListPendingChatsEndpoint(t *testing.T) {
	userID := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("GetPendingChatsForUser", mock.Anything, userID).
		Return([]models.ChatSummary{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/direct-chats/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	chatSvc.AssertExpectations(t)
}

func TestGetChatEndpointBadID(t *testing.T) {
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/direct-chats/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	chatSvc.AssertNotCalled(t, "GetChatByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetChatEndpointNotFound(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("GetChatByID", mock.Anything, userID, chatID).
		Return(models.Chat{}, apperrors.NotFound("chat not found")).Once()

	req := httptest.NewRequest(http.MethodGet, "/direct-chats/"+chatID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmChatEndpoint(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("ConfirmChat", mock.Anything, userID, chatID).
		Return(models.Chat{ID: chatID, InvitedUserID: userID, InvitedConfirmed: true, Status: models.ChatStatusActive}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/direct-chats/"+chatID.String()+"/confirm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.Chat
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.ChatStatusActive, resp.Status)
	chatSvc.AssertExpectations(t)
}

func TestDeleteChatEndpoint(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("DeleteChat", mock.Anything, userID, chatID).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/direct-chats/"+chatID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	chatSvc.AssertExpectations(t)
}

func TestDeleteChatEndpointInternalErrorHidesDetail(t *testing.T) {
	userID := uuid.New()
	chatID := uuid.New()
	chatSvc := new(mocks.ChatServiceMock)
	handler := NewChatHandler(chatSvc, ws.NewHub())
	router := setupChatRouter(handler, userID)

	chatSvc.On("DeleteChat", mock.Anything, userID, chatID).Return(assert.AnError).Once()

	req := httptest.NewRequest(http.MethodDelete, "/direct-chats/"+chatID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
