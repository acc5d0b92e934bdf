package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"direct-chat-service/internal/models"
)

type ChatServiceMock struct {
	mock.Mock
}

func (m *ChatServiceMock) CreateChat(ctx context.Context, requesterID, invitedUserID uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, requesterID, invitedUserID)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatServiceMock) GetChatsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var result []models.ChatSummary
	if val := args.Get(0); val != nil {
		result = val.([]models.ChatSummary)
	}
	return result, args.Error(1)
}

func (m *ChatServiceMock) GetPendingChatsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var result []models.ChatSummary
	if val := args.Get(0); val != nil {
		result = val.([]models.ChatSummary)
	}
	return result, args.Error(1)
}

func (m *ChatServiceMock) GetChatByID(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, userID, chatID)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatServiceMock) ConfirmChat(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, userID, chatID)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatServiceMock) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

type MessageServiceMock struct {
	mock.Mock
}

func (m *MessageServiceMock) CreateMessage(ctx context.Context, userID uuid.UUID, userName string, chatID uuid.UUID, content string, imageURL *string) (models.Message, error) {
	args := m.Called(ctx, userID, userName, chatID, content, imageURL)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageServiceMock) GetMessages(ctx context.Context, userID, chatID uuid.UUID) ([]models.MessageView, error) {
	args := m.Called(ctx, userID, chatID)
	var result []models.MessageView
	if val := args.Get(0); val != nil {
		result = val.([]models.MessageView)
	}
	return result, args.Error(1)
}

func (m *MessageServiceMock) UpdateMessage(ctx context.Context, userID, chatID, messageID uuid.UUID, content string, imageURL *string) (models.Message, error) {
	args := m.Called(ctx, userID, chatID, messageID, content, imageURL)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageServiceMock) DeleteMessage(ctx context.Context, userID, chatID, messageID uuid.UUID) error {
	args := m.Called(ctx, userID, chatID, messageID)
	return args.Error(0)
}

func (m *MessageServiceMock) UpdateReaction(ctx context.Context, userID, chatID, messageID uuid.UUID, reactionType string) (models.Message, error) {
	args := m.Called(ctx, userID, chatID, messageID, reactionType)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

type FeatureServiceMock struct {
	mock.Mock
}

func (m *FeatureServiceMock) IsFeatureActive(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *FeatureServiceMock) GetFlag(ctx context.Context) (models.FeatureFlag, error) {
	args := m.Called(ctx)
	var result models.FeatureFlag
	if val := args.Get(0); val != nil {
		result = val.(models.FeatureFlag)
	}
	return result, args.Error(1)
}

func (m *FeatureServiceMock) SetFeatureStatus(ctx context.Context, enabled bool, updatedBy uuid.UUID) (models.FeatureFlag, error) {
	args := m.Called(ctx, enabled, updatedBy)
	var result models.FeatureFlag
	if val := args.Get(0); val != nil {
		result = val.(models.FeatureFlag)
	}
	return result, args.Error(1)
}

type ChatAccessMock struct {
	mock.Mock
}

func (m *ChatAccessMock) ValidateChatAccess(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, userID, chatID)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatAccessMock) UpdateLastMessage(ctx context.Context, chatID uuid.UUID, content string, senderID uuid.UUID, sentAt time.Time) error {
	args := m.Called(ctx, chatID, content, senderID, sentAt)
	return args.Error(0)
}
