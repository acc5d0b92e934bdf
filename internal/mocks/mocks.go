package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"direct-chat-service/internal/models"
	"direct-chat-service/internal/notifications"
	"direct-chat-service/internal/profile"
	"direct-chat-service/internal/repositories"
)

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) Create(ctx context.Context, chat models.Chat) (models.Chat, error) {
	args := m.Called(ctx, chat)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatRepositoryMock) GetByID(ctx context.Context, chatID uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatRepositoryMock) GetByPair(ctx context.Context, userA, userB uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, userA, userB)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatRepositoryMock) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	args := m.Called(ctx, userID)
	var result []models.Chat
	if val := args.Get(0); val != nil {
		result = val.([]models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatRepositoryMock) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	args := m.Called(ctx, userID)
	var result []models.Chat
	if val := args.Get(0); val != nil {
		result = val.([]models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatRepositoryMock) Confirm(ctx context.Context, chatID uuid.UUID) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	var result models.Chat
	if val := args.Get(0); val != nil {
		result = val.(models.Chat)
	}
	return result, args.Error(1)
}

func (m *ChatRepositoryMock) Delete(ctx context.Context, chatID uuid.UUID) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *ChatRepositoryMock) SetLastMessage(ctx context.Context, chatID uuid.UUID, content string, senderID uuid.UUID, sentAt time.Time) error {
	args := m.Called(ctx, chatID, content, senderID, sentAt)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	args := m.Called(ctx, msg)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageRepositoryMock) ListByChat(ctx context.Context, chatID uuid.UUID) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var result []models.Message
	if val := args.Get(0); val != nil {
		result = val.([]models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageRepositoryMock) Get(ctx context.Context, chatID, messageID uuid.UUID) (models.Message, error) {
	args := m.Called(ctx, chatID, messageID)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageRepositoryMock) UpdateContent(ctx context.Context, chatID, messageID uuid.UUID, content string, imageURL *string, editedAt time.Time) (models.Message, error) {
	args := m.Called(ctx, chatID, messageID, content, imageURL, editedAt)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageRepositoryMock) SetReactions(ctx context.Context, chatID, messageID uuid.UUID, reactions models.ReactionList) (models.Message, error) {
	args := m.Called(ctx, chatID, messageID, reactions)
	var result models.Message
	if val := args.Get(0); val != nil {
		result = val.(models.Message)
	}
	return result, args.Error(1)
}

func (m *MessageRepositoryMock) Delete(ctx context.Context, chatID, messageID uuid.UUID) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) DeleteByChat(ctx context.Context, chatID uuid.UUID) (int64, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(int64), args.Error(1)
}

type FeatureFlagRepositoryMock struct {
	mock.Mock
}

func (m *FeatureFlagRepositoryMock) Get(ctx context.Context) (models.FeatureFlag, error) {
	args := m.Called(ctx)
	var result models.FeatureFlag
	if val := args.Get(0); val != nil {
		result = val.(models.FeatureFlag)
	}
	return result, args.Error(1)
}

func (m *FeatureFlagRepositoryMock) Set(ctx context.Context, enabled bool, updatedBy *uuid.UUID) (models.FeatureFlag, error) {
	args := m.Called(ctx, enabled, updatedBy)
	var result models.FeatureFlag
	if val := args.Get(0); val != nil {
		result = val.(models.FeatureFlag)
	}
	return result, args.Error(1)
}

type ProfileClientMock struct {
	mock.Mock
}

func (m *ProfileClientMock) GetProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	args := m.Called(ctx, userID)
	var result models.UserProfile
	if val := args.Get(0); val != nil {
		result = val.(models.UserProfile)
	}
	return result, args.Error(1)
}

func (m *ProfileClientMock) GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]models.UserProfile, error) {
	args := m.Called(ctx, userIDs)
	var result map[uuid.UUID]models.UserProfile
	if val := args.Get(0); val != nil {
		result = val.(map[uuid.UUID]models.UserProfile)
	}
	return result, args.Error(1)
}

func (m *ProfileClientMock) AddChatForUsers(ctx context.Context, chatID uuid.UUID, userIDs []uuid.UUID) error {
	args := m.Called(ctx, chatID, userIDs)
	return args.Error(0)
}

func (m *ProfileClientMock) RemoveChatForUsers(ctx context.Context, chatID uuid.UUID, userIDs []uuid.UUID) error {
	args := m.Called(ctx, chatID, userIDs)
	return args.Error(0)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) SendToUser(ctx context.Context, userID uuid.UUID, push notifications.Push) {
	m.Called(ctx, userID, push)
}

var _ repositories.ChatRepository = (*ChatRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.FeatureFlagRepository = (*FeatureFlagRepositoryMock)(nil)
var _ profile.Client = (*ProfileClientMock)(nil)
