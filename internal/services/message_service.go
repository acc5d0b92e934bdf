package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"direct-chat-service/internal/apperrors"
	"direct-chat-service/internal/models"
	"direct-chat-service/internal/notifications"
	"direct-chat-service/internal/profile"
	"direct-chat-service/internal/repositories"
)

// ChatAccess is the slice of ChatService the messaging side depends on.
type ChatAccess interface {
	ValidateChatAccess(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error)
	UpdateLastMessage(ctx context.Context, chatID uuid.UUID, content string, senderID uuid.UUID, sentAt time.Time) error
}

// MessageService owns message creation, edits, deletes, and reaction toggles
// within an active chat.
type MessageService struct {
	messages repositories.MessageRepository
	chats    ChatAccess
	profiles profile.Client
	notifier Notifier
}

// NewMessageService constructs a MessageService.
func NewMessageService(messages repositories.MessageRepository, chats ChatAccess, profiles profile.Client, notifier Notifier) *MessageService {
	return &MessageService{
		messages: messages,
		chats:    chats,
		profiles: profiles,
		notifier: notifier,
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.Validation("message content is required")
	}
	if len([]rune(content)) > models.MaxMessageContentLength {
		return apperrors.Validation(fmt.Sprintf("message content exceeds %d characters", models.MaxMessageContentLength))
	}
	return nil
}

// CreateMessage stores a message in an active chat. The sender's display name
// is denormalized at write time.
func (s *MessageService) CreateMessage(ctx context.Context, userID uuid.UUID, userName string, chatID uuid.UUID, content string, imageURL *string) (models.Message, error) {
	if err := validateContent(content); err != nil {
		return models.Message{}, err
	}

	chat, err := s.chats.ValidateChatAccess(ctx, userID, chatID)
	if err != nil {
		return models.Message{}, err
	}
	if chat.Status != models.ChatStatusActive {
		return models.Message{}, apperrors.InvalidOperation("cannot message a chat that has not been confirmed")
	}

	msg, err := s.messages.Create(ctx, models.Message{
		ID:         uuid.New(),
		ChatID:     chatID,
		SenderID:   userID,
		SenderName: userName,
		Content:    content,
		ImageURL:   imageURL,
		Reactions:  models.ReactionList{},
	})
	if err != nil {
		return models.Message{}, fmt.Errorf("store message: %w", err)
	}

	if err := s.chats.UpdateLastMessage(ctx, chatID, msg.Content, msg.SenderID, msg.CreatedAt); err != nil {
		log.Printf("last message update failed chat_id=%s: %v", chatID, err)
	}

	s.notifyPartner(ctx, chat, msg)
	return msg, nil
}

// notifyPartner sends the new-message push. Unlike chat requests, message
// pushes are on unless the partner turned them off. Every failure here is
// swallowed.
func (s *MessageService) notifyPartner(ctx context.Context, chat models.Chat, msg models.Message) {
	partnerID := chat.PartnerOf(msg.SenderID)
	partner, err := s.profiles.GetProfile(ctx, partnerID)
	if err != nil {
		log.Printf("partner profile lookup failed user_id=%s: %v", partnerID, err)
		return
	}
	if !partner.WantsNotification(models.NotificationPrefChatMessages, true) {
		return
	}
	s.notifier.SendToUser(ctx, partnerID, notifications.Push{
		Title: "New message from " + msg.SenderName,
		Body:  msg.Content,
		Data:  map[string]string{"chat_id": chat.ID.String(), "message_id": msg.ID.String()},
	})
}

// GetMessages returns the chat's messages in chronological order. IsEditable
// is computed for the requesting viewer and never stored.
func (s *MessageService) GetMessages(ctx context.Context, userID, chatID uuid.UUID) ([]models.MessageView, error) {
	if _, err := s.chats.ValidateChatAccess(ctx, userID, chatID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, msg := range msgs {
		views = append(views, models.MessageView{
			Message:    msg,
			IsEditable: msg.SenderID == userID,
		})
	}
	return views, nil
}

// UpdateMessage edits content and image; only the sender may edit.
func (s *MessageService) UpdateMessage(ctx context.Context, userID, chatID, messageID uuid.UUID, content string, imageURL *string) (models.Message, error) {
	if err := validateContent(content); err != nil {
		return models.Message{}, err
	}
	if _, err := s.chats.ValidateChatAccess(ctx, userID, chatID); err != nil {
		return models.Message{}, err
	}

	msg, err := s.messages.Get(ctx, chatID, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return models.Message{}, apperrors.NotFound("message not found")
		}
		return models.Message{}, fmt.Errorf("load message: %w", err)
	}
	if msg.SenderID != userID {
		return models.Message{}, apperrors.Forbidden("only the sender can edit a message")
	}

	updated, err := s.messages.UpdateContent(ctx, chatID, messageID, content, imageURL, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return models.Message{}, apperrors.NotFound("message not found")
		}
		return models.Message{}, fmt.Errorf("update message: %w", err)
	}
	return updated, nil
}

// DeleteMessage hard-deletes a single message; only the sender may delete.
func (s *MessageService) DeleteMessage(ctx context.Context, userID, chatID, messageID uuid.UUID) error {
	if _, err := s.chats.ValidateChatAccess(ctx, userID, chatID); err != nil {
		return err
	}

	msg, err := s.messages.Get(ctx, chatID, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.NotFound("message not found")
		}
		return fmt.Errorf("load message: %w", err)
	}
	if msg.SenderID != userID {
		return apperrors.Forbidden("only the sender can delete a message")
	}

	if err := s.messages.Delete(ctx, chatID, messageID); err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.NotFound("message not found")
		}
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// UpdateReaction toggles the caller's reaction on a message: same type
// removes it, a different type replaces it, none appends. A second identical
// call undoes the first.
func (s *MessageService) UpdateReaction(ctx context.Context, userID, chatID, messageID uuid.UUID, reactionType string) (models.Message, error) {
	if strings.TrimSpace(reactionType) == "" {
		return models.Message{}, apperrors.Validation("reaction type is required")
	}
	if _, err := s.chats.ValidateChatAccess(ctx, userID, chatID); err != nil {
		return models.Message{}, err
	}

	msg, err := s.messages.Get(ctx, chatID, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return models.Message{}, apperrors.NotFound("message not found")
		}
		return models.Message{}, fmt.Errorf("load message: %w", err)
	}

	toggled := models.ToggleReaction(msg.Reactions, userID, reactionType)
	updated, err := s.messages.SetReactions(ctx, chatID, messageID, toggled)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return models.Message{}, apperrors.NotFound("message not found")
		}
		return models.Message{}, fmt.Errorf("update reactions: %w", err)
	}
	return updated, nil
}
