package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"direct-chat-service/internal/apperrors"
	"direct-chat-service/internal/models"
	"direct-chat-service/internal/notifications"
	"direct-chat-service/internal/profile"
	"direct-chat-service/internal/repositories"
)

// Notifier delivers best-effort push notifications.
type Notifier interface {
	SendToUser(ctx context.Context, userID uuid.UUID, push notifications.Push)
}

// ChatService owns the chat relationship lifecycle: creation, confirmation,
// retrieval, and deletion, with blocking and participation checks.
type ChatService struct {
	chats    repositories.ChatRepository
	messages repositories.MessageRepository
	profiles profile.Client
	notifier Notifier
}

// NewChatService constructs a ChatService.
func NewChatService(chats repositories.ChatRepository, messages repositories.MessageRepository, profiles profile.Client, notifier Notifier) *ChatService {
	return &ChatService{
		chats:    chats,
		messages: messages,
		profiles: profiles,
		notifier: notifier,
	}
}

// CreateChat validates both participants and creates a pending chat. The
// requester confirms implicitly; the invited user must confirm before
// messaging starts. Exactly one chat may exist per unordered pair.
func (s *ChatService) CreateChat(ctx context.Context, requesterID, invitedUserID uuid.UUID) (models.Chat, error) {
	if requesterID == invitedUserID {
		return models.Chat{}, apperrors.InvalidOperation("cannot create a chat with yourself")
	}

	requester, err := s.profiles.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return models.Chat{}, apperrors.NotFound("requester profile not found")
		}
		return models.Chat{}, fmt.Errorf("load requester profile: %w", err)
	}
	if requester.HasBlocked(invitedUserID) {
		return models.Chat{}, apperrors.InvalidOperation("cannot chat with a user you blocked")
	}

	invited, err := s.profiles.GetProfile(ctx, invitedUserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return models.Chat{}, apperrors.NotFound("invited user not found")
		}
		return models.Chat{}, fmt.Errorf("load invited profile: %w", err)
	}
	if invited.HasBlocked(requesterID) {
		return models.Chat{}, apperrors.Forbidden("you are blocked by this user")
	}

	_, err = s.chats.GetByPair(ctx, requesterID, invitedUserID)
	if err == nil {
		return models.Chat{}, apperrors.InvalidOperation("chat already exists for these users")
	}
	if !errors.Is(err, repositories.ErrChatNotFound) {
		return models.Chat{}, fmt.Errorf("check existing chat: %w", err)
	}

	chat, err := s.chats.Create(ctx, models.Chat{
		ID:               uuid.New(),
		CreatorID:        requesterID,
		InvitedUserID:    invitedUserID,
		CreatorConfirmed: true,
		InvitedConfirmed: false,
		Status:           models.ChatStatusPending,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrChatAlreadyExists) {
			return models.Chat{}, apperrors.InvalidOperation("chat already exists for these users")
		}
		return models.Chat{}, fmt.Errorf("create chat: %w", err)
	}

	participants := []uuid.UUID{requesterID, invitedUserID}
	if err := s.profiles.AddChatForUsers(ctx, chat.ID, participants); err != nil {
		log.Printf("chat bookkeeping failed chat_id=%s: %v", chat.ID, err)
	}

	// Chat-request pushes are opt-in: an unset preference means no push.
	if invited.WantsNotification(models.NotificationPrefChatRequests, false) {
		s.notifier.SendToUser(ctx, invitedUserID, notifications.Push{
			Title: "New chat request",
			Body:  requester.Name + " wants to start a chat with you",
			Data:  map[string]string{"chat_id": chat.ID.String()},
		})
	}

	return chat, nil
}

// GetChatsForUser returns every chat the user participates in, enriched with
// the partner's display data through one batched profile lookup.
func (s *ChatService) GetChatsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatSummary, error) {
	chats, err := s.chats.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return s.summarize(ctx, userID, chats)
}

// GetPendingChatsForUser returns invitations addressed to the user that are
// still awaiting confirmation.
func (s *ChatService) GetPendingChatsForUser(ctx context.Context, userID uuid.UUID) ([]models.ChatSummary, error) {
	chats, err := s.chats.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending chats: %w", err)
	}
	return s.summarize(ctx, userID, chats)
}

func (s *ChatService) summarize(ctx context.Context, userID uuid.UUID, chats []models.Chat) ([]models.ChatSummary, error) {
	partnerIDs := make([]uuid.UUID, 0, len(chats))
	seen := map[uuid.UUID]struct{}{}
	for _, chat := range chats {
		partnerID := chat.PartnerOf(userID)
		if _, ok := seen[partnerID]; !ok {
			seen[partnerID] = struct{}{}
			partnerIDs = append(partnerIDs, partnerID)
		}
	}

	partners, err := s.profiles.GetProfiles(ctx, partnerIDs)
	if err != nil {
		return nil, fmt.Errorf("load partner profiles: %w", err)
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		partnerID := chat.PartnerOf(userID)
		summary := models.ChatSummary{
			ChatID:      chat.ID,
			Status:      chat.Status,
			PartnerID:   partnerID,
			LastMessage: chat.LastMessage,
			CreatedAt:   chat.CreatedAt,
		}
		if partner, ok := partners[partnerID]; ok {
			summary.PartnerName = partner.Name
			summary.PartnerAvatarURL = partner.AvatarURL
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetChatByID returns a single chat, participant-only.
func (s *ChatService) GetChatByID(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error) {
	return s.ValidateChatAccess(ctx, userID, chatID)
}

// ValidateChatAccess is the shared precondition: the chat must exist and the
// caller must be one of its two participants.
func (s *ChatService) ValidateChatAccess(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return models.Chat{}, apperrors.NotFound("chat not found")
		}
		return models.Chat{}, fmt.Errorf("load chat: %w", err)
	}
	if !chat.HasParticipant(userID) {
		return models.Chat{}, apperrors.Forbidden("not a chat participant")
	}
	return chat, nil
}

// ConfirmChat accepts a pending invitation. Only the invited user may
// confirm, and only once; the pending to active transition is one-way.
func (s *ChatService) ConfirmChat(ctx context.Context, userID, chatID uuid.UUID) (models.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return models.Chat{}, apperrors.NotFound("chat not found")
		}
		return models.Chat{}, fmt.Errorf("load chat: %w", err)
	}
	if chat.InvitedUserID != userID {
		return models.Chat{}, apperrors.Forbidden("only the invited user can confirm this chat")
	}
	if chat.InvitedConfirmed {
		return models.Chat{}, apperrors.InvalidOperation("chat is already confirmed")
	}

	confirmed, err := s.chats.Confirm(ctx, chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return models.Chat{}, apperrors.NotFound("chat not found")
		}
		return models.Chat{}, fmt.Errorf("confirm chat: %w", err)
	}
	return confirmed, nil
}

// DeleteChat removes the chat and every message under it. Either participant
// may delete regardless of state.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	chat, err := s.ValidateChatAccess(ctx, userID, chatID)
	if err != nil {
		return err
	}

	removed, err := s.messages.DeleteByChat(ctx, chatID)
	if err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	if err := s.chats.Delete(ctx, chatID); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return apperrors.NotFound("chat not found")
		}
		return fmt.Errorf("delete chat: %w", err)
	}
	log.Printf("chat deleted chat_id=%s messages_removed=%d", chatID, removed)

	participants := []uuid.UUID{chat.CreatorID, chat.InvitedUserID}
	if err := s.profiles.RemoveChatForUsers(ctx, chatID, participants); err != nil {
		log.Printf("chat bookkeeping failed chat_id=%s: %v", chatID, err)
	}
	return nil
}

// UpdateLastMessage refreshes the last-message snapshot after a new message.
// A chat deleted concurrently is a silent no-op.
func (s *ChatService) UpdateLastMessage(ctx context.Context, chatID uuid.UUID, content string, senderID uuid.UUID, sentAt time.Time) error {
	return s.chats.SetLastMessage(ctx, chatID, content, senderID, sentAt)
}
