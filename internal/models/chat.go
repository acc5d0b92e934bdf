package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatStatus is the lifecycle state of a chat.
type ChatStatus string

const (
	ChatStatusPending ChatStatus = "pending"
	ChatStatusActive  ChatStatus = "active"
)

// LastMessage is the snapshot of the most recent message kept on the chat.
type LastMessage struct {
	Content  string    `json:"content"`
	SenderID uuid.UUID `json:"sender_id"`
	SentAt   time.Time `json:"sent_at"`
}

// Chat represents a two-party relationship between a creator and an invited user.
// The creator confirms implicitly by creating; the chat stays pending until the
// invited user confirms.
type Chat struct {
	ID               uuid.UUID    `json:"id"`
	CreatorID        uuid.UUID    `json:"creator_id"`
	InvitedUserID    uuid.UUID    `json:"invited_user_id"`
	CreatorConfirmed bool         `json:"creator_confirmed"`
	InvitedConfirmed bool         `json:"invited_confirmed"`
	Status           ChatStatus   `json:"status"`
	LastMessage      *LastMessage `json:"last_message,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// HasParticipant reports whether the user is one of the two chat members.
func (c Chat) HasParticipant(userID uuid.UUID) bool {
	return c.CreatorID == userID || c.InvitedUserID == userID
}

// PartnerOf returns the other participant relative to userID.
func (c Chat) PartnerOf(userID uuid.UUID) uuid.UUID {
	if c.CreatorID == userID {
		return c.InvitedUserID
	}
	return c.CreatorID
}

// ChatPairKey canonicalizes an unordered participant pair into the unique key
// stored alongside the chat row.
func ChatPairKey(a, b uuid.UUID) string {
	first, second := a.String(), b.String()
	if strings.Compare(first, second) > 0 {
		first, second = second, first
	}
	return first + ":" + second
}

// ChatSummary is the API view of a chat for one participant, enriched with the
// partner's display data.
type ChatSummary struct {
	ChatID           uuid.UUID    `json:"chat_id"`
	Status           ChatStatus   `json:"status"`
	PartnerID        uuid.UUID    `json:"partner_id"`
	PartnerName      string       `json:"partner_name,omitempty"`
	PartnerAvatarURL string       `json:"partner_avatar_url,omitempty"`
	LastMessage      *LastMessage `json:"last_message,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}
