package models

import "github.com/google/uuid"

// Notification preference keys understood by the user service. Chat-request
// pushes are opt-in, new-message pushes are opt-out.
const (
	NotificationPrefChatRequests = "chat_requests"
	NotificationPrefChatMessages = "chat_messages"
)

// UserProfile is the slice of user data the chat service consumes from the
// user service. Users are never stored here; only identifiers plus display
// fields denormalized at read time.
type UserProfile struct {
	ID                      uuid.UUID       `json:"id"`
	Name                    string          `json:"name"`
	AvatarURL               string          `json:"avatar_url"`
	BlockedUserIDs          []uuid.UUID     `json:"blocked_user_ids"`
	NotificationPreferences map[string]bool `json:"notification_preferences"`
	ChatIDs                 []uuid.UUID     `json:"chat_ids"`
}

// HasBlocked reports whether the profile owner blocks the given user.
func (p UserProfile) HasBlocked(userID uuid.UUID) bool {
	for _, id := range p.BlockedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WantsNotification resolves a preference key, falling back to the
// per-feature default when the key is unset.
func (p UserProfile) WantsNotification(key string, fallback bool) bool {
	if p.NotificationPreferences == nil {
		return fallback
	}
	enabled, ok := p.NotificationPreferences[key]
	if !ok {
		return fallback
	}
	return enabled
}
