package models

import "github.com/google/uuid"

// Chat event types broadcast over websocket connections.
const (
	EventMessageCreated  = "message_created"
	EventMessageUpdated  = "message_updated"
	EventMessageDeleted  = "message_deleted"
	EventReactionUpdated = "reaction_updated"
	EventChatConfirmed   = "chat_confirmed"
	EventChatDeleted     = "chat_deleted"
)

// ChatEvent is pushed to connected participants of a chat.
type ChatEvent struct {
	Type      string     `json:"type"`
	ChatID    uuid.UUID  `json:"chat_id"`
	Message   *Message   `json:"message,omitempty"`
	MessageID *uuid.UUID `json:"message_id,omitempty"`
}
