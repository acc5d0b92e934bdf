package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxMessageContentLength bounds the accepted message body.
const MaxMessageContentLength = 5000

// Reaction is a single-slot-per-user annotation on a message.
type Reaction struct {
	UserID uuid.UUID `json:"user_id"`
	Type   string    `json:"type"`
}

// ReactionList is stored as a jsonb column on the message row.
type ReactionList []Reaction

// Value implements driver.Valuer.
func (l ReactionList) Value() (driver.Value, error) {
	if l == nil {
		l = ReactionList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ReactionList) Scan(src any) error {
	if src == nil {
		*l = ReactionList{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, l)
	case string:
		return json.Unmarshal([]byte(data), l)
	default:
		return fmt.Errorf("unsupported reactions column type %T", src)
	}
}

// ReactionOf returns the user's current reaction, if any.
func (l ReactionList) ReactionOf(userID uuid.UUID) (Reaction, bool) {
	for _, r := range l {
		if r.UserID == userID {
			return r, true
		}
	}
	return Reaction{}, false
}

// ToggleReaction applies the toggle rules against the current list: same type
// removes the entry, a different type replaces it in place, no entry appends.
// Each user holds at most one reaction per message.
func ToggleReaction(list ReactionList, userID uuid.UUID, reactionType string) ReactionList {
	result := make(ReactionList, 0, len(list)+1)
	found := false
	for _, r := range list {
		if r.UserID != userID {
			result = append(result, r)
			continue
		}
		found = true
		if r.Type != reactionType {
			result = append(result, Reaction{UserID: userID, Type: reactionType})
		}
	}
	if !found {
		result = append(result, Reaction{UserID: userID, Type: reactionType})
	}
	return result
}

// Message is a single chat utterance owned by exactly one chat.
type Message struct {
	ID         uuid.UUID    `json:"id"`
	ChatID     uuid.UUID    `json:"chat_id"`
	SenderID   uuid.UUID    `json:"sender_id"`
	SenderName string       `json:"sender_name"`
	Content    string       `json:"content"`
	ImageURL   *string      `json:"image_url,omitempty"`
	Reactions  ReactionList `json:"reactions"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	EditedAt   *time.Time   `json:"edited_at,omitempty"`
}

// MessageView is the per-viewer read projection; IsEditable is computed per
// request and never persisted.
type MessageView struct {
	Message
	IsEditable bool `json:"is_editable"`
}
