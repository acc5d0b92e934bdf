package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"direct-chat-service/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg models.Message) (models.Message, error)
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]models.Message, error)
	Get(ctx context.Context, chatID, messageID uuid.UUID) (models.Message, error)
	UpdateContent(ctx context.Context, chatID, messageID uuid.UUID, content string, imageURL *string, editedAt time.Time) (models.Message, error)
	SetReactions(ctx context.Context, chatID, messageID uuid.UUID, reactions models.ReactionList) (models.Message, error)
	Delete(ctx context.Context, chatID, messageID uuid.UUID) error
	DeleteByChat(ctx context.Context, chatID uuid.UUID) (int64, error)
}

const messageColumns = `id, chat_id, sender_id, sender_name, content, image_url, reactions, created_at, updated_at, edited_at`

// messageRow maps the messages table.
type messageRow struct {
	ID         uuid.UUID           `db:"id"`
	ChatID     uuid.UUID           `db:"chat_id"`
	SenderID   uuid.UUID           `db:"sender_id"`
	SenderName string              `db:"sender_name"`
	Content    string              `db:"content"`
	ImageURL   *string             `db:"image_url"`
	Reactions  models.ReactionList `db:"reactions"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
	EditedAt   *time.Time          `db:"edited_at"`
}

func (r messageRow) toModel() models.Message {
	reactions := r.Reactions
	if reactions == nil {
		reactions = models.ReactionList{}
	}
	return models.Message{
		ID:         r.ID,
		ChatID:     r.ChatID,
		SenderID:   r.SenderID,
		SenderName: r.SenderName,
		Content:    r.Content,
		ImageURL:   r.ImageURL,
		Reactions:  reactions,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		EditedAt:   r.EditedAt,
	}
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a message; sender_name is captured at write time and never
// re-resolved.
func (r *MessageRepo) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	row := messageRow{}
	err := r.db.GetContext(ctx, &row, `INSERT INTO messages
        (id, chat_id, sender_id, sender_name, content, image_url, reactions)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+messageColumns,
		msg.ID, msg.ChatID, msg.SenderID, msg.SenderName, msg.Content, msg.ImageURL, msg.Reactions)
	if err != nil {
		return models.Message{}, err
	}
	return row.toModel(), nil
}

// ListByChat returns the chat's messages in chronological order.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID uuid.UUID) ([]models.Message, error) {
	var rows []messageRow
	err := r.db.SelectContext(ctx, &rows, `SELECT `+messageColumns+` FROM messages
        WHERE chat_id=$1 ORDER BY created_at ASC`, chatID)
	if err != nil {
		return nil, err
	}
	msgs := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, row.toModel())
	}
	return msgs, nil
}

// Get retrieves a single message scoped to its chat.
func (r *MessageRepo) Get(ctx context.Context, chatID, messageID uuid.UUID) (models.Message, error) {
	row := messageRow{}
	err := r.db.GetContext(ctx, &row, `SELECT `+messageColumns+` FROM messages WHERE id=$1 AND chat_id=$2`,
		messageID, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	return row.toModel(), nil
}

// UpdateContent replaces content and image and stamps the edit time.
func (r *MessageRepo) UpdateContent(ctx context.Context, chatID, messageID uuid.UUID, content string, imageURL *string, editedAt time.Time) (models.Message, error) {
	row := messageRow{}
	err := r.db.GetContext(ctx, &row, `UPDATE messages
        SET content=$3, image_url=$4, edited_at=$5, updated_at=NOW()
        WHERE id=$1 AND chat_id=$2
        RETURNING `+messageColumns, messageID, chatID, content, imageURL, editedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	return row.toModel(), nil
}

// SetReactions overwrites the reaction list in one statement.
func (r *MessageRepo) SetReactions(ctx context.Context, chatID, messageID uuid.UUID, reactions models.ReactionList) (models.Message, error) {
	row := messageRow{}
	err := r.db.GetContext(ctx, &row, `UPDATE messages
        SET reactions=$3, updated_at=NOW()
        WHERE id=$1 AND chat_id=$2
        RETURNING `+messageColumns, messageID, chatID, reactions)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	return row.toModel(), nil
}

// Delete removes a message permanently.
func (r *MessageRepo) Delete(ctx context.Context, chatID, messageID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id=$1 AND chat_id=$2`, messageID, chatID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// DeleteByChat bulk-deletes every message owned by the chat.
func (r *MessageRepo) DeleteByChat(ctx context.Context, chatID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE chat_id=$1`, chatID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
