package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"direct-chat-service/internal/models"
)

var (
	ErrChatNotFound      = errors.New("chat not found")
	ErrChatAlreadyExists = errors.New("chat already exists for this pair")
)

// ChatRepository abstracts chat persistence.
type ChatRepository interface {
	Create(ctx context.Context, chat models.Chat) (models.Chat, error)
	GetByID(ctx context.Context, chatID uuid.UUID) (models.Chat, error)
	GetByPair(ctx context.Context, userA, userB uuid.UUID) (models.Chat, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error)
	Confirm(ctx context.Context, chatID uuid.UUID) (models.Chat, error)
	Delete(ctx context.Context, chatID uuid.UUID) error
	SetLastMessage(ctx context.Context, chatID uuid.UUID, content string, senderID uuid.UUID, sentAt time.Time) error
}

// chatRow maps the chats table; the nullable last-message columns are
// assembled into models.LastMessage on the way out.
type chatRow struct {
	ID                  uuid.UUID  `db:"id"`
	CreatorID           uuid.UUID  `db:"creator_id"`
	InvitedUserID       uuid.UUID  `db:"invited_user_id"`
	PairKey             string     `db:"pair_key"`
	CreatorConfirmed    bool       `db:"creator_confirmed"`
	InvitedConfirmed    bool       `db:"invited_confirmed"`
	Status              string     `db:"status"`
	LastMessageContent  *string    `db:"last_message_content"`
	LastMessageSenderID *uuid.UUID `db:"last_message_sender_id"`
	LastMessageSentAt   *time.Time `db:"last_message_sent_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

func (r chatRow) toModel() models.Chat {
	chat := models.Chat{
		ID:               r.ID,
		CreatorID:        r.CreatorID,
		InvitedUserID:    r.InvitedUserID,
		CreatorConfirmed: r.CreatorConfirmed,
		InvitedConfirmed: r.InvitedConfirmed,
		Status:           models.ChatStatus(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.LastMessageContent != nil && r.LastMessageSenderID != nil && r.LastMessageSentAt != nil {
		chat.LastMessage = &models.LastMessage{
			Content:  *r.LastMessageContent,
			SenderID: *r.LastMessageSenderID,
			SentAt:   *r.LastMessageSentAt,
		}
	}
	return chat
}

const chatColumns = `id, creator_id, invited_user_id, pair_key, creator_confirmed, invited_confirmed, status,
        last_message_content, last_message_sender_id, last_message_sent_at, created_at, updated_at`

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Create inserts a new chat. The unique pair_key index closes the
// find-then-create race; a violation maps to ErrChatAlreadyExists.
func (r *ChatRepo) Create(ctx context.Context, chat models.Chat) (models.Chat, error) {
	row := chatRow{}
	err := r.db.GetContext(ctx, &row, `INSERT INTO chats
        (id, creator_id, invited_user_id, pair_key, creator_confirmed, invited_confirmed, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+chatColumns,
		chat.ID, chat.CreatorID, chat.InvitedUserID,
		models.ChatPairKey(chat.CreatorID, chat.InvitedUserID),
		chat.CreatorConfirmed, chat.InvitedConfirmed, chat.Status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.Chat{}, ErrChatAlreadyExists
		}
		return models.Chat{}, err
	}
	return row.toModel(), nil
}

// GetByID fetches a chat by id.
func (r *ChatRepo) GetByID(ctx context.Context, chatID uuid.UUID) (models.Chat, error) {
	row := chatRow{}
	err := r.db.GetContext(ctx, &row, `SELECT `+chatColumns+` FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return models.Chat{}, err
	}
	return row.toModel(), nil
}

// GetByPair looks up the chat for an unordered participant pair.
func (r *ChatRepo) GetByPair(ctx context.Context, userA, userB uuid.UUID) (models.Chat, error) {
	row := chatRow{}
	err := r.db.GetContext(ctx, &row, `SELECT `+chatColumns+` FROM chats WHERE pair_key=$1`,
		models.ChatPairKey(userA, userB))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return models.Chat{}, err
	}
	return row.toModel(), nil
}

// ListForUser returns every chat the user participates in, newest first.
func (r *ChatRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats
        WHERE creator_id=$1 OR invited_user_id=$1 ORDER BY updated_at DESC`, userID)
}

// ListPendingForUser returns chats where the user is the not-yet-confirmed invitee.
func (r *ChatRepo) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats
        WHERE invited_user_id=$1 AND invited_confirmed=FALSE ORDER BY created_at DESC`, userID)
}

func (r *ChatRepo) list(ctx context.Context, query string, userID uuid.UUID) ([]models.Chat, error) {
	var rows []chatRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	chats := make([]models.Chat, 0, len(rows))
	for _, row := range rows {
		chats = append(chats, row.toModel())
	}
	return chats, nil
}

// Confirm flips the invitation to accepted and activates the chat.
func (r *ChatRepo) Confirm(ctx context.Context, chatID uuid.UUID) (models.Chat, error) {
	row := chatRow{}
	err := r.db.GetContext(ctx, &row, `UPDATE chats
        SET invited_confirmed=TRUE, status=$2, updated_at=NOW()
        WHERE id=$1
        RETURNING `+chatColumns, chatID, models.ChatStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return models.Chat{}, err
	}
	return row.toModel(), nil
}

// Delete removes the chat row. Messages fall with it through the chat_id
// foreign key; the service additionally issues an explicit bulk delete first.
func (r *ChatRepo) Delete(ctx context.Context, chatID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE id=$1`, chatID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrChatNotFound
	}
	return nil
}

// SetLastMessage updates the last-message snapshot. A missing chat is a
// silent no-op to tolerate the race with deletion.
func (r *ChatRepo) SetLastMessage(ctx context.Context, chatID uuid.UUID, content string, senderID uuid.UUID, sentAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chats
        SET last_message_content=$2, last_message_sender_id=$3, last_message_sent_at=$4, updated_at=NOW()
        WHERE id=$1`, chatID, content, senderID, sentAt)
	return err
}
