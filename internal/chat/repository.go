package chat

import (
	"context"
	"time"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/changefeed"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
)

// ConversationRow is a message row with the denormalized display identity of
// both participants, as needed by the conversation aggregator.
type ConversationRow struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	SenderName     string    `json:"sender_name"`
	SenderAvatar   string    `json:"sender_avatar"`
	ReceiverName   string    `json:"receiver_name"`
	ReceiverAvatar string    `json:"receiver_avatar"`
}

type Repository interface {
	// Create inserts the message and emits the row on the change feed.
	Create(ctx context.Context, m *model.Message) error
	// ListBetween returns the full history of the exact pair, oldest first.
	ListBetween(ctx context.Context, userID, partnerID string) ([]model.Message, error)
	// ListForUser returns every message the user participates in, newest
	// first, joined with both participants' profiles.
	ListForUser(ctx context.Context, userID string) ([]ConversationRow, error)
}

type repo struct {
	store *db.Store
	feed  changefeed.Feed
}

func NewRepository(s *db.Store, feed changefeed.Feed) Repository {
	return &repo{store: s, feed: feed}
}

func (r *repo) Create(ctx context.Context, m *model.Message) error {
	if err := r.store.DB.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	// The sender's own view updates through this echo, same path as the
	// receiver's.
	return r.feed.Publish(ctx, model.Message{}.TableName(), m)
}

func (r *repo) ListBetween(ctx context.Context, userID, partnerID string) ([]model.Message, error) {
	var out []model.Message
	err := r.store.DB.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, partnerID, partnerID, userID).
		Order("timestamp ASC").
		Find(&out).Error
	return out, err
}

func (r *repo) ListForUser(ctx context.Context, userID string) ([]ConversationRow, error) {
	var rows []ConversationRow
	err := r.store.DB.WithContext(ctx).
		Table("messages").
		Select(`messages.id, messages.sender_id, messages.receiver_id, messages.content, messages.timestamp,
			s.full_name AS sender_name, s.profile_pic AS sender_avatar,
			r.full_name AS receiver_name, r.profile_pic AS receiver_avatar`).
		Joins("LEFT JOIN profiles s ON s.id = messages.sender_id").
		Joins("LEFT JOIN profiles r ON r.id = messages.receiver_id").
		Where("messages.sender_id = ? OR messages.receiver_id = ?", userID, userID).
		Order("messages.timestamp DESC").
		Scan(&rows).Error
	return rows, err
}
