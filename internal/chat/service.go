package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/changefeed"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// Notifier publishes downstream notification events (Kafka in production).
type Notifier interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type Service interface {
	Conversations(ctx context.Context, sess *auth.Session) ([]ConversationSummary, error)
	History(ctx context.Context, sess *auth.Session, partnerID string) ([]model.Message, error)
	Send(ctx context.Context, sess *auth.Session, partnerID, content string) (*model.Message, error)
	Open(ctx context.Context, sess *auth.Session, partnerID string) (*Channel, error)
}

type service struct {
	repo   Repository
	feed   changefeed.Feed
	notify Notifier
	logger *zap.Logger
}

func NewService(repo Repository, feed changefeed.Feed, notify Notifier, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, feed: feed, notify: notify, logger: logger}
}

func (s *service) Conversations(ctx context.Context, sess *auth.Session) ([]ConversationSummary, error) {
	if sess == nil {
		return nil, httpx.ErrUnauthorized
	}
	rows, err := s.repo.ListForUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load conversations: %w", err)
	}
	return AggregateConversations(sess.UserID, rows), nil
}

func (s *service) History(ctx context.Context, sess *auth.Session, partnerID string) ([]model.Message, error) {
	if sess == nil {
		return nil, httpx.ErrUnauthorized
	}
	return s.repo.ListBetween(ctx, sess.UserID, partnerID)
}

// Send validates before any I/O: no session and empty content both fail
// without touching the store. On success nothing is appended locally; the
// sender's view updates through the change-feed echo of the insert.
func (s *service) Send(ctx context.Context, sess *auth.Session, partnerID, content string) (*model.Message, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if partnerID == "" || partnerID == sess.UserID {
		return nil, fmt.Errorf("%w: invalid receiver", httpx.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty message content", httpx.ErrValidation)
	}

	m := &model.Message{
		ID:         uuid.NewString(),
		SenderID:   sess.UserID,
		ReceiverID: partnerID,
		Content:    content,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if s.notify != nil {
		ev, _ := json.Marshal(map[string]string{
			"message_id":  m.ID,
			"sender_id":   m.SenderID,
			"receiver_id": m.ReceiverID,
		})
		if err := s.notify.Publish(ctx, m.ReceiverID, ev); err != nil {
			s.logger.Warn("notification publish failed", zap.String("message", m.ID), zap.Error(err))
		}
	}
	return m, nil
}

func (s *service) Open(ctx context.Context, sess *auth.Session, partnerID string) (*Channel, error) {
	return OpenChannel(ctx, s.repo, s.feed, sess, partnerID, s.logger)
}
