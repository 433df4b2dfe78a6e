package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/changefeed"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

// Channel is a live, append-only, chronologically ordered view of the
// messages between the session user and one partner. It owns its change-feed
// subscription exclusively.
type Channel struct {
	userID    string
	partnerID string

	mu      sync.Mutex
	closed  bool
	view    []model.Message
	seen    map[string]struct{}
	updates chan model.Message

	sub    changefeed.Subscription
	logger *zap.Logger
}

// OpenChannel bulk-loads the pair's history and subscribes to the messages
// change feed. A subscription failure does not fail the open: the channel
// comes up degraded (history only) and the failure is logged.
//
// The bulk read and the subscription are not atomic. Duplicates from a
// replayed feed window are suppressed by message id (the seen-set is seeded
// from the bulk load); an event that falls between the two steps and is not
// replayed stays lost.
func OpenChannel(ctx context.Context, repo Repository, feed changefeed.Feed, sess *auth.Session, partnerID string, logger *zap.Logger) (*Channel, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: no active session", httpx.ErrUnauthorized)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	history, err := repo.ListBetween(ctx, sess.UserID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	c := &Channel{
		userID:    sess.UserID,
		partnerID: partnerID,
		view:      history,
		seen:      make(map[string]struct{}, len(history)),
		updates:   make(chan model.Message, 64),
		logger:    logger,
	}
	for _, m := range history {
		c.seen[m.ID] = struct{}{}
	}

	sub, err := feed.Subscribe(ctx, model.Message{}.TableName())
	if err != nil {
		logger.Warn("change feed subscribe failed, channel degraded to history only",
			zap.String("user", sess.UserID), zap.String("partner", partnerID), zap.Error(err))
		return c, nil
	}
	c.sub = sub
	go c.pump()
	return c, nil
}

// Messages returns a snapshot of the live view.
func (c *Channel) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Message, len(c.view))
	copy(out, c.view)
	return out
}

// Updates streams appended messages. The channel is closed by Close. A slow
// consumer can miss updates here; the view itself never does.
func (c *Channel) Updates() <-chan model.Message { return c.updates }

// Close stops delivery synchronously: once it returns no event is reflected
// in the view, even one already in flight. Idempotent, and safe on a channel
// whose subscription never came up.
func (c *Channel) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.updates)
	c.mu.Unlock()

	if c.sub != nil {
		c.sub.Cancel()
	}
}

func (c *Channel) pump() {
	for ev := range c.sub.Events() {
		var m model.Message
		if err := json.Unmarshal(ev.Row, &m); err != nil {
			c.logger.Warn("change feed event decode failed", zap.Error(err))
			continue
		}
		if !c.matches(m) {
			continue
		}
		c.append(m)
	}
}

// matches tests the event against the pair predicate: the unordered
// (sender, receiver) pair must equal {user, partner}.
func (c *Channel) matches(m model.Message) bool {
	return (m.SenderID == c.userID && m.ReceiverID == c.partnerID) ||
		(m.SenderID == c.partnerID && m.ReceiverID == c.userID)
}

func (c *Channel) append(m model.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if _, dup := c.seen[m.ID]; dup {
		return
	}
	c.seen[m.ID] = struct{}{}
	c.view = append(c.view, m)
	select {
	case c.updates <- m:
	default:
	}
}
