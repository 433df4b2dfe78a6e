package changefeed

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "changefeed:"

type redisFeed struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedis(rdb *redis.Client, logger *zap.Logger) Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisFeed{rdb: rdb, logger: logger}
}

func (f *redisFeed) Publish(ctx context.Context, table string, row any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return f.rdb.Publish(ctx, channelPrefix+table, payload).Err()
}

func (f *redisFeed) Subscribe(ctx context.Context, table string) (Subscription, error) {
	ps := f.rdb.Subscribe(ctx, channelPrefix+table)
	// Force the SUBSCRIBE round trip so a dead broker fails here, not on
	// the first receive.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSub{ps: ps, out: make(chan Event, 64)}
	go sub.pump(table, f.logger)
	return sub, nil
}

type redisSub struct {
	ps   *redis.PubSub
	out  chan Event
	once sync.Once
}

func (s *redisSub) Events() <-chan Event { return s.out }

func (s *redisSub) Cancel() {
	s.once.Do(func() {
		// Closing the PubSub ends the message channel, which lets pump
		// drain and close out.
		_ = s.ps.Close()
	})
}

func (s *redisSub) pump(table string, logger *zap.Logger) {
	defer close(s.out)
	for msg := range s.ps.Channel() {
		select {
		case s.out <- Event{Table: table, Row: json.RawMessage(msg.Payload)}:
		default:
			logger.Warn("change feed subscriber too slow, dropping event",
				zap.String("table", table))
		}
	}
}
