package changefeed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFeed(t *testing.T) Feed {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, zap.NewNop())
}

func recv(t *testing.T, sub Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "event stream closed early")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestRedisFeedPublishSubscribe(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	sub, err := feed.Subscribe(ctx, "messages")
	require.NoError(t, err)
	defer sub.Cancel()

	row := map[string]string{"id": "m1", "content": "hello"}
	require.NoError(t, feed.Publish(ctx, "messages", row))

	ev := recv(t, sub)
	assert.Equal(t, "messages", ev.Table)

	var got map[string]string
	require.NoError(t, json.Unmarshal(ev.Row, &got))
	assert.Equal(t, row, got)
}

func TestRedisFeedPublishOrder(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	sub, err := feed.Subscribe(ctx, "messages")
	require.NoError(t, err)
	defer sub.Cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, feed.Publish(ctx, "messages", map[string]int{"seq": i}))
	}
	for i := 0; i < 5; i++ {
		var got map[string]int
		require.NoError(t, json.Unmarshal(recv(t, sub).Row, &got))
		assert.Equal(t, i, got["seq"])
	}
}

func TestRedisFeedTableIsolation(t *testing.T) {
	feed := newTestFeed(t)
	ctx := context.Background()

	sub, err := feed.Subscribe(ctx, "messages")
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, feed.Publish(ctx, "likes", map[string]string{"id": "l1"}))
	require.NoError(t, feed.Publish(ctx, "messages", map[string]string{"id": "m1"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(recv(t, sub).Row, &got))
	assert.Equal(t, "m1", got["id"])
}

func TestRedisSubscriptionCancelIdempotent(t *testing.T) {
	feed := newTestFeed(t)

	sub, err := feed.Subscribe(context.Background(), "messages")
	require.NoError(t, err)

	sub.Cancel()
	sub.Cancel()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("event stream not closed after cancel")
	}
}
