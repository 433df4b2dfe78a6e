package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), srv
}

func TestAllowSlidingWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		ok, n, err := l.AllowSliding(ctx, "u1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, i, n)
	}

	ok, n, err := l.AllowSliding(ctx, "u1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(4), n)

	// A different key has its own counter.
	ok, _, err = l.AllowSliding(ctx, "u2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowSlidingWindowExpiry(t *testing.T) {
	l, srv := newTestLimiter(t)
	ctx := context.Background()

	_, _, err := l.AllowSliding(ctx, "u1", 1, time.Minute)
	require.NoError(t, err)
	ok, _, err := l.AllowSliding(ctx, "u1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	srv.FastForward(2 * time.Minute)

	ok, n, err := l.AllowSliding(ctx, "u1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)
}

func TestLimitHTTP(t *testing.T) {
	l, _ := newTestLimiter(t)
	keyFn := func(r *http.Request) (string, error) {
		return r.Header.Get("X-User"), nil
	}
	h := l.LimitHTTP(2, time.Minute, keyFn, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		if user != "" {
			req.Header.Set("X-User", user)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("u1"))
	assert.Equal(t, http.StatusNoContent, call("u1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u1"))
	assert.Equal(t, http.StatusNoContent, call("u2"))
	assert.Equal(t, http.StatusUnauthorized, call(""))
}
