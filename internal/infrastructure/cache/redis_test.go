package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbify/internal/config"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	r := NewRedis(config.RedisConfig{Host: srv.Host(), Port: srv.Port()}, nil)
	require.False(t, r.isUnavailable())
	return r, srv
}

func TestRedis_GetSetJSON(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	var out payload
	found, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found, "miss before set")

	require.NoError(t, r.SetJSON(ctx, "k", payload{Name: "go dev", Score: 88}, time.Minute))

	found, err = r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "go dev", Score: 88}, out)
}

func TestRedis_SetIfNotExists(t *testing.T) {
	r, _ := newTestRedis(t)
	ctx := context.Background()

	ok, err := r.SetIfNotExists(ctx, "lock", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.SetIfNotExists(ctx, "lock", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while the lock is held")
}

func TestRedis_InvalidateRecommendations(t *testing.T) {
	r, srv := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, RecommendationKey("u1"), []int{1}, time.Minute))
	require.NoError(t, r.SetJSON(ctx, "feed:u1:page1", []int{1}, time.Minute))
	require.NoError(t, r.SetJSON(ctx, RecommendationKey("u2"), []int{2}, time.Minute))

	require.NoError(t, r.InvalidateRecommendations(ctx, "u1"))

	assert.False(t, srv.Exists(RecommendationKey("u1")))
	assert.False(t, srv.Exists("feed:u1:page1"))
	assert.True(t, srv.Exists(RecommendationKey("u2")), "other users keep their cache")
}

func TestRedis_UnavailableIsNoOp(t *testing.T) {
	r := &Redis{}
	ctx := context.Background()

	var out int
	found, err := r.GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, r.SetJSON(ctx, "k", 1, time.Minute))
	assert.NoError(t, r.Delete(ctx, "k"))

	ok, err := r.SetIfNotExists(ctx, "lock", "v", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok, "no peers to lock against, so the lock is granted")

	assert.Error(t, r.Ping(ctx))
}
