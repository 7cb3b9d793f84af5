package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/maxviazov/fantasy-cricket-service/internal/config"
	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisSummaryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSummaryCache(client, ttl), mr
}

func TestRedisSummaryCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := model.TournamentSummary{
		TotalPlayers:     3,
		TotalRuns:        830,
		TotalWickets:     30,
		HighestRunScorer: &model.PlayerHighlight{PlayerID: 1, Name: "Runs", University: "UoM", Value: 400},
	}
	require.NoError(t, c.Set(ctx, want))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Nil(t, got.HighestWicketTaker)
}

func TestRedisSummaryCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, model.TournamentSummary{TotalPlayers: 1}))
	assert.Equal(t, 30*time.Second, mr.TTL(SummaryKey))

	mr.FastForward(31 * time.Second)
	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSummaryCache_DefaultTTL(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, c.Set(context.Background(), model.TournamentSummary{}))
	assert.Equal(t, DefaultSummaryTTL, mr.TTL(SummaryKey))
}

func TestRedisSummaryCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, model.TournamentSummary{TotalPlayers: 2}))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(SummaryKey))

	// deleting a missing key is not an error
	require.NoError(t, c.Invalidate(ctx))
}

func TestRedisSummaryCache_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(SummaryKey, "{not json"))
	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisSummaryCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()
	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Enabled: true, Addr: addr})
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewRedisClient(context.Background(), config.RedisConfig{Enabled: true, Addr: addr})
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var n Noop
	ctx := context.Background()
	require.NoError(t, n.Set(ctx, model.TournamentSummary{TotalPlayers: 5}))
	_, ok, err := n.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, n.Invalidate(ctx))
}
