package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, maxLen int64) *TimelineCacheRedis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTimelineCacheRedis(client, maxLen)
}

func TestTimelineCache_PushAndRead(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 0)

	require.NoError(t, cache.PushTweetToFollowers(ctx, "t1", 100, []string{"alice", "bob"}))
	require.NoError(t, cache.PushTweetToFollowers(ctx, "t2", 200, []string{"alice"}))
	require.NoError(t, cache.PushTweetToFollowers(ctx, "t3", 150, []string{"alice"}))

	ids, err := cache.TweetIDs(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids)

	ids, err = cache.TweetIDs(ctx, "bob", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)

	ids, err = cache.TweetIDs(ctx, "alice", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"t3"}, ids)
}

func TestTimelineCache_PushIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 0)

	require.NoError(t, cache.PushTweetToFollowers(ctx, "t1", 100, []string{"alice"}))
	require.NoError(t, cache.PushTweetToFollowers(ctx, "t1", 100, []string{"alice"}))

	ids, err := cache.TweetIDs(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)
}

func TestTimelineCache_TrimsToMaxLen(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t, 2)

	require.NoError(t, cache.PushTweetToFollowers(ctx, "t1", 1, []string{"alice"}))
	require.NoError(t, cache.PushTweetToFollowers(ctx, "t2", 2, []string{"alice"}))
	require.NoError(t, cache.PushTweetToFollowers(ctx, "t3", 3, []string{"alice"}))

	ids, err := cache.TweetIDs(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, ids)
}

func TestTimelineCache_EmptyFollowersIsNoop(t *testing.T) {
	cache := newTestCache(t, 0)
	assert.NoError(t, cache.PushTweetToFollowers(context.Background(), "t1", 1, nil))
}
