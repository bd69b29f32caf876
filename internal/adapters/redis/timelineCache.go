package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const timelineKeyPrefix = "timeline:"

// TimelineCacheRedis keeps each reader's timeline as a ZSET of tweet ids
// scored by creation time in milliseconds.
type TimelineCacheRedis struct {
	Client *redis.Client
	MaxLen int64 // entries kept per timeline, 0 keeps everything
}

func NewTimelineCacheRedis(client *redis.Client, maxLen int64) *TimelineCacheRedis {
	return &TimelineCacheRedis{
		Client: client,
		MaxLen: maxLen,
	}
}

func timelineKey(userID string) string {
	return timelineKeyPrefix + userID
}

// PushTweetToFollowers اضافه کردن tweetID به timeline ZSET تمام followers
func (r *TimelineCacheRedis) PushTweetToFollowers(ctx context.Context, tweetID string, score float64, followerIDs []string) error {
	if len(followerIDs) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for _, followerID := range followerIDs {
		key := timelineKey(followerID)
		pipe.ZAdd(ctx, key, &redis.Z{Score: score, Member: tweetID})
		if r.MaxLen > 0 {
			// keep only the newest MaxLen entries
			pipe.ZRemRangeByRank(ctx, key, 0, -r.MaxLen-1)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// TweetIDs returns tweet ids newest first.
func (r *TimelineCacheRedis) TweetIDs(ctx context.Context, userID string, start, limit int64) ([]string, error) {
	return r.Client.ZRevRange(ctx, timelineKey(userID), start, start+limit-1).Result()
}
