package timeline

import (
	"context"

	"chirp/internal/core/timeline"
)

type TimelineRepository interface {
	AddBatch(ctx context.Context, timelines []*timeline.Timeline) error
	// TweetIDsByUserID returns tweet ids newest first.
	TweetIDsByUserID(ctx context.Context, userID string, start, limit int64) ([]string, error)
}

// TimelineCache keeps each reader's feed as a sorted set of tweet ids.
type TimelineCache interface {
	PushTweetToFollowers(ctx context.Context, tweetID string, score float64, followerIDs []string) error
	TweetIDs(ctx context.Context, userID string, start, limit int64) ([]string, error)
}
