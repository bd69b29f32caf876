package retweet

import (
	"context"
	"time"

	"chirp/internal/core/retweet"
)

type RetweetRepository interface {
	// Create returns an error wrapping apperr.ErrConflict when the pair already exists.
	Create(ctx context.Context, retweet *retweet.Retweet) (*retweet.Retweet, error)
	FindByID(ctx context.Context, id string) (*retweet.Retweet, error)
	FindByUserAndTweet(ctx context.Context, userID, tweetID string) (*retweet.Retweet, error)
	Exists(ctx context.Context, userID, tweetID string) (bool, error)
	Delete(ctx context.Context, id string) error
	CountByTweetID(ctx context.Context, tweetID string) (int64, error)
	FindByTweetID(ctx context.Context, tweetID string) ([]*retweet.Retweet, error)
}

type RetweetDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TweetID   string    `json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToRetweetDTO(r *retweet.Retweet) *RetweetDTO {
	return &RetweetDTO{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		TweetID:   r.OriginalTweetID.String(),
		CreatedAt: r.CreatedAt,
	}
}
