package like

import (
	"context"
	"time"

	"chirp/internal/core/like"
)

type LikeRepository interface {
	// Create returns an error wrapping apperr.ErrConflict when the pair already exists.
	Create(ctx context.Context, like *like.Like) (*like.Like, error)
	FindByUserAndTweet(ctx context.Context, userID, tweetID string) (*like.Like, error)
	Exists(ctx context.Context, userID, tweetID string) (bool, error)
	Delete(ctx context.Context, id string) error
	CountByTweetID(ctx context.Context, tweetID string) (int64, error)
	FindByTweetID(ctx context.Context, tweetID string) ([]*like.Like, error)
}

type LikeDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TweetID   string    `json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToLikeDTO(l *like.Like) *LikeDTO {
	return &LikeDTO{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		TweetID:   l.TweetID.String(),
		CreatedAt: l.CreatedAt,
	}
}
