package tweet

import (
	"context"
	"time"

	"chirp/internal/core/tweet"
)

// TweetRepository only ever returns active tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *tweet.Tweet) (*tweet.Tweet, error)
	FindByID(ctx context.Context, id string) (*tweet.Tweet, error)
	FindByIDs(ctx context.Context, ids []string) ([]*tweet.Tweet, error)
	// FindByUserID orders by created_at desc, id asc.
	FindByUserID(ctx context.Context, userID string) ([]*tweet.Tweet, error)
	UpdateContent(ctx context.Context, id, content string) (*tweet.Tweet, error)
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*tweet.Stats, error)
}

type TweetDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToTweetDTO(t *tweet.Tweet) *TweetDTO {
	return &TweetDTO{
		ID:        t.ID.String(),
		Content:   t.Content,
		UserID:    t.UserID.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func ToTweetDTOs(tweets []*tweet.Tweet) []*TweetDTO {
	out := make([]*TweetDTO, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, ToTweetDTO(t))
	}
	return out
}
