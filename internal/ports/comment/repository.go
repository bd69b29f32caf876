package comment

import (
	"context"
	"time"

	"chirp/internal/core/comment"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id string) (*comment.Comment, error)
	// FindByTweetID orders by created_at desc, id asc.
	FindByTweetID(ctx context.Context, tweetID string) ([]*comment.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*comment.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	TweetID   string    `json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		Content:   c.Content,
		UserID:    c.UserID.String(),
		TweetID:   c.TweetID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
