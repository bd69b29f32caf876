package database

import (
	"context"

	"chirp/internal/core/apperr"
	"chirp/internal/core/comment"

	"gorm.io/gorm"
)

// CommentRepositoryDatabase پیاده‌سازی CommentRepository برای دیتابیس
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, translateError(err, "comment")
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translateError(err, "comment")
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) FindByTweetID(ctx context.Context, tweetID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).
		Where("tweet_id = ?", tweetID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) UpdateContent(ctx context.Context, id, content string) (*comment.Comment, error) {
	res := repo.db.WithContext(ctx).Model(&comment.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("comment")
	}
	return repo.FindByID(ctx, id)
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&comment.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}
