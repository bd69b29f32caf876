package database

import (
	"context"

	"chirp/internal/core/apperr"
	"chirp/internal/core/like"

	"gorm.io/gorm"
)

// LikeRepositoryDatabase پیاده‌سازی LikeRepository برای دیتابیس
type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

// Create relies on uniq_like_user_tweet; a violation comes back as apperr.ErrConflict.
func (repo *LikeRepositoryDatabase) Create(ctx context.Context, l *like.Like) (*like.Like, error) {
	if err := repo.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, translateError(err, "like")
	}
	return l, nil
}

func (repo *LikeRepositoryDatabase) FindByUserAndTweet(ctx context.Context, userID, tweetID string) (*like.Like, error) {
	var l like.Like
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&l).Error; err != nil {
		return nil, translateError(err, "like")
	}
	return &l, nil
}

func (repo *LikeRepositoryDatabase) Exists(ctx context.Context, userID, tweetID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&like.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *LikeRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&like.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("like")
	}
	return nil
}

func (repo *LikeRepositoryDatabase) CountByTweetID(ctx context.Context, tweetID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&like.Like{}).Where("tweet_id = ?", tweetID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *LikeRepositoryDatabase) FindByTweetID(ctx context.Context, tweetID string) ([]*like.Like, error) {
	var likes []*like.Like
	if err := repo.db.WithContext(ctx).
		Where("tweet_id = ?", tweetID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}
