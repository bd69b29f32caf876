package database

import (
	"context"

	"chirp/internal/core/apperr"
	"chirp/internal/core/retweet"

	"gorm.io/gorm"
)

// RetweetRepositoryDatabase پیاده‌سازی RetweetRepository برای دیتابیس
type RetweetRepositoryDatabase struct {
	db *gorm.DB
}

func NewRetweetRepositoryDatabase(db *gorm.DB) *RetweetRepositoryDatabase {
	return &RetweetRepositoryDatabase{db: db}
}

// Create relies on uniq_retweet_user_tweet; a violation comes back as apperr.ErrConflict.
func (repo *RetweetRepositoryDatabase) Create(ctx context.Context, r *retweet.Retweet) (*retweet.Retweet, error) {
	if err := repo.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, translateError(err, "retweet")
	}
	return r, nil
}

func (repo *RetweetRepositoryDatabase) FindByID(ctx context.Context, id string) (*retweet.Retweet, error) {
	var rt retweet.Retweet
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error; err != nil {
		return nil, translateError(err, "retweet")
	}
	return &rt, nil
}

func (repo *RetweetRepositoryDatabase) FindByUserAndTweet(ctx context.Context, userID, tweetID string) (*retweet.Retweet, error) {
	var rt retweet.Retweet
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND original_tweet_id = ?", userID, tweetID).
		First(&rt).Error; err != nil {
		return nil, translateError(err, "retweet")
	}
	return &rt, nil
}

func (repo *RetweetRepositoryDatabase) Exists(ctx context.Context, userID, tweetID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&retweet.Retweet{}).
		Where("user_id = ? AND original_tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *RetweetRepositoryDatabase) Delete(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&retweet.Retweet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("retweet")
	}
	return nil
}

func (repo *RetweetRepositoryDatabase) CountByTweetID(ctx context.Context, tweetID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&retweet.Retweet{}).Where("original_tweet_id = ?", tweetID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *RetweetRepositoryDatabase) FindByTweetID(ctx context.Context, tweetID string) ([]*retweet.Retweet, error) {
	var retweets []*retweet.Retweet
	if err := repo.db.WithContext(ctx).
		Where("original_tweet_id = ?", tweetID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&retweets).Error; err != nil {
		return nil, err
	}
	return retweets, nil
}
