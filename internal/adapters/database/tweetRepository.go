package database

import (
	"context"

	"chirp/internal/core/apperr"
	"chirp/internal/core/comment"
	"chirp/internal/core/like"
	"chirp/internal/core/retweet"
	"chirp/internal/core/tweet"

	"gorm.io/gorm"
)

// TweetRepositoryDatabase پیاده‌سازی TweetRepository برای دیتابیس
type TweetRepositoryDatabase struct {
	db *gorm.DB
}

// NewTweetRepositoryDatabase سازنده TweetRepositoryDatabase
func NewTweetRepositoryDatabase(db *gorm.DB) *TweetRepositoryDatabase {
	return &TweetRepositoryDatabase{db: db}
}

func (repo *TweetRepositoryDatabase) active(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&tweet.Tweet{}).Where("active = ?", true)
}

func (repo *TweetRepositoryDatabase) Create(ctx context.Context, t *tweet.Tweet) (*tweet.Tweet, error) {
	if err := repo.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, translateError(err, "tweet")
	}
	return t, nil
}

func (repo *TweetRepositoryDatabase) FindByID(ctx context.Context, id string) (*tweet.Tweet, error) {
	var t tweet.Tweet
	if err := repo.active(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translateError(err, "tweet")
	}
	return &t, nil
}

// FindByIDs returns the active tweets among ids in no particular order.
func (repo *TweetRepositoryDatabase) FindByIDs(ctx context.Context, ids []string) ([]*tweet.Tweet, error) {
	if len(ids) == 0 {
		return []*tweet.Tweet{}, nil
	}
	var tweets []*tweet.Tweet
	if err := repo.active(ctx).Where("id IN ?", ids).Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

func (repo *TweetRepositoryDatabase) FindByUserID(ctx context.Context, userID string) ([]*tweet.Tweet, error) {
	var tweets []*tweet.Tweet
	if err := repo.active(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// UpdateContent rewrites content only; created_at is never touched.
func (repo *TweetRepositoryDatabase) UpdateContent(ctx context.Context, id, content string) (*tweet.Tweet, error) {
	res := repo.active(ctx).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("tweet")
	}
	return repo.FindByID(ctx, id)
}

// Deactivate is the soft delete; dependents stay in place but become unreachable.
func (repo *TweetRepositoryDatabase) Deactivate(ctx context.Context, id string) error {
	res := repo.active(ctx).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("tweet")
	}
	return nil
}

func (repo *TweetRepositoryDatabase) Stats(ctx context.Context, id string) (*tweet.Stats, error) {
	var stats tweet.Stats
	db := repo.db.WithContext(ctx)
	if err := db.Model(&like.Like{}).Where("tweet_id = ?", id).Count(&stats.Likes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&retweet.Retweet{}).Where("original_tweet_id = ?", id).Count(&stats.Retweets).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&comment.Comment{}).Where("tweet_id = ?", id).Count(&stats.Comments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
