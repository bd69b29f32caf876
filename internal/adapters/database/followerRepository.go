package database

import (
	"context"

	"chirp/internal/core/apperr"
	"chirp/internal/core/follower"
	"chirp/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FollowerRepositoryDatabase پیاده‌سازی FollowerRepository برای دیتابیس
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowerRepositoryDatabase سازنده FollowerRepositoryDatabase
func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follower) (*follower.Follower, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return translateError(err, "follow relationship")
		}
		if err := bumpCounter(tx, f.FollowerID, "following_count", 1); err != nil {
			return err
		}
		return bumpCounter(tx, f.UserID, "followers_count", 1)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND user_id = ?", followerID, followeeID).Delete(&follower.Follower{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("follow relationship")
		}
		if err := bumpCounter(tx, uuid.FromStringOrNil(followerID), "following_count", -1); err != nil {
			return err
		}
		return bumpCounter(tx, uuid.FromStringOrNil(followeeID), "followers_count", -1)
	})
}

// bumpCounter fails with apperr.ErrNotFound so a vanished user rolls the transaction back.
func bumpCounter(tx *gorm.DB, userID uuid.UUID, column string, delta int) error {
	res := tx.Model(&user.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func (repo *FollowerRepositoryDatabase) GetFollowersByUserID(ctx context.Context, userID string) ([]*follower.Follower, error) {
	var followers []*follower.Follower
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowingByUserID(ctx context.Context, followerID string) ([]*follower.Follower, error) {
	var following []*follower.Follower
	if err := repo.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follower.Follower{}).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
