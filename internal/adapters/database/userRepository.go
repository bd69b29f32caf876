package database

import (
	"context"
	"strings"

	"chirp/internal/core/apperr"
	"chirp/internal/core/follower"
	"chirp/internal/core/tweet"
	"chirp/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsernameOrEmail(ctx context.Context, identifier string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&u).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "username = ?", username)
}

func (repo *UserRepositoryDatabase) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "email = ?", email)
}

func (repo *UserRepositoryDatabase) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&user.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// '!' rather than backslash, which MySQL string literals would consume
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search matches query literally as a substring of username or email.
func (repo *UserRepositoryDatabase) Search(ctx context.Context, query string, limit int) ([]*user.User, error) {
	var users []*user.User
	pattern := "%" + likeEscaper.Replace(query) + "%"
	if err := repo.db.WithContext(ctx).
		Where("username LIKE ? ESCAPE '!' OR email LIKE ? ESCAPE '!'", pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).
		Model(u).
		Select("username", "email", "password", "role").
		Updates(u).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// کاربرانی که این کاربر را دنبال می‌کنند یا توسط او دنبال می‌شوند
		if err := tx.Model(&user.User{}).
			Where("id IN (?)", tx.Model(&follower.Follower{}).Select("user_id").Where("follower_id = ?", id)).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&user.User{}).
			Where("id IN (?)", tx.Model(&follower.Follower{}).Select("follower_id").Where("user_id = ?", id)).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR follower_id = ?", id, id).Delete(&follower.Follower{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&tweet.Tweet{}).Where("user_id = ?", id).Update("active", false).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&user.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("user")
		}
		return nil
	})
}
