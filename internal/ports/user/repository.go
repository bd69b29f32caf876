package user

import (
	"context"
	"time"

	"chirp/internal/core/user"
)

// UserRepository پورت ذخیره‌سازی کاربران.
// Lookups return an error wrapping apperr.ErrNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*user.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]*user.User, error)
	Update(ctx context.Context, user *user.User) (*user.User, error)
	// Delete soft-deletes the user and deactivates their tweets atomically.
	Delete(ctx context.Context, id string) error
}

// DTOها برای UseCase
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type RegisterResponse struct {
	User *UserDTO       `json:"user"`
	Auth *LoginResponse `json:"auth"`
}

type UserDTO struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	FollowersCount int64     `json:"followersCount"`
	FollowingCount int64     `json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UpdateUserDTO fields left nil are not changed.
type UpdateUserDTO struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:             u.ID.String(),
		Username:       u.Username,
		Email:          u.Email,
		Role:           string(u.Role),
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
	}
}
