package follower

import (
	"context"
	"time"

	"chirp/internal/core/follower"
)

// FollowerRepository پورت برای ذخیره‌سازی و بازیابی دنبال‌کنندگان
type FollowerRepository interface {
	// FollowUser inserts the edge and bumps both users' counters in one transaction.
	FollowUser(ctx context.Context, follower *follower.Follower) (*follower.Follower, error)
	// UnfollowUser removes the edge and decrements both counters in one transaction.
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	GetFollowersByUserID(ctx context.Context, userID string) ([]*follower.Follower, error)
	GetFollowingByUserID(ctx context.Context, followerID string) ([]*follower.Follower, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

// DTOها برای UseCase
type FollowerDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FollowerID string    `json:"followerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type FollowCountsDTO struct {
	UserID    string `json:"userId"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}

func ToFollowerDTOs(edges []*follower.Follower) []*FollowerDTO {
	out := make([]*FollowerDTO, 0, len(edges))
	for _, f := range edges {
		out = append(out, &FollowerDTO{
			ID:         f.ID.String(),
			UserID:     f.UserID.String(),
			FollowerID: f.FollowerID.String(),
			CreatedAt:  f.CreatedAt,
		})
	}
	return out
}
