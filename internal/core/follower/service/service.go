package followerapp

import (
	"context"
	"errors"

	"chirp/internal/core/apperr"
	followerEntity "chirp/internal/core/follower"
	"chirp/internal/metrics"
	followerPort "chirp/internal/ports/follower"
	userPort "chirp/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	Metrics            metrics.EventRecorder
	Logger             *zap.Logger
}

func NewFollowerService(
	repo followerPort.FollowerRepository,
	userRepo userPort.UserRepository,
	recorder metrics.EventRecorder,
	logger *zap.Logger,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		Metrics:            recorder,
		Logger:             logger,
	}
}

func (s *FollowerService) FollowUser(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		s.Logger.Warn("cannot follow yourself", zap.String("userID", followerID))
		return apperr.Validation("cannot follow yourself")
	}
	fid, err := uuid.FromString(followerID)
	if err != nil {
		return apperr.ErrUnauthenticated
	}
	target, err := s.UserRepository.FindByID(ctx, followeeID)
	if err != nil {
		return err
	}

	isFollowing, err := s.FollowerRepository.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if isFollowing {
		return apperr.Conflict("already following this user")
	}

	f := &followerEntity.Follower{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     target.ID,
		FollowerID: fid,
	}
	if _, err := s.FollowerRepository.FollowUser(ctx, f); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return apperr.Conflict("already following this user")
		}
		return err
	}
	s.Metrics.RecordEvent(metrics.EventFollow)
	return nil
}

func (s *FollowerService) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return apperr.Validation("cannot unfollow yourself")
	}
	isFollowing, err := s.FollowerRepository.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !isFollowing {
		return apperr.NotFound("you are not following this user")
	}

	if err := s.FollowerRepository.UnfollowUser(ctx, followerID, followeeID); err != nil {
		return err
	}
	s.Metrics.RecordEvent(metrics.EventUnfollow)
	return nil
}

func (s *FollowerService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	return s.FollowerRepository.IsFollowing(ctx, followerID, followeeID)
}

func (s *FollowerService) FollowersCount(ctx context.Context, userID string) (int64, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.FollowersCount, nil
}

func (s *FollowerService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.FollowingCount, nil
}

func (s *FollowerService) GetFollowCounts(ctx context.Context, userID string) (*followerPort.FollowCountsDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &followerPort.FollowCountsDTO{
		UserID:    u.ID.String(),
		Followers: u.FollowersCount,
		Following: u.FollowingCount,
	}, nil
}

func (s *FollowerService) GetFollowersByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	followers, err := s.FollowerRepository.GetFollowersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return followerPort.ToFollowerDTOs(followers), nil
}

func (s *FollowerService) GetFollowingByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return followerPort.ToFollowerDTOs(following), nil
}
