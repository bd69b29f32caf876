package likeapp

import (
	"context"
	"errors"

	"chirp/internal/core/apperr"
	likeEntity "chirp/internal/core/like"
	"chirp/internal/metrics"
	likePort "chirp/internal/ports/like"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type LikeService struct {
	LikeRepository  likePort.LikeRepository
	TweetRepository tweetPort.TweetRepository
	Metrics         metrics.EventRecorder
	Logger          *zap.Logger
}

func NewLikeService(
	likeRepo likePort.LikeRepository,
	tweetRepo tweetPort.TweetRepository,
	recorder metrics.EventRecorder,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		LikeRepository:  likeRepo,
		TweetRepository: tweetRepo,
		Metrics:         recorder,
		Logger:          logger,
	}
}

// Like moves the (user, tweet) pair from absent to present.
func (s *LikeService) Like(ctx context.Context, tweetID, userID string) (*likePort.LikeDTO, error) {
	t, err := s.TweetRepository.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}

	exists, err := s.LikeRepository.Exists(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrDuplicateReaction
	}

	l := &likeEntity.Like{
		ID:      uuid.Must(uuid.NewV4()),
		UserID:  uid,
		TweetID: t.ID,
	}
	created, err := s.LikeRepository.Create(ctx, l)
	if errors.Is(err, apperr.ErrConflict) {
		// a concurrent like won the race on the unique index
		return nil, apperr.ErrDuplicateReaction
	}
	if err != nil {
		return nil, err
	}

	s.Metrics.RecordEvent(metrics.EventLike)
	return likePort.ToLikeDTO(created), nil
}

// Unlike moves the pair from present to absent.
func (s *LikeService) Unlike(ctx context.Context, tweetID, userID string) error {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return err
	}
	l, err := s.LikeRepository.FindByUserAndTweet(ctx, userID, tweetID)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.ErrReactionNotFound
	}
	if err != nil {
		return err
	}

	if err := s.LikeRepository.Delete(ctx, l.ID.String()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrReactionNotFound
		}
		return err
	}
	s.Metrics.RecordEvent(metrics.EventUnlike)
	return nil
}

func (s *LikeService) HasLiked(ctx context.Context, tweetID, userID string) (bool, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.LikeRepository.Exists(ctx, userID, tweetID)
}

func (s *LikeService) CountLikes(ctx context.Context, tweetID string) (int64, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return 0, err
	}
	return s.LikeRepository.CountByTweetID(ctx, tweetID)
}

// ListLikesByTweet returns the tweet's likes, newest first.
func (s *LikeService) ListLikesByTweet(ctx context.Context, tweetID string) ([]*likePort.LikeDTO, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return nil, err
	}
	likes, err := s.LikeRepository.FindByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	out := make([]*likePort.LikeDTO, 0, len(likes))
	for _, l := range likes {
		out = append(out, likePort.ToLikeDTO(l))
	}
	return out, nil
}
