package retweetapp

import (
	"context"
	"errors"

	"chirp/internal/core/apperr"
	retweetEntity "chirp/internal/core/retweet"
	"chirp/internal/metrics"
	retweetPort "chirp/internal/ports/retweet"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type RetweetService struct {
	RetweetRepository retweetPort.RetweetRepository
	TweetRepository   tweetPort.TweetRepository
	Metrics           metrics.EventRecorder
	Logger            *zap.Logger
}

func NewRetweetService(
	retweetRepo retweetPort.RetweetRepository,
	tweetRepo tweetPort.TweetRepository,
	recorder metrics.EventRecorder,
	logger *zap.Logger,
) *RetweetService {
	return &RetweetService{
		RetweetRepository: retweetRepo,
		TweetRepository:   tweetRepo,
		Metrics:           recorder,
		Logger:            logger,
	}
}

func (s *RetweetService) Retweet(ctx context.Context, tweetID, userID string) (*retweetPort.RetweetDTO, error) {
	t, err := s.TweetRepository.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}

	exists, err := s.RetweetRepository.Exists(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrDuplicateReaction
	}

	r := &retweetEntity.Retweet{
		ID:              uuid.Must(uuid.NewV4()),
		UserID:          uid,
		OriginalTweetID: t.ID,
	}
	created, err := s.RetweetRepository.Create(ctx, r)
	if errors.Is(err, apperr.ErrConflict) {
		return nil, apperr.ErrDuplicateReaction
	}
	if err != nil {
		return nil, err
	}

	s.Metrics.RecordEvent(metrics.EventRetweet)
	return retweetPort.ToRetweetDTO(created), nil
}

// Unretweet removes the user's retweet of tweetID.
func (s *RetweetService) Unretweet(ctx context.Context, tweetID, userID string) error {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return err
	}
	r, err := s.RetweetRepository.FindByUserAndTweet(ctx, userID, tweetID)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.ErrReactionNotFound
	}
	if err != nil {
		return err
	}
	return s.delete(ctx, r)
}

// RemoveRetweet deletes a retweet by its own id; only its creator may do so.
func (s *RetweetService) RemoveRetweet(ctx context.Context, retweetID, userID string) error {
	r, err := s.RetweetRepository.FindByID(ctx, retweetID)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.ErrReactionNotFound
	}
	if err != nil {
		return err
	}
	// a retweet of an inactive tweet is not visible
	if _, err := s.TweetRepository.FindByID(ctx, r.OriginalTweetID.String()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrReactionNotFound
		}
		return err
	}
	if r.UserID.String() != userID {
		return apperr.Unauthorized("only the creator can remove this retweet")
	}
	return s.delete(ctx, r)
}

func (s *RetweetService) delete(ctx context.Context, r *retweetEntity.Retweet) error {
	if err := s.RetweetRepository.Delete(ctx, r.ID.String()); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrReactionNotFound
		}
		return err
	}
	s.Metrics.RecordEvent(metrics.EventUnretweet)
	return nil
}

func (s *RetweetService) HasRetweeted(ctx context.Context, tweetID, userID string) (bool, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return false, err
	}
	return s.RetweetRepository.Exists(ctx, userID, tweetID)
}

func (s *RetweetService) CountRetweets(ctx context.Context, tweetID string) (int64, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return 0, err
	}
	return s.RetweetRepository.CountByTweetID(ctx, tweetID)
}

func (s *RetweetService) ListRetweetsByTweet(ctx context.Context, tweetID string) ([]*retweetPort.RetweetDTO, error) {
	if _, err := s.TweetRepository.FindByID(ctx, tweetID); err != nil {
		return nil, err
	}
	retweets, err := s.RetweetRepository.FindByTweetID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	out := make([]*retweetPort.RetweetDTO, 0, len(retweets))
	for _, r := range retweets {
		out = append(out, retweetPort.ToRetweetDTO(r))
	}
	return out, nil
}
