package tweetapp

import (
	"context"
	"time"

	"chirp/internal/core/apperr"
	"chirp/internal/core/content"
	"chirp/internal/core/fanoutqueue"
	tweetEntity "chirp/internal/core/tweet"
	"chirp/internal/core/user"
	"chirp/internal/metrics"
	fanoutPort "chirp/internal/ports/fanoutqueue"
	timelinePort "chirp/internal/ports/timeline"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type TweetService struct {
	TweetRepository  tweetPort.TweetRepository
	FanoutRepository fanoutPort.FanoutRepository // تزریق شده
	TimelineCache    timelinePort.TimelineCache  // optional
	Metrics          metrics.EventRecorder
	Logger           *zap.Logger
}

func NewTweetService(
	tweetRepo tweetPort.TweetRepository,
	fanoutRepo fanoutPort.FanoutRepository,
	timelineCache timelinePort.TimelineCache,
	recorder metrics.EventRecorder,
	logger *zap.Logger,
) *TweetService {
	return &TweetService{
		TweetRepository:  tweetRepo,
		FanoutRepository: fanoutRepo,
		TimelineCache:    timelineCache,
		Metrics:          recorder,
		Logger:           logger,
	}
}

// CreateTweet persists the tweet, queues it for fan-out and puts it on the
// author's own timeline.
func (s *TweetService) CreateTweet(ctx context.Context, text string, actor user.Principal) (*tweetPort.TweetDTO, error) {
	if err := content.Validate(text); err != nil {
		return nil, err
	}
	uid, err := uuid.FromString(actor.ID)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}

	t := &tweetEntity.Tweet{
		ID:        uuid.Must(uuid.NewV4()),
		Content:   text,
		UserID:    uid,
		Active:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	created, err := s.TweetRepository.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	// Fan-out failures never fail the write; the tweet is already stored.
	fq := &fanoutqueue.FanoutQueue{
		ID:      uuid.Must(uuid.NewV4()),
		TweetID: created.ID,
		UserID:  created.UserID,
		Status:  fanoutqueue.StatusPending,
	}
	if _, err := s.FanoutRepository.Create(ctx, fq); err != nil {
		s.Logger.Warn("could not enqueue fan-out", zap.String("tweetID", created.ID.String()), zap.Error(err))
	}
	if s.TimelineCache != nil {
		score := float64(created.CreatedAt.UnixMilli())
		if err := s.TimelineCache.PushTweetToFollowers(ctx, created.ID.String(), score, []string{actor.ID}); err != nil {
			s.Logger.Warn("could not push tweet to author timeline", zap.String("tweetID", created.ID.String()), zap.Error(err))
		}
	}

	s.Metrics.RecordEvent(metrics.EventTweetCreated)
	s.Logger.Info("tweet created", zap.String("tweetID", created.ID.String()), zap.String("userID", actor.ID))
	return tweetPort.ToTweetDTO(created), nil
}

func (s *TweetService) GetTweet(ctx context.Context, id string) (*tweetPort.TweetDTO, error) {
	t, err := s.TweetRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tweetPort.ToTweetDTO(t), nil
}

// ListTweetsByUser returns the user's active tweets, newest first.
func (s *TweetService) ListTweetsByUser(ctx context.Context, userID string) ([]*tweetPort.TweetDTO, error) {
	tweets, err := s.TweetRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tweetPort.ToTweetDTOs(tweets), nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, id, text string, actor user.Principal) (*tweetPort.TweetDTO, error) {
	t, err := s.TweetRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, t) {
		return nil, apperr.Unauthorized("only the owner or an admin can update this tweet")
	}
	if err := content.Validate(text); err != nil {
		return nil, err
	}

	updated, err := s.TweetRepository.UpdateContent(ctx, id, text)
	if err != nil {
		return nil, err
	}
	s.Metrics.RecordEvent(metrics.EventTweetUpdated)
	return tweetPort.ToTweetDTO(updated), nil
}

// DeleteTweet soft-deletes the tweet.
func (s *TweetService) DeleteTweet(ctx context.Context, id string, actor user.Principal) error {
	t, err := s.TweetRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, t) {
		return apperr.Unauthorized("only the owner or an admin can delete this tweet")
	}
	if err := s.TweetRepository.Deactivate(ctx, id); err != nil {
		return err
	}

	s.Metrics.RecordEvent(metrics.EventTweetDeleted)
	s.Logger.Info("tweet deactivated", zap.String("tweetID", id), zap.String("by", actor.ID), zap.Bool("admin", actor.IsAdmin() && !actor.Owns(t.UserID)))
	return nil
}

func (s *TweetService) GetTweetStats(ctx context.Context, id string) (*tweetEntity.Stats, error) {
	if _, err := s.TweetRepository.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.TweetRepository.Stats(ctx, id)
}

func canModify(actor user.Principal, t *tweetEntity.Tweet) bool {
	return actor.Owns(t.UserID) || actor.IsAdmin()
}
