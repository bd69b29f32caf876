package timelineapp

import (
	"context"

	"chirp/internal/core/apperr"
	tweetEntity "chirp/internal/core/tweet"
	timelinePort "chirp/internal/ports/timeline"
	tweetPort "chirp/internal/ports/tweet"

	"go.uber.org/zap"
)

const maxPageSize = 100

type TimelineService struct {
	TimelineRepository timelinePort.TimelineRepository
	TimelineCache      timelinePort.TimelineCache // optional
	TweetRepository    tweetPort.TweetRepository
	Logger             *zap.Logger
}

func NewTimelineService(
	timelineRepo timelinePort.TimelineRepository,
	timelineCache timelinePort.TimelineCache,
	tweetRepo tweetPort.TweetRepository,
	logger *zap.Logger,
) *TimelineService {
	return &TimelineService{
		TimelineRepository: timelineRepo,
		TimelineCache:      timelineCache,
		TweetRepository:    tweetRepo,
		Logger:             logger,
	}
}

// GetTimelineByUserID دریافت تایم‌لاین یک کاربر با start و limit
// Ids come from the cache when it answers, otherwise from the timeline table.
// Tweets deleted after fan-out are dropped from the page.
func (s *TimelineService) GetTimelineByUserID(ctx context.Context, userID string, start, limit int64) ([]*tweetPort.TweetDTO, error) {
	if start < 0 {
		return nil, apperr.Validation("start must not be negative")
	}
	if limit <= 0 || limit > maxPageSize {
		return nil, apperr.Validation("limit must be between 1 and 100")
	}

	ids, err := s.tweetIDs(ctx, userID, start, limit)
	if err != nil {
		return nil, err
	}

	tweets, err := s.TweetRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*tweetEntity.Tweet, len(tweets))
	for _, t := range tweets {
		byID[t.ID.String()] = t
	}

	out := make([]*tweetPort.TweetDTO, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, tweetPort.ToTweetDTO(t))
		}
	}
	return out, nil
}

func (s *TimelineService) tweetIDs(ctx context.Context, userID string, start, limit int64) ([]string, error) {
	if s.TimelineCache != nil {
		ids, err := s.TimelineCache.TweetIDs(ctx, userID, start, limit)
		if err == nil && len(ids) > 0 {
			return ids, nil
		}
		if err != nil {
			s.Logger.Warn("timeline cache unavailable, reading from database", zap.String("userID", userID), zap.Error(err))
		}
	}
	return s.TimelineRepository.TweetIDsByUserID(ctx, userID, start, limit)
}
