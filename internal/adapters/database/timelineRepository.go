package database

import (
	"context"
	"fmt"
	"time"

	timelineEntity "chirp/internal/core/timeline"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimelineRepositoryDatabase struct {
	db *gorm.DB
}

func NewTimelineRepositoryDatabase(db *gorm.DB) *TimelineRepositoryDatabase {
	return &TimelineRepositoryDatabase{db: db}
}

// AddBatch اضافه کردن چندین توییت به جدول timeline به صورت دسته‌ای
// Rows already present for (user, tweet) are skipped so a re-run fan-out is harmless.
func (repo *TimelineRepositoryDatabase) AddBatch(ctx context.Context, timelines []*timelineEntity.Timeline) error {
	if len(timelines) == 0 {
		return nil
	}

	for i, tl := range timelines {
		if tl == nil {
			return fmt.Errorf("timeline[%d] is nil", i)
		}
		if tl.ID == uuid.Nil {
			tl.ID = uuid.Must(uuid.NewV4())
		}
		if tl.UserID == uuid.Nil || tl.TweetID == uuid.Nil {
			return fmt.Errorf("timeline[%d] has nil UserID or TweetID", i)
		}
		if tl.CreatedAt.IsZero() {
			tl.CreatedAt = time.Now()
		}
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&timelines, len(timelines)).Error; err != nil {
		return fmt.Errorf("error adding batch to timeline: %w", err)
	}
	return nil
}

func (repo *TimelineRepositoryDatabase) TweetIDsByUserID(ctx context.Context, userID string, start, limit int64) ([]string, error) {
	var ids []string
	if err := repo.db.WithContext(ctx).
		Model(&timelineEntity.Timeline{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("tweet_id ASC").
		Offset(int(start)).
		Limit(int(limit)).
		Pluck("tweet_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
