package workers

import (
	"context"
	"time"

	"chirp/internal/core/fanoutqueue"
	timelineEntity "chirp/internal/core/timeline"
	fanoutPort "chirp/internal/ports/fanoutqueue"
	followerPort "chirp/internal/ports/follower"
	timelinePort "chirp/internal/ports/timeline"
	tweetPort "chirp/internal/ports/tweet"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FanoutMetrics is the part of the metrics collector the worker reports to.
type FanoutMetrics interface {
	RecordFanoutProcessed()
	RecordFanoutFailure()
	RecordTimelinePushes(n int)
}

type FanoutWorker struct {
	FanoutRepo    fanoutPort.FanoutRepository
	TimelineCache timelinePort.TimelineCache // optional
	FollowerRepo  followerPort.FollowerRepository
	TimelineRepo  timelinePort.TimelineRepository
	TweetRepo     tweetPort.TweetRepository
	BatchSize     int           // تعداد رکوردهای batch برای Redis و timeline
	Interval      time.Duration // فاصله‌ی بین دو بار خواندن صف
	Metrics       FanoutMetrics
	Logger        *zap.Logger
}

func NewFanoutWorker(
	fanoutRepo fanoutPort.FanoutRepository,
	timelineCache timelinePort.TimelineCache,
	followerRepo followerPort.FollowerRepository,
	timelineRepo timelinePort.TimelineRepository,
	tweetRepo tweetPort.TweetRepository,
	batchSize int,
	interval time.Duration,
	recorder FanoutMetrics,
	logger *zap.Logger,
) *FanoutWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &FanoutWorker{
		FanoutRepo:    fanoutRepo,
		TimelineCache: timelineCache,
		FollowerRepo:  followerRepo,
		TimelineRepo:  timelineRepo,
		TweetRepo:     tweetRepo,
		BatchSize:     batchSize,
		Interval:      interval,
		Metrics:       recorder,
		Logger:        logger,
	}
}

// Run گوش دادن به صف و توزیع توییت‌ها تا زمان لغو ctx
func (w *FanoutWorker) Run(ctx context.Context) {
	w.Logger.Info("fanout worker started", zap.Int("batchSize", w.BatchSize), zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		w.ProcessPending(ctx)

		select {
		case <-ctx.Done():
			w.Logger.Info("fanout worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessPending handles one batch of pending queue records and returns how
// many were marked done.
func (w *FanoutWorker) ProcessPending(ctx context.Context) int {
	pending, err := w.FanoutRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			w.Logger.Error("error fetching pending fanouts", zap.Error(err))
			w.Metrics.RecordFanoutFailure()
		}
		return 0
	}

	done := 0
	for _, fq := range pending {
		if ctx.Err() != nil {
			break
		}
		if w.processFanout(ctx, fq) {
			done++
		}
	}
	return done
}

// پردازش یک رکورد FanoutQueue
func (w *FanoutWorker) processFanout(ctx context.Context, fq *fanoutqueue.FanoutQueue) bool {
	if fq == nil || fq.TweetID == uuid.Nil || fq.UserID == uuid.Nil {
		w.Logger.Error("invalid fanout record", zap.Any("record", fq))
		w.Metrics.RecordFanoutFailure()
		if fq != nil {
			w.markDone(ctx, fq)
		}
		return false
	}

	log := w.Logger.With(zap.String("tweetID", fq.TweetID.String()), zap.String("authorID", fq.UserID.String()))

	t, err := w.TweetRepo.FindByID(ctx, fq.TweetID.String())
	if err != nil {
		// deleted before fan-out: nothing to deliver
		log.Info("tweet no longer available, skipping fanout", zap.Error(err))
		return w.markDone(ctx, fq)
	}

	followers, err := w.FollowerRepo.GetFollowersByUserID(ctx, fq.UserID.String())
	if err != nil {
		log.Error("error fetching followers", zap.Error(err))
		w.Metrics.RecordFanoutFailure()
		return false
	}
	log.Debug("found followers", zap.Int("count", len(followers)))

	// the author reads their own tweets on their timeline too
	followerIDs := make([]string, 0, len(followers)+1)
	followerIDs = append(followerIDs, fq.UserID.String())
	for _, f := range followers {
		followerIDs = append(followerIDs, f.FollowerID.String())
	}

	score := float64(t.CreatedAt.UnixMilli())
	for i := 0; i < len(followerIDs); i += w.BatchSize {
		end := min(i+w.BatchSize, len(followerIDs))
		batch := followerIDs[i:end]

		if w.TimelineCache != nil {
			if err := w.TimelineCache.PushTweetToFollowers(ctx, fq.TweetID.String(), score, batch); err != nil {
				// the timeline table still gets the rows below
				log.Warn("error pushing batch to timeline cache", zap.Error(err))
				w.Metrics.RecordFanoutFailure()
			}
		}

		if err := w.addTimelines(ctx, t.ID, t.CreatedAt, batch); err != nil {
			log.Error("could not add batch to timeline", zap.Error(err), zap.Int("from", i), zap.Int("to", end))
			w.Metrics.RecordFanoutFailure()
			return false
		}
		w.Metrics.RecordTimelinePushes(len(batch))
	}

	return w.markDone(ctx, fq)
}

func (w *FanoutWorker) addTimelines(ctx context.Context, tweetID uuid.UUID, createdAt time.Time, batch []string) error {
	timelines := make([]*timelineEntity.Timeline, 0, len(batch))
	for _, fid := range batch {
		timelines = append(timelines, &timelineEntity.Timeline{
			ID:        uuid.Must(uuid.NewV4()),
			UserID:    uuid.FromStringOrNil(fid),
			TweetID:   tweetID,
			CreatedAt: createdAt,
		})
	}
	return w.TimelineRepo.AddBatch(ctx, timelines)
}

func (w *FanoutWorker) markDone(ctx context.Context, fq *fanoutqueue.FanoutQueue) bool {
	if err := w.FanoutRepo.MarkDone(ctx, fq.ID); err != nil {
		w.Logger.Warn("could not mark fanout done", zap.String("id", fq.ID.String()), zap.Error(err))
		w.Metrics.RecordFanoutFailure()
		return false
	}
	w.Metrics.RecordFanoutProcessed()
	return true
}
