package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "chirp/internal/adapters/database"
	"chirp/internal/adapters/httpapi"
	"chirp/internal/adapters/httpapi/middleware"
	redisadapter "chirp/internal/adapters/redis"
	"chirp/internal/config"
	commentapp "chirp/internal/core/comment/service"
	followerapp "chirp/internal/core/follower/service"
	likeapp "chirp/internal/core/like/service"
	retweetapp "chirp/internal/core/retweet/service"
	timelineapp "chirp/internal/core/timeline/service"
	tweetapp "chirp/internal/core/tweet/service"
	userapp "chirp/internal/core/user/service"
	"chirp/internal/metrics"
	timelinePort "chirp/internal/ports/timeline"
	"chirp/internal/workers"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	settings, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		config.InitLogger("development")
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	config.InitLogger(settings.AppEnv)
	if settings.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if config.InitSentry(settings) {
		defer sentry.Flush(2 * time.Second)
	}

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	config.InitDB(settings)
	if err := dbadapter.AutoMigrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	// اتصال به Redis
	config.InitRedis(settings)

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(config.Logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)         // آداپتر خروجی
	tweetRepo := dbadapter.NewTweetRepositoryDatabase(config.DB)       // آداپتر خروجی
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)   // آداپتر خروجی
	likeRepo := dbadapter.NewLikeRepositoryDatabase(config.DB)         // آداپتر خروجی
	retweetRepo := dbadapter.NewRetweetRepositoryDatabase(config.DB)   // آداپتر خروجی
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB) // آداپتر خروجی
	timelineRepo := dbadapter.NewTimelineRepositoryDatabase(config.DB) // آداپتر خروجی
	fanoutRepo := dbadapter.NewFanoutRepositoryDatabase(config.DB)     // آداپتر خروجی

	// the cache stays a nil interface when Redis is not configured
	var timelineCache timelinePort.TimelineCache
	if config.RedisClient != nil {
		timelineCache = redisadapter.NewTimelineCacheRedis(config.RedisClient, settings.TimelineLen)
	}

	tokens := userapp.TokenConfig{Key: []byte(settings.JWTSecret), Issuer: settings.JWTIssuer, TTL: settings.JWTTTL}
	uc := httpapi.UseCases{
		User:     userapp.NewUserService(userRepo, tokens, collector, config.Logger),
		Tweet:    tweetapp.NewTweetService(tweetRepo, fanoutRepo, timelineCache, collector, config.Logger),
		Comment:  commentapp.NewCommentService(commentRepo, tweetRepo, collector, config.Logger),
		Like:     likeapp.NewLikeService(likeRepo, tweetRepo, collector, config.Logger),
		Retweet:  retweetapp.NewRetweetService(retweetRepo, tweetRepo, collector, config.Logger),
		Follower: followerapp.NewFollowerService(followerRepo, userRepo, collector, config.Logger),
		Timeline: timelineapp.NewTimelineService(timelineRepo, timelineCache, tweetRepo, config.Logger),
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(settings.RateLimitRPS),
		Burst: settings.RateLimitBurst,
	}, config.Logger)
	defer limiter.Stop()

	r := httpapi.SetupRoutes(uc, httpapi.Options{ // تزریق یوزکیس به آداپتر ورودی
		Logger:         config.Logger,
		Metrics:        collector,
		MetricsHandler: metrics.Handler(reg),
		RateLimiter:    limiter,
	})

	fanoutWorker := workers.NewFanoutWorker(
		fanoutRepo, timelineCache, followerRepo, timelineRepo, tweetRepo,
		settings.BatchSize, settings.FanoutInterval, collector, config.Logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// اجرای worker در پس‌زمینه
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		fanoutWorker.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + settings.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		config.Logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Server shutdown failed", zap.Error(err))
	}
	<-workerDone
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger) {
	// بستن اتصال به Redis
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	// بستن اتصال دیتابیس
	sqlDB, err := config.DB.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
	_ = logger.Sync()
}
