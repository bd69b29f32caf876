package httpapi

import (
	"context"
	"net/http"

	"chirp/internal/adapters/httpapi/middleware"
	tweetEntity "chirp/internal/core/tweet"
	"chirp/internal/core/user"
	commentPort "chirp/internal/ports/comment"
	followerPort "chirp/internal/ports/follower"
	likePort "chirp/internal/ports/like"
	retweetPort "chirp/internal/ports/retweet"
	tweetPort "chirp/internal/ports/tweet"
	userPort "chirp/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	middleware.PrincipalResolver
	RegisterUser(ctx context.Context, username, email, password string) (*userPort.RegisterResponse, error)
	LoginUser(ctx context.Context, usernameOrEmail, password string) (*userPort.LoginResponse, error)
	GetUser(ctx context.Context, id string) (*userPort.UserDTO, error)
	SearchUsers(ctx context.Context, query string) ([]*userPort.UserDTO, error)
	UpdateUser(ctx context.Context, id string, in userPort.UpdateUserDTO, actor user.Principal) (*userPort.UserDTO, error)
	DeleteUser(ctx context.Context, id string, actor user.Principal) error
}

type TweetUseCase interface {
	CreateTweet(ctx context.Context, text string, actor user.Principal) (*tweetPort.TweetDTO, error)
	GetTweet(ctx context.Context, id string) (*tweetPort.TweetDTO, error)
	ListTweetsByUser(ctx context.Context, userID string) ([]*tweetPort.TweetDTO, error)
	UpdateTweet(ctx context.Context, id, text string, actor user.Principal) (*tweetPort.TweetDTO, error)
	DeleteTweet(ctx context.Context, id string, actor user.Principal) error
	GetTweetStats(ctx context.Context, id string) (*tweetEntity.Stats, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, tweetID, text string, actor user.Principal) (*commentPort.CommentDTO, error)
	GetComment(ctx context.Context, id string) (*commentPort.CommentDTO, error)
	UpdateComment(ctx context.Context, id, text string, actor user.Principal) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, id string, actor user.Principal) error
	ListCommentsByTweet(ctx context.Context, tweetID string) ([]*commentPort.CommentDTO, error)
}

type LikeUseCase interface {
	Like(ctx context.Context, tweetID, userID string) (*likePort.LikeDTO, error)
	Unlike(ctx context.Context, tweetID, userID string) error
	HasLiked(ctx context.Context, tweetID, userID string) (bool, error)
	ListLikesByTweet(ctx context.Context, tweetID string) ([]*likePort.LikeDTO, error)
}

type RetweetUseCase interface {
	Retweet(ctx context.Context, tweetID, userID string) (*retweetPort.RetweetDTO, error)
	RemoveRetweet(ctx context.Context, retweetID, userID string) error
	HasRetweeted(ctx context.Context, tweetID, userID string) (bool, error)
	ListRetweetsByTweet(ctx context.Context, tweetID string) ([]*retweetPort.RetweetDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID, followeeID string) error
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	GetFollowersByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
	GetFollowingByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
	GetFollowCounts(ctx context.Context, userID string) (*followerPort.FollowCountsDTO, error)
}

type TimelineUseCase interface {
	GetTimelineByUserID(ctx context.Context, userID string, start int64, limit int64) ([]*tweetPort.TweetDTO, error)
}

// UseCases groups the inbound ports the router dispatches to.
type UseCases struct {
	User     UserUseCase
	Tweet    TweetUseCase
	Comment  CommentUseCase
	Like     LikeUseCase
	Retweet  RetweetUseCase
	Follower FollowerUseCase
	Timeline TimelineUseCase
}

// Options carries the cross-cutting pieces of the router. Nil fields are
// skipped.
type Options struct {
	Logger         *zap.Logger
	Metrics        middleware.RequestRecorder
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(uc UseCases, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	if opts.Metrics != nil {
		r.Use(middleware.AccessLog(logger, opts.Metrics))
	}

	usc := NewUserController(uc.User)
	tc := NewTweetController(uc.Tweet)
	cc := NewCommentController(uc.Comment)
	lc := NewLikeController(uc.Like)
	rc := NewRetweetController(uc.Retweet)
	fc := NewFollowerController(uc.Follower)
	tlc := NewTimelineController(uc.Timeline)

	auth := middleware.JWTAuthMiddleware(uc.User)
	// write routes are limited per caller, after auth so the user id is known
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opts.RateLimiter != nil {
		limit = opts.RateLimiter.Middleware()
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/register", limit, usc.RegisterUser)
	r.POST("/login", limit, usc.LoginUser)

	users := r.Group("/users")
	users.GET("/search", auth, usc.SearchUsers)
	users.GET("/:id", auth, usc.GetUser)
	users.PUT("/:id", auth, limit, usc.UpdateUser)
	users.DELETE("/:id", auth, limit, usc.DeleteUser)
	users.GET("/:id/tweets", tc.ListTweetsByUser)

	// مسیرهای دنبال کردن و دریافت دنبال‌کنندگان با JWT Middleware
	users.POST("/:id/follow", auth, limit, fc.FollowUser)
	users.DELETE("/:id/follow", auth, limit, fc.UnfollowUser)
	users.GET("/:id/follow", auth, fc.IsFollowing)
	users.GET("/:id/followers", auth, fc.GetFollowersByUserID)
	users.GET("/:id/following", auth, fc.GetFollowingByUserID)
	users.GET("/:id/follow-counts", auth, fc.GetFollowCounts)

	tweets := r.Group("/tweets")
	tweets.POST("", auth, limit, tc.CreateTweet)
	tweets.GET("/:id", tc.GetTweet)
	tweets.PUT("/:id", auth, limit, tc.UpdateTweet)
	tweets.DELETE("/:id", auth, limit, tc.DeleteTweet)
	tweets.GET("/:id/comments", cc.ListCommentsByTweet)
	tweets.GET("/:id/stats", tc.GetTweetStats)

	comments := r.Group("/comments")
	comments.POST("", auth, limit, cc.AddComment)
	comments.GET("/:id", cc.GetComment)
	comments.PUT("/:id", auth, limit, cc.UpdateComment)
	comments.DELETE("/:id", auth, limit, cc.DeleteComment)

	r.POST("/likes/tweet/:id", auth, limit, lc.Like)
	r.DELETE("/likes/tweet/:id", auth, limit, lc.Unlike)
	r.GET("/likes/tweet/:id", lc.ListLikesByTweet)
	r.GET("/likes/tweet/:id/check", auth, lc.HasLiked)

	// POST takes the tweet id, DELETE the retweet id
	r.POST("/retweets/:id", auth, limit, rc.Retweet)
	r.DELETE("/retweets/:id", auth, limit, rc.RemoveRetweet)
	r.GET("/retweets/tweet/:id", rc.ListRetweetsByTweet)
	r.GET("/retweets/tweet/:id/check", auth, rc.HasRetweeted)

	r.GET("/timeline", auth, tlc.GetTimelineByUserID)
	return r
}
