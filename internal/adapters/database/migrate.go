package database

import (
	"chirp/internal/core/comment"
	"chirp/internal/core/fanoutqueue"
	"chirp/internal/core/follower"
	"chirp/internal/core/like"
	"chirp/internal/core/retweet"
	"chirp/internal/core/timeline"
	"chirp/internal/core/tweet"
	"chirp/internal/core/user"

	"gorm.io/gorm"
)

// AutoMigrate اعمال مایگریشن برای همه‌ی مدل‌ها
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&tweet.Tweet{},
		&comment.Comment{},
		&like.Like{},
		&retweet.Retweet{},
		&follower.Follower{},
		&timeline.Timeline{},
		&fanoutqueue.FanoutQueue{},
	)
}
