package retweet

import (
	"time"

	"github.com/gofrs/uuid"
)

// Retweet is unique per (user, original tweet).
type Retweet struct {
	ID              uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID          uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_retweet_user_tweet"`
	OriginalTweetID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_retweet_user_tweet;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}
