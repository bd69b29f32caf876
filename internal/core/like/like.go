package like

import (
	"time"

	"github.com/gofrs/uuid"
)

// Like is unique per (user, tweet).
type Like struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_tweet"`
	TweetID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_like_user_tweet;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
