package timeline

import (
	"time"

	"github.com/gofrs/uuid"
)

// Timeline is the durable copy of a fanned-out tweet in a reader's feed.
type Timeline struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_user_tweet"`
	TweetID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_user_tweet"`
	CreatedAt time.Time `gorm:"not null;index"`
}
