package follower

import (
	"time"

	"github.com/gofrs/uuid"
)

// Follower is a directed edge: FollowerID follows UserID.
type Follower struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow;index"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Follower) TableName() string { return "user_followers" }
