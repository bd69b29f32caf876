package fanoutqueue

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

type FanoutQueue struct {
	ID          uuid.UUID  `gorm:"primary_key;type:char(36)"`
	TweetID     uuid.UUID  `gorm:"type:char(36);not null"`
	UserID      uuid.UUID  `gorm:"type:char(36);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"` // pending, done
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}
