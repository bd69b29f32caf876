package comment

import (
	"time"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Content   string    `gorm:"type:varchar(280);not null"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	TweetID   uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
