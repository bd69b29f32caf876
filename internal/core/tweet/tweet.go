package tweet

import (
	"time"

	"github.com/gofrs/uuid"
)

type Tweet struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Content   string    `gorm:"type:varchar(280);not null"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Stats are the engagement counters of a single tweet.
type Stats struct {
	Likes    int64 `json:"likes"`
	Retweets int64 `json:"retweets"`
	Comments int64 `json:"comments"`
}
