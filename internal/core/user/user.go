package user

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID             uuid.UUID      `gorm:"primary_key;type:char(36)"`
	Username       string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password       string         `gorm:"not null"`
	Role           Role           `gorm:"type:varchar(10);not null;default:USER"`
	FollowersCount int64          `gorm:"not null;default:0"`
	FollowingCount int64          `gorm:"not null;default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// Principal is the authenticated caller, resolved once per request.
type Principal struct {
	ID       string
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Owns reports whether the principal is the given owner id.
func (p Principal) Owns(ownerID uuid.UUID) bool {
	return p.ID != "" && p.ID == ownerID.String()
}

func (u *User) Principal() Principal {
	return Principal{ID: u.ID.String(), Username: u.Username, Role: u.Role}
}
